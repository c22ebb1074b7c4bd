package services

import (
	"sync"

	"github.com/rs/zerolog"
)

const EventMediaCount = "mediaCount"

type MediaEvent struct {
	Event string `json:"event"`
	Count int64  `json:"count"`
}

// Notifier is told whenever the number of media items changes.
type Notifier interface {
	MediaCountChanged(count int64)
}

// Subscriber receives broadcast events until it is unsubscribed.
type Subscriber struct {
	send chan MediaEvent
}

func (s *Subscriber) Events() <-chan MediaEvent {
	return s.send
}

// NotificationService fans media events out to connected subscribers.
// Slow subscribers drop events instead of blocking the broadcaster.
type NotificationService struct {
	mu          sync.RWMutex
	subscribers map[*Subscriber]struct{}
	log         zerolog.Logger
}

func NewNotificationService(log zerolog.Logger) *NotificationService {
	return &NotificationService{
		subscribers: make(map[*Subscriber]struct{}),
		log:         log.With().Str("component", "notifications").Logger(),
	}
}

func (s *NotificationService) Subscribe() *Subscriber {
	sub := &Subscriber{send: make(chan MediaEvent, 8)}
	s.mu.Lock()
	s.subscribers[sub] = struct{}{}
	s.mu.Unlock()
	return sub
}

func (s *NotificationService) Unsubscribe(sub *Subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.subscribers[sub]; ok {
		delete(s.subscribers, sub)
		close(sub.send)
	}
}

func (s *NotificationService) Subscribers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subscribers)
}

func (s *NotificationService) MediaCountChanged(count int64) {
	event := MediaEvent{Event: EventMediaCount, Count: count}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for sub := range s.subscribers {
		select {
		case sub.send <- event:
		default:
			s.log.Warn().Msg("subscriber is not keeping up, dropping event")
		}
	}
}
