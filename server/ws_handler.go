package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/techagentng/mediahub/server/response"
	"github.com/techagentng/mediahub/services"
	"github.com/techagentng/mediahub/services/utils"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = (wsPongWait * 9) / 10
)

func (s *Server) upgrader() *websocket.Upgrader {
	origins := s.Config.Origins()
	return &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(origins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, o := range origins {
				if o == origin {
					return true
				}
			}
			return false
		},
	}
}

// handleMediaEvents streams media count changes to a websocket client. The
// current count is sent as soon as the connection opens.
func (s *Server) handleMediaEvents() gin.HandlerFunc {
	upgrader := s.upgrader()
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			s.Log.Warn().Err(err).Msg("websocket upgrade failed")
			return
		}

		sub := s.Notifications.Subscribe()
		done := make(chan struct{})
		go s.readPump(conn, done)
		s.writePump(c, conn, sub, done)
	}
}

// readPump discards client frames and closes done when the peer goes away.
func (s *Server) readPump(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *Server) writePump(c *gin.Context, conn *websocket.Conn, sub *services.Subscriber, done <-chan struct{}) {
	ticker := time.NewTicker(wsPingPeriod)
	defer func() {
		ticker.Stop()
		s.Notifications.Unsubscribe(sub)
		_ = conn.Close()
	}()

	if count, err := s.MediaService.Count(c.Request.Context()); err == nil {
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		if err := conn.WriteJSON(services.MediaEvent{Event: services.EventMediaCount, Count: count}); err != nil {
			return
		}
	}

	for {
		select {
		case event, ok := <-sub.Events():
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

func (s *Server) handleHealth() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := utils.WithTimeout(c.Request.Context(), s.Config.QueryTimeout)
		defer cancel()
		if err := s.DB.Ping(ctx); err != nil {
			s.Log.Error().Err(err).Msg("health check failed")
			response.JSON(c, http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		response.JSON(c, http.StatusOK, gin.H{"status": "ok"})
	}
}
