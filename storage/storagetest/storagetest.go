// Package storagetest provides an in-memory FileStore for tests.
package storagetest

import (
	"context"
	"sync"
)

// Deletion is one call made against a FileStore.
type Deletion struct {
	Filename string
	Token    string
}

// Recorder records deletions and fails them while Err is set.
type Recorder struct {
	mu      sync.Mutex
	Err     error
	deleted []Deletion
}

func (r *Recorder) Delete(_ context.Context, filename, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.deleted = append(r.deleted, Deletion{Filename: filename, Token: token})
	return nil
}

func (r *Recorder) Deleted() []Deletion {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Deletion(nil), r.deleted...)
}
