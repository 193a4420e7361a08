package adapter

import (
	"context"
	"errors"
	"product-browser/internal/core/model"
	"sync"
)

var (
	errNotFound = errors.New("not found")
	errConflict = errors.New("conflict")
)

// SessionRepo keeps browse sessions in memory. Updates run under the write
// lock, so operations on one session are applied one at a time.
type SessionRepo struct {
	mu   sync.RWMutex
	byID map[string]model.Session // id -> Session
}

func NewSessionRepo() *SessionRepo {
	return &SessionRepo{byID: make(map[string]model.Session)}
}

func (r *SessionRepo) Create(_ context.Context, s model.Session) (model.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s.ID == "" {
		return model.Session{}, errConflict
	}
	if _, ok := r.byID[s.ID]; ok {
		return model.Session{}, errConflict
	}
	r.byID[s.ID] = s
	return s, nil
}

func (r *SessionRepo) Get(_ context.Context, id string) (model.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byID[id]
	if !ok {
		return model.Session{}, errNotFound
	}
	return s, nil
}

// Update replaces the session with fn's result. fn must not call back into the repo.
func (r *SessionRepo) Update(_ context.Context, id string, fn func(model.Session) model.Session) (model.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byID[id]
	if !ok {
		return model.Session{}, errNotFound
	}
	next := fn(s)
	next.ID = s.ID
	r.byID[id] = next
	return next, nil
}

func (r *SessionRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return errNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *SessionRepo) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}
