package session

import (
	"context"
	"sync"

	"github.com/octabyte/bm-gateway/models"
)

type memoryStore struct {
	mu    sync.RWMutex
	creds *models.Credentials
}

// NewMemoryStore returns a process-local store. Its zero state is logged out.
func NewMemoryStore() Store {
	return &memoryStore{}
}

func (m *memoryStore) Load(_ context.Context) (*models.Credentials, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.creds == nil {
		return nil, nil
	}
	creds := *m.creds
	return &creds, nil
}

func (m *memoryStore) Save(_ context.Context, creds models.Credentials) error {
	if creds.AccessToken == "" {
		return ErrEmptyToken
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creds = &creds
	return nil
}

func (m *memoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creds = nil
	return nil
}
