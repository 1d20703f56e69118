package roundstore

import (
	"bytes"
	"context"
	"sync"

	"github.com/GlebRadaev/steake/internal/game"
)

// Memory keeps rounds in process. Rounds are lost on restart.
type Memory struct {
	mu     sync.RWMutex
	rounds map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{rounds: make(map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.rounds[key]
	if !ok {
		return nil, game.ErrRoundNotFound
	}
	return append([]byte(nil), data...), nil
}

func (m *Memory) Set(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rounds[key] = append([]byte(nil), data...)
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rounds, key)
	return nil
}

func (m *Memory) Swap(_ context.Context, key string, old, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.rounds[key]
	if ok != (old != nil) || !bytes.Equal(cur, old) {
		return game.ErrRoundConflict
	}
	if data == nil {
		delete(m.rounds, key)
		return nil
	}
	m.rounds[key] = append([]byte(nil), data...)
	return nil
}
