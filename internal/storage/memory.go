package storage

import (
	"context"
	"io"
	"sync"
)

// Memory is an in-memory BlobStore used in tests and local development.
type Memory struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{blobs: make(map[string][]byte)}
}

func (m *Memory) Upload(_ context.Context, name string, r io.Reader, _ string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[name] = data

	return "memory://" + name, nil
}

// Blob returns the stored content for assertions in tests.
func (m *Memory) Blob(name string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.blobs[name]
	return data, ok
}
