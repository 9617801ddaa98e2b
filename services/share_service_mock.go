package services

import (
	"context"
	"sync"
)

// MockSharer records shared files in memory for testing
type MockSharer struct {
	mu     sync.Mutex
	shared map[string][]byte

	// Err, when set, is returned by every Share call
	Err error
}

// NewMockSharer creates a new mock sharer
func NewMockSharer() *MockSharer {
	return &MockSharer{shared: make(map[string][]byte)}
}

// Share stores content under name
func (m *MockSharer) Share(ctx context.Context, name, mimeType string, content []byte) (SharedFile, error) {
	if m.Err != nil {
		return SharedFile{}, m.Err
	}

	m.mu.Lock()
	m.shared[name] = append([]byte(nil), content...)
	m.mu.Unlock()

	return SharedFile{
		Name:     name,
		MimeType: mimeType,
		URL:      "https://share.test/" + name,
		Size:     len(content),
	}, nil
}

// Content returns what was shared under name
func (m *MockSharer) Content(name string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	content, ok := m.shared[name]
	return content, ok
}

// Count returns how many distinct files were shared
func (m *MockSharer) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.shared)
}
