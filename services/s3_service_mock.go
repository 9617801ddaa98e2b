package services

import (
	"context"
	"fmt"
	"sync"
)

// MockS3Service is a mock implementation of S3Interface for testing
type MockS3Service struct {
	objects map[string][]byte // map of S3 key to content
	types   map[string]string // map of S3 key to content type
	mu      sync.RWMutex

	// PutErr, when set, is returned by every PutObject call
	PutErr error
}

// NewMockS3Service creates a new mock S3 service
func NewMockS3Service() *MockS3Service {
	return &MockS3Service{
		objects: make(map[string][]byte),
		types:   make(map[string]string),
	}
}

// PutObject simulates uploading a file to S3
func (m *MockS3Service) PutObject(ctx context.Context, key string, content []byte, contentType string) error {
	if m.PutErr != nil {
		return m.PutErr
	}

	stored := make([]byte, len(content))
	copy(stored, content)

	m.mu.Lock()
	m.objects[key] = stored
	m.types[key] = contentType
	m.mu.Unlock()

	return nil
}

// GetObject simulates downloading a file from S3
func (m *MockS3Service) GetObject(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	content, ok := m.objects[key]
	if !ok {
		return nil, ErrObjectNotFound
	}
	out := make([]byte, len(content))
	copy(out, content)
	return out, nil
}

// GetPresignedURL simulates generating a presigned URL
func (m *MockS3Service) GetPresignedURL(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", nil
	}

	m.mu.RLock()
	_, exists := m.objects[key]
	m.mu.RUnlock()

	if !exists {
		return "", fmt.Errorf("file not found in mock S3: %s", key)
	}

	return fmt.Sprintf("https://test-bucket.s3.ap-southeast-3.amazonaws.com/%s?mock=true", key), nil
}

// DeleteObject simulates deleting a file from S3
func (m *MockS3Service) DeleteObject(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}

	m.mu.Lock()
	delete(m.objects, key)
	delete(m.types, key)
	m.mu.Unlock()

	return nil
}

// ContentType returns the content type recorded for key
func (m *MockS3Service) ContentType(key string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.types[key]
}

// FileExists checks if a file exists in mock storage
func (m *MockS3Service) FileExists(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, exists := m.objects[key]
	return exists
}

// Clear removes all files from mock storage
func (m *MockS3Service) Clear() {
	m.mu.Lock()
	m.objects = make(map[string][]byte)
	m.types = make(map[string]string)
	m.mu.Unlock()
}
