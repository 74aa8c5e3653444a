package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"sync"
)

// MockImageStorage is an in-memory ImageStorage implementation for testing
type MockImageStorage struct {
	images map[string][]byte // map of object key to file content
	mu     sync.RWMutex
}

// NewMockImageStorage creates a new mock image storage
func NewMockImageStorage() *MockImageStorage {
	return &MockImageStorage{
		images: make(map[string][]byte),
	}
}

// SetAsMockForTesting sets this mock as the global image storage instance
func (m *MockImageStorage) SetAsMockForTesting() {
	SetImageStorage(m)
}

// UploadProductImage simulates uploading a product image
func (m *MockImageStorage) UploadProductImage(productID uint, fileHeader *multipart.FileHeader) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	key := fmt.Sprintf("products/%d/mock_%s", productID, filepath.Base(fileHeader.Filename))

	m.mu.Lock()
	m.images[key] = content
	m.mu.Unlock()

	return key, nil
}

// GetImageURL simulates generating a presigned URL
func (m *MockImageStorage) GetImageURL(key string) (string, error) {
	if key == "" {
		return "", nil
	}

	m.mu.RLock()
	_, exists := m.images[key]
	m.mu.RUnlock()

	if !exists {
		return "", fmt.Errorf("image not found in mock storage: %s", key)
	}

	return fmt.Sprintf("https://test-bucket.s3.us-east-1.amazonaws.com/%s?mock=true", key), nil
}

// DeleteImage simulates deleting a stored image
func (m *MockImageStorage) DeleteImage(key string) error {
	if key == "" {
		return nil
	}

	m.mu.Lock()
	delete(m.images, key)
	m.mu.Unlock()

	return nil
}

// ImageExists checks whether an image exists in mock storage (for test assertions)
func (m *MockImageStorage) ImageExists(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, exists := m.images[key]
	return exists
}

// Clear removes all images from mock storage
func (m *MockImageStorage) Clear() {
	m.mu.Lock()
	m.images = make(map[string][]byte)
	m.mu.Unlock()
}
