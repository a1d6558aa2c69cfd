package cache

import (
	"sync"
	"time"
)

// MockCacheService is an in-memory CacheService for tests.
type MockCacheService struct {
	mu      sync.Mutex
	data    map[string][]byte
	ttl     map[string]time.Duration
	failGet error
}

func NewMockCacheService() *MockCacheService {
	return &MockCacheService{data: map[string][]byte{}, ttl: map[string]time.Duration{}}
}

func (m *MockCacheService) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failGet != nil {
		return nil, m.failGet
	}
	v, ok := m.data[key]
	if !ok {
		return nil, ErrMiss
	}
	return v, nil
}

func (m *MockCacheService) Set(key string, value []byte, expiration time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	m.ttl[key] = expiration
	return nil
}

func (m *MockCacheService) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
