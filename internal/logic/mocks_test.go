package logic

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lassestilvang/scoutmaster-3000-sub000/internal/models"
)

// MockProvider serves canned histories keyed by query
type MockProvider struct {
	Refs    map[string]models.TeamRef
	Matches map[string][]models.Match
	Err     error

	mu      sync.Mutex
	Calls   int
	Queries []string
}

func (m *MockProvider) record(query string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	m.Queries = append(m.Queries, query)
}

func (m *MockProvider) ResolveTeam(ctx context.Context, query string) (models.TeamRef, error) {
	m.record(query)
	if m.Err != nil {
		return models.TeamRef{}, m.Err
	}
	return m.Refs[query], nil
}

func (m *MockProvider) TeamMatches(ctx context.Context, query string, limit int) ([]models.Match, models.TeamRef, error) {
	m.record(query)
	if m.Err != nil {
		return nil, models.TeamRef{}, m.Err
	}
	return m.Matches[query], m.Refs[query], nil
}

// MockRedis implements RedisClient over a map
type MockRedis struct {
	mu    sync.Mutex
	Store map[string]string
}

func NewMockRedis() *MockRedis {
	return &MockRedis{Store: make(map[string]string)}
}

func (m *MockRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.Store[key]; ok {
		return redis.NewStringResult(v, nil)
	}
	return redis.NewStringResult("", redis.Nil)
}

func (m *MockRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch v := value.(type) {
	case []byte:
		m.Store[key] = string(v)
	case string:
		m.Store[key] = v
	}
	return redis.NewStatusResult("OK", nil)
}

// MockTeamCache implements TeamCache over a map
type MockTeamCache struct {
	Refs map[string]models.TeamRef
}

func NewMockTeamCache() *MockTeamCache {
	return &MockTeamCache{Refs: make(map[string]models.TeamRef)}
}

func (m *MockTeamCache) Get(ctx context.Context, query string) (models.TeamRef, bool) {
	ref, ok := m.Refs[query]
	return ref, ok
}

func (m *MockTeamCache) Put(ctx context.Context, query string, ref models.TeamRef) {
	m.Refs[query] = ref
}

// MockArchive records enqueued matches
type MockArchive struct {
	mu     sync.Mutex
	Queued []models.Match
}

func (m *MockArchive) Enqueue(teamID string, match models.Match) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Queued = append(m.Queued, match)
	return true
}

func (m *MockArchive) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Queued)
}
