package app_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/siegestats/backend/internal/adapters/statsprovider"
	"github.com/siegestats/backend/internal/domain"
)

// mockTracker is an in-memory freshness tracker that counts every interaction
// so tests can assert when caching is (not) consulted.
type mockTracker struct {
	t *testing.T

	mu     sync.Mutex
	online bool

	refreshed map[string]time.Time
	ids       map[string]string

	isOnlineCalls      int
	lastRefreshedCalls int
	setRefreshedCalls  int
	profileIDCalls     int
	setProfileIDCalls  int

	lastRefreshedErr error
	setRefreshedErr  error
	profileIDErr     error
	setProfileIDErr  error
}

func newMockTracker(t *testing.T) *mockTracker {
	return &mockTracker{
		t:         t,
		online:    true,
		refreshed: make(map[string]time.Time),
		ids:       make(map[string]string),
	}
}

func (m *mockTracker) IsOnline(ctx context.Context) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.isOnlineCalls++
	return m.online
}

func (m *mockTracker) LastRefreshed(ctx context.Context, key domain.CacheKey) (time.Time, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastRefreshedCalls++
	if m.lastRefreshedErr != nil {
		return time.Time{}, false, m.lastRefreshedErr
	}
	refreshedAt, found := m.refreshed[key.String()]
	return refreshedAt, found, nil
}

func (m *mockTracker) SetRefreshed(ctx context.Context, key domain.CacheKey, refreshedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setRefreshedCalls++
	if m.setRefreshedErr != nil {
		return m.setRefreshedErr
	}
	m.refreshed[key.String()] = refreshedAt
	return nil
}

func (m *mockTracker) ProfileID(ctx context.Context, key domain.CacheKey) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profileIDCalls++
	if m.profileIDErr != nil {
		return "", false, m.profileIDErr
	}
	profileID, found := m.ids[key.String()]
	return profileID, found, nil
}

func (m *mockTracker) SetProfileID(ctx context.Context, key domain.CacheKey, profileID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setProfileIDCalls++
	if m.setProfileIDErr != nil {
		return m.setProfileIDErr
	}
	m.ids[key.String()] = profileID
	return nil
}

func (m *mockTracker) readWriteCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastRefreshedCalls + m.setRefreshedCalls + m.profileIDCalls + m.setProfileIDCalls
}

// mockStore is an in-memory document store with interaction counters.
type mockStore struct {
	t *testing.T

	mu     sync.Mutex
	online bool

	documents map[string]json.RawMessage

	isOnlineCalls int
	getCalls      int
	insertCalls   int
	updateCalls   int

	getErr    error
	insertErr error
	updateErr error
}

func newMockStore(t *testing.T) *mockStore {
	return &mockStore{
		t:         t,
		online:    true,
		documents: make(map[string]json.RawMessage),
	}
}

func storeKey(category domain.Category, profileID string) string {
	return string(category) + "/" + profileID
}

func (m *mockStore) IsOnline(ctx context.Context) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.isOnlineCalls++
	return m.online
}

func (m *mockStore) Get(ctx context.Context, category domain.Category, profileID string) (json.RawMessage, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getCalls++
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	document, found := m.documents[storeKey(category, profileID)]
	return document, found, nil
}

func (m *mockStore) Insert(ctx context.Context, category domain.Category, profileID string, document json.RawMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.insertCalls++
	if m.insertErr != nil {
		return m.insertErr
	}
	m.documents[storeKey(category, profileID)] = document
	return nil
}

func (m *mockStore) Update(ctx context.Context, category domain.Category, profileID string, document json.RawMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateCalls++
	if m.updateErr != nil {
		return m.updateErr
	}
	m.documents[storeKey(category, profileID)] = document
	return nil
}

func (m *mockStore) readWriteCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getCalls + m.insertCalls + m.updateCalls
}

// mockProvider serves canned per-category results and counts calls. An
// optional barrier lets tests require that category fetches run concurrently.
type mockProvider struct {
	t *testing.T

	mu sync.Mutex

	profiles  []domain.PlayerUsername
	levels    []domain.PlayerLevel
	playtimes []domain.PlayerPlaytime
	ranks     []domain.PlayerRank
	stats     *domain.PlayerStats
	usernames []domain.PlayerUsername

	resolveErr  error
	levelErr    error
	playtimeErr error
	rankErr     error
	statsErr    error
	usernameErr error

	resolveCalls  int
	levelCalls    int
	playtimeCalls int
	rankCalls     int
	statsCalls    int
	usernameCalls int

	// When set, every category call blocks until all five have arrived.
	barrier *sync.WaitGroup
}

func (m *mockProvider) awaitBarrier() {
	if m.barrier != nil {
		m.barrier.Done()
		m.barrier.Wait()
	}
}

func (m *mockProvider) ResolveProfile(ctx context.Context, platform domain.Platform, username string) ([]domain.PlayerUsername, error) {
	m.mu.Lock()
	m.resolveCalls++
	m.mu.Unlock()
	return m.profiles, m.resolveErr
}

func (m *mockProvider) GetLevel(ctx context.Context, platform domain.Platform, profileID string) ([]domain.PlayerLevel, error) {
	m.mu.Lock()
	m.levelCalls++
	m.mu.Unlock()
	m.awaitBarrier()
	return m.levels, m.levelErr
}

func (m *mockProvider) GetPlaytime(ctx context.Context, platform domain.Platform, profileID string) ([]domain.PlayerPlaytime, error) {
	m.mu.Lock()
	m.playtimeCalls++
	m.mu.Unlock()
	m.awaitBarrier()
	return m.playtimes, m.playtimeErr
}

func (m *mockProvider) GetRank(ctx context.Context, platform domain.Platform, profileID string, opts statsprovider.RankOptions) ([]domain.PlayerRank, error) {
	m.mu.Lock()
	m.rankCalls++
	m.mu.Unlock()
	m.awaitBarrier()
	return m.ranks, m.rankErr
}

func (m *mockProvider) GetStats(ctx context.Context, platform domain.Platform, profileID string) (*domain.PlayerStats, error) {
	m.mu.Lock()
	m.statsCalls++
	m.mu.Unlock()
	m.awaitBarrier()
	return m.stats, m.statsErr
}

func (m *mockProvider) GetUsername(ctx context.Context, platform domain.Platform, profileID string) ([]domain.PlayerUsername, error) {
	m.mu.Lock()
	m.usernameCalls++
	m.mu.Unlock()
	m.awaitBarrier()
	return m.usernames, m.usernameErr
}

func (m *mockProvider) GetStatus(ctx context.Context) ([]domain.ServerStatus, error) {
	return nil, nil
}
