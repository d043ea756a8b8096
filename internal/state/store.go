package state

import (
	"sync"
	"time"

	"github.com/aryannaik/clusterview/internal/clusters"
)

// Store owns the currently loaded cluster database. The database is only
// ever replaced as a whole.
type Store struct {
	mu       sync.RWMutex
	db       *clusters.Database
	loadedAt time.Time
	changeCh chan struct{}
}

func NewStore() *Store {
	return &Store{
		changeCh: make(chan struct{}, 1),
	}
}

// Set replaces the database and signals Changes.
func (s *Store) Set(db *clusters.Database) {
	s.mu.Lock()
	s.db = db
	s.loadedAt = time.Now()
	s.mu.Unlock()

	select {
	case s.changeCh <- struct{}{}:
	default:
	}
}

// Database returns the current database, or nil before the first load.
func (s *Store) Database() *clusters.Database {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.db
}

// Clusters returns the clusters of the current database, or nil if nothing
// has been loaded yet.
func (s *Store) Clusters() []clusters.Cluster {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return nil
	}
	return s.db.Clusters
}

// Count returns the number of loaded clusters.
func (s *Store) Count() int {
	return len(s.Clusters())
}

// LoadedAt returns when the database was last replaced, or zero time.
func (s *Store) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

// Changes receives a value after Set. Notifications coalesce, so a slow
// reader sees at least one signal per burst of updates.
func (s *Store) Changes() <-chan struct{} {
	return s.changeCh
}
