package api

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/jonesrussell/goharvest/internal/domain"
	"github.com/jonesrussell/goharvest/internal/logger"
)

// CatalogStore holds the result set served by the API. It is safe for
// concurrent readers; Replace swaps the whole set at once so requests
// never observe a half-loaded catalog.
type CatalogStore struct {
	mu      sync.RWMutex
	results *domain.ResultSet
	log     logger.Interface
}

// NewCatalogStore creates an empty store.
func NewCatalogStore(log logger.Interface) *CatalogStore {
	if log == nil {
		log = logger.NewNoOp()
	}

	return &CatalogStore{results: domain.NewResultSet(), log: log}
}

// Results returns the current result set.
func (s *CatalogStore) Results() *domain.ResultSet {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.results
}

// Replace swaps in a new result set.
func (s *CatalogStore) Replace(results *domain.ResultSet) {
	if results == nil {
		results = domain.NewResultSet()
	}

	s.mu.Lock()
	s.results = results
	s.mu.Unlock()

	s.log.Info("Catalog updated", "records", results.Len())
}

// LoadFile replaces the store contents with the result set read from a
// JSON document on disk.
func (s *CatalogStore) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read catalog file: %w", err)
	}

	results := domain.NewResultSet()
	if unmarshalErr := json.Unmarshal(data, results); unmarshalErr != nil {
		return fmt.Errorf("parse catalog file: %w", unmarshalErr)
	}

	s.Replace(results)

	return nil
}
