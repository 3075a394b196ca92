// Package cache provides the in-memory analytics cache with project-scoped
// invalidation.
package cache

import (
	"fmt"
	"sync"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/sitescore/internal/interfaces"
)

// CompleteAnalyticsKind is the aggregate entry invalidated alongside any
// specific analytics kind for a project.
const CompleteAnalyticsKind = "complete-analytics"

type entry struct {
	value     any
	expiresAt time.Time
}

// Service is a TTL cache for computed analytics payloads. All operations
// are safe for concurrent use; invalidation is idempotent.
type Service struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	logger  arbor.ILogger
}

var _ interfaces.CacheInvalidator = (*Service)(nil)

// NewService creates an analytics cache with the given entry TTL
func NewService(ttl time.Duration, logger arbor.ILogger) *Service {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &Service{
		entries: make(map[string]entry),
		ttl:     ttl,
		logger:  logger,
	}
}

func key(projectID, kind string) string {
	return fmt.Sprintf("project:%s:%s", projectID, kind)
}

// Set stores a value for a project and analytics kind
func (s *Service) Set(projectID, kind string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key(projectID, kind)] = entry{
		value:     value,
		expiresAt: time.Now().Add(s.ttl),
	}
}

// Get returns a cached value, or false when missing or expired
func (s *Service) Get(projectID, kind string) (any, bool) {
	s.mu.RLock()
	e, ok := s.entries[key(projectID, kind)]
	s.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		s.mu.Lock()
		delete(s.entries, key(projectID, kind))
		s.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

// Invalidate removes the entry for the given analytics kind and the
// project's complete-analytics aggregate. Removing an absent key is a no-op.
func (s *Service) Invalidate(projectID, kind string) {
	if projectID == "" {
		return
	}

	s.mu.Lock()
	delete(s.entries, key(projectID, kind))
	delete(s.entries, key(projectID, CompleteAnalyticsKind))
	s.mu.Unlock()

	s.logger.Debug().
		Str("project_id", projectID).
		Str("kind", kind).
		Msg("Analytics cache invalidated")
}

// InvalidateProject removes every entry belonging to a project
func (s *Service) InvalidateProject(projectID string) {
	if projectID == "" {
		return
	}
	prefix := fmt.Sprintf("project:%s:", projectID)

	s.mu.Lock()
	for k := range s.entries {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			delete(s.entries, k)
		}
	}
	s.mu.Unlock()
}

// Len returns the number of live entries
func (s *Service) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
