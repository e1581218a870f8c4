package alerting

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type hubLimiter struct {
	limiter  *rate.Limiter
	custom   bool
	lastSeen time.Time
}

// RateLimiterStore manages per-hub rate limiters: hub_id -> rate limiter.
// Limiters set through SetLimiter survive Prune; default ones are recreated on demand.
type RateLimiterStore struct {
	limiters     map[string]*hubLimiter
	mu           sync.Mutex
	defaultRate  rate.Limit
	defaultBurst int
	now          func() time.Time
}

func NewRateLimiterStore(defaultRate rate.Limit, defaultBurst int) *RateLimiterStore {
	return &RateLimiterStore{
		limiters:     make(map[string]*hubLimiter),
		defaultRate:  defaultRate,
		defaultBurst: defaultBurst,
		now:          time.Now,
	}
}

func (s *RateLimiterStore) GetLimiter(hubID string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, exists := s.limiters[hubID]
	if !exists {
		entry = &hubLimiter{limiter: rate.NewLimiter(s.defaultRate, s.defaultBurst)}
		s.limiters[hubID] = entry
	}
	entry.lastSeen = s.now()
	return entry.limiter
}

func (s *RateLimiterStore) SetLimiter(hubID string, hubRate rate.Limit, hubBurst int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.limiters[hubID] = &hubLimiter{
		limiter:  rate.NewLimiter(hubRate, hubBurst),
		custom:   true,
		lastSeen: s.now(),
	}
}

// Allow is true when a nil store is used, so transports can skip the nil check.
func (s *RateLimiterStore) Allow(hubID string) bool {
	if s == nil {
		return true
	}
	return s.GetLimiter(hubID).Allow()
}

// Prune drops default limiters not used for idle and returns how many were removed.
func (s *RateLimiterStore) Prune(idle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-idle)
	removed := 0
	for hubID, entry := range s.limiters {
		if !entry.custom && entry.lastSeen.Before(cutoff) {
			delete(s.limiters, hubID)
			removed++
		}
	}
	return removed
}

func (s *RateLimiterStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.limiters)
}
