package signals

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/worldloop/worldloop/internal/itinerary"
)

// ServiceConfig holds configuration for the signals service.
type ServiceConfig struct {
	// Provider is the upstream signal source.
	Provider Provider

	// Repository is the optional persistent cache shared across instances.
	// When nil, only the in-process cache is used.
	Repository Repository

	// Logger for service operations.
	Logger zerolog.Logger

	// CacheTTL is how long to serve a cached signal (default: 6 hours).
	CacheTTL time.Duration

	// StaleIfErrorTTL allows serving stale signals on provider errors
	// (default: 48 hours). Award availability moves slowly enough that a
	// stale answer beats an unknown one.
	StaleIfErrorTTL time.Duration

	// CleanupInterval is how often to drop expired entries (default: 1 hour).
	CleanupInterval time.Duration
}

// Service resolves segment signals with an in-process TTL cache in front of
// the persistent repository and the live provider.
type Service struct {
	provider        Provider
	repo            Repository
	logger          zerolog.Logger
	cacheTTL        time.Duration
	staleIfErrorTTL time.Duration
	cleanupInterval time.Duration

	mu          sync.RWMutex
	cache       map[string]*cachedSignal
	lastCleanup time.Time
}

type cachedSignal struct {
	signal    SegmentSignal
	fetchedAt time.Time
	expiresAt time.Time
}

// NewService creates a new signals service.
func NewService(cfg ServiceConfig) *Service {
	cacheTTL := cfg.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 6 * time.Hour
	}

	staleIfErrorTTL := cfg.StaleIfErrorTTL
	if staleIfErrorTTL == 0 {
		staleIfErrorTTL = 48 * time.Hour
	}

	cleanupInterval := cfg.CleanupInterval
	if cleanupInterval == 0 {
		cleanupInterval = time.Hour
	}

	return &Service{
		provider:        cfg.Provider,
		repo:            cfg.Repository,
		logger:          cfg.Logger,
		cacheTTL:        cacheTTL,
		staleIfErrorTTL: staleIfErrorTTL,
		cleanupInterval: cleanupInterval,
		cache:           make(map[string]*cachedSignal),
	}
}

// Resolve collects signals for every flown segment of an itinerary. It
// never fails: any segment whose lookup errors resolves to StatusUnknown,
// so a provider outage degrades scoring instead of aborting the search.
func (s *Service) Resolve(ctx context.Context, it itinerary.Itinerary) Resolved {
	out := Resolved{Segments: make(map[string]SegmentSignal, len(it.Segments))}

	for _, seg := range it.Segments {
		if !seg.IsFlown() {
			continue
		}
		sig, err := s.Get(ctx, seg.From, seg.To, string(it.Ticket.Cabin))
		if err != nil {
			s.logger.Debug().Err(err).
				Str("from", seg.From).
				Str("to", seg.To).
				Msg("signal lookup failed, scoring as unknown")
			sig = SegmentSignal{From: seg.From, To: seg.To, Status: StatusUnknown}
		}
		out.Segments[sig.Key()] = sig
		out.TotalCostUSD += sig.CostUSD
	}

	return out
}

// Get returns the signal for one directed pair, consulting the in-process
// cache, then the repository, then the live provider.
func (s *Service) Get(ctx context.Context, from, to, cabin string) (SegmentSignal, error) {
	key := from + "-" + to + ":" + cabin

	s.mu.RLock()
	if cached, ok := s.cache[key]; ok && time.Now().Before(cached.expiresAt) {
		s.mu.RUnlock()
		return cached.signal, nil
	}
	s.mu.RUnlock()

	return s.fetch(ctx, from, to, cabin, key)
}

// fetch refreshes one signal and updates the caches.
func (s *Service) fetch(ctx context.Context, from, to, cabin, key string) (SegmentSignal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Double-check after taking the write lock (prevents thundering herd).
	if cached, ok := s.cache[key]; ok && time.Now().Before(cached.expiresAt) {
		return cached.signal, nil
	}

	if s.repo != nil {
		if stored, err := s.repo.Get(ctx, from, to, cabin); err == nil {
			if time.Since(stored.CheckedAt) < s.cacheTTL {
				s.store(key, stored)
				return stored, nil
			}
		} else if !errors.Is(err, ErrNotFound) {
			s.logger.Warn().Err(err).Str("key", key).Msg("signal repository read failed")
		}
	}

	sig, err := s.provider.Fetch(ctx, from, to, cabin)
	if err != nil {
		s.logger.Error().Err(err).
			Str("from", from).
			Str("to", to).
			Str("provider", s.provider.Name()).
			Msg("failed to fetch signal")

		// Stale-if-error: a recently expired answer still beats unknown.
		if cached, ok := s.cache[key]; ok {
			if time.Now().Before(cached.fetchedAt.Add(s.staleIfErrorTTL)) {
				s.logger.Warn().
					Time("fetched_at", cached.fetchedAt).
					Str("key", key).
					Msg("serving stale signal due to provider error")
				return cached.signal, nil
			}
		}
		return SegmentSignal{}, err
	}

	sig.From, sig.To = from, to
	if sig.CheckedAt.IsZero() {
		sig.CheckedAt = time.Now()
	}
	s.store(key, sig)

	if s.repo != nil {
		if err := s.repo.Put(ctx, cabin, sig); err != nil {
			s.logger.Warn().Err(err).Str("key", key).Msg("signal repository write failed")
		}
	}

	s.cleanupIfNeeded()
	return sig, nil
}

// store caches a signal under the write lock.
func (s *Service) store(key string, sig SegmentSignal) {
	now := time.Now()
	s.cache[key] = &cachedSignal{
		signal:    sig,
		fetchedAt: now,
		expiresAt: now.Add(s.cacheTTL),
	}
}

// cleanupIfNeeded removes entries past the stale-if-error window. Caller
// holds the write lock.
func (s *Service) cleanupIfNeeded() {
	now := time.Now()
	if now.Sub(s.lastCleanup) < s.cleanupInterval {
		return
	}
	s.lastCleanup = now

	expired := 0
	for key, cached := range s.cache {
		if now.After(cached.fetchedAt.Add(s.staleIfErrorTTL)) {
			delete(s.cache, key)
			expired++
		}
	}
	if expired > 0 {
		s.logger.Debug().Int("expired_entries", expired).Msg("cleaned up expired signal cache entries")
	}
}

// InvalidateCache clears the in-process cache.
func (s *Service) InvalidateCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string]*cachedSignal)
}

// CacheStats contains cache statistics.
type CacheStats struct {
	TotalEntries int    `json:"total_entries"`
	FreshEntries int    `json:"fresh_entries"`
	StaleEntries int    `json:"stale_entries"`
	Provider     string `json:"provider"`
}

// Stats returns cache statistics.
func (s *Service) Stats() CacheStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := time.Now()
	fresh, stale := 0, 0
	for _, c := range s.cache {
		if now.Before(c.expiresAt) {
			fresh++
		} else if now.Before(c.fetchedAt.Add(s.staleIfErrorTTL)) {
			stale++
		}
	}

	return CacheStats{
		TotalEntries: len(s.cache),
		FreshEntries: fresh,
		StaleEntries: stale,
		Provider:     s.provider.Name(),
	}
}
