// pkg/memcache/itinerary_cache.go
package mem

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	resp "itinera/internal/models/response_models"
)

// ItineraryCache holds rendered itinerary details between mutations. Every
// write path must Invalidate the itinerary it touched.
//
// Invalidate bumps the itinerary's generation. A reader takes Generation
// before loading from the database and passes it to Set, which stores
// nothing when a write has invalidated the itinerary in between.
type ItineraryCache interface {
	Get(ctx context.Context, itineraryID uuid.UUID) (*resp.ItineraryDetailResponse, bool)
	Generation(ctx context.Context, itineraryID uuid.UUID) uint64
	Set(ctx context.Context, itineraryID uuid.UUID, generation uint64, detail *resp.ItineraryDetailResponse)
	Invalidate(ctx context.Context, itineraryID uuid.UUID)
}

type entry struct {
	payload   []byte
	expiresAt time.Time
}

// InMemoryItineraryCache is the single-process cache used when no Redis is
// configured. Values are stored encoded so callers never share pointers.
type InMemoryItineraryCache struct {
	mu   sync.RWMutex
	ttl  time.Duration
	data map[uuid.UUID]entry
	gens map[uuid.UUID]uint64
	log  *zap.Logger
	now  func() time.Time
}

func NewInMemoryItineraryCache(ttl time.Duration, log *zap.Logger) *InMemoryItineraryCache {
	return &InMemoryItineraryCache{
		ttl:  ttl,
		data: make(map[uuid.UUID]entry),
		gens: make(map[uuid.UUID]uint64),
		log:  log,
		now:  time.Now,
	}
}

func (s *InMemoryItineraryCache) Get(_ context.Context, itineraryID uuid.UUID) (*resp.ItineraryDetailResponse, bool) {
	s.mu.RLock()
	e, ok := s.data[itineraryID]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if s.now().After(e.expiresAt) {
		// A Set may have replaced the entry since the read lock was dropped.
		s.mu.Lock()
		e, ok = s.data[itineraryID]
		if ok && s.now().After(e.expiresAt) {
			delete(s.data, itineraryID)
			ok = false
		}
		s.mu.Unlock()
		if !ok {
			return nil, false
		}
	}
	return decode(s.log, e.payload)
}

func (s *InMemoryItineraryCache) Generation(_ context.Context, itineraryID uuid.UUID) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gens[itineraryID]
}

func (s *InMemoryItineraryCache) Set(_ context.Context, itineraryID uuid.UUID, generation uint64, detail *resp.ItineraryDetailResponse) {
	payload, err := json.Marshal(detail)
	if err != nil {
		s.log.Warn("encoding itinerary for cache", zap.Error(err))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gens[itineraryID] != generation {
		s.log.Debug("skipping stale itinerary cache fill", zap.String("itinerary_id", itineraryID.String()))
		return
	}
	s.data[itineraryID] = entry{
		payload:   payload,
		expiresAt: s.now().Add(s.ttl),
	}
}

func (s *InMemoryItineraryCache) Invalidate(_ context.Context, itineraryID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, itineraryID)
	s.gens[itineraryID]++
}

func decode(log *zap.Logger, payload []byte) (*resp.ItineraryDetailResponse, bool) {
	var detail resp.ItineraryDetailResponse
	if err := json.Unmarshal(payload, &detail); err != nil {
		log.Warn("decoding cached itinerary", zap.Error(err))
		return nil, false
	}
	return &detail, true
}
