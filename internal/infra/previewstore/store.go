package previewstore

import (
	"sync"
	"time"

	"ops-console/internal/domain/upload"
	"ops-console/internal/pkg/clock"

	"github.com/google/uuid"
)

// Store is the in-process staging area for built previews. It is constructed
// once at startup and injected wherever the pipeline needs it, so the TTL
// and concurrency behaviour are testable in isolation. Expiry is lazy: an
// expired record is deleted the next time anything touches it, plus swept
// opportunistically via PruneExpired at the top of pipeline requests.
type Store struct {
	mu       sync.Mutex
	clock    clock.Clock
	ttl      time.Duration
	previews map[uuid.UUID]*upload.Preview
}

func New(clk clock.Clock, ttl time.Duration) *Store {
	return &Store{
		clock:    clk,
		ttl:      ttl,
		previews: make(map[uuid.UUID]*upload.Preview),
	}
}

// Create stages one build's worth of rows under a fresh unguessable id.
// Rows are immutable from this point on.
func (s *Store) Create(typ upload.Type, rows []upload.PreviewRow, summary upload.PreviewSummary, actorID uuid.UUID) *upload.Preview {
	now := s.clock.Now()
	p := &upload.Preview{
		ID:        uuid.New(),
		Type:      typ,
		Rows:      rows,
		Summary:   summary,
		ActorID:   actorID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.previews[p.ID] = p
	return p
}

// Get returns the preview only while it is alive. An expired record is
// deleted as a side effect and reported as missing.
func (s *Store) Get(id uuid.UUID) (*upload.Preview, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.previews[id]
	if !ok {
		return nil, false
	}
	if p.Expired(s.clock.Now()) {
		delete(s.previews, id)
		return nil, false
	}
	return p, true
}

// MarkApplied stamps AppliedAt on a live record. Returns false for unknown
// or expired ids.
func (s *Store) MarkApplied(id uuid.UUID) (*upload.Preview, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.previews[id]
	if !ok || p.Expired(s.clock.Now()) {
		return nil, false
	}
	at := s.clock.Now()
	p.AppliedAt = &at
	return p, true
}

// PruneExpired deletes every expired record. Idempotent, safe to call at
// any time.
func (s *Store) PruneExpired() {
	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, p := range s.previews {
		if p.Expired(now) {
			delete(s.previews, id)
		}
	}
}

func (s *Store) Delete(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.previews, id)
}

// Len reports the number of physically stored records, expired or not.
// Intended for tests and diagnostics.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.previews)
}
