package quiz

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// MemoryStore keeps rounds in process memory. Suitable for a single API
// instance; expired rounds are dropped lazily and by Sweep.
type MemoryStore struct {
	mu     sync.Mutex
	rounds map[string]*memoryRound
	latest string
	ttl    time.Duration
	now    func() time.Time
	rng    *rand.Rand
}

type memoryRound struct {
	ids       []int32
	expiresAt time.Time
}

var _ RoundStore = (*MemoryStore)(nil)

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = defaultRoundTTL
	}
	return &MemoryStore{
		rounds: make(map[string]*memoryRound),
		ttl:    ttl,
		now:    time.Now,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *MemoryStore) Start(_ context.Context, sessionID string, ids []int32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rounds[sessionID] = &memoryRound{
		ids:       append([]int32(nil), ids...),
		expiresAt: s.now().Add(s.ttl),
	}
	return nil
}

func (s *MemoryStore) Pop(_ context.Context, sessionID string) (int32, int, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	round, ok := s.rounds[sessionID]
	if !ok {
		return 0, 0, false, nil
	}
	now := s.now()
	if !now.Before(round.expiresAt) {
		delete(s.rounds, sessionID)
		return 0, 0, false, nil
	}
	if len(round.ids) == 0 {
		return 0, 0, false, nil
	}

	i := s.rng.Intn(len(round.ids))
	id := round.ids[i]
	last := len(round.ids) - 1
	round.ids[i] = round.ids[last]
	round.ids = round.ids[:last]
	round.expiresAt = now.Add(s.ttl)
	return id, len(round.ids), true, nil
}

func (s *MemoryStore) SetLatest(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = sessionID
	return nil
}

func (s *MemoryStore) Latest(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest, nil
}

// Sweep drops expired rounds and returns how many went away.
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, round := range s.rounds {
		if !now.Before(round.expiresAt) {
			delete(s.rounds, id)
			removed++
		}
	}
	if _, ok := s.rounds[s.latest]; !ok {
		s.latest = ""
	}
	return removed
}

// Len reports the number of live rounds.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rounds)
}
