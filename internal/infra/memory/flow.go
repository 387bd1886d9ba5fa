package infra_memory

import (
	"context"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/humanbelnik/popchoice/internal/service/wizard"
)

type entry struct {
	data      []byte
	expiresAt time.Time
}

// FlowStore is the process-local store used when Redis is not configured.
// Flows are kept encoded so callers never share state with the store.
// Expired flows are swept on Save, at most once per TTL.
type FlowStore struct {
	mu        sync.Mutex
	flows     map[string]entry
	ttl       time.Duration
	now       func() time.Time
	nextSweep time.Time
}

func NewFlowStore(ttl time.Duration) *FlowStore {
	return &FlowStore{
		flows: make(map[string]entry),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (s *FlowStore) Save(ctx context.Context, f *wizard.Flow) error {
	data, err := json.Marshal(f)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if !now.Before(s.nextSweep) {
		s.sweep(now)
		s.nextSweep = now.Add(s.ttl)
	}
	s.flows[f.ID] = entry{data: data, expiresAt: now.Add(s.ttl)}
	return nil
}

func (s *FlowStore) sweep(now time.Time) {
	for id, e := range s.flows {
		if now.After(e.expiresAt) {
			delete(s.flows, id)
		}
	}
}

func (s *FlowStore) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.flows)
}

func (s *FlowStore) Load(ctx context.Context, id string) (*wizard.Flow, error) {
	s.mu.Lock()
	e, ok := s.flows[id]
	if ok && s.now().After(e.expiresAt) {
		delete(s.flows, id)
		ok = false
	}
	s.mu.Unlock()

	if !ok {
		return nil, nil
	}

	var f wizard.Flow
	if err := json.Unmarshal(e.data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (s *FlowStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.flows, id)
	return nil
}
