package memory

import (
	"context"
	"sync"

	"github.com/PabloGalante/uiba-agent/internal/domain"
)

// BriefStore is a simple in-memory implementation of domain.BriefStore.
// It is NOT persistent and is only suitable for development / local mode.
type BriefStore struct {
	mu     sync.RWMutex
	briefs map[domain.BriefDocumentID]*domain.ProjectBrief
	order  []domain.BriefDocumentID
}

// NewBriefStore creates a new in-memory BriefStore.
func NewBriefStore() *BriefStore {
	return &BriefStore{
		briefs: make(map[domain.BriefDocumentID]*domain.ProjectBrief),
	}
}

func (s *BriefStore) StoreBrief(ctx context.Context, id domain.BriefDocumentID, brief *domain.ProjectBrief) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.briefs[id]; !exists {
		s.order = append(s.order, id)
	}
	s.briefs[id] = brief
	return nil
}

func (s *BriefStore) LoadBrief(ctx context.Context, id domain.BriefDocumentID) (*domain.ProjectBrief, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	brief, ok := s.briefs[id]
	if !ok {
		return nil, domain.ErrBriefNotFound
	}
	return brief, nil
}

// ListBriefIDs returns the last `limit` stored ids in insertion order.
// If limit <= 0, returns all.
func (s *BriefStore) ListBriefIDs(ctx context.Context, limit int) ([]domain.BriefDocumentID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.order
	if limit > 0 && len(ids) > limit {
		ids = ids[len(ids)-limit:]
	}
	return append([]domain.BriefDocumentID(nil), ids...), nil
}
