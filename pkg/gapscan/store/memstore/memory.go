package memstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/gapscan/gapscan/pkg/gapscan/internalerr"
	"github.com/gapscan/gapscan/pkg/gapscan/store"
)

// Store is an in-memory implementation of store.Store. Nothing survives the
// process.
type Store struct {
	mu        sync.RWMutex
	policies  map[string]store.Policy
	order     []string // policy IDs in insertion order
	documents map[string]store.Document
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		policies:  make(map[string]store.Policy),
		documents: make(map[string]store.Document),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// AddPolicy inserts a policy.
func (s *Store) AddPolicy(ctx context.Context, p store.Policy) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == "" {
		return fmt.Errorf("policy id: %w", internalerr.ErrInvalidInput)
	}
	if _, exists := s.policies[p.ID]; exists {
		return fmt.Errorf("policy %s: %w", p.ID, internalerr.ErrDuplicate)
	}

	s.policies[p.ID] = copyPolicy(p)
	s.order = append(s.order, p.ID)
	return nil
}

// GetPolicy returns a policy by ID.
func (s *Store) GetPolicy(ctx context.Context, id string) (store.Policy, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if p, ok := s.policies[id]; ok {
		return copyPolicy(p), true, nil
	}
	return store.Policy{}, false, nil
}

// ListPolicies returns policies newest first.
func (s *Store) ListPolicies(ctx context.Context) ([]store.Policy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]store.Policy, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		if p, ok := s.policies[s.order[i]]; ok {
			out = append(out, copyPolicy(p))
		}
	}
	return out, nil
}

// DeletePolicy removes a policy and its attached document.
func (s *Store) DeletePolicy(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.policies[id]
	if !ok {
		return fmt.Errorf("policy %s: %w", id, internalerr.ErrNotFound)
	}

	delete(s.policies, id)
	for i, pid := range s.order {
		if pid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	if p.DocumentID != "" {
		delete(s.documents, p.DocumentID)
	}
	return nil
}

// AddDocument inserts a document.
func (s *Store) AddDocument(ctx context.Context, d store.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if d.ID == "" {
		return fmt.Errorf("document id: %w", internalerr.ErrInvalidInput)
	}
	if _, exists := s.documents[d.ID]; exists {
		return fmt.Errorf("document %s: %w", d.ID, internalerr.ErrDuplicate)
	}

	s.documents[d.ID] = d
	return nil
}

// GetDocument returns a document by ID.
func (s *Store) GetDocument(ctx context.Context, id string) (store.Document, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if d, ok := s.documents[id]; ok {
		return d, true, nil
	}
	return store.Document{}, false, nil
}

func copyPolicy(p store.Policy) store.Policy {
	out := p
	if p.Premium != nil {
		premium := *p.Premium
		out.Premium = &premium
	}
	return out
}
