package memstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gapscan/gapscan/pkg/gapscan/internalerr"
	"github.com/gapscan/gapscan/pkg/gapscan/store"
)

func TestPolicyRoundTrip(t *testing.T) {
	s := New()
	defer s.Close()
	ctx := context.Background()

	premium := 42.50
	p := store.Policy{
		ID:        "p1",
		Type:      "terveys",
		Company:   "Pohjola",
		Start:     "2026-01-01",
		Premium:   &premium,
		CreatedAt: time.Now(),
	}
	if err := s.AddPolicy(ctx, p); err != nil {
		t.Fatalf("AddPolicy failed: %v", err)
	}

	got, ok, err := s.GetPolicy(ctx, "p1")
	if err != nil || !ok {
		t.Fatalf("GetPolicy failed: ok=%v err=%v", ok, err)
	}
	if got.Company != "Pohjola" || got.Type != "terveys" || got.Start != "2026-01-01" {
		t.Errorf("Policy fields lost: %+v", got)
	}
	if got.Premium == nil || *got.Premium != 42.50 {
		t.Errorf("Premium lost: %+v", got.Premium)
	}

	// Returned copy must not alias the stored premium.
	*got.Premium = 0
	again, _, _ := s.GetPolicy(ctx, "p1")
	if *again.Premium != 42.50 {
		t.Error("GetPolicy returned an aliased premium pointer")
	}
}

func TestListPoliciesNewestFirst(t *testing.T) {
	s := New()
	ctx := context.Background()

	for _, id := range []string{"p1", "p2", "p3"} {
		if err := s.AddPolicy(ctx, store.Policy{ID: id, Company: "C"}); err != nil {
			t.Fatalf("AddPolicy %s failed: %v", id, err)
		}
	}

	list, err := s.ListPolicies(ctx)
	if err != nil {
		t.Fatalf("ListPolicies failed: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("Expected 3 policies, got %d", len(list))
	}
	if list[0].ID != "p3" || list[2].ID != "p1" {
		t.Errorf("Expected newest first, got %s, %s, %s", list[0].ID, list[1].ID, list[2].ID)
	}
}

func TestAddPolicyDuplicate(t *testing.T) {
	s := New()
	ctx := context.Background()

	s.AddPolicy(ctx, store.Policy{ID: "p1", Company: "A"})
	err := s.AddPolicy(ctx, store.Policy{ID: "p1", Company: "B"})
	if !errors.Is(err, internalerr.ErrDuplicate) {
		t.Errorf("Expected ErrDuplicate, got %v", err)
	}
}

func TestDeletePolicyCascades(t *testing.T) {
	s := New()
	ctx := context.Background()

	s.AddDocument(ctx, store.Document{ID: "d1", Name: "policy.txt", Content: "text"})
	s.AddPolicy(ctx, store.Policy{ID: "p1", Company: "A", DocumentID: "d1"})

	if err := s.DeletePolicy(ctx, "p1"); err != nil {
		t.Fatalf("DeletePolicy failed: %v", err)
	}

	if _, ok, _ := s.GetPolicy(ctx, "p1"); ok {
		t.Error("Policy should be gone")
	}
	if _, ok, _ := s.GetDocument(ctx, "d1"); ok {
		t.Error("Attached document should be gone")
	}

	list, _ := s.ListPolicies(ctx)
	if len(list) != 0 {
		t.Errorf("Listing should be empty after delete, got %d", len(list))
	}
}

func TestDeletePolicyMissing(t *testing.T) {
	s := New()
	err := s.DeletePolicy(context.Background(), "missing")
	if !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	s := New()
	ctx := context.Background()

	d := store.Document{ID: "d1", Name: "vakuutus.txt", Size: 11, Content: "Hammashoito", UploadedAt: time.Now()}
	if err := s.AddDocument(ctx, d); err != nil {
		t.Fatalf("AddDocument failed: %v", err)
	}

	got, ok, err := s.GetDocument(ctx, "d1")
	if err != nil || !ok {
		t.Fatalf("GetDocument failed: ok=%v err=%v", ok, err)
	}
	if got.Content != "Hammashoito" || got.Size != 11 || got.Name != "vakuutus.txt" {
		t.Errorf("Document fields lost: %+v", got)
	}

	if _, ok, _ := s.GetDocument(ctx, "missing"); ok {
		t.Error("Missing document should report not found")
	}
}
