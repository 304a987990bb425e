package store

import (
	"context"
	"time"
)

// Store holds the live policy and document set the engine folds over. A
// deleted policy is simply absent from the next listing; the engine never
// needs tombstones.
type Store interface {
	Close() error

	// Policies
	AddPolicy(ctx context.Context, p Policy) error
	GetPolicy(ctx context.Context, id string) (Policy, bool, error)
	// ListPolicies returns policies newest first.
	ListPolicies(ctx context.Context) ([]Policy, error)
	// DeletePolicy removes a policy and its attached document, if any.
	DeletePolicy(ctx context.Context, id string) error

	// Documents
	AddDocument(ctx context.Context, d Document) error
	GetDocument(ctx context.Context, id string) (Document, bool, error)
}

// Policy is a user-declared insurance contract record. Start, End and
// DocumentID are empty when absent; Premium is nil when absent.
type Policy struct {
	ID         string
	Type       string
	Company    string
	Start      string
	End        string
	Premium    *float64
	DocumentID string
	CreatedAt  time.Time
}

// Document is one ingested text blob. Content holds the decoded plain text;
// it is empty when extraction produced nothing.
type Document struct {
	ID         string
	Name       string
	Size       int64
	Content    string
	UploadedAt time.Time
}
