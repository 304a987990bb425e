package gapscan

import (
	"context"
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/gapscan/gapscan/pkg/gapscan/aggregate"
	"github.com/gapscan/gapscan/pkg/gapscan/compare"
	"github.com/gapscan/gapscan/pkg/gapscan/excerpt"
	"github.com/gapscan/gapscan/pkg/gapscan/internalerr"
	"github.com/gapscan/gapscan/pkg/gapscan/store"
	"github.com/gapscan/gapscan/pkg/gapscan/taxonomy"
)

// Extractor decodes an uploaded attachment into plain text. The engine treats
// extraction as a collaborator boundary: a failing extractor means the
// document is ingested with no text, never a failed policy.
type Extractor interface {
	Extract(name string, data []byte) (string, error)
}

// Engine is the coverage-extraction and gap-comparison facade. It folds the
// store's live policy set over each configured taxonomy and recomputes every
// comparison from scratch, so results always reflect the current set.
type Engine struct {
	store      store.Store
	taxonomies []*taxonomy.Taxonomy
	extractor  Extractor
	excerptOpt excerpt.Options
	entropy    *ulid.MonotonicEntropy
}

// Options configures an Engine
type Options struct {
	Store      store.Store
	Taxonomies []*taxonomy.Taxonomy
	// Extractor decodes attachments; nil means attachments are ingested as
	// plain UTF-8 text.
	Extractor Extractor
	// Excerpt controls context-window recovery; the zero value selects
	// excerpt.DefaultOptions.
	Excerpt excerpt.Options
}

// New creates an Engine with the given dependencies
func New(opts Options) *Engine {
	if opts.Excerpt == (excerpt.Options{}) {
		opts.Excerpt = excerpt.DefaultOptions()
	}
	return &Engine{
		store:      opts.Store,
		taxonomies: opts.Taxonomies,
		extractor:  opts.Extractor,
		excerptOpt: opts.Excerpt,
		entropy:    ulid.Monotonic(rand.Reader, 0),
	}
}

// Close cleanly shuts down the engine
func (e *Engine) Close() error {
	return e.store.Close()
}

// Attachment is an uploaded file to ingest alongside a policy.
type Attachment struct {
	Name string
	Data []byte
}

// PolicyInput describes a policy to add. Company is required; everything else
// is optional.
type PolicyInput struct {
	Type       string
	Company    string
	Start      string
	End        string
	Premium    *float64
	Attachment *Attachment
}

// AddPolicy records a policy and ingests its attachment, if any. Extraction
// failure is tolerated: the document is stored with no text and the policy
// simply contributes no evidence.
func (e *Engine) AddPolicy(ctx context.Context, in PolicyInput) (store.Policy, error) {
	if strings.TrimSpace(in.Company) == "" {
		return store.Policy{}, fmt.Errorf("company is required: %w", internalerr.ErrInvalidInput)
	}

	now := time.Now()
	policy := store.Policy{
		ID:        e.newID(),
		Type:      in.Type,
		Company:   strings.TrimSpace(in.Company),
		Start:     in.Start,
		End:       in.End,
		CreatedAt: now,
	}
	if in.Premium != nil {
		premium := *in.Premium
		policy.Premium = &premium
	}

	if in.Attachment != nil {
		text, err := e.extractText(in.Attachment.Name, in.Attachment.Data)
		if err != nil {
			text = ""
		}
		doc := store.Document{
			ID:         e.newID(),
			Name:       in.Attachment.Name,
			Size:       int64(len(in.Attachment.Data)),
			Content:    text,
			UploadedAt: now,
		}
		if err := e.store.AddDocument(ctx, doc); err != nil {
			return store.Policy{}, err
		}
		policy.DocumentID = doc.ID
	}

	if err := e.store.AddPolicy(ctx, policy); err != nil {
		return store.Policy{}, err
	}
	return policy, nil
}

// RemovePolicy deletes a policy and its document.
func (e *Engine) RemovePolicy(ctx context.Context, id string) error {
	return e.store.DeletePolicy(ctx, id)
}

// Policies returns the live policy set, newest first.
func (e *Engine) Policies(ctx context.Context) ([]store.Policy, error) {
	return e.store.ListPolicies(ctx)
}

// Compare recomputes coverage for every configured taxonomy over the current
// policy set and returns the results keyed by taxonomy name. Documents are
// folded in policy-submission order so evidence ordering is reproducible.
func (e *Engine) Compare(ctx context.Context) (map[string]compare.Result, error) {
	policies, err := e.store.ListPolicies(ctx)
	if err != nil {
		return nil, err
	}

	// ListPolicies is newest first; evidence order follows submission order.
	sources := make([]aggregate.Source, 0, len(policies))
	for i := len(policies) - 1; i >= 0; i-- {
		p := policies[i]
		if p.DocumentID == "" {
			continue
		}
		doc, ok, err := e.store.GetDocument(ctx, p.DocumentID)
		if err != nil {
			return nil, err
		}
		if !ok || doc.Content == "" {
			continue
		}
		sources = append(sources, aggregate.Source{
			DocumentID: doc.ID,
			Company:    p.Company,
			Text:       doc.Content,
		})
	}

	results := make(map[string]compare.Result, len(e.taxonomies))
	for _, tax := range e.taxonomies {
		aggs := aggregate.Aggregate(sources, tax)
		results[tax.Name()] = compare.Compare(aggs, tax)
	}
	return results, nil
}

// Excerpt recovers a readable context window around an evidence entry in its
// source document. When the document is gone or empty the snippet itself is
// returned; this is a display aid and never fails.
func (e *Engine) Excerpt(ctx context.Context, ev aggregate.Evidence) (string, error) {
	if ev.DocumentID == "" {
		return ev.Snippet, nil
	}
	doc, ok, err := e.store.GetDocument(ctx, ev.DocumentID)
	if err != nil {
		return "", err
	}
	if !ok || doc.Content == "" {
		return ev.Snippet, nil
	}
	return excerpt.Locate(doc.Content, ev.Snippet, e.excerptOpt), nil
}

func (e *Engine) extractText(name string, data []byte) (string, error) {
	if e.extractor == nil {
		return string(data), nil
	}
	return e.extractor.Extract(name, data)
}

func (e *Engine) newID() string {
	return ulid.MustNew(ulid.Now(), e.entropy).String()
}
