package sanity

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/posts"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Querier runs a single GROQ query. *Client satisfies it.
type Querier interface {
	Fetch(ctx context.Context, query string, params map[string]any, out any) error
}

// SourceOption customises a Source.
type SourceOption func(*Source)

// WithImageResolver sets the collaborator that turns image refs into URLs.
func WithImageResolver(resolver interfaces.ImageURLResolver) SourceOption {
	return func(s *Source) {
		s.conv.images = resolver
	}
}

// WithDefaults overrides the author and category fallbacks.
func WithDefaults(defaults posts.Defaults) SourceOption {
	return func(s *Source) {
		s.conv.defaults = defaults
	}
}

// WithReadingTime overrides the reading time estimator.
func WithReadingTime(reading posts.ReadingTime) SourceOption {
	return func(s *Source) {
		s.conv.reading = reading
	}
}

// WithSourceLogger sets the logger used for conversion warnings.
func WithSourceLogger(logger interfaces.Logger) SourceOption {
	return func(s *Source) {
		if logger != nil {
			s.conv.logger = logger
		}
	}
}

// Source implements interfaces.RemotePostSource on top of a Querier.
type Source struct {
	querier Querier
	conv    converter
}

var _ interfaces.RemotePostSource = (*Source)(nil)

// NewSource wraps querier.
func NewSource(querier Querier, opts ...SourceOption) *Source {
	s := &Source{
		querier: querier,
		conv: converter{
			defaults: posts.DefaultFallbacks(),
			reading:  posts.DefaultReadingTime(),
			logger:   logging.NoOp(),
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Source) ListAllPublished(ctx context.Context) ([]*interfaces.Post, error) {
	return s.list(ctx, queryAllPublished, nil)
}

func (s *Source) GetBySlug(ctx context.Context, slug string) (*interfaces.Post, error) {
	var doc *Document
	if err := s.querier.Fetch(ctx, queryBySlug, map[string]any{"slug": slug}, &doc); err != nil {
		return nil, fmt.Errorf("sanity get by slug %q: %w", slug, err)
	}
	if doc == nil {
		return nil, nil
	}
	return s.conv.toPost(*doc), nil
}

func (s *Source) ListByCategory(ctx context.Context, category string) ([]*interfaces.Post, error) {
	return s.list(ctx, queryByCategory, map[string]any{"category": category})
}

func (s *Source) ListByTag(ctx context.Context, tag string) ([]*interfaces.Post, error) {
	return s.list(ctx, queryByTag, map[string]any{"tagName": tag})
}

func (s *Source) ListDistinctCategories(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, queryCategories)
}

func (s *Source) ListDistinctTags(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, queryTags)
}

// ListDocuments returns the raw published documents, used for schema audits.
func (s *Source) ListDocuments(ctx context.Context) ([]Document, error) {
	var docs []Document
	if err := s.querier.Fetch(ctx, queryAllPublished, nil, &docs); err != nil {
		return nil, fmt.Errorf("sanity list documents: %w", err)
	}
	if docs == nil {
		docs = []Document{}
	}
	return docs, nil
}

func (s *Source) list(ctx context.Context, query string, params map[string]any) ([]*interfaces.Post, error) {
	var docs []Document
	if err := s.querier.Fetch(ctx, query, params, &docs); err != nil {
		return nil, fmt.Errorf("sanity list posts: %w", err)
	}
	return s.conv.toPosts(docs), nil
}

func (s *Source) distinct(ctx context.Context, query string) ([]string, error) {
	var values []*string
	if err := s.querier.Fetch(ctx, query, nil, &values); err != nil {
		return nil, fmt.Errorf("sanity distinct values: %w", err)
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, value := range values {
		if value == nil {
			continue
		}
		trimmed := strings.TrimSpace(*value)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	sort.Strings(out)
	return out, nil
}
