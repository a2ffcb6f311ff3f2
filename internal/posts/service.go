package posts

import (
	"context"
	"errors"
	"io/fs"
	"strings"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Option configures the aggregator.
type Option func(*Service)

// WithLogger overrides the module logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithReadingTime overrides the estimator used to fill empty reading times.
func WithReadingTime(reading ReadingTime) Option {
	return func(s *Service) {
		s.reading = reading
	}
}

// Service merges locally authored posts with posts from the remote document
// store. It never returns errors; failures are logged and degrade the result.
type Service struct {
	local   interfaces.LocalPostSource
	remote  interfaces.RemotePostSource
	logger  interfaces.Logger
	reading ReadingTime
}

var _ interfaces.PostService = (*Service)(nil)

// NewService wires the aggregator. remote may be nil, in which case only
// local posts are served.
func NewService(local interfaces.LocalPostSource, remote interfaces.RemotePostSource, opts ...Option) *Service {
	s := &Service{
		local:   local,
		remote:  remote,
		logger:  logging.NoOp(),
		reading: DefaultReadingTime(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// remoteSnapshot is the outcome of a single remote listing.
type remoteSnapshot struct {
	posts []*interfaces.Post
	err   error
}

// GetAllPosts returns published posts from both sources, local first on slug
// collisions, newest first.
func (s *Service) GetAllPosts(ctx context.Context) []interfaces.PostMetadata {
	return Project(s.collect(ctx), s.reading)
}

// GetPostBySlug resolves a post locally first and falls back to the remote
// store. Unpublished posts are never returned.
func (s *Service) GetPostBySlug(ctx context.Context, slug string) (*interfaces.Post, bool) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, false
	}
	logger := logging.WithPostContext(s.logger.WithContext(ctx), slug, "")

	if s.local != nil {
		post, err := s.local.ParseFile(ctx, s.local.Filename(slug))
		switch {
		case err == nil && post != nil && post.Published:
			return post, true
		case err != nil && !errors.Is(err, fs.ErrNotExist):
			logger.Warn("posts.local.lookup_failed", "error", err)
		}
	}

	if s.remote == nil {
		return nil, false
	}
	post, err := s.remote.GetBySlug(ctx, slug)
	if err != nil {
		logger.Error("posts.remote.lookup_failed", "error", err)
		return nil, false
	}
	if post == nil || !post.Published {
		return nil, false
	}
	return post, true
}

// GetPostsByCategory filters the merged listing by exact category.
func (s *Service) GetPostsByCategory(ctx context.Context, category string) []interfaces.PostMetadata {
	all := s.GetAllPosts(ctx)
	out := make([]interfaces.PostMetadata, 0, len(all))
	for _, post := range all {
		if post.Category == category {
			out = append(out, post)
		}
	}
	return out
}

// GetPostsByTag filters the merged listing by tag membership.
func (s *Service) GetPostsByTag(ctx context.Context, tag string) []interfaces.PostMetadata {
	all := s.GetAllPosts(ctx)
	out := make([]interfaces.PostMetadata, 0, len(all))
	for _, post := range all {
		for _, candidate := range post.Tags {
			if candidate == tag {
				out = append(out, post)
				break
			}
		}
	}
	return out
}

// GetAllCategories returns the distinct categories of the merged listing.
func (s *Service) GetAllCategories(ctx context.Context) []string {
	all := s.GetAllPosts(ctx)
	values := make([]string, 0, len(all))
	for _, post := range all {
		values = append(values, post.Category)
	}
	return distinct(values)
}

// GetAllTags returns the distinct tags of the merged listing.
func (s *Service) GetAllTags(ctx context.Context) []string {
	all := s.GetAllPosts(ctx)
	var values []string
	for _, post := range all {
		values = append(values, post.Tags...)
	}
	return distinct(values)
}

func (s *Service) collect(ctx context.Context) []*interfaces.Post {
	logger := s.logger.WithContext(ctx)

	local, err := s.listLocal(ctx)
	if err != nil {
		logger.Error("posts.local.failed", "error", err)
		local = nil
	}

	snapshot := s.fetchRemote(ctx)
	if snapshot.err != nil {
		logger.Warn("posts.remote.failed", "error", snapshot.err, "local_count", len(local))
		merged := Merge(local)
		SortByDate(merged)
		return merged
	}

	merged := Merge(local, snapshot.posts)
	SortByDate(merged)
	logger.Debug("posts.merged", "local_count", len(local), "remote_count", len(snapshot.posts), "total", len(merged))
	return merged
}

// fetchRemote issues the single remote listing once local files are parsed.
func (s *Service) fetchRemote(ctx context.Context) remoteSnapshot {
	if s.remote == nil {
		return remoteSnapshot{}
	}
	posts, err := s.remote.ListAllPublished(ctx)
	return remoteSnapshot{posts: posts, err: err}
}

func (s *Service) listLocal(ctx context.Context) ([]*interfaces.Post, error) {
	if s.local == nil {
		return nil, nil
	}
	files, err := s.local.ListFiles(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*interfaces.Post, 0, len(files))
	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		post, err := s.local.ParseFile(ctx, name)
		if err != nil {
			return nil, err
		}
		if post != nil && post.Published {
			out = append(out, post)
		}
	}
	return out, nil
}
