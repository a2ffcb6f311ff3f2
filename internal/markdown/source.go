package markdown

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/goliatone/go-blog/internal/identity"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/posts"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// DefaultExtension is the file suffix of locally authored posts.
const DefaultExtension = ".mdx"

var ErrInvalidFilename = errors.New("markdown source: invalid filename")

// SourceConfig controls discovery and the defaults applied to parsed posts.
type SourceConfig struct {
	Extension string
	Defaults  posts.Defaults
	Reading   posts.ReadingTime
}

// Source implements interfaces.LocalPostSource over a flat directory.
type Source struct {
	fs        fs.FS
	extension string
	defaults  posts.Defaults
	reading   posts.ReadingTime
	logger    interfaces.Logger
}

var _ interfaces.LocalPostSource = (*Source)(nil)

// SourceOption customises a Source.
type SourceOption func(*Source)

// WithSourceLogger sets the logger used for discovery diagnostics.
func WithSourceLogger(logger interfaces.Logger) SourceOption {
	return func(s *Source) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSource reads posts from filesystem, which must be rooted at the content
// directory.
func NewSource(filesystem fs.FS, cfg SourceConfig, opts ...SourceOption) *Source {
	ext := strings.TrimSpace(cfg.Extension)
	if ext == "" {
		ext = DefaultExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	defaults := cfg.Defaults
	if defaults == (posts.Defaults{}) {
		defaults = posts.DefaultFallbacks()
	}
	reading := cfg.Reading
	if reading == (posts.ReadingTime{}) {
		reading = posts.DefaultReadingTime()
	}

	s := &Source{
		fs:        filesystem,
		extension: ext,
		defaults:  defaults,
		reading:   reading,
		logger:    logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// NewDirSource reads posts from a directory on disk. The directory does not
// need to exist; a missing directory lists as empty.
func NewDirSource(dir string, cfg SourceConfig, opts ...SourceOption) *Source {
	return NewSource(os.DirFS(dir), cfg, opts...)
}

// ListFiles returns the post files in the content directory sorted by name.
func (s *Source) ListFiles(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.fs == nil {
		return []string{}, nil
	}

	entries, err := fs.ReadDir(s.fs, ".")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug("markdown.content_dir.missing")
			return []string{}, nil
		}
		return nil, fmt.Errorf("markdown source list: %w", err)
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), s.extension) {
			continue
		}
		files = append(files, entry.Name())
	}
	return files, nil
}

// ParseFile reads filename and converts it into a post. The slug is the file
// name without its extension.
func (s *Source) ParseFile(ctx context.Context, filename string) (*interfaces.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if filename == "" || strings.Contains(filename, "/") || !fs.ValidPath(filename) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFilename, filename)
	}
	if s.fs == nil {
		return nil, fmt.Errorf("markdown source read %s: %w", filename, fs.ErrNotExist)
	}

	data, err := fs.ReadFile(s.fs, filename)
	if err != nil {
		return nil, fmt.Errorf("markdown source read %s: %w", filename, err)
	}

	meta, body, err := ParseFrontMatter(data)
	if err != nil {
		return nil, fmt.Errorf("markdown source %s: %w", filename, err)
	}

	slug := strings.TrimSuffix(path.Base(filename), s.extension)
	return s.buildPost(slug, meta, string(body)), nil
}

// Filename maps a slug to its file name.
func (s *Source) Filename(slug string) string {
	return slug + s.extension
}

func (s *Source) buildPost(slug string, meta FrontMatter, body string) *interfaces.Post {
	author, category, tags := s.defaults.Apply(meta.Author, meta.Category, meta.Tags)
	return &interfaces.Post{
		ID:          identity.PostUUID(slug),
		Slug:        slug,
		Title:       meta.Title,
		Description: meta.Description,
		Date:        meta.Date,
		Author:      author,
		Category:    category,
		Tags:        tags,
		Image:       meta.Image,
		VideoURL:    meta.VideoURL,
		Published:   meta.Published,
		Content:     body,
		ReadingTime: s.reading.Estimate(body),
		Source:      interfaces.SourceLocal,
	}
}

// FrontMatterOf returns the raw frontmatter of filename for auditing.
func (s *Source) FrontMatterOf(ctx context.Context, filename string) (FrontMatter, error) {
	if err := ctx.Err(); err != nil {
		return FrontMatter{}, err
	}
	if !fs.ValidPath(filename) || s.fs == nil {
		return FrontMatter{}, fmt.Errorf("%w: %q", ErrInvalidFilename, filename)
	}
	data, err := fs.ReadFile(s.fs, filename)
	if err != nil {
		return FrontMatter{}, fmt.Errorf("markdown source read %s: %w", filename, err)
	}
	meta, _, err := ParseFrontMatter(data)
	if err != nil {
		return FrontMatter{}, fmt.Errorf("markdown source %s: %w", filename, err)
	}
	return meta, nil
}
