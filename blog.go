package blog

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-blog/internal/gallery"
	bloghttp "github.com/goliatone/go-blog/internal/http"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/internal/posts"
	"github.com/goliatone/go-blog/internal/sanity"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// PostService exports the unified post catalog contract.
type PostService = interfaces.PostService

// GalleryService exports the badge catalog contract.
type GalleryService = interfaces.GalleryService

// Post exports the normalized post shape.
type Post = interfaces.Post

// PostMetadata exports the listing projection of Post.
type PostMetadata = interfaces.PostMetadata

// Option customises module wiring.
type Option func(*moduleOptions)

type moduleOptions struct {
	provider interfaces.LoggerProvider
	local    interfaces.LocalPostSource
	remote   interfaces.RemotePostSource
	images   interfaces.ImageURLResolver
	querier  sanity.Querier
	catalog  interfaces.GalleryService
	parser   interfaces.MarkdownParser
	noRemote bool
}

// WithLoggerProvider replaces the provider built from Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(o *moduleOptions) {
		o.provider = provider
	}
}

// WithLocalSource replaces the directory-backed local source.
func WithLocalSource(source interfaces.LocalPostSource) Option {
	return func(o *moduleOptions) {
		o.local = source
	}
}

// WithRemoteSource replaces the store-backed remote source.
func WithRemoteSource(source interfaces.RemotePostSource) Option {
	return func(o *moduleOptions) {
		o.remote = source
	}
}

// WithoutRemoteSource serves local posts only, regardless of Config.Sanity.
func WithoutRemoteSource() Option {
	return func(o *moduleOptions) {
		o.noRemote = true
	}
}

// WithQuerier runs remote queries through querier instead of an HTTP client.
func WithQuerier(querier sanity.Querier) Option {
	return func(o *moduleOptions) {
		o.querier = querier
	}
}

// WithImageResolver replaces the CDN image URL builder.
func WithImageResolver(resolver interfaces.ImageURLResolver) Option {
	return func(o *moduleOptions) {
		o.images = resolver
	}
}

// WithGallery replaces the manifest-backed badge catalog.
func WithGallery(catalog interfaces.GalleryService) Option {
	return func(o *moduleOptions) {
		o.catalog = catalog
	}
}

// WithMarkdownParser replaces the goldmark parser used for rendering.
func WithMarkdownParser(parser interfaces.MarkdownParser) Option {
	return func(o *moduleOptions) {
		o.parser = parser
	}
}

// Module represents the top level blog runtime façade.
type Module struct {
	cfg          Config
	provider     interfaces.LoggerProvider
	local        interfaces.LocalPostSource
	markdown     *markdown.Source
	remote       interfaces.RemotePostSource
	remoteSanity *sanity.Source
	posts        *posts.Service
	gallery      interfaces.GalleryService
	renderer     *markdown.Renderer
}

// New validates cfg and wires the post sources, the aggregator, the
// renderer and the badge catalog.
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	options := moduleOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}

	provider := options.provider
	if provider == nil {
		built, err := NewLoggerProvider(cfg.Logging)
		if err != nil {
			return nil, fmt.Errorf("blog: logger provider: %w", err)
		}
		provider = built
	}

	reading := posts.ReadingTime{WordsPerMinute: cfg.Reading.WordsPerMinute, Label: cfg.Reading.Label}
	defaults := posts.Defaults{Author: cfg.Content.DefaultAuthor, Category: cfg.Content.DefaultCategory}

	m := &Module{
		cfg:      cfg,
		provider: provider,
		local:    options.local,
		remote:   options.remote,
	}

	if m.local == nil {
		m.markdown = markdown.NewDirSource(cfg.Content.Dir, markdown.SourceConfig{
			Extension: cfg.Content.Extension,
			Defaults:  defaults,
			Reading:   reading,
		}, markdown.WithSourceLogger(logging.MarkdownLogger(provider)))
		m.local = m.markdown
	} else if source, ok := m.local.(*markdown.Source); ok {
		m.markdown = source
	}

	if options.noRemote {
		m.remote = nil
	} else if m.remote == nil {
		source, err := buildRemote(cfg, options, provider, defaults, reading)
		if err != nil {
			return nil, err
		}
		if source != nil {
			m.remoteSanity = source
			m.remote = source
		}
	} else if source, ok := m.remote.(*sanity.Source); ok {
		m.remoteSanity = source
	}

	m.posts = posts.NewService(m.local, m.remote,
		posts.WithLogger(logging.PostsLogger(provider)),
		posts.WithReadingTime(reading),
	)

	m.renderer = markdown.NewRenderer(options.parser, interfaces.ParseOptions{
		Extensions: cfg.Markdown.Extensions,
		Sanitize:   cfg.Markdown.Sanitize,
		HardWraps:  cfg.Markdown.HardWraps,
		SafeMode:   cfg.Markdown.SafeMode,
	})

	m.gallery = options.catalog
	if m.gallery == nil {
		catalog, err := gallery.LoadCatalog(cfg.Gallery.ManifestPath, gallery.WithLogger(logging.GalleryLogger(provider)))
		if err != nil {
			return nil, fmt.Errorf("blog: gallery: %w", err)
		}
		m.gallery = catalog
	}
	return m, nil
}

func buildRemote(cfg Config, options moduleOptions, provider interfaces.LoggerProvider, defaults posts.Defaults, reading posts.ReadingTime) (*sanity.Source, error) {
	querier := options.querier
	if querier == nil {
		if !cfg.Sanity.Enabled {
			return nil, nil
		}
		client, err := sanity.NewClient(sanity.ClientConfig{
			ProjectID:  cfg.Sanity.ProjectID,
			Dataset:    cfg.Sanity.Dataset,
			APIVersion: cfg.Sanity.APIVersion,
			Token:      cfg.Sanity.Token,
			UseCDN:     cfg.Sanity.UseCDN,
			APIHost:    cfg.Sanity.APIHost,
			CDNHost:    cfg.Sanity.CDNHost,
			Timeout:    cfg.Sanity.Timeout,
		}, sanity.WithLogger(logging.SanityLogger(provider)))
		if err != nil {
			return nil, fmt.Errorf("blog: sanity client: %w", err)
		}
		querier = client
	}

	images := options.images
	if images == nil && strings.TrimSpace(cfg.Sanity.ProjectID) != "" {
		images = sanity.NewImageResolver(cfg.Sanity.ProjectID, cfg.Sanity.Dataset, "")
	}
	return sanity.NewSource(querier,
		sanity.WithImageResolver(images),
		sanity.WithDefaults(defaults),
		sanity.WithReadingTime(reading),
		sanity.WithSourceLogger(logging.SanityLogger(provider)),
	), nil
}

// Config returns the configuration the module was built with.
func (m *Module) Config() Config {
	return m.cfg
}

// Posts returns the unified post catalog.
func (m *Module) Posts() PostService {
	return m.posts
}

// Gallery returns the badge catalog.
func (m *Module) Gallery() GalleryService {
	return m.gallery
}

// Renderer returns the markdown renderer applied to post bodies.
func (m *Module) Renderer() *markdown.Renderer {
	return m.renderer
}

// LoggerProvider returns the provider shared by every component.
func (m *Module) LoggerProvider() interfaces.LoggerProvider {
	return m.provider
}

// RemoteEnabled reports whether a remote source is wired.
func (m *Module) RemoteEnabled() bool {
	return m.remote != nil
}

// HTTPHandler builds the read API mounted under Config.HTTP.BasePath.
func (m *Module) HTTPHandler() (http.Handler, error) {
	api := bloghttp.NewReadAPI(
		bloghttp.WithBasePath(m.cfg.HTTP.BasePath),
		bloghttp.WithPostService(m.posts),
		bloghttp.WithGalleryService(m.gallery),
		bloghttp.WithRenderer(m.renderer),
		bloghttp.WithLogger(logging.HTTPLogger(m.provider)),
	)
	return api.Handler()
}
