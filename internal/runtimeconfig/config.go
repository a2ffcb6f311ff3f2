package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrContentDirRequired      = errors.New("blog config: content directory is required")
	ErrContentExtensionInvalid = errors.New("blog config: content extension must start with a dot")
	ErrReadingRateInvalid      = errors.New("blog config: words per minute must be positive")
	ErrSanityProjectRequired   = errors.New("blog config: sanity project id is required when sanity is enabled")
	ErrSanityDatasetRequired   = errors.New("blog config: sanity dataset is required when sanity is enabled")
	ErrSanityAPIVersionInvalid = errors.New("blog config: sanity api version must look like v2021-10-21 or v1")
	ErrSanityTimeoutInvalid    = errors.New("blog config: sanity timeout must be zero or positive")
	ErrLoggingProviderUnknown  = errors.New("blog config: logging provider is invalid")
	ErrLoggingLevelInvalid     = errors.New("blog config: logging level is invalid")
	ErrLoggingFormatInvalid    = errors.New("blog config: logging format is invalid")
	ErrGallerySVGRootRequired  = errors.New("blog config: gallery svg root is required")
	ErrHTTPAddrRequired        = errors.New("blog config: http address is required")
)

// Config aggregates runtime options for the content layer.
type Config struct {
	Content  ContentConfig
	Reading  ReadingConfig
	Sanity   SanityConfig
	Markdown MarkdownConfig
	Gallery  GalleryConfig
	HTTP     HTTPConfig
	Logging  LoggingConfig
}

// ContentConfig locates locally authored posts and the defaults applied to
// their frontmatter.
type ContentConfig struct {
	Dir             string
	Extension       string
	DefaultAuthor   string
	DefaultCategory string
}

// ReadingConfig controls the reading time estimate.
type ReadingConfig struct {
	WordsPerMinute int
	Label          string
}

// SanityConfig points the remote source at a hosted dataset. Timeout zero
// leaves requests unbounded.
type SanityConfig struct {
	Enabled    bool
	ProjectID  string
	Dataset    string
	APIVersion string
	Token      string
	UseCDN     bool
	// APIHost and CDNHost override the default *.sanity.io hosts, mostly for tests.
	APIHost string
	CDNHost string
	Timeout time.Duration
}

// MarkdownConfig mirrors interfaces.ParseOptions for post rendering.
type MarkdownConfig struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
}

// GalleryConfig locates the badge manifest and the public svg directory.
type GalleryConfig struct {
	ManifestPath string
	SVGRoot      string
}

// HTTPConfig configures the read-only API server.
type HTTPConfig struct {
	Addr     string
	BasePath string
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns the defaults used by the site.
func DefaultConfig() Config {
	return Config{
		Content: ContentConfig{
			Dir:             "content/posts",
			Extension:       ".mdx",
			DefaultAuthor:   "I.C.L",
			DefaultCategory: "Geral",
		},
		Reading: ReadingConfig{
			WordsPerMinute: 200,
			Label:          "min de leitura",
		},
		Sanity: SanityConfig{
			Dataset:    "production",
			APIVersion: "v2024-01-01",
			UseCDN:     true,
		},
		Gallery: GalleryConfig{
			SVGRoot: "public/svg",
		},
		HTTP: HTTPConfig{
			Addr: ":8080",
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Content.Dir) == "" {
		return ErrContentDirRequired
	}
	if ext := strings.TrimSpace(cfg.Content.Extension); ext == "" || !strings.HasPrefix(ext, ".") {
		return fmt.Errorf("%w: %q", ErrContentExtensionInvalid, cfg.Content.Extension)
	}
	if cfg.Reading.WordsPerMinute <= 0 {
		return ErrReadingRateInvalid
	}
	if cfg.Sanity.Enabled {
		if strings.TrimSpace(cfg.Sanity.ProjectID) == "" {
			return ErrSanityProjectRequired
		}
		if strings.TrimSpace(cfg.Sanity.Dataset) == "" {
			return ErrSanityDatasetRequired
		}
		if !isAPIVersion(cfg.Sanity.APIVersion) {
			return fmt.Errorf("%w: %q", ErrSanityAPIVersionInvalid, cfg.Sanity.APIVersion)
		}
		if cfg.Sanity.Timeout < 0 {
			return ErrSanityTimeoutInvalid
		}
	}
	if strings.TrimSpace(cfg.Gallery.SVGRoot) == "" {
		return ErrGallerySVGRootRequired
	}
	if strings.TrimSpace(cfg.HTTP.Addr) == "" {
		return ErrHTTPAddrRequired
	}

	provider := normalizeProvider(cfg.Logging.Provider)
	if !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

// isAPIVersion accepts "v1", "vX" and dated versions such as "v2021-10-21".
func isAPIVersion(version string) bool {
	version = strings.TrimSpace(version)
	if len(version) < 2 || version[0] != 'v' {
		return false
	}
	rest := version[1:]
	if rest == "1" || rest == "X" {
		return true
	}
	_, err := time.Parse("2006-01-02", rest)
	return err == nil
}

func normalizeProvider(provider string) string {
	provider = strings.ToLower(strings.TrimSpace(provider))
	if provider == "" {
		return "console"
	}
	return provider
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger", "none":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
