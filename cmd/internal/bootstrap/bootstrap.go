package bootstrap

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"

	blog "github.com/goliatone/go-blog"
)

// Options captures the flags shared by the blog binaries.
type Options struct {
	EnvFile      string
	ContentDir   string
	ManifestPath string
	SVGRoot      string
	LogProvider  string
	LogLevel     string
	LocalOnly    bool
}

// RegisterFlags binds the shared flags onto fs.
func RegisterFlags(fs *flag.FlagSet) *Options {
	opts := &Options{}
	fs.StringVar(&opts.EnvFile, "env", ".env", "Environment file loaded before reading the environment")
	fs.StringVar(&opts.ContentDir, "content-dir", "", "Directory holding local posts (overrides BLOG_CONTENT_DIR)")
	fs.StringVar(&opts.ManifestPath, "manifest", "", "Gallery manifest path (defaults to the bundled manifest)")
	fs.StringVar(&opts.SVGRoot, "svg-root", "", "Root of the public svg tree")
	fs.StringVar(&opts.LogProvider, "log-provider", "", "Logging provider: console, gologger or none")
	fs.StringVar(&opts.LogLevel, "log-level", "", "Minimum log level")
	fs.BoolVar(&opts.LocalOnly, "local-only", false, "Skip the remote document store")
	return opts
}

// LoadConfig builds the module configuration from defaults, the env file,
// the process environment and finally explicit flags.
func LoadConfig(opts Options) (blog.Config, error) {
	cfg := blog.DefaultConfig()
	if err := loadEnvFile(opts.EnvFile); err != nil {
		return cfg, err
	}
	if err := blog.ApplyEnv(&cfg, os.LookupEnv); err != nil {
		return cfg, fmt.Errorf("apply environment: %w", err)
	}

	if value := strings.TrimSpace(opts.ContentDir); value != "" {
		cfg.Content.Dir = value
	}
	if value := strings.TrimSpace(opts.ManifestPath); value != "" {
		cfg.Gallery.ManifestPath = value
	}
	if value := strings.TrimSpace(opts.SVGRoot); value != "" {
		cfg.Gallery.SVGRoot = value
	}
	if value := strings.TrimSpace(opts.LogProvider); value != "" {
		cfg.Logging.Provider = value
	}
	if value := strings.TrimSpace(opts.LogLevel); value != "" {
		cfg.Logging.Level = value
	}
	if opts.LocalOnly {
		cfg.Sanity.Enabled = false
	}
	return cfg, cfg.Validate()
}

// BuildModule loads the configuration and constructs the blog module.
func BuildModule(opts Options, moduleOpts ...blog.Option) (*blog.Module, error) {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return NewModule(cfg, moduleOpts...)
}

// NewModule constructs the blog module from an already loaded cfg.
func NewModule(cfg blog.Config, moduleOpts ...blog.Option) (*blog.Module, error) {
	module, err := blog.New(cfg, moduleOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise blog module: %w", err)
	}
	return module, nil
}

// WriteJSON encodes value as indented JSON.
func WriteJSON(w io.Writer, value any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(value)
}

func loadEnvFile(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}
