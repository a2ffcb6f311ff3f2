package runtimeconfig

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Environment variables understood by ApplyEnv.
const (
	EnvContentDir       = "BLOG_CONTENT_DIR"
	EnvSanityProjectID  = "SANITY_PROJECT_ID"
	EnvSanityDataset    = "SANITY_DATASET"
	EnvSanityAPIVersion = "SANITY_API_VERSION"
	EnvSanityToken      = "SANITY_API_TOKEN"
	EnvSanityUseCDN     = "SANITY_USE_CDN"
	EnvSanityTimeout    = "SANITY_TIMEOUT"
	EnvGalleryManifest  = "BLOG_GALLERY_MANIFEST"
	EnvGallerySVGRoot   = "BLOG_GALLERY_SVG_ROOT"
	EnvHTTPAddr         = "BLOG_HTTP_ADDR"
	EnvLogProvider      = "BLOG_LOG_PROVIDER"
	EnvLogLevel         = "BLOG_LOG_LEVEL"
	EnvLogFormat        = "BLOG_LOG_FORMAT"
)

// ApplyEnv overlays environment values on cfg. Setting a sanity project id
// enables the remote source.
func ApplyEnv(cfg *Config, lookup LookupFunc) error {
	if cfg == nil || lookup == nil {
		return nil
	}

	str := func(key string, target *string) {
		if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
			*target = strings.TrimSpace(value)
		}
	}

	str(EnvContentDir, &cfg.Content.Dir)
	str(EnvSanityProjectID, &cfg.Sanity.ProjectID)
	str(EnvSanityDataset, &cfg.Sanity.Dataset)
	str(EnvSanityAPIVersion, &cfg.Sanity.APIVersion)
	str(EnvSanityToken, &cfg.Sanity.Token)
	str(EnvGalleryManifest, &cfg.Gallery.ManifestPath)
	str(EnvGallerySVGRoot, &cfg.Gallery.SVGRoot)
	str(EnvHTTPAddr, &cfg.HTTP.Addr)
	str(EnvLogProvider, &cfg.Logging.Provider)
	str(EnvLogLevel, &cfg.Logging.Level)
	str(EnvLogFormat, &cfg.Logging.Format)

	if strings.TrimSpace(cfg.Sanity.ProjectID) != "" {
		cfg.Sanity.Enabled = true
	}

	if value, ok := lookup(EnvSanityUseCDN); ok && strings.TrimSpace(value) != "" {
		useCDN, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("blog config: parse %s: %w", EnvSanityUseCDN, err)
		}
		cfg.Sanity.UseCDN = useCDN
	}
	if value, ok := lookup(EnvSanityTimeout); ok && strings.TrimSpace(value) != "" {
		timeout, err := time.ParseDuration(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("blog config: parse %s: %w", EnvSanityTimeout, err)
		}
		cfg.Sanity.Timeout = timeout
	}
	return nil
}
