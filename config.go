package blog

import "github.com/goliatone/go-blog/internal/runtimeconfig"

var (
	ErrContentDirRequired      = runtimeconfig.ErrContentDirRequired
	ErrContentExtensionInvalid = runtimeconfig.ErrContentExtensionInvalid
	ErrReadingRateInvalid      = runtimeconfig.ErrReadingRateInvalid
	ErrSanityProjectRequired   = runtimeconfig.ErrSanityProjectRequired
	ErrSanityDatasetRequired   = runtimeconfig.ErrSanityDatasetRequired
	ErrSanityAPIVersionInvalid = runtimeconfig.ErrSanityAPIVersionInvalid
	ErrSanityTimeoutInvalid    = runtimeconfig.ErrSanityTimeoutInvalid
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
	ErrGallerySVGRootRequired  = runtimeconfig.ErrGallerySVGRootRequired
	ErrHTTPAddrRequired        = runtimeconfig.ErrHTTPAddrRequired
)

type (
	Config         = runtimeconfig.Config
	ContentConfig  = runtimeconfig.ContentConfig
	ReadingConfig  = runtimeconfig.ReadingConfig
	SanityConfig   = runtimeconfig.SanityConfig
	MarkdownConfig = runtimeconfig.MarkdownConfig
	GalleryConfig  = runtimeconfig.GalleryConfig
	HTTPConfig     = runtimeconfig.HTTPConfig
	LoggingConfig  = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// ApplyEnv overlays environment values onto cfg using lookup.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	return runtimeconfig.ApplyEnv(cfg, lookup)
}
