package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

const defaultBasePath = "/api"

// PostRenderer converts a post body into HTML.
type PostRenderer interface {
	RenderPost(ctx context.Context, post *interfaces.Post) ([]byte, error)
}

// ReadAPI registers the public read endpoints.
type ReadAPI struct {
	basePath string
	posts    interfaces.PostService
	gallery  interfaces.GalleryService
	renderer PostRenderer
	logger   interfaces.Logger
}

// Option mutates the ReadAPI configuration.
type Option func(*ReadAPI)

// NewReadAPI constructs a ReadAPI instance.
func NewReadAPI(opts ...Option) *ReadAPI {
	api := &ReadAPI{
		basePath: defaultBasePath,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// WithBasePath overrides the base API path (defaults to "/api").
func WithBasePath(path string) Option {
	return func(api *ReadAPI) {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.basePath = trimmed
		}
	}
}

// WithPostService wires the post catalog.
func WithPostService(service interfaces.PostService) Option {
	return func(api *ReadAPI) {
		api.posts = service
	}
}

// WithGalleryService wires the badge catalog.
func WithGalleryService(service interfaces.GalleryService) Option {
	return func(api *ReadAPI) {
		api.gallery = service
	}
}

// WithRenderer wires the HTML renderer used by /posts/{slug}/html.
func WithRenderer(renderer PostRenderer) Option {
	return func(api *ReadAPI) {
		api.renderer = renderer
	}
}

// WithLogger sets the request logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(api *ReadAPI) {
		api.logger = logging.OrNoOp(logger)
	}
}

// Register attaches the read endpoints to the provided mux.
func (api *ReadAPI) Register(mux *http.ServeMux) error {
	if mux == nil {
		return fmt.Errorf("http: mux is required")
	}
	if api == nil {
		return fmt.Errorf("http: read api is nil")
	}

	base := joinPath(api.basePath, "")
	api.registerPostRoutes(mux, base)
	api.registerGalleryRoutes(mux, base)
	return nil
}

// Handler returns a mux serving the read endpoints wrapped with request
// logging.
func (api *ReadAPI) Handler() (http.Handler, error) {
	mux := http.NewServeMux()
	if err := api.Register(mux); err != nil {
		return nil, err
	}
	return api.logRequests(mux), nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (api *ReadAPI) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		ctx := logging.ContextWithFields(r.Context(), map[string]any{
			"method": r.Method,
			"path":   r.URL.Path,
		})
		r = r.WithContext(ctx)
		next.ServeHTTP(rec, r)
		logging.WithFields(api.logger.WithContext(ctx), map[string]any{
			"status": rec.status,
		}).Debug("http.request.completed", "duration_ms", time.Since(started).Milliseconds())
	})
}
