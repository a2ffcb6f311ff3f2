package sanity

import (
	"net/http"
	"time"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// loggingRoundTripper emits one debug entry per outbound query.
type loggingRoundTripper struct {
	inner  http.RoundTripper
	logger interfaces.Logger
}

func newLoggingTransport(inner http.RoundTripper, logger interfaces.Logger) http.RoundTripper {
	if inner == nil {
		inner = http.DefaultTransport
	}
	return &loggingRoundTripper{inner: inner, logger: logger}
}

func (l *loggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := l.inner.RoundTrip(req)
	duration := time.Since(start)

	logger := l.logger.WithContext(req.Context())
	if err != nil {
		logger.Debug("sanity.request.failed",
			"method", req.Method,
			"host", req.URL.Host,
			"path", req.URL.Path,
			"duration", duration.String(),
			"error", err,
		)
		return nil, err
	}
	logger.Debug("sanity.request.completed",
		"method", req.Method,
		"host", req.URL.Host,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"duration", duration.String(),
	)
	return resp, nil
}
