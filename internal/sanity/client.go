package sanity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	urlkit "github.com/goliatone/go-urlkit"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

const (
	DefaultAPIVersion = "v2024-01-01"
	DefaultDataset    = "production"

	routeQuery = "query"
	groupAPI   = "sanity-api"
	groupCDN   = "sanity-apicdn"

	maxErrorBody = 64 << 10
)

// ClientConfig identifies the dataset to query.
type ClientConfig struct {
	ProjectID  string
	Dataset    string
	APIVersion string
	Token      string
	UseCDN     bool
	// APIHost and CDNHost replace https://<project>.api.sanity.io and
	// https://<project>.apicdn.sanity.io respectively.
	APIHost string
	CDNHost string
	// Timeout zero leaves requests bounded only by the caller's context.
	Timeout time.Duration
}

// ClientOption customises a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Its transport is wrapped
// with request logging.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger interfaces.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Client runs GROQ queries against the hosted query API.
type Client struct {
	cfg        ClientConfig
	routes     *urlkit.RouteManager
	httpClient *http.Client
	logger     interfaces.Logger
}

// NewClient validates cfg and prepares the route table for the query endpoint.
func NewClient(cfg ClientConfig, opts ...ClientOption) (*Client, error) {
	cfg.ProjectID = strings.TrimSpace(cfg.ProjectID)
	cfg.Dataset = strings.TrimSpace(cfg.Dataset)
	cfg.APIVersion = strings.TrimSpace(cfg.APIVersion)
	if cfg.ProjectID == "" {
		return nil, ErrProjectIDRequired
	}
	if cfg.Dataset == "" {
		return nil, ErrDatasetRequired
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = DefaultAPIVersion
	}
	if !strings.HasPrefix(cfg.APIVersion, "v") {
		cfg.APIVersion = "v" + cfg.APIVersion
	}

	c := &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	wrapped := *c.httpClient
	wrapped.Transport = newLoggingTransport(c.httpClient.Transport, c.logger)
	c.httpClient = &wrapped

	c.routes = urlkit.NewRouteManager(&urlkit.Config{
		Groups: []urlkit.GroupConfig{
			{
				Name:    groupAPI,
				BaseURL: hostOrDefault(cfg.APIHost, "https://"+cfg.ProjectID+".api.sanity.io"),
				Paths: map[string]string{
					routeQuery: "/:version/data/query/:dataset",
				},
			},
			{
				Name:    groupCDN,
				BaseURL: hostOrDefault(cfg.CDNHost, "https://"+cfg.ProjectID+".apicdn.sanity.io"),
				Paths: map[string]string{
					routeQuery: "/:version/data/query/:dataset",
				},
			},
		},
	})
	return c, nil
}

func hostOrDefault(host, fallback string) string {
	host = strings.TrimRight(strings.TrimSpace(host), "/")
	if host == "" {
		return fallback
	}
	return host
}

// Config returns the effective client configuration.
func (c *Client) Config() ClientConfig {
	return c.cfg
}

// QueryURL builds the endpoint for query with JSON encoded parameters.
func (c *Client) QueryURL(query string, params map[string]any) (string, error) {
	group := groupAPI
	if c.cfg.UseCDN {
		group = groupCDN
	}
	endpoint, err := c.buildEndpoint(group)
	if err != nil {
		return "", err
	}

	values := url.Values{}
	values.Set("query", query)
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		encoded, err := json.Marshal(params[key])
		if err != nil {
			return "", fmt.Errorf("sanity: encode param %s: %w", key, err)
		}
		values.Set("$"+key, string(encoded))
	}
	return endpoint + "?" + values.Encode(), nil
}

func (c *Client) buildEndpoint(groupName string) (endpoint string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("sanity: route group %q unavailable: %v", groupName, rec)
		}
	}()
	group := c.routes.Group(groupName)
	if group == nil {
		return "", fmt.Errorf("sanity: route group %q not found", groupName)
	}
	return group.Builder(routeQuery).
		WithParam("version", c.cfg.APIVersion).
		WithParam("dataset", c.cfg.Dataset).
		Build()
}

type queryResponse struct {
	Result json.RawMessage `json:"result"`
}

type errorResponse struct {
	Error   json.RawMessage `json:"error"`
	Message string          `json:"message"`
}

type errorDetail struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// Fetch runs query and decodes the result member into out.
func (c *Client) Fetch(ctx context.Context, query string, params map[string]any, out any) error {
	endpoint, err := c.QueryURL(query, params)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("sanity: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sanity: query request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeQueryError(resp)
	}

	var payload queryResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return fmt.Errorf("sanity: decode response: %w", err)
	}
	if out == nil {
		return nil
	}
	if len(payload.Result) == 0 {
		payload.Result = json.RawMessage("null")
	}
	if err := json.Unmarshal(payload.Result, out); err != nil {
		return fmt.Errorf("%w: %v", ErrUnexpectedResult, err)
	}
	return nil
}

func decodeQueryError(resp *http.Response) error {
	qerr := &QueryError{StatusCode: resp.StatusCode}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(body) == 0 {
		return qerr
	}

	var payload errorResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		qerr.Description = strings.TrimSpace(string(body))
		return qerr
	}

	var detail errorDetail
	var text string
	switch {
	case len(payload.Error) > 0 && json.Unmarshal(payload.Error, &detail) == nil:
		qerr.Type = detail.Type
		qerr.Description = detail.Description
	case len(payload.Error) > 0 && json.Unmarshal(payload.Error, &text) == nil:
		qerr.Type = text
		qerr.Description = payload.Message
	default:
		qerr.Description = payload.Message
	}
	return qerr
}
