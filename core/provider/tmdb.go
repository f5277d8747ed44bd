package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"catalog-export/core/cache"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

const maxResponseBytes = 4 << 20

// TMDb is a Provider backed by the TMDb v3 REST API.
type TMDb struct {
	cfg     Config
	client  *http.Client
	limiter *rate.Limiter
	cache   cache.Cache
	ttl     time.Duration
	group   singleflight.Group

	imageBase atomic.Value
	ready     atomic.Bool
}

// Option customises a TMDb client.
type Option func(*TMDb)

// WithCache stores successful responses in c for ttl.
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(t *TMDb) {
		if c != nil {
			t.cache = c
			t.ttl = ttl
		}
	}
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(t *TMDb) {
		if client != nil {
			t.client = client
		}
	}
}

// NewTMDb creates a client. It performs no network call; Init must succeed before
// the client reports itself available.
func NewTMDb(cfg Config, opts ...Option) *TMDb {
	rps := cfg.RequestsPerSecond
	limit := rate.Inf
	burst := 1
	if rps > 0 {
		limit = rate.Limit(rps)
		burst = max(1, int(rps))
	}

	t := &TMDb{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.timeout()},
		limiter: rate.NewLimiter(limit, burst),
		cache:   cache.Noop{},
	}
	for _, opt := range opts {
		opt(t)
	}
	t.imageBase.Store(strings.TrimRight(cfg.ImageBaseURL, "/") + "/")
	return t
}

// Init fetches the provider configuration once.
func (t *TMDb) Init(ctx context.Context) error {
	if t.cfg.APIKey == "" {
		return fmt.Errorf("%w: no api key configured", ErrUnavailable)
	}

	var conf struct {
		Images struct {
			BaseURL       string `json:"base_url"`
			SecureBaseURL string `json:"secure_base_url"`
		} `json:"images"`
	}
	if err := t.get(ctx, "/configuration", nil, &conf); err != nil {
		return fmt.Errorf("failed to fetch provider configuration: %w", err)
	}

	base := conf.Images.SecureBaseURL
	if base == "" {
		base = conf.Images.BaseURL
	}
	if base != "" {
		t.imageBase.Store(strings.TrimRight(base, "/") + "/")
	}

	t.ready.Store(true)
	return nil
}

func (t *TMDb) Available() bool {
	return t.ready.Load()
}

func (t *TMDb) SearchByTitle(ctx context.Context, kind Kind, title string) ([]SearchResult, error) {
	if strings.TrimSpace(title) == "" {
		return nil, nil
	}

	var res struct {
		Results []SearchResult `json:"results"`
	}
	q := url.Values{"query": {title}}
	if err := t.get(ctx, "/search/"+string(kind), q, &res); err != nil {
		return nil, fmt.Errorf("failed to search %s %q: %w", kind, title, err)
	}
	return res.Results, nil
}

func (t *TMDb) FetchDetails(ctx context.Context, kind Kind, id string, withImages, withSimilar bool) (*Details, error) {
	var appended []string
	if withImages {
		appended = append(appended, "images")
	}
	if withSimilar {
		appended = append(appended, "similar")
	}

	q := url.Values{}
	if len(appended) > 0 {
		q.Set("append_to_response", strings.Join(appended, ","))
	}
	if withImages {
		// Without this the images endpoint only returns the request language.
		q.Set("include_image_language", "en,null")
	}

	var d Details
	if err := t.get(ctx, "/"+string(kind)+"/"+url.PathEscape(id), q, &d); err != nil {
		return nil, fmt.Errorf("failed to fetch %s %s: %w", kind, id, err)
	}
	return &d, nil
}

func (t *TMDb) ResolveImageURL(size, path string) string {
	if path == "" {
		return ""
	}
	if size == "" {
		size = SizeOriginal
	}
	return t.imageBase.Load().(string) + size + "/" + strings.TrimLeft(path, "/")
}

func (t *TMDb) ExternalIDs(ctx context.Context, kind Kind, id int) (*ExternalIDs, error) {
	var ids ExternalIDs
	if err := t.get(ctx, "/"+string(kind)+"/"+strconv.Itoa(id)+"/external_ids", nil, &ids); err != nil {
		return nil, fmt.Errorf("failed to fetch external ids of %s %d: %w", kind, id, err)
	}
	return &ids, nil
}

// get performs a cached, rate limited GET and decodes the JSON body into out.
// Concurrent identical requests share one round trip.
func (t *TMDb) get(ctx context.Context, path string, query url.Values, out any) error {
	if query == nil {
		query = url.Values{}
	}
	if t.cfg.Language != "" {
		query.Set("language", t.cfg.Language)
	}
	key := "tmdb:" + path + "?" + query.Encode()

	body, err, _ := t.group.Do(key, func() (any, error) {
		if cached, ok, err := t.cache.Get(ctx, key); err == nil && ok {
			return cached, nil
		}

		data, err := t.fetch(ctx, path, query)
		if err != nil {
			return nil, err
		}

		if path != "/configuration" {
			// Cache failures only cost a later round trip.
			_ = t.cache.Set(ctx, key, data, t.ttl)
		}
		return data, nil
	})
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body.([]byte), out); err != nil {
		return fmt.Errorf("failed to decode provider response: %w", err)
	}
	return nil
}

func (t *TMDb) fetch(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	q := url.Values{}
	for k, v := range query {
		q[k] = v
	}
	q.Set("api_key", t.cfg.APIKey)

	reqURL := strings.TrimRight(t.cfg.BaseURL, "/") + path + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, path)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read provider response: %w", err)
	}
	return data, nil
}

// New builds the TMDb provider and initialises it. Any failure degrades to a
// Disabled provider, logged as a warning, so exports proceed without enrichment.
func New(ctx context.Context, cfg Config, log *zap.Logger, opts ...Option) Provider {
	if log == nil {
		log = zap.NewNop()
	}

	t := NewTMDb(cfg, opts...)
	if err := t.Init(ctx); err != nil {
		reason := err.Error()
		if errors.Is(err, ErrUnavailable) {
			log.Warn("Metadata provider disabled, records keep source media", zap.String("reason", reason))
		} else {
			log.Warn("Metadata provider initialisation failed, records keep source media", zap.Error(err))
		}
		return Disabled{Reason: reason}
	}

	log.Info("Metadata provider ready", zap.String("image_base", t.imageBase.Load().(string)))
	return t
}

// Factory builds the provider of one content-type run.
type Factory func(ctx context.Context) Provider

// NewFactory returns a Factory calling New on every run, so the configuration is
// fetched once per run and a provider degraded by a failed fetch recovers on the
// next one.
func NewFactory(cfg Config, log *zap.Logger, opts ...Option) Factory {
	return func(ctx context.Context) Provider {
		return New(ctx, cfg, log, opts...)
	}
}
