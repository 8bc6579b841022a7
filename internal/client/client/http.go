package client

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
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/dmitrijs2005/moviekeeper/internal/client/models"
	"github.com/dmitrijs2005/moviekeeper/internal/logging"
	"github.com/dmitrijs2005/moviekeeper/internal/metrics"
	"golang.org/x/time/rate"
)

// Operation label values.
const (
	OpTopRated = "top_rated"
	OpDetail   = "detail"
	OpSearch   = "search"
)

const (
	retryDelay    = 200 * time.Millisecond
	retryMaxDelay = 2 * time.Second
)

// Options configures an HTTPClient. Zero values fall back to usable defaults.
type Options struct {
	BaseURL  string
	APIKey   string
	Language string

	// RateLimit is requests per second; zero or less disables limiting.
	RateLimit float64
	RateBurst int
	// RetryAttempts counts the first try, so 1 means no retry.
	RetryAttempts uint

	HTTPClient *http.Client
	Metrics    *metrics.Metrics
	Logger     logging.Logger
}

// HTTPClient is the Client over the catalog's REST/JSON API.
type HTTPClient struct {
	baseURL  string
	apiKey   string
	language string
	attempts uint

	http    *http.Client
	limiter *rate.Limiter
	metrics *metrics.Metrics
	log     logging.Logger
}

// NewHTTPClient builds an HTTPClient from opts.
func NewHTTPClient(opts Options) *HTTPClient {
	c := &HTTPClient{
		baseURL:  strings.TrimRight(opts.BaseURL, "/"),
		apiKey:   opts.APIKey,
		language: opts.Language,
		attempts: opts.RetryAttempts,
		http:     opts.HTTPClient,
		metrics:  opts.Metrics,
		log:      opts.Logger,
	}
	if c.attempts == 0 {
		c.attempts = 1
	}
	if c.http == nil {
		c.http = http.DefaultClient
	}
	if c.metrics == nil {
		c.metrics = metrics.New(nil)
	}
	if c.log == nil {
		c.log = logging.NewNop()
	}

	limit := rate.Inf
	if opts.RateLimit > 0 {
		limit = rate.Limit(opts.RateLimit)
	}
	burst := opts.RateBurst
	if burst <= 0 {
		burst = 1
	}
	c.limiter = rate.NewLimiter(limit, burst)

	return c
}

func (c *HTTPClient) FetchTopRated(ctx context.Context, page int) (*models.MoviePage, error) {
	if page < 1 {
		return nil, c.reject(OpTopRated, fmt.Errorf("page must be positive, got %d", page))
	}

	var res models.MoviePage
	q := url.Values{"page": {strconv.Itoa(page)}}
	if err := c.get(ctx, OpTopRated, "/movie/top_rated", q, &res, res.Validate); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) FetchDetail(ctx context.Context, id int64) (*models.Movie, error) {
	if id < 1 {
		return nil, c.reject(OpDetail, fmt.Errorf("movie id must be positive, got %d", id))
	}

	var res models.Movie
	check := func() error {
		if res.ID != id {
			return fmt.Errorf("detail for movie %d carries id %d", id, res.ID)
		}
		return nil
	}
	if err := c.get(ctx, OpDetail, "/movie/"+strconv.FormatInt(id, 10), nil, &res, check); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) Search(ctx context.Context, query string, page int) (*models.MoviePage, error) {
	if strings.TrimSpace(query) == "" {
		return nil, c.reject(OpSearch, errors.New("empty search query"))
	}
	if page < 1 {
		return nil, c.reject(OpSearch, fmt.Errorf("page must be positive, got %d", page))
	}

	var res models.MoviePage
	q := url.Values{"query": {query}, "page": {strconv.Itoa(page)}}
	if err := c.get(ctx, OpSearch, "/search/movie", q, &res, res.Validate); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) reject(op string, err error) error {
	e := newError(KindInvalidRequest, err)
	c.observe(op, e)
	return e
}

// endpoint joins the base URL, path and query, adding the api_key and
// language parameters every catalog call carries.
func (c *HTTPClient) endpoint(path string, q url.Values) (string, error) {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("base url %q is not absolute", c.baseURL)
	}

	params := url.Values{}
	for k, v := range q {
		params[k] = v
	}
	params.Set("api_key", c.apiKey)
	if c.language != "" {
		params.Set("language", c.language)
	}
	u.RawQuery = params.Encode()

	return u.String(), nil
}

// get runs one catalog call. check runs after out is decoded and rejects
// payloads that parsed but lack the fields the caller relies on.
func (c *HTTPClient) get(ctx context.Context, op, path string, q url.Values, out any, check func() error) error {
	endpoint, err := c.endpoint(path, q)
	if err != nil {
		return c.reject(op, err)
	}

	err = retry.Do(
		func() error { return c.exchange(ctx, endpoint, out, check) },
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(retryDelay),
		retry.MaxDelay(retryMaxDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool { return errors.Is(err, ErrTransport) }),
		retry.OnRetry(func(n uint, err error) {
			c.log.Debug(ctx, "retrying catalog request", "operation", op, "attempt", n+1, "err", err)
		}),
	)

	// A cancelled context can surface from retry itself, unclassified.
	var ce *Error
	if err != nil && !errors.As(err, &ce) {
		err = newError(KindTransport, err)
	}

	c.observe(op, err)
	return err
}

// exchange performs a single round trip and classifies its outcome.
func (c *HTTPClient) exchange(ctx context.Context, endpoint string, out any, check func() error) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return newError(KindTransport, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return newError(KindInvalidRequest, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return newError(KindTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &Error{Kind: KindServer, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return newError(KindTransport, err)
	}
	if len(body) == 0 {
		return newError(KindNoData, nil)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return newError(KindDecoding, err)
	}
	if err := check(); err != nil {
		return newError(KindDecoding, err)
	}
	return nil
}

func (c *HTTPClient) observe(op string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = KindOf(err).String()
	}
	c.metrics.CatalogRequests.WithLabelValues(op, outcome).Inc()
}
