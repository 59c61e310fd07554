package marvel

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/omarvega/rescuehq/internal/platform/logging"
	"github.com/omarvega/rescuehq/internal/platform/resilience"
	"github.com/omarvega/rescuehq/internal/usecase"
)

const (
	defaultBaseURL   = "https://gateway.marvel.com/v1/public"
	defaultPageLimit = 50
	maxResponseBytes = 6 << 20
)

var errMarvelTransient = crerr.New("marvel transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	PublicKey      string
	PrivateKey     string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to the Marvel developer API. Requests are signed with the
// ts/apikey/hash triple the gateway requires.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	publicKey      string
	privateKey     string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
	now            func() time.Time
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		publicKey:      strings.TrimSpace(cfg.PublicKey),
		privateKey:     strings.TrimSpace(cfg.PrivateKey),
		maxRetries:     max(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
		now:            time.Now,
	}
}

func (c *Client) SearchHeroesByNamePrefix(ctx context.Context, prefix string) ([]usecase.ExternalHero, error) {
	if strings.TrimSpace(prefix) == "" {
		return nil, fmt.Errorf("name prefix is required")
	}

	var envelope apiEnvelope[characterResult]
	err := c.doJSON(ctx, "/characters", map[string]string{
		"nameStartsWith": prefix,
		"limit":          strconv.Itoa(defaultPageLimit),
	}, &envelope)
	if err != nil {
		return nil, fmt.Errorf("fetch characters name_starts_with=%s: %w", prefix, err)
	}

	out := make([]usecase.ExternalHero, 0, len(envelope.Data.Results))
	for _, result := range envelope.Data.Results {
		out = append(out, toExternalHero(result))
	}

	return out, nil
}

func (c *Client) FetchHeroByID(ctx context.Context, heroID int64) (usecase.ExternalHero, error) {
	if heroID <= 0 {
		return usecase.ExternalHero{}, fmt.Errorf("hero id must be greater than zero")
	}

	var envelope apiEnvelope[characterResult]
	path := fmt.Sprintf("/characters/%d", heroID)
	if err := c.doJSON(ctx, path, nil, &envelope); err != nil {
		return usecase.ExternalHero{}, fmt.Errorf("fetch character id=%d: %w", heroID, err)
	}
	if len(envelope.Data.Results) == 0 {
		return usecase.ExternalHero{}, fmt.Errorf("character id=%d not found in catalog", heroID)
	}

	return toExternalHero(envelope.Data.Results[0]), nil
}

func (c *Client) FetchHeroStories(ctx context.Context, heroID int64) ([]usecase.ExternalStory, error) {
	if heroID <= 0 {
		return nil, fmt.Errorf("hero id must be greater than zero")
	}

	var envelope apiEnvelope[storyResult]
	path := fmt.Sprintf("/characters/%d/stories", heroID)
	err := c.doJSON(ctx, path, map[string]string{
		"limit": strconv.Itoa(defaultPageLimit),
	}, &envelope)
	if err != nil {
		return nil, fmt.Errorf("fetch character stories id=%d: %w", heroID, err)
	}

	out := make([]usecase.ExternalStory, 0, len(envelope.Data.Results))
	for _, result := range envelope.Data.Results {
		out = append(out, usecase.ExternalStory{
			ExternalID: result.ID,
			Title:      result.Title,
		})
	}

	return out, nil
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "marvel circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: comics catalog is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}

	// The flight key deliberately excludes the auth triple: ts changes on
	// every call and would defeat request coalescing.
	key := path + "?" + values.Encode()

	ts := strconv.FormatInt(c.now().Unix(), 10)
	values.Set("ts", ts)
	values.Set("apikey", c.publicKey)
	values.Set("hash", requestHash(ts, c.privateKey, c.publicKey))

	fullURL := c.baseURL + path + "?" + values.Encode()

	out, err, _ := c.flight.Do(key, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && isMarvelCircuitFailure(reqErr) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		if stderrors.Is(err, errMarvelTransient) {
			return fmt.Errorf("%w: %v", usecase.ErrDependencyUnavailable, sanitizeSensitiveText(err.Error(), c.privateKey))
		}
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode catalog payload: %w", err)
	}

	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %s", errMarvelTransient, sanitizeSensitiveText(err.Error(), c.privateKey))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
			resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errMarvelTransient, readErr)
			} else if resp.StatusCode == http.StatusOK {
				return raw, nil
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: catalog status=%d body=%s", errMarvelTransient, resp.StatusCode, abbreviateBody(raw))
			} else {
				return nil, fmt.Errorf("catalog status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("catalog request failed")
	}
	c.logger.WarnContext(ctx, "marvel request failed", "url", redactCatalogURL(fullURL), "error", lastErr)
	return nil, lastErr
}

// requestHash builds the md5(ts+privateKey+publicKey) signature the Marvel
// gateway validates on every request.
func requestHash(ts, privateKey, publicKey string) string {
	sum := md5.Sum([]byte(ts + privateKey + publicKey))
	return hex.EncodeToString(sum[:])
}

func toExternalHero(result characterResult) usecase.ExternalHero {
	hero := usecase.ExternalHero{
		ExternalID:  result.ID,
		Name:        result.Name,
		Description: result.Description,
	}
	if result.Thumbnail.Path != "" && result.Thumbnail.Extension != "" {
		hero.ThumbnailURL = result.Thumbnail.Path + "." + result.Thumbnail.Extension
	}
	for _, item := range result.Series.Items {
		hero.SeriesNames = append(hero.SeriesNames, item.Name)
	}

	return hero
}

func isMarvelCircuitFailure(err error) bool {
	return err != nil && stderrors.Is(err, errMarvelTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func redactCatalogURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	query := parsed.Query()
	for _, param := range []string{"apikey", "hash"} {
		if query.Has(param) {
			query.Set(param, "REDACTED")
		}
	}
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

func sanitizeSensitiveText(text, secret string) string {
	if secret == "" {
		return text
	}
	return strings.ReplaceAll(text, secret, "REDACTED")
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
