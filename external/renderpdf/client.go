package renderpdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/omarvega/rescuehq/internal/platform/logging"
	"github.com/omarvega/rescuehq/internal/usecase"
)

const (
	convertPath      = "/forms/chromium/convert/html"
	maxResponseBytes = 32 << 20
)

var errRendererTransient = crerr.New("pdf renderer transient failure")

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	Timeout    time.Duration
	Logger     *logging.Logger
}

// Client renders HTML documents to PDF through a Gotenberg instance.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *logging.Logger
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
		httpClient.Timeout = 30 * time.Second
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		logger:     logger,
	}
}

func (c *Client) RenderHTML(ctx context.Context, html []byte) ([]byte, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("pdf renderer base url is not configured")
	}
	if len(html) == 0 {
		return nil, fmt.Errorf("html document is required")
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("files", "index.html")
	if err != nil {
		return nil, fmt.Errorf("build multipart form: %w", err)
	}
	if _, err := part.Write(html); err != nil {
		return nil, fmt.Errorf("write html part: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("finalize multipart form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+convertPath, &body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", usecase.ErrDependencyUnavailable,
			fmt.Errorf("%w: send request: %v", errRendererTransient, err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read rendered document: %v", usecase.ErrDependencyUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.WarnContext(ctx, "pdf render failed",
			"status", resp.StatusCode,
			"body", abbreviateBody(raw),
		)
		if isTransientStatus(resp.StatusCode) {
			return nil, fmt.Errorf("%w: renderer status=%d", usecase.ErrDependencyUnavailable, resp.StatusCode)
		}
		return nil, fmt.Errorf("renderer status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
	}

	if len(raw) == 0 {
		return nil, fmt.Errorf("renderer returned an empty document")
	}

	return raw, nil
}

func isTransientStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
