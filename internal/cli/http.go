package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	jsoniter "github.com/json-iterator/go"

	"github.com/okian/dss/internal/domain/types"
	"github.com/okian/dss/pkg/logger"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // shared codec

// APIError is a non-2xx response from the server.
type APIError struct {
	Status int
	Code   string `json:"code"`
	Msg    string `json:"error"`
	Detail string `json:"detail"`
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("HTTP %d %s: %s", e.Status, e.Code, e.Msg)
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

// HTTPClient talks to a running comparison server.
type HTTPClient struct {
	client  *http.Client
	baseURL string
}

// NewHTTPClient creates a client for the server at baseURL.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Health probes /api/health, retrying transport failures.
func (c *HTTPClient) Health(ctx context.Context, retries int) error {
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/health", nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := c.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		_, _ = io.Copy(io.Discard, resp.Body)
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("health check returned HTTP %d", resp.StatusCode)
		}
		return nil
	}

	var b backoff.BackOff = backoff.NewConstantBackOff(healthRetryInterval)
	if retries >= 0 {
		b = backoff.WithMaxRetries(b, uint64(retries))
	}
	return backoff.RetryNotify(op, backoff.WithContext(b, ctx), func(err error, wait time.Duration) {
		logger.Get().Debug(ctx, "server not healthy yet", logger.Error(err), logger.Duration("retryIn", wait))
	})
}

// Indicators calls GET /api/indicators.
func (c *HTTPClient) Indicators(ctx context.Context, countries []string, year string) (*types.Payload, error) {
	q := url.Values{}
	q.Set("countries", strings.Join(countries, ","))
	if year != "" {
		q.Set("year", year)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/indicators?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.payload(req)
}

// Upload posts the file at path to /api/upload.
func (c *HTTPClient) Upload(ctx context.Context, path, year string) (*types.Payload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("failed to build form: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("failed to build form: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to build form: %w", err)
	}

	target := c.baseURL + "/api/upload"
	if year != "" {
		target += "?" + url.Values{"year": {year}}.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.payload(req)
}

func (c *HTTPClient) payload(req *http.Request) (*types.Payload, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{Status: resp.StatusCode}
		if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Msg == "" {
			apiErr.Msg = strings.TrimSpace(string(body))
		}
		return nil, apiErr
	}

	var payload types.Payload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &payload, nil
}
