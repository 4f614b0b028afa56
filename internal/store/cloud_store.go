package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rogersnm/focus/internal/model"
	"golang.org/x/time/rate"
)

// CloudStore implements Gateway against a hosted task API.
type CloudStore struct {
	apiURL  string
	apiKey  string
	client  *http.Client
	limiter *rate.Limiter
	log     *slog.Logger
}

// compile-time check
var _ Gateway = (*CloudStore)(nil)

type CloudOption func(*CloudStore)

// WithRateLimit caps field writes at perSecond requests. Zero disables it.
func WithRateLimit(perSecond float64) CloudOption {
	return func(cs *CloudStore) {
		if perSecond > 0 {
			cs.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		}
	}
}

func WithHTTPClient(c *http.Client) CloudOption {
	return func(cs *CloudStore) {
		if c != nil {
			cs.client = c
		}
	}
}

func WithCloudLogger(l *slog.Logger) CloudOption {
	return func(cs *CloudStore) {
		if l != nil {
			cs.log = l
		}
	}
}

func NewCloudStore(apiURL, apiKey string, opts ...CloudOption) *CloudStore {
	cs := &CloudStore{
		apiURL: strings.TrimRight(apiURL, "/"),
		apiKey: apiKey,
		client: &http.Client{Timeout: 30 * time.Second},
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, o := range opts {
		o(cs)
	}
	return cs
}

// --- HTTP helpers ---

func (cs *CloudStore) doJSON(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request: %w", err)
		}
		bodyReader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, cs.apiURL+path, bodyReader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+cs.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	cs.log.Debug("cloud request", "method", method, "path", path)
	return cs.client.Do(req)
}

type apiError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func responseError(resp *http.Response) error {
	var apiErr apiError
	if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error.Message != "" {
		return fmt.Errorf("API error %d: %s", resp.StatusCode, apiErr.Error.Message)
	}
	return fmt.Errorf("API error %d", resp.StatusCode)
}

func decodeResponse[T any](resp *http.Response) (T, error) {
	defer resp.Body.Close()
	var zero T

	if resp.StatusCode >= 400 {
		return zero, responseError(resp)
	}

	var wrapper struct {
		Data T `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&wrapper); err != nil {
		return zero, fmt.Errorf("decoding response: %w", err)
	}
	return wrapper.Data, nil
}

// checkResponse accepts any 2xx, with or without a body.
func checkResponse(resp *http.Response) error {
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return responseError(resp)
	}
	return nil
}

// --- Gateway ---

func (cs *CloudStore) Export(ctx context.Context) ([]model.Item, error) {
	resp, err := cs.doJSON(ctx, http.MethodGet, "/items?status="+url.QueryEscape(string(model.StatusPending)), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	items, err := decodeResponse[[]model.Item](resp)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return items, nil
}

func (cs *CloudStore) SetField(ctx context.Context, uuid, field string, value float64) error {
	body := map[string]any{"fields": map[string]any{field: value}}
	return cs.write(ctx, http.MethodPatch, "/items/"+url.PathEscape(uuid), body)
}

func (cs *CloudStore) ClearField(ctx context.Context, uuid, field string) error {
	return cs.write(ctx, http.MethodDelete, "/items/"+url.PathEscape(uuid)+"/fields/"+url.PathEscape(field), nil)
}

func (cs *CloudStore) write(ctx context.Context, method, path string, body any) error {
	if cs.limiter != nil {
		if err := cs.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: %v", ErrMutationFailed, err)
		}
	}
	resp, err := cs.doJSON(ctx, method, path, body)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrMutationFailed, method, path, err)
	}
	if err := checkResponse(resp); err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrMutationFailed, method, path, err)
	}
	return nil
}
