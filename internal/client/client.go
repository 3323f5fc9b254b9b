// Package client is a typed HTTP client for the graduate tracker API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yigit/gradtracker/internal/app/models"
	"github.com/yigit/gradtracker/internal/app/models/dto"
)

// DefaultTimeout bounds a single API call
const DefaultTimeout = 15 * time.Second

// maxResponseBytes caps how much of a response body is read
const maxResponseBytes = 1 << 20

// APIError is a non-2xx answer from the server
type APIError struct {
	Status int
	Detail *dto.ErrorDetail
}

func (e *APIError) Error() string {
	if e.Detail == nil {
		return fmt.Sprintf("server returned %d", e.Status)
	}
	if e.Detail.Field != "" {
		return fmt.Sprintf("server returned %d (%s): %s [%s]", e.Status, e.Detail.Code, e.Detail.Message, e.Detail.Field)
	}
	return fmt.Sprintf("server returned %d (%s): %s", e.Status, e.Detail.Code, e.Detail.Message)
}

// Client calls the /api endpoints of one server
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// Option customizes a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a client for the server at baseURL, e.g. http://localhost:8080
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid server url %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Register submits a registration and returns the new record id
func (c *Client) Register(ctx context.Context, req dto.RegisterGraduateRequest) (int64, error) {
	var resp dto.RegisterGraduateResponse
	if err := c.do(ctx, http.MethodPost, "/api/register", req, &resp); err != nil {
		return 0, err
	}
	return resp.ID, nil
}

// Search returns the records matching the filters
func (c *Client) Search(ctx context.Context, name, highschool string) ([]models.GraduateSummary, error) {
	var resp dto.SearchGraduatesResponse
	req := dto.SearchGraduatesRequest{Name: name, Highschool: highschool}
	if err := c.do(ctx, http.MethodPost, "/api/search", req, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// Verify checks an answer; details are non-nil only when it is correct
func (c *Client) Verify(ctx context.Context, id int64, answer string) (bool, *models.GraduateDetails, error) {
	var resp dto.VerifyAnswerResponse
	req := dto.VerifyAnswerRequest{ID: dto.FlexibleString(fmt.Sprint(id)), Answer: answer}
	if err := c.do(ctx, http.MethodPost, "/api/verify", req, &resp); err != nil {
		return false, nil, err
	}
	return resp.IsCorrect, resp.Data, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("error encoding request: %w", err)
	}

	endpoint := c.baseURL.JoinPath(path)
	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error calling %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		var errResp dto.ErrorResponse
		if json.Unmarshal(data, &errResp) == nil {
			apiErr.Detail = errResp.Error
		}
		return apiErr
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("error decoding response: %w", err)
	}
	return nil
}

// IsNotFound reports whether err is a 404 from the server
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}
