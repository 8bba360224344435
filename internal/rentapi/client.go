// Package rentapi implements the rent view collaborator contract against a
// remote rent back office REST API.
package rentapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"rent-bo-svc/internal/rentview"
	"rent-bo-svc/pkg/logger"
)

type tokenKey struct{}

// WithToken attaches the caller's bearer token to ctx; the client forwards it
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func tokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

// envelope mirrors the JSON envelope every endpoint answers with
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type rentList struct {
	Combined []rentview.CombinedRentItem `json:"combined"`
}

// Client is a rentview.Backend over HTTP
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logger.Logger
}

// NewClient creates a client for the API rooted at baseURL, e.g. http://host/api/v1
func NewClient(baseURL string, timeout time.Duration, logger *logger.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

var _ rentview.Backend = (*Client)(nil)

// FetchDataset calls GET /rents?month=&year=
func (c *Client) FetchDataset(ctx context.Context, month, year int) ([]rentview.CombinedRentItem, error) {
	q := url.Values{}
	q.Set("month", fmt.Sprint(month))
	q.Set("year", fmt.Sprint(year))

	var list rentList
	if err := c.doJSON(ctx, "fetch dataset", http.MethodGet, "/rents?"+q.Encode(), nil, &list); err != nil {
		return nil, err
	}
	return list.Combined, nil
}

// UpdateStatus calls PATCH /rents/:id/status
func (c *Client) UpdateStatus(ctx context.Context, id string, status rentview.Status) error {
	body := map[string]string{"status": string(status)}
	return c.doJSON(ctx, "update status", http.MethodPatch, "/rents/"+url.PathEscape(id)+"/status", body, nil)
}

// DeleteRecord calls DELETE /rents/:id
func (c *Client) DeleteRecord(ctx context.Context, id string) error {
	return c.doJSON(ctx, "delete record", http.MethodDelete, "/rents/"+url.PathEscape(id), nil, nil)
}

// SaveTenantEdits calls PATCH /tenants/:id
func (c *Client) SaveTenantEdits(ctx context.Context, tenantID string, patch rentview.TenantPatch) error {
	return c.doJSON(ctx, "save tenant", http.MethodPatch, "/tenants/"+url.PathEscape(tenantID), patch, nil)
}

// DownloadReceipt calls GET /rents/:id/receipt?year=&month= and returns the PDF body
func (c *Client) DownloadReceipt(ctx context.Context, id string, year, month int) ([]byte, error) {
	const op = "download receipt"
	q := url.Values{}
	q.Set("year", fmt.Sprint(year))
	q.Set("month", fmt.Sprint(month))

	resp, body, err := c.do(ctx, op, http.MethodGet, "/rents/"+url.PathEscape(id)+"/receipt?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, statusError(op, resp.StatusCode, decodeMessage(body))
	}
	return body, nil
}

// RefreshDashboardSummary calls POST /dashboard/rent-summary/refresh
func (c *Client) RefreshDashboardSummary(ctx context.Context) error {
	return c.doJSON(ctx, "refresh summary", http.MethodPost, "/dashboard/rent-summary/refresh", nil, nil)
}

func (c *Client) doJSON(ctx context.Context, op, method, path string, in, out interface{}) error {
	var payload io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return rentview.NewValidationError(op, fmt.Errorf("failed to marshal payload: %w", err))
		}
		payload = bytes.NewReader(raw)
	}

	resp, body, err := c.do(ctx, op, method, path, payload)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(op, resp.StatusCode, decodeMessage(body))
	}
	if out == nil {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return rentview.NewNetworkError(op, fmt.Errorf("failed to parse response: %w", err))
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return rentview.NewNetworkError(op, fmt.Errorf("failed to parse response data: %w", err))
	}
	return nil
}

func (c *Client) do(ctx context.Context, op, method, path string, payload io.Reader) (*http.Response, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return nil, nil, rentview.NewNetworkError(op, fmt.Errorf("failed to create request: %w", err))
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := tokenFrom(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithError(err).WithFields(map[string]interface{}{
			"op":     op,
			"method": method,
			"path":   path,
		}).Warn("Rent API request failed")
		return nil, nil, rentview.NewNetworkError(op, fmt.Errorf("failed to send request: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, rentview.NewNetworkError(op, fmt.Errorf("failed to read response: %w", err))
	}

	c.logger.WithFields(map[string]interface{}{
		"op":          op,
		"method":      method,
		"path":        path,
		"status_code": resp.StatusCode,
		"latency":     time.Since(start).String(),
	}).Debug("Rent API response")

	return resp, body, nil
}

// statusError maps an HTTP status onto the rent view error taxonomy
func statusError(op string, code int, message string) error {
	err := fmt.Errorf("rent api returned %d: %s", code, message)
	switch code {
	case http.StatusNotFound:
		return rentview.NewNotFoundError(op, err)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return rentview.NewValidationError(op, err)
	default:
		return rentview.NewNetworkError(op, err)
	}
}

func decodeMessage(body []byte) string {
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && env.Message != "" {
		if env.Error != "" {
			return env.Message + ": " + env.Error
		}
		return env.Message
	}
	msg := strings.TrimSpace(string(body))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return msg
}
