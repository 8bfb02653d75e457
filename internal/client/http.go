package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/shilendra-dev/dodesk/internal/model"
	"github.com/shilendra-dev/dodesk/internal/views"
)

// HTTPClient implements DeskClient using the dodesk HTTP/JSON REST API.
type HTTPClient struct {
	baseURL    string
	token      string
	userID     string
	httpClient *http.Client
}

var (
	_ DeskClient      = (*HTTPClient)(nil)
	_ views.FilterAPI = (*HTTPClient)(nil)
)

// NewHTTPClient creates a new HTTP client targeting the given base URL
// (e.g. "http://localhost:8080"). When token is non-empty, an Authorization
// header is set on every request. userID identifies the acting user and is
// sent as the X-User-Id header; the server scopes saved filters by it.
func NewHTTPClient(baseURL, token, userID string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		userID:     userID,
		httpClient: &http.Client{},
	}
}

// Close is a no-op for the HTTP client.
func (c *HTTPClient) Close() error { return nil }

// --- Issue CRUD ---

func (c *HTTPClient) CreateIssue(ctx context.Context, workspaceID string, req *CreateIssueRequest) (*model.Issue, error) {
	var resp struct {
		Issue *model.Issue `json:"issue"`
	}
	path := "/v1/workspaces/" + url.PathEscape(workspaceID) + "/issues"
	if err := c.doJSON(ctx, http.MethodPost, path, req, &resp); err != nil {
		return nil, err
	}
	return resp.Issue, nil
}

func (c *HTTPClient) GetIssue(ctx context.Context, id string) (*model.Issue, error) {
	var resp struct {
		Issue *model.Issue `json:"issue"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/issues/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Issue, nil
}

func (c *HTTPClient) ListIssues(ctx context.Context, workspaceID string, req *ListIssuesRequest) (*ListIssuesResponse, error) {
	q := url.Values{}
	if len(req.States) > 0 {
		q.Set("state", strings.Join(req.States, ","))
	}
	if req.Priority != nil {
		q.Set("priority", fmt.Sprintf("%d", *req.Priority))
	}
	if req.Assignee != "" {
		q.Set("assignee", req.Assignee)
	}
	if req.Search != "" {
		q.Set("search", req.Search)
	}
	if req.Sort != "" {
		q.Set("sort", req.Sort)
	}
	if req.Limit > 0 {
		q.Set("limit", fmt.Sprintf("%d", req.Limit))
	}
	if req.Offset > 0 {
		q.Set("offset", fmt.Sprintf("%d", req.Offset))
	}

	path := "/v1/workspaces/" + url.PathEscape(workspaceID) + "/issues"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp ListIssuesResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) UpdateIssue(ctx context.Context, id string, req *UpdateIssueRequest) (*model.Issue, error) {
	var resp struct {
		Issue *model.Issue `json:"issue"`
	}
	if err := c.doJSON(ctx, http.MethodPatch, "/v1/issues/"+url.PathEscape(id), req, &resp); err != nil {
		return nil, err
	}
	return resp.Issue, nil
}

func (c *HTTPClient) DeleteIssue(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/v1/issues/"+url.PathEscape(id), nil, nil)
}

// --- Saved filters ---

func (c *HTTPClient) ListSavedFilters(ctx context.Context, workspaceID string) ([]*model.SavedFilter, error) {
	var resp struct {
		Filters []*model.SavedFilter `json:"filters"`
	}
	path := "/v1/saved-filters/" + url.PathEscape(workspaceID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Filters, nil
}

// GetDefaultSavedFilter returns (nil, nil) when the workspace has no default
// filter for the acting user.
func (c *HTTPClient) GetDefaultSavedFilter(ctx context.Context, workspaceID string) (*model.SavedFilter, error) {
	var resp struct {
		Filter *model.SavedFilter `json:"filter"`
	}
	path := "/v1/saved-filters/" + url.PathEscape(workspaceID) + "/default"
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Filter, nil
}

func (c *HTTPClient) CreateSavedFilter(ctx context.Context, workspaceID, name string, cfg model.FilterConfig, isDefault bool) (*model.SavedFilter, error) {
	body := CreateSavedFilterRequest{Name: name, Config: cfg, IsDefault: isDefault}
	var resp struct {
		Filter *model.SavedFilter `json:"filter"`
	}
	path := "/v1/saved-filters/" + url.PathEscape(workspaceID)
	if err := c.doJSON(ctx, http.MethodPost, path, body, &resp); err != nil {
		return nil, err
	}
	return resp.Filter, nil
}

func (c *HTTPClient) DeleteSavedFilter(ctx context.Context, workspaceID, filterID string) error {
	path := "/v1/saved-filters/" + url.PathEscape(workspaceID) + "/" + url.PathEscape(filterID)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil)
}

func (c *HTTPClient) SetDefaultSavedFilter(ctx context.Context, workspaceID, filterID string) (*model.SavedFilter, error) {
	var resp struct {
		Filter *model.SavedFilter `json:"filter"`
	}
	path := "/v1/saved-filters/" + url.PathEscape(workspaceID) + "/" + url.PathEscape(filterID) + "/default"
	if err := c.doJSON(ctx, http.MethodPut, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Filter, nil
}

// --- Health ---

func (c *HTTPClient) Health(ctx context.Context) (string, error) {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/health", nil, &resp); err != nil {
		return "", err
	}
	return resp.Status, nil
}

// --- internal helpers ---

// APIError represents an error response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// doJSON performs an HTTP request with optional JSON body and decodes the JSON response.
// If result is nil, the response body is discarded (for DELETE/204 responses).
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, body any, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.userID != "" {
		req.Header.Set("X-User-Id", c.userID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

	// 204 No Content carries no body.
	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: errResp.Error}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}
