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
	"strconv"
	"strings"
	"time"

	"github.com/alfredjeanlab/jobly/internal/model"
	"github.com/alfredjeanlab/jobly/internal/sqlbuild"
)

// defaultTimeout bounds every request made by HTTPClient.
const defaultTimeout = 30 * time.Second

// HTTPClient implements JoblyClient using the jobly HTTP/JSON REST API.
type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

var _ JoblyClient = (*HTTPClient)(nil)

// NewHTTPClient creates a new HTTP client targeting the given base URL
// (e.g. "http://localhost:8080"). When token is non-empty, an Authorization
// header is set on every request.
func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// Close is a no-op for the HTTP client.
func (c *HTTPClient) Close() error { return nil }

// --- Companies ---

func (c *HTTPClient) ListCompanies(ctx context.Context, filter model.CompanyFilter) ([]*model.Company, error) {
	q := url.Values{}
	if filter.Name != nil {
		q.Set("name", *filter.Name)
	}
	if filter.MinEmployees != nil {
		q.Set("minEmployees", strconv.Itoa(*filter.MinEmployees))
	}
	if filter.MaxEmployees != nil {
		q.Set("maxEmployees", strconv.Itoa(*filter.MaxEmployees))
	}

	var resp struct {
		Companies []*model.Company `json:"companies"`
	}
	if err := c.doJSON(ctx, http.MethodGet, withQuery("/v1/companies", q), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Companies, nil
}

func (c *HTTPClient) GetCompany(ctx context.Context, handle string) (*model.CompanyDetail, error) {
	var resp struct {
		Company *model.CompanyDetail `json:"company"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/companies/"+url.PathEscape(handle), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Company, nil
}

func (c *HTTPClient) CreateCompany(ctx context.Context, company *model.Company) (*model.Company, error) {
	var resp struct {
		Company *model.Company `json:"company"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/v1/companies", company, &resp); err != nil {
		return nil, err
	}
	return resp.Company, nil
}

func (c *HTTPClient) UpdateCompany(ctx context.Context, handle string, patch sqlbuild.Payload) (*model.Company, error) {
	var resp struct {
		Company *model.Company `json:"company"`
	}
	if err := c.doJSON(ctx, http.MethodPatch, "/v1/companies/"+url.PathEscape(handle), orderedObject(patch), &resp); err != nil {
		return nil, err
	}
	return resp.Company, nil
}

func (c *HTTPClient) DeleteCompany(ctx context.Context, handle string) error {
	return c.doJSON(ctx, http.MethodDelete, "/v1/companies/"+url.PathEscape(handle), nil, nil)
}

// --- Jobs ---

func (c *HTTPClient) ListJobs(ctx context.Context, filter model.JobFilter) ([]*model.Job, error) {
	q := url.Values{}
	if filter.Title != nil {
		q.Set("title", *filter.Title)
	}
	if filter.MinSalary != nil {
		q.Set("minSalary", strconv.Itoa(*filter.MinSalary))
	}
	if filter.HasEquity {
		q.Set("hasEquity", "true")
	}

	var resp struct {
		Jobs []*model.Job `json:"jobs"`
	}
	if err := c.doJSON(ctx, http.MethodGet, withQuery("/v1/jobs", q), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Jobs, nil
}

func (c *HTTPClient) GetJob(ctx context.Context, title string) (*model.Job, error) {
	var resp struct {
		Job *model.Job `json:"job"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/jobs/"+url.PathEscape(title), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Job, nil
}

func (c *HTTPClient) CreateJob(ctx context.Context, req *CreateJobRequest) (*model.Job, error) {
	var resp struct {
		Job *model.Job `json:"job"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/v1/jobs", req, &resp); err != nil {
		return nil, err
	}
	return resp.Job, nil
}

func (c *HTTPClient) UpdateJob(ctx context.Context, title string, patch sqlbuild.Payload) (*model.Job, error) {
	var resp struct {
		Job *model.Job `json:"job"`
	}
	if err := c.doJSON(ctx, http.MethodPatch, "/v1/jobs/"+url.PathEscape(title), orderedObject(patch), &resp); err != nil {
		return nil, err
	}
	return resp.Job, nil
}

func (c *HTTPClient) DeleteJob(ctx context.Context, title string) error {
	return c.doJSON(ctx, http.MethodDelete, "/v1/jobs/"+url.PathEscape(title), nil, nil)
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

// IsNotFound reports whether err is a 404 from the server.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// orderedObject encodes a Payload as a JSON object whose keys follow the
// payload order, which the server uses to number its placeholders.
type orderedObject sqlbuild.Payload

func (o orderedObject) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f.Value)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f.Name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

// doJSON performs an HTTP request with optional JSON body and decodes the JSON response.
// If result is nil, the response body is discarded.
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

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

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
		return &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}
