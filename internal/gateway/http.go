package gateway

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Wire paths of the backend API.
const (
	pathList    = "/api/list/"
	pathLoad    = "/api/load/"
	pathSave    = "/api/save/"
	pathExecute = "/api/execute/"
)

// csrfHeader carries the anti-forgery token on every request.
const csrfHeader = "X-CSRFToken"

// HTTPClient implements Gateway over the backend's JSON-over-POST protocol.
//
// There is no client-side timeout beyond the caller's context; an
// unresponsive backend hangs the corresponding action until the context is
// done.
type HTTPClient struct {
	baseURL   string
	csrfToken string
	client    *http.Client
}

// HTTPOption configures an HTTPClient.
type HTTPOption func(*HTTPClient)

// WithHTTPClient sets the underlying http.Client.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(c *HTTPClient) {
		c.client = client
	}
}

// WithCSRFToken sets the anti-forgery token sent with every request.
func WithCSRFToken(token string) HTTPOption {
	return func(c *HTTPClient) {
		c.csrfToken = token
	}
}

// NewHTTPClient creates a client for the backend at baseURL.
func NewHTTPClient(baseURL string, opts ...HTTPOption) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// List returns the openable filenames.
func (c *HTTPClient) List(ctx context.Context) ([]string, error) {
	body, err := c.post(ctx, pathList, "")
	if err != nil {
		return nil, err
	}

	if msg := gjson.GetBytes(body, "error"); msg.Exists() {
		return nil, &RemoteError{Op: "list", Message: msg.String()}
	}

	files := gjson.GetBytes(body, "files")
	if !files.Exists() {
		return nil, fmt.Errorf("list: %w", ErrNoResponse)
	}

	var names []string
	files.ForEach(func(_, value gjson.Result) bool {
		names = append(names, value.String())
		return true
	})
	return names, nil
}

// Load returns the stored content of filename.
func (c *HTTPClient) Load(ctx context.Context, filename string) (string, error) {
	req, err := sjson.Set("", "filename", filename)
	if err != nil {
		return "", fmt.Errorf("load: encoding request: %w", err)
	}

	body, err := c.post(ctx, pathLoad, req)
	if err != nil {
		return "", err
	}

	if msg := gjson.GetBytes(body, "error"); msg.Exists() {
		return "", &RemoteError{Op: "load", Message: msg.String()}
	}

	code := gjson.GetBytes(body, "code")
	if !code.Exists() {
		return "", fmt.Errorf("load: %w", ErrNoResponse)
	}
	return code.String(), nil
}

// Save stores code under filename.
func (c *HTTPClient) Save(ctx context.Context, filename, code string) error {
	req, err := sjson.Set("", "filename", filename)
	if err != nil {
		return fmt.Errorf("save: encoding request: %w", err)
	}
	req, err = sjson.Set(req, "code", code)
	if err != nil {
		return fmt.Errorf("save: encoding request: %w", err)
	}

	body, err := c.post(ctx, pathSave, req)
	if err != nil {
		return err
	}

	if msg := gjson.GetBytes(body, "error"); msg.Exists() {
		return &RemoteError{Op: "save", Message: msg.String()}
	}
	return nil
}

// Execute runs code under the given execution language.
func (c *HTTPClient) Execute(ctx context.Context, code, language string) (ExecResult, error) {
	req, err := sjson.Set("", "code", code)
	if err != nil {
		return ExecResult{}, fmt.Errorf("execute: encoding request: %w", err)
	}
	req, err = sjson.Set(req, "language", language)
	if err != nil {
		return ExecResult{}, fmt.Errorf("execute: encoding request: %w", err)
	}

	body, err := c.post(ctx, pathExecute, req)
	if err != nil {
		return ExecResult{}, err
	}

	// Execute replies carry output and error as data, not as a failed call:
	// whichever field is present is rendered verbatim.
	result := ExecResult{
		Output: gjson.GetBytes(body, "output").String(),
		Error:  gjson.GetBytes(body, "error").String(),
	}
	return result, nil
}

// post sends a POST with the JSON body and returns the raw response body.
func (c *HTTPClient) post(ctx context.Context, path, body string) ([]byte, error) {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", path, err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.csrfToken != "" {
		req.Header.Set(csrfHeader, c.csrfToken)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response from %s: %w", path, err)
	}
	return data, nil
}

var _ Gateway = (*HTTPClient)(nil)
