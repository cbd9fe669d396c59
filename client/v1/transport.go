package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

type Response struct {
	StatusCode int
	Header     http.Header
	Data       []byte
}

// APIError is a non-2xx answer from the API.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string `json:"message"`
	RecordID   string `json:"recordId"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s failed with status code %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
}

// Transport handles low-level HTTP and authentication
type Transport struct {
	BaseURL    string
	AuthToken  string
	HTTPClient *http.Client
}

// NewTransport creates a transport with base URL and auth
func NewTransport(baseURL, token string) *Transport {
	return &Transport{
		BaseURL:    baseURL,
		AuthToken:  token,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// helper: build full URL with query params
func (t *Transport) buildURL(path string, query map[string]string) (string, error) {
	u, err := url.Parse(t.BaseURL + path)
	if err != nil {
		return "", err
	}
	q := u.Query()
	for k, v := range query {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Do sends a request with an optional JSON body and returns the raw response for 2xx answers.
func (t *Transport) Do(ctx context.Context, method, path string, data any, query map[string]string) (*Response, error) {
	fullURL, err := t.buildURL(path, query)
	if err != nil {
		return nil, err
	}

	var body io.Reader
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, err
	}
	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if t.AuthToken != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", t.AuthToken))
	}

	resp, err := t.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	resdata, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 300 {
		apiErr := &APIError{Method: method, Path: path, StatusCode: resp.StatusCode}
		if json.Unmarshal(resdata, apiErr) != nil || apiErr.Message == "" {
			apiErr.Message = string(resdata)
		}
		return nil, apiErr
	}

	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Data: resdata}, nil
}

func (t *Transport) Get(ctx context.Context, path string, query map[string]string) (*Response, error) {
	return t.Do(ctx, http.MethodGet, path, nil, query)
}

// Post sends a POST request with JSON body
func (t *Transport) Post(ctx context.Context, path string, data any) (*Response, error) {
	return t.Do(ctx, http.MethodPost, path, data, nil)
}

func (t *Transport) Put(ctx context.Context, path string, data any) (*Response, error) {
	return t.Do(ctx, http.MethodPut, path, data, nil)
}

func decode[T any](resp *Response, err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	var out T
	if err := json.Unmarshal(resp.Data, &out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &out, nil
}
