package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"
)

// maxResponseBody caps how much of the endpoint response is read.
const maxResponseBody = 64 << 10

// Endpoint uploads files by POSTing a multipart form with a single "file"
// field. A JSON response must carry the URL in "url", "secure_url" or
// "data.url", checked in that order; any other response body is taken
// verbatim as the URL.
type Endpoint struct {
	url     string
	client  *http.Client
	timeout time.Duration
	headers map[string]string
}

// EndpointOption configures an Endpoint.
type EndpointOption func(*Endpoint)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(client *http.Client) EndpointOption {
	return func(e *Endpoint) {
		if client != nil {
			e.client = client
		}
	}
}

// WithTimeout bounds each upload request.
func WithTimeout(d time.Duration) EndpointOption {
	return func(e *Endpoint) {
		e.timeout = d
	}
}

// WithHeader adds a request header, e.g. an Authorization token.
func WithHeader(key, value string) EndpointOption {
	return func(e *Endpoint) {
		e.headers[key] = value
	}
}

// NewEndpoint validates rawURL and returns an Endpoint uploader.
func NewEndpoint(rawURL string, opts ...EndpointOption) (*Endpoint, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEndpoint, rawURL)
	}

	e := &Endpoint{
		url: rawURL,
		client: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 5,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		timeout: 30 * time.Second,
		headers: make(map[string]string),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Upload sends f to the endpoint.
func (e *Endpoint) Upload(ctx context.Context, f File) (string, error) {
	if len(f.Data) == 0 {
		return "", ErrEmptyFile
	}

	body, contentType, err := multipartBody(f)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url, body)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("User-Agent", "mailforge-upload/1.0")
	for k, v := range e.headers {
		req.Header.Set(k, v)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := strings.ReplaceAll(string(data), "\n", " ")
		if len(msg) > 200 {
			msg = msg[:200] + "..."
		}
		return "", fmt.Errorf("%w: %d %s", ErrUnexpectedStatus, resp.StatusCode, msg)
	}

	return parseResponse(resp.Header.Get("Content-Type"), data)
}

func multipartBody(f File) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	name := f.Name
	if name == "" {
		name = "image"
	}
	ct := f.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", mime.FormatMediaType("form-data", map[string]string{"name": "file", "filename": name}))
	h.Set("Content-Type", ct)
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(f.Data); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

type endpointResponse struct {
	URL       string `json:"url"`
	SecureURL string `json:"secure_url"`
	Data      *struct {
		URL string `json:"url"`
	} `json:"data"`
}

func parseResponse(contentType string, body []byte) (string, error) {
	if strings.Contains(contentType, "application/json") {
		var r endpointResponse
		if err := json.Unmarshal(body, &r); err != nil {
			return "", fmt.Errorf("%w: %w", ErrNoURL, err)
		}
		switch {
		case r.URL != "":
			return r.URL, nil
		case r.SecureURL != "":
			return r.SecureURL, nil
		case r.Data != nil && r.Data.URL != "":
			return r.Data.URL, nil
		}
		return "", ErrNoURL
	}

	u := strings.TrimSpace(string(body))
	if u == "" {
		return "", ErrNoURL
	}
	return u, nil
}
