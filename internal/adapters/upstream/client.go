package upstream

// Package upstream implements the RecordGateway port against the remote
// transactions API. The API is an external collaborator: this client speaks
// its documented HTTP contract and nothing more.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ledgerview/txn-ui-api/internal/domain/model"
	"github.com/ledgerview/txn-ui-api/internal/ports"
)

var _ ports.RecordGateway = (*Client)(nil)

// Config captures the connection settings for the transactions API.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Client  *http.Client // optional override
}

// Client is an HTTP ports.RecordGateway.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient builds a transactions API client.
func NewClient(cfg Config) (*Client, error) {
	baseURL := strings.TrimSuffix(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("upstream base URL is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	hc := cfg.Client
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	return &Client{baseURL: baseURL, client: hc}, nil
}

// APIError is a server-reported failure. Its message is surfaced to the
// user verbatim.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return http.StatusText(e.StatusCode)
}

func (c *Client) List(ctx context.Context, q model.BrowseQuery) (model.ListResult, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("limit", strconv.Itoa(q.Limit))
	params.Set("isDeleted", strconv.FormatBool(q.IncludeDeleted))

	path := "/"
	if q.SearchActive {
		path = "/search"
		params.Set(string(q.SearchField), q.SearchValue)
	}

	var result model.ListResult
	if err := c.do(ctx, request{Method: http.MethodGet, Path: path, Query: params}, &result); err != nil {
		return model.ListResult{}, err
	}
	return result, nil
}

func (c *Client) Add(ctx context.Context, req model.NewRecordRequest) error {
	return c.do(ctx, request{Method: http.MethodPost, Path: "/add-transaction", Body: req.RecordFields}, nil)
}

func (c *Client) Update(ctx context.Context, id int64, req model.UpdateRecordRequest) error {
	return c.do(ctx, request{
		Method: http.MethodPut,
		Path:   "/update-transaction/" + strconv.FormatInt(id, 10),
		Body:   req.RecordFields,
	}, nil)
}

func (c *Client) SoftDelete(ctx context.Context, id int64) error {
	return c.do(ctx, request{Method: http.MethodPut, Path: "/soft-delete/" + strconv.FormatInt(id, 10)}, nil)
}

func (c *Client) Restore(ctx context.Context, id int64) error {
	return c.do(ctx, request{Method: http.MethodPut, Path: "/restore/" + strconv.FormatInt(id, 10)}, nil)
}

func (c *Client) BulkSetDeleted(ctx context.Context, ids []int64, deleted bool) error {
	// isDeleted carries the target state: true soft-deletes, false restores.
	params := url.Values{}
	params.Set("isDeleted", strconv.FormatBool(deleted))

	body := struct {
		IDs []int64 `json:"ids"`
	}{IDs: ids}
	return c.do(ctx, request{Method: http.MethodDelete, Path: "/delete-selected", Query: params, Body: body}, nil)
}

func (c *Client) UploadCSV(ctx context.Context, filename string, file io.Reader) ([]string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("build multipart form: %w", err)
	}
	if _, err = io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("copy csv into form: %w", err)
	}
	if err = mw.Close(); err != nil {
		return nil, fmt.Errorf("finalize multipart form: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/uploadCSV", &buf)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("upload csv: %w", err)
	}
	defer resp.Body.Close()

	if err = checkStatus(resp); err != nil {
		return nil, err
	}
	var out struct {
		Warnings []string `json:"warnings"`
	}
	if err = json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode upload response: %w", err)
	}
	return out.Warnings, nil
}

func (c *Client) DownloadCSV(ctx context.Context) (io.ReadCloser, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/download", nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("download csv: %w", err)
	}
	if err = checkStatus(resp); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp.Body, nil
}

// request groups the pieces of one API call to keep call sites small.
type request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
}

func (c *Client) do(ctx context.Context, req request, out any) error {
	u := c.baseURL + req.Path
	if len(req.Query) > 0 {
		u += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		b, err := json.Marshal(req.Body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, u, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.Path, err)
	}
	defer resp.Body.Close()

	if err = checkStatus(resp); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// checkStatus converts a non-2xx response into an APIError carrying the
// server's message body verbatim.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	apiErr := &APIError{StatusCode: resp.StatusCode}
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&payload); err == nil {
		apiErr.Message = payload.Message
		if apiErr.Message == "" {
			apiErr.Message = payload.Error
		}
	}
	return apiErr
}
