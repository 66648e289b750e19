// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package api is the client for the research-assistant HTTP API. The server
// owns search, chat reasoning, and library persistence; this package only
// issues typed requests and decodes the JSON replies.
package api

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

	"github.com/da-ros/researchpal/internal/httputil"
	"github.com/da-ros/researchpal/pkg/types"
)

const (
	// DefaultBaseURL is where the API server listens during development.
	DefaultBaseURL = "http://localhost:8000"

	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "researchpal/0.1"
)

// Client issues requests to the remote API. It holds no per-request state
// and is safe for concurrent use.
type Client struct {
	HTTP    *http.Client
	baseURL string
	cfg     types.ClientConfig
}

// NewClient returns a Client for cfg, filling in defaults for the base URL,
// timeout, and User-Agent.
func NewClient(cfg types.ClientConfig) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	return &Client{
		HTTP:    &http.Client{Timeout: cfg.Timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		cfg:     cfg,
	}
}

// BaseURL returns the server address requests are sent to.
func (c *Client) BaseURL() string { return c.baseURL }

// Chat sends one chat turn (POST /api/chat).
func (c *Client) Chat(ctx context.Context, req types.ChatRequest) (types.ChatResponse, error) {
	var out types.ChatResponse
	err := c.do(ctx, http.MethodPost, "/api/chat", req, &out)
	return out, err
}

// Search runs a paper search (POST /api/search).
func (c *Client) Search(ctx context.Context, req types.SearchRequest) (types.SearchResponse, error) {
	var out types.SearchResponse
	err := c.do(ctx, http.MethodPost, "/api/search", req, &out)
	return out, err
}

// Library lists the saved papers (GET /api/library).
func (c *Client) Library(ctx context.Context) (types.LibraryResponse, error) {
	var out types.LibraryResponse
	err := c.do(ctx, http.MethodGet, "/api/library", nil, &out)
	return out, err
}

// SaveToLibrary saves a paper (POST /api/library).
func (c *Client) SaveToLibrary(ctx context.Context, req types.LibraryRequest) (types.MessageResponse, error) {
	var out types.MessageResponse
	err := c.do(ctx, http.MethodPost, "/api/library", req, &out)
	return out, err
}

// RemoveFromLibrary removes a saved paper (DELETE /api/library/{arxiv_id}).
func (c *Client) RemoveFromLibrary(ctx context.Context, arxivID string) (types.MessageResponse, error) {
	if arxivID == "" {
		return types.MessageResponse{}, fmt.Errorf("arXiv ID is required")
	}
	var out types.MessageResponse
	err := c.do(ctx, http.MethodDelete, "/api/library/"+url.PathEscape(arxivID), nil, &out)
	return out, err
}

// do encodes body (when non-nil), sends the request, and decodes the JSON
// reply into out. Non-2xx replies surface as *httputil.StatusError.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		rdr = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	resp, err := httputil.Do(ctx, c.HTTP, req, c.cfg.RateLimitRetries)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parsing %s response: %w", path, err)
	}
	return nil
}
