// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

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

	"github.com/jeranaias/polichat/internal/model"
)

// Endpoint paths on the backend origin.
const (
	PathListChats    = "/history/chats"
	PathGetChat      = "/history/chats/" // + {id}
	PathSaveChat     = "/history/chats"
	PathAskQuestion  = "/ask-question"
	PathCrucialTerms = "/crucial-terms"
	PathSearchPolicy = "/search-policy"
)

const (
	// DefaultTimeout is the default timeout for backend requests.
	DefaultTimeout = 60 * time.Second

	// MaxResponseSize caps response bodies to prevent memory exhaustion.
	MaxResponseSize = 10 * 1024 * 1024 // 10MB
)

// sharedHTTPClient pools connections across all backend requests.
var sharedHTTPClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
	Timeout: DefaultTimeout,
}

// =============================================================================
// CLIENT
// =============================================================================

// Client communicates with the policy-assistant backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a client for the given backend base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: sharedHTTPClient,
		userAgent:  "polichat/0.1",
	}
}

// WithHTTPClient sets a custom HTTP client, mainly for tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// WithTimeout sets the request timeout. Switches to a dedicated HTTP
// client so the shared pool keeps its default.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.httpClient = &http.Client{
		Transport: sharedHTTPClient.Transport,
		Timeout:   timeout,
	}
	return c
}

// BaseURL returns the configured backend origin.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// =============================================================================
// OPERATIONS
// =============================================================================

// ListChats fetches the saved session summaries.
func (c *Client) ListChats(ctx context.Context) ([]model.ChatInfo, error) {
	var chats []model.ChatInfo
	if err := c.getJSON(ctx, PathListChats, &chats); err != nil {
		return nil, err
	}
	return chats, nil
}

// GetChat fetches a full session by id.
func (c *Client) GetChat(ctx context.Context, id string) (*ChatSession, error) {
	var session ChatSession
	if err := c.getJSON(ctx, PathGetChat+url.PathEscape(id), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// SaveChat persists or updates a session. The backend assigns an id when
// the request carries none.
func (c *Client) SaveChat(ctx context.Context, req SaveChatRequest) error {
	return c.postJSON(ctx, PathSaveChat, req, nil)
}

// AskQuestion sends a question with its conversational context.
func (c *Client) AskQuestion(ctx context.Context, req AskRequest) (*AskResponse, error) {
	var resp AskResponse
	if err := c.postJSON(ctx, PathAskQuestion, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CrucialTerms fetches the key clauses of a policy.
func (c *Client) CrucialTerms(ctx context.Context, policyID string) ([]model.ImportantTerm, error) {
	var terms []model.ImportantTerm
	if err := c.postJSON(ctx, PathCrucialTerms, crucialTermsRequest{PolicyID: policyID}, &terms); err != nil {
		return nil, err
	}
	return terms, nil
}

// SearchPolicies queries the policy search route.
func (c *Client) SearchPolicies(ctx context.Context, query string) ([]model.Policy, error) {
	path := PathSearchPolicy + "?q=" + url.QueryEscape(query)
	var policies []model.Policy
	if err := c.getJSON(ctx, path, &policies); err != nil {
		return nil, err
	}
	return policies, nil
}

// =============================================================================
// TRANSPORT HELPERS
// =============================================================================

// getJSON performs a GET and decodes the JSON response into out.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	return c.do(req, out)
}

// postJSON performs a POST with a JSON body and decodes the response into
// out when out is non-nil.
func (c *Client) postJSON(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	return c.do(req, out)
}

// do executes the request, maps non-2xx statuses to APIError, and decodes
// the body.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := readResponse(resp)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp.StatusCode, body)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// readResponse reads the body with a size limit.
func readResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) == MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}
	return body, nil
}

// newAPIError extracts an error message from a failed response body.
// The backend sends either {"message": ...} or {"detail": ...}; anything
// unparseable falls back to the raw body.
func newAPIError(status int, body []byte) error {
	var envelope struct {
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		if envelope.Message != "" {
			return &APIError{Status: status, Message: envelope.Message}
		}
		if envelope.Detail != "" {
			return &APIError{Status: status, Message: envelope.Detail}
		}
	}
	msg := strings.TrimSpace(string(body))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return &APIError{Status: status, Message: msg}
}
