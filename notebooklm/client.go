// Package notebooklm is an unofficial client for Google NotebookLM, built on
// the reverse-engineered batchexecute RPC protocol its web frontend uses.
package notebooklm

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/crosszan/nlm/rpc"
	vo "github.com/crosszan/nlm/vo"
)

const (
	defaultTimeout = 120 * time.Second
	maxRetries     = 3
	retryDelay     = 2 * time.Second
)

// Client is the NotebookLM API client. One Client owns its HTTP session,
// request counter and conversation cache. Token refresh is serialized
// internally, so independent RPCs may run concurrently; the chat methods
// share mutable conversation state and need external locking.
type Client struct {
	auth          *vo.AuthTokens
	httpClient    *http.Client
	refreshMu     sync.Mutex
	reqCounter    int
	conversations map[string][]vo.ConversationTurn
	log           *slog.Logger

	// rpcEndpoint, chatEndpoint, uploadEndpoint and authEndpoint override
	// the production endpoints when non-empty; tests point them at a local
	// server.
	rpcEndpoint    string
	chatEndpoint   string
	uploadEndpoint string
	authEndpoint   string
}

// NewClient creates a new NotebookLM client
func NewClient(auth *vo.AuthTokens) *Client {
	transport := &http.Transport{
		TLSHandshakeTimeout:   30 * time.Second,
		ResponseHeaderTimeout: 30 * time.Second,
		IdleConnTimeout:       90 * time.Second,
	}

	// Check for proxy from environment
	if proxyURL := os.Getenv("HTTPS_PROXY"); proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	} else if proxyURL := os.Getenv("HTTP_PROXY"); proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}

	return &Client{
		auth: auth,
		httpClient: &http.Client{
			Timeout:   defaultTimeout,
			Transport: transport,
		},
		reqCounter:    100000,
		conversations: make(map[string][]vo.ConversationTurn),
		log:           slog.Default(),
	}
}

// NewClientFromStorage creates a client from stored auth
func NewClientFromStorage(storagePath string) (*Client, error) {
	auth, err := LoadAuthTokens(storagePath)
	if err != nil {
		return nil, err
	}
	return NewClient(auth), nil
}

// RefreshTokens fetches fresh CSRF token and session ID from the homepage
func (c *Client) RefreshTokens(ctx context.Context) error {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()
	return c.refreshTokensLocked(ctx)
}

// ensureTokens refreshes tokens when no CSRF token is held yet. Concurrent
// callers serialize on the mutex, so only the first one hits the homepage
// and the rest see the tokens it stored.
func (c *Client) ensureTokens(ctx context.Context) error {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()
	if c.auth.CSRFToken != "" {
		return nil
	}
	return c.refreshTokensLocked(ctx)
}

func (c *Client) refreshTokensLocked(ctx context.Context) error {
	var lastErr error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := c.doRefreshTokens(ctx)
		if err == nil {
			return nil
		}

		lastErr = err

		if isRetryableError(err) && attempt < maxRetries {
			time.Sleep(retryDelay * time.Duration(attempt))
			continue
		}

		break
	}

	return lastErr
}

// doRefreshTokens performs a single refresh attempt
func (c *Client) doRefreshTokens(ctx context.Context) error {
	homepage := rpc.BaseURL
	if c.authEndpoint != "" {
		homepage = c.authEndpoint
	}

	req, err := http.NewRequestWithContext(ctx, "GET", homepage, nil)
	if err != nil {
		return err
	}

	req.Header.Set("Cookie", c.auth.CookieHeader())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch homepage: %w", err)
	}
	defer resp.Body.Close()

	// A silent redirect to the login page means the session cookies are
	// stale; surface that as an auth error before any RPC is attempted.
	if resp.Request != nil && strings.Contains(resp.Request.URL.Host, "accounts.google.com") {
		return fmt.Errorf("%w: redirected to Google login, session expired", rpc.ErrAuthError)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("homepage returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read homepage: %w", err)
	}

	html := string(body)

	csrf, err := ExtractCSRFToken(html)
	if err != nil {
		return fmt.Errorf("%w: %v", rpc.ErrAuthError, err)
	}

	sessionID, err := ExtractSessionID(html)
	if err != nil {
		return fmt.Errorf("%w: %v", rpc.ErrAuthError, err)
	}

	c.auth.CSRFToken = csrf
	c.auth.SessionID = sessionID

	return nil
}

// isRetryableError checks if error is a network-level failure worth retrying
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "TLS handshake") ||
		strings.Contains(errStr, "EOF") ||
		strings.Contains(errStr, "network is unreachable")
}

// rpcCall makes an RPC call to batchexecute with retry. Only network-level
// errors are retried; transport and protocol errors propagate immediately.
func (c *Client) rpcCall(ctx context.Context, method vo.RPCMethod, params []any, sourcePath string, allowNull bool) (any, error) {
	var lastErr error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		result, err := c.doRPCCall(ctx, method, params, sourcePath, allowNull)
		if err == nil {
			return result, nil
		}

		lastErr = err

		if isRetryableError(err) && attempt < maxRetries {
			c.log.Debug("retrying rpc call", "method", method, "attempt", attempt, "error", err)
			time.Sleep(retryDelay * time.Duration(attempt))
			continue
		}

		break
	}

	return nil, lastErr
}

// doRPCCall performs a single RPC call attempt
func (c *Client) doRPCCall(ctx context.Context, method vo.RPCMethod, params []any, sourcePath string, allowNull bool) (any, error) {
	if err := c.ensureTokens(ctx); err != nil {
		return nil, fmt.Errorf("failed to refresh tokens: %w", err)
	}

	rpcReq, err := rpc.EncodeRPCRequest(method, params)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	body, err := rpc.BuildRequestBody(rpcReq, c.auth.CSRFToken)
	if err != nil {
		return nil, fmt.Errorf("failed to build request body: %w", err)
	}

	reqURL := rpc.BuildURL(method, c.auth.SessionID, sourcePath)
	if c.rpcEndpoint != "" {
		reqURL = strings.Replace(reqURL, rpc.BatchExecuteURL, c.rpcEndpoint, 1)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", reqURL, strings.NewReader(body))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded;charset=UTF-8")
	req.Header.Set("Cookie", c.auth.CookieHeader())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, fmt.Errorf("%w: status %d", rpc.ErrAuthError, resp.StatusCode)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &rpc.StatusError{Status: resp.StatusCode}
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.log.Debug("rpc call", "method", method, "response_bytes", len(respBody))

	return rpc.DecodeResponse(string(respBody), method, allowNull)
}
