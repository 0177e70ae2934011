package notebooklm

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/crosszan/nlm/rpc"
	vo "github.com/crosszan/nlm/vo"
	"github.com/google/uuid"
)

// ========== Chat Operations ==========

// Ask sends a question to the notebook over the streamed chat endpoint.
// An empty conversationID starts a new conversation; passing the ID from a
// previous AskResult continues it, replaying the cached turns as history.
// Pass nil sourceIDs to ground the answer on every source in the notebook.
func (c *Client) Ask(ctx context.Context, notebookID, conversationID, question string, sourceIDs []string) (*vo.AskResult, error) {
	if err := c.ensureTokens(ctx); err != nil {
		return nil, fmt.Errorf("failed to refresh tokens: %w", err)
	}

	if len(sourceIDs) == 0 {
		ids, err := c.getSourceIDs(ctx, notebookID)
		if err != nil {
			return nil, fmt.Errorf("failed to get source IDs: %w", err)
		}
		sourceIDs = ids
	}

	if conversationID == "" {
		conversationID = uuid.NewString()
	}
	history := c.conversationHistory(conversationID)

	body, err := rpc.EncodeChatRequest(question, sourceIDs, conversationID, history, c.auth.CSRFToken)
	if err != nil {
		return nil, fmt.Errorf("failed to encode chat request: %w", err)
	}

	c.reqCounter += 100000
	reqURL := rpc.BuildChatURL(c.auth.SessionID, c.reqCounter)
	if c.chatEndpoint != "" {
		reqURL = strings.Replace(reqURL, rpc.QueryURL, c.chatEndpoint, 1)
	}

	respBody, err := c.postChat(ctx, reqURL, body)
	if err != nil {
		return nil, err
	}

	answer, err := rpc.DecodeStreamedAnswer(respBody)
	if err != nil {
		preview := respBody
		if len(preview) > 500 {
			preview = preview[:500]
		}
		return nil, fmt.Errorf("failed to parse chat response: %w (response preview: %s)", err, preview)
	}

	turn := c.recordTurn(conversationID, question, answer)

	return &vo.AskResult{
		Answer:         answer,
		ConversationID: conversationID,
		TurnNumber:     turn,
	}, nil
}

// postChat posts the chat body, retrying network-level failures the same
// way rpcCall does.
func (c *Client) postChat(ctx context.Context, reqURL, body string) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, "POST", reqURL, strings.NewReader(body))
		if err != nil {
			return "", err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded;charset=UTF-8")
		req.Header.Set("Cookie", c.auth.CookieHeader())

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			if isRetryableError(err) && attempt < maxRetries {
				time.Sleep(retryDelay * time.Duration(attempt))
				continue
			}
			break
		}

		respBody, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return "", fmt.Errorf("%w: status %d", rpc.ErrAuthError, resp.StatusCode)
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return "", &rpc.StatusError{Status: resp.StatusCode}
		}
		if readErr != nil {
			return "", fmt.Errorf("failed to read response: %w", readErr)
		}

		return string(respBody), nil
	}

	return "", fmt.Errorf("chat request failed: %w", lastErr)
}

// conversationHistory builds the wire history for a conversation from the
// cache: [[question, answer] for each prior turn].
func (c *Client) conversationHistory(conversationID string) []any {
	turns := c.conversations[conversationID]
	if len(turns) == 0 {
		return nil
	}
	history := make([]any, len(turns))
	for i, t := range turns {
		history[i] = []any{t.Query, t.Answer}
	}
	return history
}

// recordTurn appends a turn to the conversation cache and returns its
// 1-based turn number.
func (c *Client) recordTurn(conversationID, question, answer string) int {
	turn := len(c.conversations[conversationID]) + 1
	c.conversations[conversationID] = append(c.conversations[conversationID], vo.ConversationTurn{
		Query:      question,
		Answer:     answer,
		TurnNumber: turn,
	})
	return turn
}

// Conversation returns the cached turns for a conversation, oldest first.
// The cache is a local echo only; it is never synchronized with the server.
func (c *Client) Conversation(conversationID string) []vo.ConversationTurn {
	turns := c.conversations[conversationID]
	out := make([]vo.ConversationTurn, len(turns))
	copy(out, turns)
	return out
}

// ClearConversation drops the cached turns for one conversation
func (c *Client) ClearConversation(conversationID string) {
	delete(c.conversations, conversationID)
}

// ClearConversations drops the whole conversation cache
func (c *Client) ClearConversations() {
	c.conversations = make(map[string][]vo.ConversationTurn)
}
