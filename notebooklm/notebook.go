package notebooklm

import (
	"context"
	"fmt"

	vo "github.com/crosszan/nlm/vo"
)

// ========== Notebook Operations ==========

// ListNotebooks returns all notebooks
func (c *Client) ListNotebooks(ctx context.Context) ([]vo.Notebook, error) {
	params := []any{nil, 1, nil, []any{2}}
	result, err := c.rpcCall(ctx, vo.RPCListNotebooks, params, "/", false)
	if err != nil {
		return nil, err
	}

	return parseNotebookList(result)
}

// CreateNotebook creates a new notebook
func (c *Client) CreateNotebook(ctx context.Context, title string) (*vo.Notebook, error) {
	params := []any{title, nil, nil, []any{2}, []any{1}}
	result, err := c.rpcCall(ctx, vo.RPCCreateNotebook, params, "/", false)
	if err != nil {
		return nil, err
	}

	return parseNotebook(result), nil
}

// GetNotebook retrieves a notebook by ID
func (c *Client) GetNotebook(ctx context.Context, notebookID string) (*vo.Notebook, error) {
	params := []any{notebookID, nil, []any{2}, nil, 0}
	result, err := c.rpcCall(ctx, vo.RPCGetNotebook, params, "/notebook/"+notebookID, false)
	if err != nil {
		return nil, err
	}

	arr, ok := result.([]any)
	if !ok || len(arr) == 0 {
		return nil, fmt.Errorf("invalid notebook response")
	}

	return parseNotebook(arr[0]), nil
}

// RenameNotebook renames a notebook
func (c *Client) RenameNotebook(ctx context.Context, notebookID, newTitle string) error {
	params := []any{notebookID, newTitle}
	_, err := c.rpcCall(ctx, vo.RPCRenameNotebook, params, "/notebook/"+notebookID, true)
	return err
}

// DeleteNotebook deletes a notebook
func (c *Client) DeleteNotebook(ctx context.Context, notebookID string) error {
	params := []any{[]any{notebookID}}
	_, err := c.rpcCall(ctx, vo.RPCDeleteNotebook, params, "/", true)
	return err
}

// GetNotebookDescription fetches the AI-generated summary of a notebook
func (c *Client) GetNotebookDescription(ctx context.Context, notebookID string) (*vo.NotebookDescription, error) {
	params := []any{notebookID, []any{2}}
	result, err := c.rpcCall(ctx, vo.RPCGetDescription, params, "/notebook/"+notebookID, true)
	if err != nil {
		return nil, err
	}

	return parseNotebookDescription(result), nil
}

// ListReportSuggestions fetches server-proposed reports for a notebook
func (c *Client) ListReportSuggestions(ctx context.Context, notebookID string) ([]vo.ReportSuggestion, error) {
	params := []any{notebookID, []any{2}}
	result, err := c.rpcCall(ctx, vo.RPCReportSuggestions, params, "/notebook/"+notebookID, true)
	if err != nil {
		return nil, err
	}

	return parseReportSuggestions(result), nil
}
