package notebooklm

import (
	"context"

	vo "github.com/crosszan/nlm/vo"
)

// ========== Note Operations ==========

// ListNotes returns all saved notes in a notebook
func (c *Client) ListNotes(ctx context.Context, notebookID string) ([]vo.Note, error) {
	params := []any{notebookID}
	result, err := c.rpcCall(ctx, vo.RPCListNotes, params, "/notebook/"+notebookID, true)
	if err != nil {
		return nil, err
	}

	return parseNoteList(result, notebookID)
}

// CreateNote creates a note in a notebook
func (c *Client) CreateNote(ctx context.Context, notebookID, title, content string) (*vo.Note, error) {
	params := []any{notebookID, content, []any{1}, nil, title}
	result, err := c.rpcCall(ctx, vo.RPCCreateNote, params, "/notebook/"+notebookID, false)
	if err != nil {
		return nil, err
	}

	return &vo.Note{
		ID:         extractUUID(result),
		NotebookID: notebookID,
		Title:      title,
		Content:    content,
	}, nil
}

// UpdateNote replaces a note's title and content
func (c *Client) UpdateNote(ctx context.Context, notebookID, noteID, title, content string) error {
	params := []any{notebookID, noteID, []any{[]any{content, title, []any{}}}}
	_, err := c.rpcCall(ctx, vo.RPCUpdateNote, params, "/notebook/"+notebookID, true)
	return err
}

// DeleteNote deletes a note
func (c *Client) DeleteNote(ctx context.Context, notebookID, noteID string) error {
	params := []any{notebookID, []any{noteID}}
	_, err := c.rpcCall(ctx, vo.RPCDeleteNote, params, "/notebook/"+notebookID, true)
	return err
}
