package notebooklm

import (
	"context"
	"fmt"

	vo "github.com/crosszan/nlm/vo"
)

// ========== Source Operations ==========

// ListSources returns all sources in a notebook
func (c *Client) ListSources(ctx context.Context, notebookID string) ([]vo.Source, error) {
	params := []any{notebookID, nil, []any{2}, nil, 0}
	result, err := c.rpcCall(ctx, vo.RPCGetNotebook, params, "/notebook/"+notebookID, false)
	if err != nil {
		return nil, err
	}

	return parseSourceList(result, notebookID)
}

// AddSourceURL adds a URL source to a notebook. YouTube links use a
// different parameter tree than regular pages.
func (c *Client) AddSourceURL(ctx context.Context, notebookID, sourceURL string) (*vo.Source, error) {
	var params []any

	if isYouTubeURL(sourceURL) {
		// YouTube shape: URL at position 7, trailing video flag
		// [[[null x7, [url], null, null, 1]], notebook_id, [2], [1, null x9, [1]]]
		params = []any{
			[]any{[]any{nil, nil, nil, nil, nil, nil, nil, []any{sourceURL}, nil, nil, 1}},
			notebookID,
			[]any{2},
			[]any{1, nil, nil, nil, nil, nil, nil, nil, nil, nil, []any{1}},
		}
	} else {
		// Regular URL shape: URL at position 2
		// [[[null, null, [url], null x5]], notebook_id, [2], null, null]
		params = []any{
			[]any{[]any{nil, nil, []any{sourceURL}, nil, nil, nil, nil, nil}},
			notebookID,
			[]any{2},
			nil,
			nil,
		}
	}

	result, err := c.rpcCall(ctx, vo.RPCAddSource, params, "/notebook/"+notebookID, false)
	if err != nil {
		return nil, err
	}

	source, err := parseSource(result, notebookID)
	if err != nil {
		return nil, err
	}

	// The add response does not always echo the URL back
	if source.URL == "" {
		source.URL = sourceURL
	}
	source.SourceType = classifySource(source.URL, source.Title)

	return source, nil
}

// AddSourceText adds a pasted-text source to a notebook.
// Shape: [[[null, [title, content], null x6]], notebook_id, [2], null, null]
func (c *Client) AddSourceText(ctx context.Context, notebookID, title, content string) (*vo.Source, error) {
	params := []any{
		[]any{[]any{nil, []any{title, content}, nil, nil, nil, nil, nil, nil}},
		notebookID,
		[]any{2},
		nil,
		nil,
	}
	result, err := c.rpcCall(ctx, vo.RPCAddSource, params, "/notebook/"+notebookID, false)
	if err != nil {
		return nil, err
	}

	return parseSource(result, notebookID)
}

// DeleteSource deletes a source from a notebook.
// Shape: [[[source_id]]]
func (c *Client) DeleteSource(ctx context.Context, notebookID, sourceID string) error {
	params := []any{[]any{[]any{sourceID}}}
	_, err := c.rpcCall(ctx, vo.RPCDeleteSource, params, "/notebook/"+notebookID, true)
	return err
}

// RenameSource renames a source
func (c *Client) RenameSource(ctx context.Context, notebookID, sourceID, newTitle string) error {
	params := []any{[]any{sourceID}, newTitle}
	_, err := c.rpcCall(ctx, vo.RPCRenameSource, params, "/notebook/"+notebookID, true)
	return err
}

// getSourceIDs extracts all source IDs from a notebook
func (c *Client) getSourceIDs(ctx context.Context, notebookID string) ([]string, error) {
	sources, err := c.ListSources(ctx, notebookID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(sources))
	for _, s := range sources {
		ids = append(ids, s.ID)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("notebook %s has no sources", notebookID)
	}
	return ids, nil
}
