package notebooklm

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/crosszan/nlm/rpc"
	vo "github.com/crosszan/nlm/vo"
)

// AddSourceFile adds a local file as a source using Google's resumable
// upload protocol: register the source intent, start an upload session,
// then send the content in one upload+finalize request.
func (c *Client) AddSourceFile(ctx context.Context, notebookID, filePath string) (*vo.Source, error) {
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("file not found: %w", err)
	}
	if fileInfo.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file")
	}

	filename := filepath.Base(filePath)

	if err := c.ensureTokens(ctx); err != nil {
		return nil, fmt.Errorf("failed to refresh tokens: %w", err)
	}

	sourceID, err := c.registerFileSource(ctx, notebookID, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to register file source: %w", err)
	}

	uploadURL, err := c.startResumableUpload(ctx, notebookID, filename, fileInfo.Size(), sourceID)
	if err != nil {
		return nil, fmt.Errorf("failed to start upload: %w", err)
	}

	if err := c.uploadFile(ctx, uploadURL, filePath); err != nil {
		return nil, fmt.Errorf("failed to upload file: %w", err)
	}

	return &vo.Source{
		ID:         sourceID,
		NotebookID: notebookID,
		Title:      filename,
		SourceType: classifySource("", filename),
		Uploaded:   true,
		Status:     "processing",
	}, nil
}

// registerFileSource declares the upload intent and returns the new source ID.
// Shape: [[[filename]], notebook_id, [2], [1, null x9, [1]]]
func (c *Client) registerFileSource(ctx context.Context, notebookID, filename string) (string, error) {
	params := []any{
		[]any{[]any{filename}},
		notebookID,
		[]any{2},
		[]any{1, nil, nil, nil, nil, nil, nil, nil, nil, nil, []any{1}},
	}

	result, err := c.rpcCall(ctx, vo.RPCAddSourceFile, params, "/notebook/"+notebookID, false)
	if err != nil {
		return "", err
	}

	sourceID := extractUUID(result)
	if sourceID == "" {
		return "", fmt.Errorf("failed to get source ID from response")
	}

	return sourceID, nil
}

// startResumableUpload starts an upload session and returns the session URL
func (c *Client) startResumableUpload(ctx context.Context, notebookID, filename string, fileSize int64, sourceID string) (string, error) {
	base := rpc.UploadURL
	if c.uploadEndpoint != "" {
		base = c.uploadEndpoint
	}
	uploadURL := base + "?authuser=0"

	body := fmt.Sprintf(`{"PROJECT_ID":"%s","SOURCE_NAME":"%s","SOURCE_ID":"%s"}`,
		notebookID, filename, sourceID)

	req, err := http.NewRequestWithContext(ctx, "POST", uploadURL, strings.NewReader(body))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded;charset=UTF-8")
	req.Header.Set("Cookie", c.auth.CookieHeader())
	req.Header.Set("Origin", "https://notebooklm.google.com")
	req.Header.Set("Referer", "https://notebooklm.google.com/")
	req.Header.Set("x-goog-authuser", "0")
	req.Header.Set("x-goog-upload-command", "start")
	req.Header.Set("x-goog-upload-header-content-length", fmt.Sprintf("%d", fileSize))
	req.Header.Set("x-goog-upload-protocol", "resumable")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &rpc.StatusError{Status: resp.StatusCode}
	}

	resultURL := resp.Header.Get("x-goog-upload-url")
	if resultURL == "" {
		return "", fmt.Errorf("no upload URL in response headers")
	}

	return resultURL, nil
}

// uploadFile sends the file content to the upload session and finalizes it
func (c *Client) uploadFile(ctx context.Context, uploadURL, filePath string) error {
	file, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	req, err := http.NewRequestWithContext(ctx, "POST", uploadURL, file)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded;charset=utf-8")
	req.Header.Set("Cookie", c.auth.CookieHeader())
	req.Header.Set("Origin", "https://notebooklm.google.com")
	req.Header.Set("Referer", "https://notebooklm.google.com/")
	req.Header.Set("x-goog-authuser", "0")
	req.Header.Set("x-goog-upload-command", "upload, finalize")
	req.Header.Set("x-goog-upload-offset", "0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		return fmt.Errorf("upload failed with status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}
