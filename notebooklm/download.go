package notebooklm

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"strings"
	"time"

	vo "github.com/crosszan/nlm/vo"
	"golang.org/x/net/publicsuffix"
)

// DownloadArtifact downloads a completed artifact's media to a file. Pass an
// empty artifactID to take the first completed artifact of the given type.
func (c *Client) DownloadArtifact(ctx context.Context, notebookID, artifactID string, contentType vo.StudioContentType, outputPath string) (string, error) {
	artifacts, err := c.ListArtifacts(ctx, notebookID)
	if err != nil {
		return "", fmt.Errorf("failed to list artifacts: %w", err)
	}

	var match *vo.Artifact
	for i := range artifacts {
		a := &artifacts[i]
		if a.Type != contentType || !a.IsCompleted() {
			continue
		}
		if artifactID == "" || a.ID == artifactID {
			match = a
			break
		}
	}

	if match == nil {
		return "", fmt.Errorf("no completed artifact of type %d found", contentType)
	}
	if match.DownloadURL == "" {
		return "", fmt.Errorf("artifact %s has no download URL", match.ID)
	}

	if err := c.downloadFile(ctx, match.DownloadURL, outputPath); err != nil {
		return "", fmt.Errorf("failed to download artifact: %w", err)
	}

	return outputPath, nil
}

// DownloadAudio downloads a completed audio overview
func (c *Client) DownloadAudio(ctx context.Context, notebookID, artifactID, outputPath string) (string, error) {
	return c.DownloadArtifact(ctx, notebookID, artifactID, vo.ContentTypeAudio, outputPath)
}

// DownloadVideo downloads a completed video overview
func (c *Client) DownloadVideo(ctx context.Context, notebookID, artifactID, outputPath string) (string, error) {
	return c.DownloadArtifact(ctx, notebookID, artifactID, vo.ContentTypeVideo, outputPath)
}

// downloadFile fetches a media URL to a local path. Media downloads bounce
// through several google.com hosts, so cookies go in a jar with proper
// public-suffix domain scoping instead of a single header.
func (c *Client) downloadFile(ctx context.Context, downloadURL, outputPath string) error {
	jar, err := cookiejar.New(&cookiejar.Options{
		PublicSuffixList: publicsuffix.List,
	})
	if err != nil {
		return fmt.Errorf("failed to create cookie jar: %w", err)
	}

	for _, cookie := range c.auth.Cookies {
		host := strings.TrimPrefix(cookie.Domain, ".")
		if host == "" {
			host = "google.com"
		}

		cookieURL, err := url.Parse("https://" + host + "/")
		if err != nil {
			continue
		}
		jar.SetCookies(cookieURL, []*http.Cookie{{
			Name:   cookie.Name,
			Value:  cookie.Value,
			Domain: cookie.Domain,
			Path:   "/",
		}})
	}

	downloadClient := &http.Client{
		Timeout: 120 * time.Second,
		Jar:     jar,
	}

	req, err := http.NewRequestWithContext(ctx, "GET", downloadURL, nil)
	if err != nil {
		return err
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36")

	resp, err := downloadClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download failed with status: %d", resp.StatusCode)
	}

	// An HTML body means a login page, not media
	if strings.Contains(resp.Header.Get("Content-Type"), "text/html") {
		return fmt.Errorf("received HTML instead of media file (authentication may have failed)")
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, resp.Body)
	return err
}
