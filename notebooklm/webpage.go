package notebooklm

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"unicode/utf8"

	vo "github.com/crosszan/nlm/vo"
	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// maxWebpageChars caps converted page content; NotebookLM rejects very
// large pasted-text sources.
const maxWebpageChars = 200000

// AddSourceWebpage fetches a page, converts its HTML to markdown and adds
// the result as a pasted-text source. Useful for pages NotebookLM's own URL
// ingestion cannot reach (login walls, client-rendered content fetched from
// inside a session).
func (c *Client) AddSourceWebpage(ctx context.Context, notebookID, pageURL string) (*vo.Source, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch URL: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	md, err := htmltomarkdown.ConvertString(string(body))
	if err != nil {
		return nil, fmt.Errorf("convert to markdown: %w", err)
	}
	md = truncateToRuneBoundary(md, maxWebpageChars)

	source, err := c.AddSourceText(ctx, notebookID, pageURL, md)
	if err != nil {
		return nil, err
	}
	source.URL = pageURL
	return source, nil
}

// truncateToRuneBoundary cuts s to at most limit bytes without splitting a
// multi-byte rune.
func truncateToRuneBoundary(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}
