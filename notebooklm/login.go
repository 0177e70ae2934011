package notebooklm

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/crosszan/nlm/pkg/playwright"
	"github.com/crosszan/nlm/rpc"
	pw "github.com/playwright-community/playwright-go"
)

// Login performs browser-based Google authentication using a persistent
// browser profile, then saves the session's storage state for later runs.
func Login() error {
	fmt.Fprintln(os.Stderr, "Opening browser for Google login...")
	fmt.Fprintln(os.Stderr, "Please sign in to your Google account.")

	storageDir := GetStorageDir()
	if err := os.MkdirAll(storageDir, 0700); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}

	browserProfileDir := GetBrowserProfileDir()
	if err := os.MkdirAll(browserProfileDir, 0700); err != nil {
		return fmt.Errorf("failed to create browser profile directory: %w", err)
	}

	pctx, err := playwright.LaunchPersistentContext(
		browserProfileDir,
		playwright.WithHeadless(false),
		playwright.WithBrowserType("chromium"),
	)
	if err != nil {
		return fmt.Errorf("failed to create browser: %w", err)
	}
	defer pctx.Close()

	var page pw.Page
	if pages := pctx.Pages(); len(pages) > 0 {
		page = pages[0]
	} else {
		page, err = pctx.NewPage()
		if err != nil {
			return fmt.Errorf("failed to create page: %w", err)
		}
	}

	if _, err = page.Goto(rpc.BaseURL, pw.PageGotoOptions{
		WaitUntil: pw.WaitUntilStateNetworkidle,
	}); err != nil {
		return fmt.Errorf("failed to navigate: %w", err)
	}

	fmt.Fprintln(os.Stderr, "\nInstructions:")
	fmt.Fprintln(os.Stderr, "1. Complete the Google login in the browser window")
	fmt.Fprintln(os.Stderr, "2. Wait until you see the NotebookLM homepage")
	fmt.Fprintln(os.Stderr, "3. The browser will close automatically once logged in")

	maxWait := 5 * time.Minute
	pollInterval := 2 * time.Second
	start := time.Now()

	for time.Since(start) < maxWait {
		if isLoggedInURL(page.URL()) {
			// Verify the session actually carries tokens
			content, err := page.Content()
			if err == nil {
				if _, err := ExtractCSRFToken(content); err == nil {
					fmt.Fprintln(os.Stderr, "Login successful!")

					storagePath := GetStoragePath()
					if err := pctx.StorageState(storagePath); err != nil {
						return fmt.Errorf("failed to save storage state: %w", err)
					}
					// The file holds session cookies
					if err := os.Chmod(storagePath, 0600); err != nil {
						return fmt.Errorf("failed to set file permissions: %w", err)
					}

					fmt.Fprintf(os.Stderr, "Credentials saved to %s\n", storagePath)
					return nil
				}
			}
		}

		time.Sleep(pollInterval)
	}

	return fmt.Errorf("login timed out after %v", maxWait)
}

// isLoggedInURL checks that the browser landed on NotebookLM itself rather
// than the Google accounts login flow.
func isLoggedInURL(url string) bool {
	return strings.Contains(url, "notebooklm.google.com") &&
		!strings.Contains(url, "accounts.google.com")
}

// LoginWithExistingCookies tries the saved session first and falls back to
// interactive browser login.
func LoginWithExistingCookies() (*Client, error) {
	if StorageExists() {
		client, err := NewClientFromStorage("")
		if err == nil {
			if err := client.RefreshTokens(context.Background()); err == nil {
				return client, nil
			}
		}
		fmt.Fprintln(os.Stderr, "Existing session expired, need to re-login")
	}

	if err := Login(); err != nil {
		return nil, err
	}

	return NewClientFromStorage("")
}
