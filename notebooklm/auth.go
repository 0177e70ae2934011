package notebooklm

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	vo "github.com/crosszan/nlm/vo"
)

const (
	defaultStorageDir = ".nlm"
	storageFileName   = "storage_state.json"
	envAuthJSON       = "NLM_AUTH_JSON"
	envHome           = "NLM_HOME"
)

// storageState mirrors Playwright's storage state file format; only the
// cookies are used.
type storageState struct {
	Cookies []vo.Cookie `json:"cookies"`
}

// LoadAuthTokens loads authentication cookies. Priority: explicit path,
// NLM_AUTH_JSON inline JSON, then the default storage location.
func LoadAuthTokens(storagePath string) (*vo.AuthTokens, error) {
	var data []byte
	var err error

	if storagePath != "" {
		data, err = os.ReadFile(storagePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read storage file: %w", err)
		}
	} else if envJSON := os.Getenv(envAuthJSON); envJSON != "" {
		data = []byte(envJSON)
	} else {
		path := GetStoragePath()
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("no auth found at %s: %w", path, err)
		}
	}

	return parseStorageState(data)
}

// GetStorageDir returns the storage directory path
func GetStorageDir() string {
	if home := os.Getenv(envHome); home != "" {
		return home
	}
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, defaultStorageDir)
}

// GetStoragePath returns the full storage file path
func GetStoragePath() string {
	return filepath.Join(GetStorageDir(), storageFileName)
}

// GetBrowserProfileDir returns the persistent browser profile directory
func GetBrowserProfileDir() string {
	return filepath.Join(GetStorageDir(), "browser_profile")
}

// parseStorageState parses Playwright storage state JSON, keeping only the
// cookies scoped to Google domains.
func parseStorageState(data []byte) (*vo.AuthTokens, error) {
	var state storageState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse storage state: %w", err)
	}

	if len(state.Cookies) == 0 {
		return nil, errors.New("no cookies found in storage state")
	}

	allowedDomains := []string{".google.com", "notebooklm.google.com", ".googleusercontent.com"}
	var cookies []vo.Cookie

	for _, cookie := range state.Cookies {
		for _, domain := range allowedDomains {
			if strings.HasSuffix(cookie.Domain, domain) || cookie.Domain == domain {
				cookies = append(cookies, cookie)
				break
			}
		}
	}

	if len(cookies) == 0 {
		return nil, errors.New("no valid Google cookies found")
	}

	return &vo.AuthTokens{Cookies: cookies}, nil
}

// ExtractCSRFToken extracts the SNlM0e token from homepage HTML
func ExtractCSRFToken(html string) (string, error) {
	re := regexp.MustCompile(`"SNlM0e"\s*:\s*"([^"]+)"`)
	matches := re.FindStringSubmatch(html)
	if len(matches) < 2 {
		return "", errors.New("CSRF token not found in page")
	}
	return matches[1], nil
}

// ExtractSessionID extracts the FdrFJe session ID from homepage HTML
func ExtractSessionID(html string) (string, error) {
	re := regexp.MustCompile(`"FdrFJe"\s*:\s*"([^"]+)"`)
	matches := re.FindStringSubmatch(html)
	if len(matches) < 2 {
		return "", errors.New("session ID not found in page")
	}
	return matches[1], nil
}

// StorageExists checks if a saved session exists
func StorageExists() bool {
	_, err := os.Stat(GetStoragePath())
	return err == nil
}
