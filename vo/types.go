// Package vo defines the value objects the NotebookLM client returns.
// Every entity is a transient client-side read model reconstructed on each
// call; fields default to zero values when the server's undeclared response
// shape omits or moves them.
package vo

import (
	"strings"
	"time"
)

// Notebook represents a NotebookLM notebook
type Notebook struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	OwnedByUser bool      `json:"owned_by_user"`
	CreatedAt   time.Time `json:"created_at"`
	SourceCount int       `json:"source_count,omitempty"`
}

// Source represents a source document in a notebook
type Source struct {
	ID         string    `json:"id"`
	NotebookID string    `json:"notebook_id"`
	Title      string    `json:"title"`
	SourceType string    `json:"source_type"` // url, youtube, pdf, text_file, text
	URL        string    `json:"url,omitempty"`
	Uploaded   bool      `json:"uploaded,omitempty"`
	Status     string    `json:"status"` // processing, ready, error
	CreatedAt  time.Time `json:"created_at"`
}

// Artifact represents a generated artifact (audio overview, video, quiz,
// flashcards, report, infographic, slide deck, data table, mind map).
type Artifact struct {
	ID          string            `json:"id"`
	NotebookID  string            `json:"notebook_id"`
	Title       string            `json:"title"`
	Type        StudioContentType `json:"type"`
	StatusCode  int               `json:"status_code"`
	Status      string            `json:"status"` // pending, in_progress, completed, failed
	Variant     int               `json:"variant,omitempty"`
	DownloadURL string            `json:"download_url,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

func (a *Artifact) IsPending() bool    { return a.StatusCode == StatusPending || a.StatusCode == 0 }
func (a *Artifact) IsProcessing() bool { return a.StatusCode == StatusInProgress }
func (a *Artifact) IsCompleted() bool  { return a.StatusCode == StatusCompleted }
func (a *Artifact) IsFailed() bool     { return a.StatusCode == StatusFailed }

// IsQuiz reports whether a type-4 artifact is a quiz. Quiz and flashcards
// share content type 4 and are told apart only by the variant code.
func (a *Artifact) IsQuiz() bool {
	return a.Type == ContentTypeQuiz && a.Variant == VariantQuiz
}

// IsFlashcards reports whether a type-4 artifact is a flashcard deck.
func (a *Artifact) IsFlashcards() bool {
	return a.Type == ContentTypeQuiz && a.Variant == VariantFlashcards
}

// GenerationStatus represents the state of an artifact generation task as
// observed by polling. Transitions: pending -> in_progress -> completed|failed.
type GenerationStatus struct {
	TaskID      string `json:"task_id"`
	Status      string `json:"status"` // pending, in_progress, completed, failed
	DownloadURL string `json:"download_url,omitempty"`
	Error       string `json:"error,omitempty"`
	ErrorCode   int    `json:"error_code,omitempty"`
}

// IsTerminal reports whether polling can stop.
func (g *GenerationStatus) IsTerminal() bool {
	return g.Status == "completed" || g.Status == "failed"
}

// IsRateLimited classifies a failed task as quota/rate-limit exhaustion.
// The server returns no structured indicator; matching error text and code
// 429 is the only signal available.
func (g *GenerationStatus) IsRateLimited() bool {
	if g.ErrorCode == 429 {
		return true
	}
	errText := strings.ToLower(g.Error)
	for _, kw := range []string{"rate limit", "quota", "too many requests"} {
		if strings.Contains(errText, kw) {
			return true
		}
	}
	return false
}

// Note represents a saved note in a notebook
type Note struct {
	ID         string `json:"id"`
	NotebookID string `json:"notebook_id"`
	Title      string `json:"title"`
	Content    string `json:"content"`
}

// NotebookDescription is the AI-generated summary of a notebook's sources
type NotebookDescription struct {
	Summary         string   `json:"summary"`
	SuggestedTopics []string `json:"suggested_topics,omitempty"`
}

// ReportSuggestion is a server-proposed report the notebook could generate
type ReportSuggestion struct {
	Title       string `json:"title"`
	Prompt      string `json:"prompt"`
	Description string `json:"description,omitempty"`
}

// AskResult represents the response from a chat query
type AskResult struct {
	Answer         string          `json:"answer"`
	ConversationID string          `json:"conversation_id"`
	TurnNumber     int             `json:"turn_number"`
	References     []ChatReference `json:"references,omitempty"`
}

// ChatReference represents a citation in a chat response
type ChatReference struct {
	SourceID    string `json:"source_id"`
	SourceTitle string `json:"source_title"`
	Text        string `json:"text"`
}

// ConversationTurn is one (question, answer) entry in the client-local
// conversation cache. Not synchronized with the server; the cache exists
// only to reconstruct multi-turn request payloads.
type ConversationTurn struct {
	Query      string `json:"query"`
	Answer     string `json:"answer"`
	TurnNumber int    `json:"turn_number"`
}

// Cookie is a browser cookie with its domain, needed for download
// redirects across google.com hosts.
type Cookie struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Domain string `json:"domain"`
}

// AuthTokens holds authentication credentials: Google session cookies plus
// the SNlM0e CSRF token and FdrFJe session id scraped from the homepage.
type AuthTokens struct {
	Cookies   []Cookie `json:"cookies"`
	CSRFToken string   `json:"csrf_token"`
	SessionID string   `json:"session_id"`
}

// CookieHeader returns cookies formatted as an HTTP header value
func (a *AuthTokens) CookieHeader() string {
	if len(a.Cookies) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, c := range a.Cookies {
		if sb.Len() > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(c.Name)
		sb.WriteString("=")
		sb.WriteString(c.Value)
	}
	return sb.String()
}
