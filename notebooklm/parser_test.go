package notebooklm

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/crosszan/nlm/rpc"
	vo "github.com/crosszan/nlm/vo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeJSON(t *testing.T, s string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(s), &v))
	return v
}

func TestParseNotebookList(t *testing.T) {
	data := decodeJSON(t, `[[
		["Notebook A", [], "nb_1"],
		["Notebook B", [["s1"],["s2"]], "nb_2", null, null, [null, true, null, null, null, [1735689600, 0]]]
	]]`)

	notebooks, err := parseNotebookList(data)
	require.NoError(t, err)
	require.Len(t, notebooks, 2)

	assert.Equal(t, "nb_1", notebooks[0].ID)
	assert.Equal(t, "Notebook A", notebooks[0].Title)
	assert.True(t, notebooks[0].OwnedByUser, "absent sharing flag reads as owned")
	assert.Zero(t, notebooks[0].SourceCount)
	assert.True(t, notebooks[0].CreatedAt.IsZero())

	assert.Equal(t, "nb_2", notebooks[1].ID)
	assert.False(t, notebooks[1].OwnedByUser)
	assert.Equal(t, 2, notebooks[1].SourceCount)
	assert.Equal(t, time.Unix(1735689600, 0).UTC(), notebooks[1].CreatedAt)
}

func TestParseNotebookListEmpty(t *testing.T) {
	notebooks, err := parseNotebookList(nil)
	require.NoError(t, err)
	assert.Empty(t, notebooks)

	notebooks, err = parseNotebookList(decodeJSON(t, `[[]]`))
	require.NoError(t, err)
	assert.Empty(t, notebooks)
}

func TestParseNotebookListNotArray(t *testing.T) {
	_, err := parseNotebookList("nope")
	assert.ErrorIs(t, err, rpc.ErrInvalidFormat)
}

func TestParseNotebookListSkipsMalformedEntries(t *testing.T) {
	data := decodeJSON(t, `[["garbage", ["Good", [], "nb_1"], 42]]`)
	notebooks, err := parseNotebookList(data)
	require.NoError(t, err)
	require.Len(t, notebooks, 1)
	assert.Equal(t, "nb_1", notebooks[0].ID)
}

func TestParseNotebookStripsThoughtPrefix(t *testing.T) {
	nb := parseNotebook(decodeJSON(t, `["thought\nActual Title", [], "nb_1"]`))
	assert.Equal(t, "Actual Title", nb.Title)
}

func TestParseSourceDepths(t *testing.T) {
	// The same source arrives in three historical nesting depths.
	flat := `["src_1", "Paper.pdf"]`
	medium := `[[["src_1"], "Paper.pdf", null]]`
	deep := `[[[["src_1"], "Paper.pdf", null]]]`

	for _, raw := range []string{flat, medium, deep} {
		source, err := parseSource(decodeJSON(t, raw), "nb_1")
		require.NoError(t, err, raw)
		assert.Equal(t, "src_1", source.ID, raw)
		assert.Equal(t, "Paper.pdf", source.Title, raw)
		assert.Equal(t, "nb_1", source.NotebookID, raw)
	}
}

func TestParseSourceFields(t *testing.T) {
	data := decodeJSON(t, `[[["src_9"], "Some Article", [null, 0, null, null, null, null, null, ["https://example.com/a"]], [null, 2]]]`)

	source, err := parseSource(data, "nb_1")
	require.NoError(t, err)
	assert.Equal(t, "src_9", source.ID)
	assert.Equal(t, "https://example.com/a", source.URL)
	assert.Equal(t, "url", source.SourceType)
	assert.False(t, source.Uploaded)
	assert.Equal(t, "ready", source.Status)
}

func TestParseSourceStatusCodes(t *testing.T) {
	processing := decodeJSON(t, `[[["s"], "t", null, [null, 1]]]`)
	source, err := parseSource(processing, "nb")
	require.NoError(t, err)
	assert.Equal(t, "processing", source.Status)

	failed := decodeJSON(t, `[[["s"], "t", null, [null, 3]]]`)
	source, err = parseSource(failed, "nb")
	require.NoError(t, err)
	assert.Equal(t, "error", source.Status)
}

func TestParseSourceErrors(t *testing.T) {
	_, err := parseSource(nil, "nb")
	assert.ErrorIs(t, err, rpc.ErrInvalidFormat)

	_, err = parseSource(decodeJSON(t, `[]`), "nb")
	assert.ErrorIs(t, err, rpc.ErrInvalidFormat)

	_, err = parseSource(decodeJSON(t, `[[[null], "no id here"]]`), "nb")
	assert.ErrorIs(t, err, rpc.ErrInvalidFormat)
}

func TestClassifySource(t *testing.T) {
	cases := []struct {
		url, title, want string
	}{
		{"https://www.youtube.com/watch?v=abc", "", "youtube"},
		{"https://youtu.be/abc", "", "youtube"},
		{"https://www.youtube.com/shorts/abc", "", "youtube"},
		{"https://example.com/post", "", "url"},
		{"", "notes.PDF", "pdf"},
		{"", "data.csv", "text_file"},
		{"", "readme.md", "text_file"},
		{"", "log.txt", "text_file"},
		{"", "Pasted text", "text"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, classifySource(tc.url, tc.title), "%s / %s", tc.url, tc.title)
	}
}

func TestParseSourceList(t *testing.T) {
	data := decodeJSON(t, `[["Notebook", [
		["src_1", "First"],
		["src_2", "Second"],
		[null]
	], "nb_1"]]`)

	sources, err := parseSourceList(data, "nb_1")
	require.NoError(t, err)
	require.Len(t, sources, 2, "unparseable entries are dropped, not fatal")
	assert.Equal(t, "src_1", sources[0].ID)
	assert.Equal(t, "src_2", sources[1].ID)
}

func TestParseArtifactCompletedQuiz(t *testing.T) {
	data := decodeJSON(t, `["art_1", "Quiz", 4, null, 3, null, null, null, null, [null, [2]]]`)

	a := parseArtifact(data, "nb_1")
	assert.Equal(t, "art_1", a.ID)
	assert.Equal(t, vo.ContentTypeQuiz, a.Type)
	assert.Equal(t, "completed", a.Status)
	assert.True(t, a.IsCompleted())
	assert.True(t, a.IsQuiz())
	assert.False(t, a.IsFlashcards())
}

func TestParseArtifactProcessingFlashcards(t *testing.T) {
	data := decodeJSON(t, `["art_2", "Cards", 4, null, 1, null, null, null, null, [null, [1]]]`)

	a := parseArtifact(data, "nb_1")
	assert.Equal(t, "in_progress", a.Status)
	assert.True(t, a.IsProcessing())
	assert.True(t, a.IsFlashcards())
	assert.False(t, a.IsQuiz())
}

func TestParseArtifactShortTree(t *testing.T) {
	// A tree shorter than every documented index still maps with defaults.
	a := parseArtifact(decodeJSON(t, `["art_3"]`), "nb_1")
	assert.Equal(t, "art_3", a.ID)
	assert.Equal(t, "pending", a.Status)
	assert.True(t, a.IsPending())
	assert.Zero(t, a.Variant)
	assert.Empty(t, a.DownloadURL)
	assert.True(t, a.CreatedAt.IsZero())
}

func TestParseArtifactMediaURL(t *testing.T) {
	data := decodeJSON(t, `["art_4", "Audio", 1, null, 3, null,
		[null, null, null, null, null, [
			["https://dl/thumb", null, "image/png"],
			["https://dl/audio", null, "audio/mp4"]
		]]]`)

	a := parseArtifact(data, "nb_1")
	assert.Equal(t, "https://dl/audio", a.DownloadURL, "audio/mp4 preferred over other media")
}

func TestParseArtifactMediaURLFallback(t *testing.T) {
	data := decodeJSON(t, `["art_5", "X", 1, null, 3, null,
		[null, null, null, null, null, [["https://dl/first", null, "image/png"]]]]`)
	assert.Equal(t, "https://dl/first", parseArtifact(data, "nb_1").DownloadURL)
}

func TestParseArtifactList(t *testing.T) {
	data := decodeJSON(t, `[[
		["art_1", "Quiz", 4, null, 3],
		"noise",
		["art_2", "Audio", 1, null, 2]
	]]`)

	artifacts, err := parseArtifactList(data, "nb_1")
	require.NoError(t, err)
	require.Len(t, artifacts, 2)
	assert.Equal(t, "nb_1", artifacts[0].NotebookID)
}

func TestParseGenerationStatus(t *testing.T) {
	data := decodeJSON(t, `[["task_1", null, null, null, 1]]`)

	status, err := parseGenerationStatus(data)
	require.NoError(t, err)
	assert.Equal(t, "task_1", status.TaskID)
	assert.Equal(t, "in_progress", status.Status)

	_, err = parseGenerationStatus(nil)
	assert.ErrorIs(t, err, rpc.ErrInvalidFormat)
}

func TestParsePollStatus(t *testing.T) {
	data := decodeJSON(t, `[null, "completed", "https://dl/audio.mp4", null, null]`)

	status := parsePollStatus(data, "task_1")
	assert.Equal(t, "task_1", status.TaskID)
	assert.Equal(t, "completed", status.Status)
	assert.Equal(t, "https://dl/audio.mp4", status.DownloadURL)
	assert.True(t, status.IsTerminal())
}

func TestParsePollStatusNilIsPending(t *testing.T) {
	status := parsePollStatus(nil, "task_1")
	assert.Equal(t, "pending", status.Status)
	assert.False(t, status.IsTerminal())
}

func TestParsePollStatusFailure(t *testing.T) {
	data := decodeJSON(t, `[null, "failed", null, "Quota exceeded for audio generation", 429]`)

	status := parsePollStatus(data, "task_1")
	assert.Equal(t, "failed", status.Status)
	assert.True(t, status.IsTerminal())
	assert.True(t, status.IsRateLimited())
}

func TestGenerationStatusRateLimitClassification(t *testing.T) {
	cases := []struct {
		err  string
		code int
		want bool
	}{
		{"Rate limit exceeded", 0, true},
		{"daily QUOTA reached", 0, true},
		{"Too many requests", 0, true},
		{"", 429, true},
		{"internal error", 500, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		g := &vo.GenerationStatus{Status: "failed", Error: tc.err, ErrorCode: tc.code}
		assert.Equal(t, tc.want, g.IsRateLimited(), "%q code=%d", tc.err, tc.code)
	}
}

func TestParseNoteList(t *testing.T) {
	data := decodeJSON(t, `[[
		["note_1", "Shopping", "milk, eggs"],
		["note_2", "Ideas", ""]
	]]`)

	notes, err := parseNoteList(data, "nb_1")
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "note_1", notes[0].ID)
	assert.Equal(t, "Shopping", notes[0].Title)
	assert.Equal(t, "milk, eggs", notes[0].Content)
	assert.Equal(t, "nb_1", notes[0].NotebookID)

	notes, err = parseNoteList(nil, "nb_1")
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestParseNotebookDescription(t *testing.T) {
	data := decodeJSON(t, `["A summary of the sources.", [["Topic one"], ["Topic two"], [null]]]`)

	desc := parseNotebookDescription(data)
	assert.Equal(t, "A summary of the sources.", desc.Summary)
	assert.Equal(t, []string{"Topic one", "Topic two"}, desc.SuggestedTopics)
}

func TestParseReportSuggestions(t *testing.T) {
	data := decodeJSON(t, `[[
		["Briefing Doc", "Create a briefing document", "Key facts condensed"],
		["", "", ""],
		["Study Guide", "Create a study guide"]
	]]`)

	suggestions := parseReportSuggestions(data)
	require.Len(t, suggestions, 2)
	assert.Equal(t, "Briefing Doc", suggestions[0].Title)
	assert.Equal(t, "Create a briefing document", suggestions[0].Prompt)
	assert.Equal(t, "Key facts condensed", suggestions[0].Description)
	assert.Equal(t, "Study Guide", suggestions[1].Title)
	assert.Empty(t, suggestions[1].Description)
}
