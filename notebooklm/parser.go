package notebooklm

import (
	"fmt"
	"strings"

	"github.com/crosszan/nlm/rpc"
	vo "github.com/crosszan/nlm/vo"
)

// The mappers below are the only place positional knowledge of NotebookLM's
// undocumented response shapes lives. Each one documents the indices it
// reads; all access goes through the rpc tree helpers, so a shorter or
// reshaped tree degrades to default field values instead of failing. When
// Google moves a field, only the mapper changes.

// parseNotebookList parses the list notebooks response.
// Notebooks are the elements of payload[0].
func parseNotebookList(data any) ([]vo.Notebook, error) {
	if data == nil {
		return []vo.Notebook{}, nil
	}
	if _, ok := data.([]any); !ok {
		return nil, fmt.Errorf("%w: notebook list is not an array", rpc.ErrInvalidFormat)
	}

	notebooks := []vo.Notebook{}
	for _, item := range rpc.List(data, 0) {
		if _, ok := item.([]any); !ok {
			continue // skip malformed entries
		}
		notebooks = append(notebooks, *parseNotebook(item))
	}

	return notebooks, nil
}

// parseNotebook maps one notebook tree.
// Indices: title at 0 (the server sometimes prefixes generated titles with
// "thought\n"; stripped), id at 2, ownership derived from data[5][1]
// (true there means shared-with-user, so owned = not true), creation
// timestamp as a [seconds, nanos] pair at data[5][5].
func parseNotebook(data any) *vo.Notebook {
	nb := &vo.Notebook{
		Title:       strings.TrimPrefix(rpc.Str(data, 0), "thought\n"),
		ID:          rpc.Str(data, 2),
		OwnedByUser: !rpc.Bool(data, 5, 1),
		CreatedAt:   rpc.Timestamp(data, 5, 5),
	}
	if sources := rpc.List(data, 1); sources != nil {
		nb.SourceCount = len(sources)
	}
	return nb
}

// sourceEntry resolves the three historical nesting depths a source tree can
// arrive in: flat [id, title], medium [[[id], title, meta]] and deep
// [[[[id], title, meta]]]. The depths are told apart by whether the second
// level's first element is itself a list.
func sourceEntry(arr []any) []any {
	if len(arr) == 0 {
		return nil
	}
	if _, ok := arr[0].(string); ok {
		return arr // flat
	}
	level1, ok := arr[0].([]any)
	if !ok || len(level1) == 0 {
		return arr
	}
	if inner, ok := level1[0].([]any); ok && len(inner) > 0 {
		if _, deeper := inner[0].([]any); deeper {
			return inner // deep: inner is [[id], title, meta]
		}
		return level1 // medium: level1 is [[id], title, meta]
	}
	return level1
}

// parseSource maps one source tree. This is the one mapper that errors on a
// completely empty input: there is no reasonable default for "which id".
// Indices within the resolved entry: id at 0 (or 0[0]), title at 1, URL at
// 2[7][0], upload flag when 2[1] is a positive integer, status code at 3[1].
func parseSource(data any, notebookID string) (*vo.Source, error) {
	arr, ok := data.([]any)
	if !ok || len(arr) == 0 {
		return nil, fmt.Errorf("%w: empty source tree", rpc.ErrInvalidFormat)
	}

	entry := sourceEntry(arr)
	if len(entry) == 0 {
		return nil, fmt.Errorf("%w: empty source entry", rpc.ErrInvalidFormat)
	}

	source := &vo.Source{
		NotebookID: notebookID,
		Status:     "ready",
	}

	if id, ok := entry[0].(string); ok {
		source.ID = id
	} else {
		source.ID = rpc.Str(entry, 0, 0)
	}
	source.Title = rpc.Str(entry, 1)
	source.URL = rpc.Str(entry, 2, 7, 0)
	source.Uploaded = rpc.Int(entry, 2, 1) > 0

	// Status: 1=processing, 2=ready, 3=error
	switch rpc.Int(entry, 3, 1) {
	case 1:
		source.Status = "processing"
	case 3:
		source.Status = "error"
	}

	source.SourceType = classifySource(source.URL, source.Title)

	if source.ID == "" {
		return nil, fmt.Errorf("%w: could not extract source ID", rpc.ErrInvalidFormat)
	}

	return source, nil
}

// classifySource derives the source type from URL pattern or filename suffix.
func classifySource(sourceURL, title string) string {
	if sourceURL != "" {
		if isYouTubeURL(sourceURL) {
			return "youtube"
		}
		return "url"
	}

	lower := strings.ToLower(title)
	switch {
	case strings.HasSuffix(lower, ".pdf"):
		return "pdf"
	case strings.HasSuffix(lower, ".txt"),
		strings.HasSuffix(lower, ".md"),
		strings.HasSuffix(lower, ".csv"):
		return "text_file"
	}
	return "text"
}

// isYouTubeURL checks if URL is a YouTube video link
func isYouTubeURL(url string) bool {
	return strings.Contains(url, "youtube.com/watch") ||
		strings.Contains(url, "youtu.be/") ||
		strings.Contains(url, "youtube.com/shorts/")
}

// parseSourceList parses all sources out of a get-notebook response.
// The notebook tree is payload[0]; its sources are the elements of
// payload[0][1].
func parseSourceList(data any, notebookID string) ([]vo.Source, error) {
	if data == nil {
		return []vo.Source{}, nil
	}

	sources := []vo.Source{}
	for _, src := range rpc.List(data, 0, 1) {
		source, err := parseSource(src, notebookID)
		if err != nil {
			continue
		}
		sources = append(sources, *source)
	}

	return sources, nil
}

// parseArtifactList parses the list artifacts response.
// Artifacts are the elements of payload[0].
func parseArtifactList(data any, notebookID string) ([]vo.Artifact, error) {
	if data == nil {
		return []vo.Artifact{}, nil
	}

	artifacts := []vo.Artifact{}
	for _, item := range rpc.List(data, 0) {
		if _, ok := item.([]any); !ok {
			continue
		}
		artifacts = append(artifacts, *parseArtifact(item, notebookID))
	}

	return artifacts, nil
}

// parseArtifact maps one artifact tree.
// Indices: id at 0, title at 1, type code at 2, status code at 4, creation
// [seconds, nanos] pair at 15, variant code at 9[1][0] (disambiguates quiz
// vs flashcards, which share type code 4), media download URL inside the
// metadata list at 6[5].
func parseArtifact(data any, notebookID string) *vo.Artifact {
	statusCode := rpc.Int(data, 4)

	return &vo.Artifact{
		ID:          rpc.Str(data, 0),
		NotebookID:  notebookID,
		Title:       rpc.Str(data, 1),
		Type:        vo.StudioContentType(rpc.Int(data, 2)),
		StatusCode:  statusCode,
		Status:      vo.StatusString(statusCode),
		Variant:     rpc.Int(data, 9, 1, 0),
		CreatedAt:   rpc.Timestamp(data, 15),
		DownloadURL: mediaURL(rpc.List(data, 6, 5)),
	}
}

// mediaURL picks the download URL out of an artifact's media list.
// Each media entry is [url, ?, mime_type]; audio/mp4 and video/mp4 are
// preferred, first entry otherwise.
func mediaURL(mediaList []any) string {
	for _, item := range mediaList {
		if mime := rpc.Str(item, 2); mime == "audio/mp4" || mime == "video/mp4" {
			if url := rpc.Str(item, 0); url != "" {
				return url
			}
		}
	}
	return rpc.Str(mediaList, 0, 0)
}

// parseGenerationStatus maps a create-artifact response.
// The task tree is payload[0]: task id at 0, status code at 4.
func parseGenerationStatus(data any) (*vo.GenerationStatus, error) {
	if data == nil {
		return nil, fmt.Errorf("%w: empty generation response", rpc.ErrInvalidFormat)
	}

	task := rpc.Index(data, 0)
	return &vo.GenerationStatus{
		TaskID: rpc.Str(task, 0),
		Status: vo.StatusString(rpc.Int(task, 4)),
	}, nil
}

// parsePollStatus maps a poll response for a known task.
// Indices: status string at 1, download URL at 2, error message at 3, error
// code at 4. A nil payload means the task has not materialized server-side
// yet and reads as pending.
func parsePollStatus(data any, taskID string) *vo.GenerationStatus {
	status := &vo.GenerationStatus{
		TaskID: taskID,
		Status: "pending",
	}

	if data == nil {
		return status
	}

	if s := rpc.Str(data, 1); s != "" {
		status.Status = s
	}
	status.DownloadURL = rpc.Str(data, 2)
	status.Error = rpc.Str(data, 3)
	status.ErrorCode = rpc.Int(data, 4)

	return status
}

// parseNoteList parses the list notes response.
// Notes are the elements of payload[0]; per note: id at 0, title at 1,
// content at 2.
func parseNoteList(data any, notebookID string) ([]vo.Note, error) {
	if data == nil {
		return []vo.Note{}, nil
	}

	notes := []vo.Note{}
	for _, item := range rpc.List(data, 0) {
		if _, ok := item.([]any); !ok {
			continue
		}
		notes = append(notes, vo.Note{
			ID:         rpc.Str(item, 0),
			NotebookID: notebookID,
			Title:      rpc.Str(item, 1),
			Content:    rpc.Str(item, 2),
		})
	}

	return notes, nil
}

// parseNotebookDescription maps the get-description response.
// Summary at 0; suggested topics at 1, each wrapped as [topic].
func parseNotebookDescription(data any) *vo.NotebookDescription {
	desc := &vo.NotebookDescription{
		Summary: rpc.Str(data, 0),
	}
	for _, item := range rpc.List(data, 1) {
		if topic := rpc.Str(item, 0); topic != "" {
			desc.SuggestedTopics = append(desc.SuggestedTopics, topic)
		}
	}
	return desc
}

// parseReportSuggestions maps the report suggestions response.
// Suggestions are the elements of payload[0]; per entry: title at 0,
// prompt at 1, description at 2.
func parseReportSuggestions(data any) []vo.ReportSuggestion {
	suggestions := []vo.ReportSuggestion{}
	for _, item := range rpc.List(data, 0) {
		title := rpc.Str(item, 0)
		prompt := rpc.Str(item, 1)
		if title == "" && prompt == "" {
			continue
		}
		suggestions = append(suggestions, vo.ReportSuggestion{
			Title:       title,
			Prompt:      prompt,
			Description: rpc.Str(item, 2),
		})
	}
	return suggestions
}
