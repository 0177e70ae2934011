package notebooklm

import (
	"context"
	"fmt"

	vo "github.com/crosszan/nlm/vo"
)

// ========== Artifact Operations ==========

// generateParams builds the creation tree shared by all studio content
// types. Shape:
// [[2], notebook_id, [null, null, content_type, source_ids_triple, null, null,
//
//	[null, [instructions, opt_a, null, source_ids_double, "en", null, opt_b]]]]
//
// where opt_a/opt_b carry the per-type options (length/format for audio,
// quantity/difficulty for quizzes, and so on). Zero options encode as null.
func generateParams(notebookID string, contentType vo.StudioContentType, sourceIDs []string, optA, optB int) []any {
	// source_ids_triple: [[[sid]] for each source]
	triple := make([]any, len(sourceIDs))
	// source_ids_double: [[sid] for each source]
	double := make([]any, len(sourceIDs))
	for i, sid := range sourceIDs {
		triple[i] = []any{[]any{sid}}
		double[i] = []any{sid}
	}

	var a, b any
	if optA != 0 {
		a = optA
	}
	if optB != 0 {
		b = optB
	}

	return []any{
		[]any{2},
		notebookID,
		[]any{
			nil,
			nil,
			int(contentType),
			triple,
			nil,
			nil,
			[]any{
				nil,
				[]any{
					nil, // instructions
					a,
					nil,
					double,
					"en",
					nil,
					b,
				},
			},
		},
	}
}

// generate kicks off creation of a studio artifact over all of the
// notebook's sources and returns the accepted task.
func (c *Client) generate(ctx context.Context, notebookID string, contentType vo.StudioContentType, optA, optB int) (*vo.GenerationStatus, error) {
	sourceIDs, err := c.getSourceIDs(ctx, notebookID)
	if err != nil {
		return nil, fmt.Errorf("failed to get source IDs: %w", err)
	}

	params := generateParams(notebookID, contentType, sourceIDs, optA, optB)
	result, err := c.rpcCall(ctx, vo.RPCCreateArtifact, params, "/notebook/"+notebookID, false)
	if err != nil {
		return nil, err
	}

	return parseGenerationStatus(result)
}

// GenerateAudio generates an audio overview from notebook sources
func (c *Client) GenerateAudio(ctx context.Context, notebookID string, format vo.AudioFormat, length vo.AudioLength) (*vo.GenerationStatus, error) {
	return c.generate(ctx, notebookID, vo.ContentTypeAudio, int(length), int(format))
}

// GenerateVideo generates a video overview
func (c *Client) GenerateVideo(ctx context.Context, notebookID string, format vo.VideoFormat, style vo.VideoStyle) (*vo.GenerationStatus, error) {
	return c.generate(ctx, notebookID, vo.ContentTypeVideo, int(format), int(style))
}

// GenerateQuiz generates a quiz (content type 4, variant 2)
func (c *Client) GenerateQuiz(ctx context.Context, notebookID string, quantity vo.QuizQuantity, difficulty vo.QuizDifficulty) (*vo.GenerationStatus, error) {
	return c.generate(ctx, notebookID, vo.ContentTypeQuiz, int(quantity), int(difficulty))
}

// GenerateFlashcards generates a flashcard deck (content type 4, variant 1)
func (c *Client) GenerateFlashcards(ctx context.Context, notebookID string, quantity vo.QuizQuantity) (*vo.GenerationStatus, error) {
	return c.generate(ctx, notebookID, vo.ContentTypeQuiz, int(quantity), 0)
}

// GenerateReport generates a written report
func (c *Client) GenerateReport(ctx context.Context, notebookID string, format vo.ReportFormat) (*vo.GenerationStatus, error) {
	return c.generate(ctx, notebookID, vo.ContentTypeReport, int(format), 0)
}

// PollGeneration checks the status of an artifact generation task.
// A null payload is legitimate here: the task may not have started yet.
func (c *Client) PollGeneration(ctx context.Context, notebookID, taskID string) (*vo.GenerationStatus, error) {
	// Parameter order is [task_id, notebook_id, [2]]
	params := []any{taskID, notebookID, []any{2}}
	result, err := c.rpcCall(ctx, vo.RPCPollStudio, params, "/notebook/"+notebookID, true)
	if err != nil {
		return nil, err
	}

	if result == nil {
		// The poll RPC knows nothing about the task yet; check whether the
		// artifact list does before reporting pending.
		artifacts, err := c.ListArtifacts(ctx, notebookID)
		if err == nil {
			for i := range artifacts {
				if artifacts[i].ID == taskID {
					return &vo.GenerationStatus{
						TaskID:      taskID,
						Status:      artifacts[i].Status,
						DownloadURL: artifacts[i].DownloadURL,
					}, nil
				}
			}
		}
		return &vo.GenerationStatus{TaskID: taskID, Status: "pending"}, nil
	}

	return parsePollStatus(result, taskID), nil
}

// ListArtifacts lists all artifacts in a notebook
func (c *Client) ListArtifacts(ctx context.Context, notebookID string) ([]vo.Artifact, error) {
	// The filter string excludes server-suggested artifacts the user never
	// requested, matching what the frontend sends.
	params := []any{[]any{2}, notebookID, `NOT artifact.status = "ARTIFACT_STATUS_SUGGESTED"`}
	result, err := c.rpcCall(ctx, vo.RPCListArtifacts, params, "/notebook/"+notebookID, true)
	if err != nil {
		return nil, err
	}

	return parseArtifactList(result, notebookID)
}

// DeleteArtifact deletes an artifact
func (c *Client) DeleteArtifact(ctx context.Context, notebookID, artifactID string) error {
	params := []any{[]any{artifactID}, []any{2}}
	_, err := c.rpcCall(ctx, vo.RPCDeleteArtifact, params, "/notebook/"+notebookID, true)
	return err
}
