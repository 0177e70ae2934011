package vo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusString(t *testing.T) {
	assert.Equal(t, "in_progress", StatusString(StatusInProgress))
	assert.Equal(t, "completed", StatusString(StatusCompleted))
	assert.Equal(t, "failed", StatusString(StatusFailed))
	assert.Equal(t, "pending", StatusString(StatusPending))
	assert.Equal(t, "pending", StatusString(0), "unknown codes read as pending")
	assert.Equal(t, "pending", StatusString(99))
}

func TestQuizQuantityWireValues(t *testing.T) {
	// The frontend sends the same code for standard and more.
	assert.Equal(t, QuizQuantityStandard, QuizQuantityMore)
	assert.NotEqual(t, QuizQuantityFewer, QuizQuantityStandard)
}

func TestArtifactTypeChecks(t *testing.T) {
	quiz := Artifact{Type: ContentTypeQuiz, Variant: VariantQuiz, StatusCode: StatusCompleted}
	assert.True(t, quiz.IsQuiz())
	assert.False(t, quiz.IsFlashcards())
	assert.True(t, quiz.IsCompleted())

	cards := Artifact{Type: ContentTypeQuiz, Variant: VariantFlashcards, StatusCode: StatusInProgress}
	assert.True(t, cards.IsFlashcards())
	assert.False(t, cards.IsQuiz())
	assert.True(t, cards.IsProcessing())

	audio := Artifact{Type: ContentTypeAudio, Variant: VariantQuiz}
	assert.False(t, audio.IsQuiz(), "variant only applies to type 4")

	fresh := Artifact{}
	assert.True(t, fresh.IsPending(), "zero status code reads as pending")
}

func TestGenerationStatusTerminal(t *testing.T) {
	assert.True(t, (&GenerationStatus{Status: "completed"}).IsTerminal())
	assert.True(t, (&GenerationStatus{Status: "failed"}).IsTerminal())
	assert.False(t, (&GenerationStatus{Status: "pending"}).IsTerminal())
	assert.False(t, (&GenerationStatus{Status: "in_progress"}).IsTerminal())
}
