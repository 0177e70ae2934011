package main

import (
	"context"
	"fmt"
	"time"

	"github.com/crosszan/nlm/notebooklm"
	vo "github.com/crosszan/nlm/vo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.AddCommand(generateAudioCmd, generateVideoCmd, generateQuizCmd, generateFlashcardsCmd, generateReportCmd)

	for _, c := range []*cobra.Command{generateAudioCmd, generateVideoCmd, generateQuizCmd, generateFlashcardsCmd, generateReportCmd} {
		c.Flags().String("notebook", "", "notebook id (defaults to current)")
		c.Flags().Bool("wait", false, "block until generation finishes")
		c.Flags().Duration("timeout", 10*time.Minute, "deadline when --wait is set")
	}

	generateAudioCmd.Flags().String("format", "deep-dive", "audio format: deep-dive, brief, critique, debate")
	generateAudioCmd.Flags().String("length", "default", "audio length: short, default, long")
	generateVideoCmd.Flags().String("format", "briefing", "video format: briefing, tutorial")
	generateVideoCmd.Flags().String("style", "classroom", "video style: classroom, whiteboard, conversation")
	generateQuizCmd.Flags().String("quantity", "standard", "question count: fewer, standard, more")
	generateQuizCmd.Flags().String("difficulty", "medium", "difficulty: easy, medium, hard")
	generateFlashcardsCmd.Flags().String("quantity", "standard", "card count: fewer, standard, more")
	generateReportCmd.Flags().String("format", "briefing", "report format: briefing, study-guide, faq, timeline")
}

var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen"},
	Short:   "Generate studio artifacts",
}

var audioFormats = map[string]vo.AudioFormat{
	"deep-dive": vo.AudioFormatDeepDive,
	"brief":     vo.AudioFormatBrief,
	"critique":  vo.AudioFormatCritique,
	"debate":    vo.AudioFormatDebate,
}

var audioLengths = map[string]vo.AudioLength{
	"short":   vo.AudioLengthShort,
	"default": vo.AudioLengthDefault,
	"long":    vo.AudioLengthLong,
}

var videoFormats = map[string]vo.VideoFormat{
	"briefing": vo.VideoFormatBriefing,
	"tutorial": vo.VideoFormatTutorial,
}

var videoStyles = map[string]vo.VideoStyle{
	"classroom":    vo.VideoStyleClassroom,
	"whiteboard":   vo.VideoStyleWhiteboard,
	"conversation": vo.VideoStyleConversation,
}

var quizQuantities = map[string]vo.QuizQuantity{
	"fewer":    vo.QuizQuantityFewer,
	"standard": vo.QuizQuantityStandard,
	"more":     vo.QuizQuantityMore,
}

var quizDifficulties = map[string]vo.QuizDifficulty{
	"easy":   vo.QuizDifficultyEasy,
	"medium": vo.QuizDifficultyMedium,
	"hard":   vo.QuizDifficultyHard,
}

var reportFormats = map[string]vo.ReportFormat{
	"briefing":    vo.ReportFormatBriefing,
	"study-guide": vo.ReportFormatStudyGuide,
	"faq":         vo.ReportFormatFAQ,
	"timeline":    vo.ReportFormatTimeline,
}

func enumFlag[T any](cmd *cobra.Command, name string, values map[string]T) (T, error) {
	var zero T
	raw, _ := cmd.Flags().GetString(name)
	v, ok := values[raw]
	if !ok {
		return zero, fmt.Errorf("invalid --%s value %q", name, raw)
	}
	return v, nil
}

// runGenerate starts a generation and optionally waits it out.
func runGenerate(cmd *cobra.Command, start func(ctx context.Context, client *notebooklm.Client, notebookID string) (*vo.GenerationStatus, error)) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	nbRef, err := notebookFlag(cmd)
	if err != nil {
		return err
	}
	id, err := notebookArg(cmd.Context(), client, nbRef)
	if err != nil {
		return err
	}

	status, err := start(cmd.Context(), client, id)
	if err != nil {
		return fmt.Errorf("start generation: %w", err)
	}

	fmt.Printf("Generation started, task %s (%s)\n", status.TaskID, status.Status)

	wait, _ := cmd.Flags().GetBool("wait")
	if !wait {
		return nil
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	final, err := client.WaitForCompletion(ctx, id, status.TaskID, 0)
	if err != nil {
		return err
	}

	if final.Status == "failed" {
		return fmt.Errorf("generation failed: %s", final.Error)
	}
	fmt.Printf("Generation %s\n", statusGlyph(final.Status))
	if final.DownloadURL != "" {
		fmt.Printf("Download URL: %s\n", final.DownloadURL)
	}
	return nil
}

var generateAudioCmd = &cobra.Command{
	Use:   "audio",
	Short: "Generate an audio overview",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := enumFlag(cmd, "format", audioFormats)
		if err != nil {
			return err
		}
		length, err := enumFlag(cmd, "length", audioLengths)
		if err != nil {
			return err
		}
		return runGenerate(cmd, func(ctx context.Context, client *notebooklm.Client, id string) (*vo.GenerationStatus, error) {
			return client.GenerateAudio(ctx, id, format, length)
		})
	},
}

var generateVideoCmd = &cobra.Command{
	Use:   "video",
	Short: "Generate a video overview",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := enumFlag(cmd, "format", videoFormats)
		if err != nil {
			return err
		}
		style, err := enumFlag(cmd, "style", videoStyles)
		if err != nil {
			return err
		}
		return runGenerate(cmd, func(ctx context.Context, client *notebooklm.Client, id string) (*vo.GenerationStatus, error) {
			return client.GenerateVideo(ctx, id, format, style)
		})
	},
}

var generateQuizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Generate a quiz",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		quantity, err := enumFlag(cmd, "quantity", quizQuantities)
		if err != nil {
			return err
		}
		difficulty, err := enumFlag(cmd, "difficulty", quizDifficulties)
		if err != nil {
			return err
		}
		return runGenerate(cmd, func(ctx context.Context, client *notebooklm.Client, id string) (*vo.GenerationStatus, error) {
			return client.GenerateQuiz(ctx, id, quantity, difficulty)
		})
	},
}

var generateFlashcardsCmd = &cobra.Command{
	Use:   "flashcards",
	Short: "Generate a flashcard deck",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		quantity, err := enumFlag(cmd, "quantity", quizQuantities)
		if err != nil {
			return err
		}
		return runGenerate(cmd, func(ctx context.Context, client *notebooklm.Client, id string) (*vo.GenerationStatus, error) {
			return client.GenerateFlashcards(ctx, id, quantity)
		})
	},
}

var generateReportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a written report",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := enumFlag(cmd, "format", reportFormats)
		if err != nil {
			return err
		}
		return runGenerate(cmd, func(ctx context.Context, client *notebooklm.Client, id string) (*vo.GenerationStatus, error) {
			return client.GenerateReport(ctx, id, format)
		})
	},
}
