package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	vo "github.com/crosszan/nlm/vo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(artifactCmd)
	artifactCmd.AddCommand(artifactListCmd, artifactStatusCmd, artifactDownloadCmd, artifactRmCmd)

	for _, c := range []*cobra.Command{artifactListCmd, artifactStatusCmd, artifactDownloadCmd, artifactRmCmd} {
		c.Flags().String("notebook", "", "notebook id (defaults to current)")
	}
	artifactDownloadCmd.Flags().StringP("output", "o", "", "output file path")
}

func artifactKind(a vo.Artifact) string {
	switch a.Type {
	case vo.ContentTypeAudio:
		return "audio"
	case vo.ContentTypeReport:
		return "report"
	case vo.ContentTypeVideo:
		return "video"
	case vo.ContentTypeQuiz:
		if a.Variant == vo.VariantFlashcards {
			return "flashcards"
		}
		return "quiz"
	case vo.ContentTypeMindMap:
		return "mind_map"
	case vo.ContentTypeInfographic:
		return "infographic"
	case vo.ContentTypeSlideDeck:
		return "slide_deck"
	case vo.ContentTypeDataTable:
		return "data_table"
	default:
		return fmt.Sprintf("type_%d", int(a.Type))
	}
}

var artifactCmd = &cobra.Command{
	Use:     "artifact",
	Aliases: []string{"artifacts", "studio"},
	Short:   "Manage studio artifacts",
}

var artifactListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List artifacts in a notebook",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
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

		artifacts, err := client.ListArtifacts(cmd.Context(), id)
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(artifacts)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tTYPE\tSTATUS\tCREATED")
		for _, a := range artifacts {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s %s\t%s\n",
				a.ID, a.Title, artifactKind(a), statusGlyph(a.Status), a.Status,
				a.CreatedAt.Format("2006-01-02 15:04"))
		}
		return w.Flush()
	},
}

var artifactStatusCmd = &cobra.Command{
	Use:   "status <task-id>",
	Short: "Show generation status for a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
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

		status, err := client.PollGeneration(cmd.Context(), id, args[0])
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(status)
		}

		fmt.Printf("Task:   %s\n", status.TaskID)
		fmt.Printf("Status: %s %s\n", statusGlyph(status.Status), status.Status)
		if status.DownloadURL != "" {
			fmt.Printf("URL:    %s\n", status.DownloadURL)
		}
		if status.Error != "" {
			fmt.Printf("Error:  %s\n", status.Error)
		}
		return nil
	},
}

var artifactDownloadCmd = &cobra.Command{
	Use:     "download <artifact-id>",
	Aliases: []string{"dl"},
	Short:   "Download a completed audio or video artifact",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
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
		artifactID, err := resolveArtifactID(cmd.Context(), client, id, args[0])
		if err != nil {
			return err
		}

		artifacts, err := client.ListArtifacts(cmd.Context(), id)
		if err != nil {
			return err
		}
		output, _ := cmd.Flags().GetString("output")
		for _, a := range artifacts {
			if a.ID != artifactID {
				continue
			}
			path, err := client.DownloadArtifact(cmd.Context(), id, artifactID, a.Type, output)
			if err != nil {
				return err
			}
			fmt.Printf("Saved %s\n", path)
			return nil
		}
		return fmt.Errorf("artifact %s not found", artifactID)
	},
}

var artifactRmCmd = &cobra.Command{
	Use:     "rm <artifact-id>",
	Aliases: []string{"delete"},
	Short:   "Delete an artifact",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
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
		artifactID, err := resolveArtifactID(cmd.Context(), client, id, args[0])
		if err != nil {
			return err
		}
		if err := client.DeleteArtifact(cmd.Context(), id, artifactID); err != nil {
			return err
		}
		fmt.Printf("Deleted artifact %s\n", artifactID)
		return nil
	},
}
