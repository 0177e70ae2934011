package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(noteCmd)
	noteCmd.AddCommand(noteListCmd, noteAddCmd, noteEditCmd, noteRmCmd)

	for _, c := range []*cobra.Command{noteListCmd, noteAddCmd, noteEditCmd, noteRmCmd} {
		c.Flags().String("notebook", "", "notebook id (defaults to current)")
	}
	noteAddCmd.Flags().String("content", "", "note body (reads stdin when omitted)")
	noteEditCmd.Flags().String("title", "", "new title")
	noteEditCmd.Flags().String("content", "", "new body")
}

var noteCmd = &cobra.Command{
	Use:     "note",
	Aliases: []string{"notes"},
	Short:   "Manage notebook notes",
}

var noteListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List notes in a notebook",
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

		notes, err := client.ListNotes(cmd.Context(), id)
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(notes)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tPREVIEW")
		for _, n := range notes {
			preview := n.Content
			if len(preview) > 60 {
				preview = preview[:57] + "..."
			}
			preview = strings.ReplaceAll(preview, "\n", " ")
			fmt.Fprintf(w, "%s\t%s\t%s\n", n.ID, n.Title, preview)
		}
		return w.Flush()
	},
}

var noteAddCmd = &cobra.Command{
	Use:     "add <title>",
	Aliases: []string{"create"},
	Short:   "Create a note",
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

		content, _ := cmd.Flags().GetString("content")
		if content == "" {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
			content = string(data)
		}

		note, err := client.CreateNote(cmd.Context(), id, args[0], content)
		if err != nil {
			return err
		}
		fmt.Printf("Created note %s: %s\n", note.ID, note.Title)
		return nil
	},
}

var noteEditCmd = &cobra.Command{
	Use:   "edit <note-id>",
	Short: "Update a note's title or body",
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

		title, _ := cmd.Flags().GetString("title")
		content, _ := cmd.Flags().GetString("content")
		if title == "" && content == "" {
			return fmt.Errorf("nothing to update, pass --title or --content")
		}

		// The update RPC replaces both fields, so fetch the current note to
		// fill in whichever one was not given.
		if title == "" || content == "" {
			notes, err := client.ListNotes(cmd.Context(), id)
			if err != nil {
				return err
			}
			for _, n := range notes {
				if n.ID != args[0] {
					continue
				}
				if title == "" {
					title = n.Title
				}
				if content == "" {
					content = n.Content
				}
			}
		}

		if err := client.UpdateNote(cmd.Context(), id, args[0], title, content); err != nil {
			return err
		}
		fmt.Printf("Updated note %s\n", args[0])
		return nil
	},
}

var noteRmCmd = &cobra.Command{
	Use:     "rm <note-id>",
	Aliases: []string{"delete"},
	Short:   "Delete a note",
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
		if err := client.DeleteNote(cmd.Context(), id, args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted note %s\n", args[0])
		return nil
	},
}
