package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(notebookCmd, describeCmd, suggestionsCmd)
	notebookCmd.AddCommand(notebookListCmd, notebookCreateCmd, notebookRenameCmd, notebookDeleteCmd, notebookUseCmd)
}

var notebookCmd = &cobra.Command{
	Use:     "notebook",
	Aliases: []string{"nb"},
	Short:   "Manage notebooks",
}

var notebookListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all notebooks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		notebooks, err := client.ListNotebooks(cmd.Context())
		if err != nil {
			return fmt.Errorf("list notebooks: %w", err)
		}

		if flagJSON {
			return printJSON(notebooks)
		}

		if len(notebooks) == 0 {
			fmt.Println("No notebooks.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tSOURCES\tOWNED\tCREATED")
		for _, nb := range notebooks {
			created := ""
			if !nb.CreatedAt.IsZero() {
				created = nb.CreatedAt.Format("2006-01-02")
			}
			fmt.Fprintf(w, "%s\t%s\t%d\t%v\t%s\n", nb.ID, nb.Title, nb.SourceCount, nb.OwnedByUser, created)
		}
		return w.Flush()
	},
}

var notebookCreateCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create a new notebook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		nb, err := client.CreateNotebook(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("create notebook: %w", err)
		}

		if flagJSON {
			return printJSON(nb)
		}
		fmt.Printf("Created notebook %s (%s)\n", nb.Title, nb.ID)
		return nil
	},
}

var notebookRenameCmd = &cobra.Command{
	Use:   "rename <id> <title>",
	Short: "Rename a notebook",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		id, err := resolveNotebookID(cmd.Context(), client, args[0])
		if err != nil {
			return err
		}

		if err := client.RenameNotebook(cmd.Context(), id, args[1]); err != nil {
			return fmt.Errorf("rename notebook: %w", err)
		}
		fmt.Printf("Renamed %s to %q\n", id, args[1])
		return nil
	},
}

var notebookDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a notebook",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		id, err := resolveNotebookID(cmd.Context(), client, args[0])
		if err != nil {
			return err
		}

		if err := client.DeleteNotebook(cmd.Context(), id); err != nil {
			return fmt.Errorf("delete notebook: %w", err)
		}

		cc := loadContext()
		if cc.CurrentNotebook == id {
			cc.CurrentNotebook = ""
			cc.CurrentConversation = ""
			_ = saveContext(cc)
		}

		fmt.Printf("Deleted notebook %s\n", id)
		return nil
	},
}

var notebookUseCmd = &cobra.Command{
	Use:   "use <id>",
	Short: "Set the current notebook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		id, err := resolveNotebookID(cmd.Context(), client, args[0])
		if err != nil {
			return err
		}

		cc := loadContext()
		cc.CurrentNotebook = id
		cc.CurrentConversation = ""
		if err := saveContext(cc); err != nil {
			return fmt.Errorf("save context: %w", err)
		}

		fmt.Printf("Current notebook: %s\n", id)
		return nil
	},
}

var describeCmd = &cobra.Command{
	Use:   "describe [notebook]",
	Short: "Show the AI-generated notebook summary",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		id, err := notebookArg(cmd.Context(), client, args)
		if err != nil {
			return err
		}

		desc, err := client.GetNotebookDescription(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get description: %w", err)
		}

		if flagJSON {
			return printJSON(desc)
		}
		if desc.Summary == "" {
			fmt.Println("No summary available yet.")
			return nil
		}
		fmt.Println(desc.Summary)
		for _, topic := range desc.SuggestedTopics {
			fmt.Printf("  - %s\n", topic)
		}
		return nil
	},
}

var suggestionsCmd = &cobra.Command{
	Use:   "suggestions [notebook]",
	Short: "List server-suggested reports for a notebook",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		id, err := notebookArg(cmd.Context(), client, args)
		if err != nil {
			return err
		}

		suggestions, err := client.ListReportSuggestions(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("list suggestions: %w", err)
		}

		if flagJSON {
			return printJSON(suggestions)
		}
		if len(suggestions) == 0 {
			fmt.Println("No suggestions.")
			return nil
		}
		for _, s := range suggestions {
			fmt.Printf("%s\n", s.Title)
			if s.Description != "" {
				fmt.Printf("  %s\n", s.Description)
			}
		}
		return nil
	},
}
