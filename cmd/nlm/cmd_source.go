package main

import (
	"fmt"
	"io"
	"os"
	"sync"
	"text/tabwriter"

	vo "github.com/crosszan/nlm/vo"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func init() {
	rootCmd.AddCommand(sourceCmd)
	sourceCmd.AddCommand(sourceListCmd, sourceAddCmd, sourceAddTextCmd, sourceAddFileCmd, sourceAddWebpageCmd, sourceRemoveCmd)

	sourceAddCmd.Flags().String("notebook", "", "notebook id (defaults to current)")
	sourceAddTextCmd.Flags().String("notebook", "", "notebook id (defaults to current)")
	sourceAddFileCmd.Flags().String("notebook", "", "notebook id (defaults to current)")
	sourceAddWebpageCmd.Flags().String("notebook", "", "notebook id (defaults to current)")
	sourceRemoveCmd.Flags().String("notebook", "", "notebook id (defaults to current)")
	sourceListCmd.Flags().String("notebook", "", "notebook id (defaults to current)")
}

var sourceCmd = &cobra.Command{
	Use:   "source",
	Short: "Manage notebook sources",
}

func notebookFlag(cmd *cobra.Command) ([]string, error) {
	nb, _ := cmd.Flags().GetString("notebook")
	if nb == "" {
		return nil, nil
	}
	return []string{nb}, nil
}

var sourceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sources in a notebook",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		nbRef, _ := notebookFlag(cmd)
		id, err := notebookArg(cmd.Context(), client, nbRef)
		if err != nil {
			return err
		}

		sources, err := client.ListSources(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("list sources: %w", err)
		}

		if flagJSON {
			return printJSON(sources)
		}
		if len(sources) == 0 {
			fmt.Println("No sources.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tTYPE\tSTATUS")
		for _, s := range sources {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.ID, s.Title, s.SourceType, s.Status)
		}
		return w.Flush()
	},
}

var sourceAddCmd = &cobra.Command{
	Use:   "add <url>...",
	Short: "Add one or more URL sources",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		nbRef, _ := notebookFlag(cmd)
		id, err := notebookArg(cmd.Context(), client, nbRef)
		if err != nil {
			return err
		}

		// Add URLs concurrently; each add is an independent RPC.
		var mu sync.Mutex
		var added []vo.Source

		g, gctx := errgroup.WithContext(cmd.Context())
		g.SetLimit(4)
		for _, sourceURL := range args {
			g.Go(func() error {
				source, err := client.AddSourceURL(gctx, id, sourceURL)
				if err != nil {
					return fmt.Errorf("add %s: %w", sourceURL, err)
				}
				mu.Lock()
				added = append(added, *source)
				mu.Unlock()
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		if flagJSON {
			return printJSON(added)
		}
		for _, s := range added {
			fmt.Printf("Added %s source %s (%s)\n", s.SourceType, s.Title, s.ID)
		}
		return nil
	},
}

var sourceAddTextCmd = &cobra.Command{
	Use:   "add-text <title>",
	Short: "Add a pasted-text source (content read from stdin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		nbRef, _ := notebookFlag(cmd)
		id, err := notebookArg(cmd.Context(), client, nbRef)
		if err != nil {
			return err
		}

		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		if len(content) == 0 {
			return fmt.Errorf("no content on stdin")
		}

		source, err := client.AddSourceText(cmd.Context(), id, args[0], string(content))
		if err != nil {
			return fmt.Errorf("add text source: %w", err)
		}

		fmt.Printf("Added text source %s (%s)\n", source.Title, source.ID)
		return nil
	},
}

var sourceAddFileCmd = &cobra.Command{
	Use:   "add-file <path>",
	Short: "Upload a local file as a source",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		nbRef, _ := notebookFlag(cmd)
		id, err := notebookArg(cmd.Context(), client, nbRef)
		if err != nil {
			return err
		}

		source, err := client.AddSourceFile(cmd.Context(), id, args[0])
		if err != nil {
			return fmt.Errorf("upload file: %w", err)
		}

		fmt.Printf("Uploaded %s (%s)\n", source.Title, source.ID)
		return nil
	},
}

var sourceAddWebpageCmd = &cobra.Command{
	Use:   "add-webpage <url>",
	Short: "Fetch a page, convert to markdown, add as text source",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		nbRef, _ := notebookFlag(cmd)
		id, err := notebookArg(cmd.Context(), client, nbRef)
		if err != nil {
			return err
		}

		source, err := client.AddSourceWebpage(cmd.Context(), id, args[0])
		if err != nil {
			return fmt.Errorf("add webpage: %w", err)
		}

		fmt.Printf("Added webpage source %s (%s)\n", source.Title, source.ID)
		return nil
	},
}

var sourceRemoveCmd = &cobra.Command{
	Use:     "rm <source-id>",
	Aliases: []string{"delete"},
	Short:   "Delete a source from a notebook",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		nbRef, _ := notebookFlag(cmd)
		id, err := notebookArg(cmd.Context(), client, nbRef)
		if err != nil {
			return err
		}

		if err := client.DeleteSource(cmd.Context(), id, args[0]); err != nil {
			return fmt.Errorf("delete source: %w", err)
		}

		fmt.Printf("Deleted source %s\n", args[0])
		return nil
	},
}
