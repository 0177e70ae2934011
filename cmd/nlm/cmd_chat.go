package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(askCmd, conversationCmd)
	conversationCmd.AddCommand(conversationClearCmd)

	askCmd.Flags().String("notebook", "", "notebook id (defaults to current)")
	askCmd.Flags().Bool("new", false, "start a fresh conversation")
	askCmd.Flags().StringSlice("source", nil, "restrict the question to specific source ids")
}

var askCmd = &cobra.Command{
	Use:   "ask <question...>",
	Short: "Ask a question grounded in a notebook's sources",
	Args:  cobra.MinimumNArgs(1),
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

		cc := loadContext()
		conversationID := cc.CurrentConversation
		if fresh, _ := cmd.Flags().GetBool("new"); fresh {
			conversationID = ""
		}

		sources, _ := cmd.Flags().GetStringSlice("source")
		question := strings.Join(args, " ")

		result, err := client.Ask(cmd.Context(), id, conversationID, question, sources)
		if err != nil {
			return err
		}

		// The client allocates a conversation id on the first turn; keep it
		// so the next ask continues the same thread.
		if result.ConversationID != cc.CurrentConversation {
			cc.CurrentConversation = result.ConversationID
			if err := saveContext(cc); err != nil {
				return err
			}
		}

		if flagJSON {
			return printJSON(result)
		}
		fmt.Println(result.Answer)
		return nil
	},
}

var conversationCmd = &cobra.Command{
	Use:     "conversation",
	Aliases: []string{"conv"},
	Short:   "Manage the current chat conversation",
	RunE: func(cmd *cobra.Command, args []string) error {
		cc := loadContext()
		if cc.CurrentConversation == "" {
			fmt.Println("No active conversation")
			return nil
		}
		fmt.Printf("Current conversation: %s\n", cc.CurrentConversation)
		return nil
	},
}

var conversationClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget the current conversation",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cc := loadContext()
		cc.CurrentConversation = ""
		if err := saveContext(cc); err != nil {
			return err
		}
		fmt.Println("Conversation cleared, the next ask starts fresh")
		return nil
	},
}
