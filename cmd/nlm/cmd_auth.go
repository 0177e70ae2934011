package main

import (
	"fmt"
	"os"

	"github.com/crosszan/nlm/notebooklm"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(loginCmd, statusCmd)
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to Google via a browser window",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return notebooklm.Login()
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check authentication status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !notebooklm.StorageExists() && flagStorage == "" && os.Getenv("NLM_AUTH_JSON") == "" {
			return fmt.Errorf("no saved session at %s (run 'nlm login')", notebooklm.GetStoragePath())
		}

		client, err := newClient()
		if err != nil {
			return err
		}

		if err := client.RefreshTokens(cmd.Context()); err != nil {
			return fmt.Errorf("session invalid: %w", err)
		}

		fmt.Println("Authenticated.")
		if cc := loadContext(); cc.CurrentNotebook != "" {
			fmt.Printf("Current notebook: %s\n", cc.CurrentNotebook)
		}
		return nil
	},
}
