package main

import (
	"os"

	"github.com/aretw0/tendril/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [dir]",
	Short: "Run an interactive dialog in the console",
	Long: `Starts a console session. Every utterance is answered with "bot: <text>".
Type "exit" or "quit" (or send EOF) to leave.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		headless, _ := cmd.Flags().GetBool("headless")
		jsonMode, _ := cmd.Flags().GetBool("json")
		rich, _ := cmd.Flags().GetBool("rich")
		confirm, _ := cmd.Flags().GetBool("confirm")
		sessionID, _ := cmd.Flags().GetString("session")

		opts := cli.RunOptions{
			EngineOptions: engineOptions(cmd, args),
			StoreOptions:  storeOptions(cmd),
			SessionID:     sessionID,
			Headless:      headless,
			JSON:          jsonMode,
			Rich:          rich,
			Confirm:       confirm,
		}
		return cli.RunSession(opts, os.Stdin, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("headless", false, "Run in headless mode (no banner, strict IO)")
	runCmd.Flags().Bool("json", false, "Run in JSON mode (NDJSON input/output)")
	runCmd.Flags().Bool("rich", false, "Render responses as markdown")
	runCmd.Flags().Bool("confirm", false, "Ask before running node actions")
	runCmd.Flags().StringP("session", "s", "", "Session id to resume (requires --redis-addr to outlive the process)")
	addStoreFlags(runCmd)

	rootCmd.RunE = runCmd.RunE
	rootCmd.Args = runCmd.Args
}
