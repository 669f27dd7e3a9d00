package main

import (
	"fmt"
	"os"

	"github.com/aretw0/tendril/internal/cli"
	"github.com/aretw0/tendril/pkg/runner"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tendril",
	Short: "Tendril is a scripted slot-filling dialog engine",
	Long: `Tendril walks a graph of conversational nodes. Each node is one intent with the
slots it needs and a response template. Scenarios are JSON or YAML files next to
a slot table (.csv or .xlsx).`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("dir", ".", "Directory containing the slot table and scenario files")
	flags.StringSlice("scenario", nil, "Scenario file to load (repeatable, overrides discovery)")
	flags.String("slots", "", "Slot table (.csv or .xlsx) used with --scenario")
	flags.StringSlice("entry", nil, "Node id new sessions start from (repeatable)")
	flags.Bool("debug", false, "Enable debug logging on stderr")
	flags.String("actions", "", "Actions file binding node actions to local commands")
	flags.Int("max-input-size", 0, "Utterance size limit in bytes (env "+runner.EnvMaxInputSize+", default 4096)")
}

// engineOptions reads the persistent flags. A positional argument stands in
// for --dir when the flag is not set.
func engineOptions(cmd *cobra.Command, args []string) cli.EngineOptions {
	flags := cmd.Flags()
	dir, _ := flags.GetString("dir")
	if !flags.Changed("dir") && len(args) > 0 {
		dir = args[0]
	}
	scenarios, _ := flags.GetStringSlice("scenario")
	slots, _ := flags.GetString("slots")
	entries, _ := flags.GetStringSlice("entry")
	debug, _ := flags.GetBool("debug")
	actions, _ := flags.GetString("actions")
	maxInput, _ := flags.GetInt("max-input-size")

	return cli.EngineOptions{
		Dir:       dir,
		Scenarios: scenarios,
		Slots:     slots,
		Entries:   entries,
		Debug:     debug,
		Actions:   actions,

		MaxInputSize: maxInput,
	}
}

func addStoreFlags(cmd *cobra.Command) {
	cmd.Flags().String("redis-addr", "", "Redis address for shared live sessions (env "+cli.EnvRedisAddr+")")
	cmd.Flags().String("redis-password", "", "Redis password (env "+cli.EnvRedisPassword+")")
	cmd.Flags().Int("redis-db", 0, "Redis database")
	cmd.Flags().Duration("session-ttl", 0, "Idle lifetime of a Redis session (env "+cli.EnvSessionTTL+")")
	cmd.Flags().String("session-key", "", "Hex AES-256 key encrypting stored sessions (env "+cli.EnvSessionKey+")")
	cmd.Flags().StringSlice("redact", nil, "Pattern masked in the stored utterance and response (repeatable)")
}

func storeOptions(cmd *cobra.Command) cli.StoreOptions {
	addr, _ := cmd.Flags().GetString("redis-addr")
	password, _ := cmd.Flags().GetString("redis-password")
	db, _ := cmd.Flags().GetInt("redis-db")
	ttl, _ := cmd.Flags().GetDuration("session-ttl")
	key, _ := cmd.Flags().GetString("session-key")
	redact, _ := cmd.Flags().GetStringSlice("redact")
	return cli.StoreOptions{
		RedisAddr:     addr,
		RedisPassword: password,
		RedisDB:       db,
		SessionTTL:    ttl,
		SessionKey:    key,
		Redact:        redact,
	}
}
