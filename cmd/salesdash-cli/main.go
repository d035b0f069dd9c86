// Package main is the entry point for salesdash-cli. It runs the same seed and
// aggregation logic as the HTTP service directly against the SQLite database.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"salesdash/cmd/salesdash-cli/internal/commands"
	"salesdash/internal/cli"
	"salesdash/internal/config"
	applog "salesdash/internal/log"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	cli.LoadEnvFile()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	rootCmd := &cobra.Command{
		Use:   "salesdash-cli",
		Short: "Product sale statistics from the command line",
		Long: `salesdash-cli seeds the products database and prints month statistics
as the JSON documents served by the salesdash API.

Configuration is read from the environment (and .env), the same as the server:
- SQLITE_DB_PATH
- SEED_SOURCE, SEED_URL, SEED_TIMEOUT
- AMQP_URL (optional, publishes an import event after seeding)`,
		SilenceUsage: true,
	}

	logger := cli.SetupLogger(cfg, os.Stderr).WithComponent(applog.ComponentCLI)
	env := &commands.Env{Config: cfg, Logger: logger}

	if err := initializeCommands(rootCmd, env); err != nil {
		return fmt.Errorf("failed to initialize commands: %w", err)
	}

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// initializeCommands registers all command groups with the root command.
func initializeCommands(rootCmd *cobra.Command, env *commands.Env) error {
	commands.AddPersistentFlags(rootCmd, env)

	if err := commands.InitSeedCommands(rootCmd, env); err != nil {
		return fmt.Errorf("failed to initialize seed commands: %w", err)
	}

	if err := commands.InitQueryCommands(rootCmd, env); err != nil {
		return fmt.Errorf("failed to initialize query commands: %w", err)
	}

	return nil
}
