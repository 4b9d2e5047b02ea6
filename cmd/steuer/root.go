package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

// cliConfig holds the defaults loaded from a .steuer.toml file (or the
// built-in defaults below when no config file is found). Subcommand flags
// always take precedence over these.
type cliConfig struct {
	DefaultVM     string `toml:"default_vm"`
	DefaultFormat string `toml:"default_format"`
}

var config = cliConfig{
	DefaultVM:     "stack",
	DefaultFormat: "json",
}

var configPath string

var rootCmd = &cobra.Command{
	Use:   "steuer",
	Short: "Load, analyze, and run user-defined context-free grammars",
	Long: `steuer provides three features:
- Analyzes a grammar and reports its productions and director maps (check).
- Parses a text stream against a grammar, running its semantic actions (parse).
- Interactively parses lines of input against a grammar (repl).`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return loadConfig() },
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a .steuer.toml config file (default $STEUER_CONFIG or ./.steuer.toml)")
}

func loadConfig() error {
	path := configPath
	if path == "" {
		path = os.Getenv("STEUER_CONFIG")
	}
	if path == "" {
		path = ".steuer.toml"
	}
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return fmt.Errorf("load config %s: %w", path, err)
	}
	return nil
}

// Execute runs the root command, printing any returned error to stderr.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		wrapped := reportError(err)
		fmt.Fprintf(os.Stderr, "%v\n", wrapped)
		return wrapped
	}
	return nil
}
