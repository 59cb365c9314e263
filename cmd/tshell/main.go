package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"tshell/internal/printer"
)

var flagConfig string

var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "A typed pipeline shell core",
	Long:  "tshell evaluates pipelines of typed values through a small core language:\n" + "values, scopes, closures, and a streaming command executor.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfigForRun()
		if err != nil {
			return err
		}
		env := bootstrap(cfg)
		tui, _ := cmd.Flags().GetBool("tui")
		p := printer.Stderr()
		if tui {
			return runTUI(env, p)
		}
		return runREPL(env, p)
	},
}

var runCmd = &cobra.Command{
	Use:   "run [line]",
	Short: "Run a single pipeline line and print its result",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfigForRun()
		if err != nil {
			return err
		}
		env := bootstrap(cfg)
		p := printer.Stderr()

		line := args[0]
		for _, a := range args[1:] {
			line += " " + a
		}
		return runLine(env, p, line)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to the tshell config file (default: <config dir>/config.yml)")
	rootCmd.Flags().Bool("tui", false, "launch the bubbletea-based terminal UI instead of the readline REPL")
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(listCmd)
}

// loadConfigForRun resolves --config, falling back to the standard
// resolveConfigDir-derived location, and loads it.
func loadConfigForRun() (fileConfig, error) {
	path := flagConfig
	if path == "" {
		dir, err := resolveConfigDir()
		if err != nil {
			return fileConfig{}, err
		}
		path = filepath.Join(dir, "config.yml")
	}
	return loadConfig(path)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("Error:", err)
	}
}
