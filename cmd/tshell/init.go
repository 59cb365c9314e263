package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// initCmd interactively builds a config.yml in the standard config
// directory, prompting for cmd_path entries via a huh form instead of
// cmd/devshell's init command writing static example files directly —
// there is nothing analogous to its types/nodes registry here, just a
// single setting worth asking the user about.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Interactively create the tshell config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveConfigDir()
		if err != nil {
			return err
		}
		force, _ := cmd.Flags().GetBool("force")

		path := filepath.Join(dir, "config.yml")
		if !force {
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
		}

		var cmdPathInput string
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("External command search path").
					Description("Colon-separated directories scanned for external executables").
					Placeholder("/usr/local/bin:/usr/bin").
					Value(&cmdPathInput),
			),
		)
		if err := form.Run(); err != nil {
			return err
		}

		var cfg fileConfig
		for _, p := range strings.Split(cmdPathInput, ":") {
			if p = strings.TrimSpace(p); p != "" {
				cfg.CmdPath = append(cfg.CmdPath, p)
			}
		}

		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}

		fmt.Fprintf(os.Stderr, "wrote %s\n", path)
		return nil
	},
}

func init() {
	initCmd.Flags().Bool("force", false, "overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}
