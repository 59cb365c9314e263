package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk YAML shape, following cmd/devshell's registry/
// nodes split of "plain YAML in, one struct out" — here a single flat
// document is enough since there is no type-registry concept in this
// domain.
type fileConfig struct {
	// CmdPath lists directories scanned for external executables, bound
	// into the root scope as the "cmd_path" List[File] value the
	// resolver's tryExternalCommand consults.
	CmdPath []string `yaml:"cmd_path"`
}

// loadConfig reads path if it exists, returning a zero-value fileConfig
// (no configured cmd_path entries) when it does not — a missing config
// file is not an error, matching resolveNodeFiles's "missing directories
// are silently skipped" convention.
func loadConfig(path string) (fileConfig, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return fileConfig{}, nil
	}
	if err != nil {
		return fileConfig{}, err
	}
	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fileConfig{}, err
	}
	return cfg, nil
}
