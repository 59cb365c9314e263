package main

import (
	"fmt"
	"sort"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"tshell/internal/eval"
)

// listCmd prints every command name declared in the bootstrapped root
// scope, mirroring cmd/devshell's "list" leaf-collection command. --pick
// opens a go-fuzzyfinder prompt instead (die/main.go's fzfSelect pattern)
// and prints only the chosen name, for use from a shell alias.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all declared commands",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfigForRun()
		if err != nil {
			return err
		}
		env := bootstrap(cfg)
		names := commandNames(env)

		pick, _ := cmd.Flags().GetBool("pick")
		if !pick {
			for _, n := range names {
				fmt.Println(n)
			}
			return nil
		}

		idx, err := fuzzyfinder.Find(names, func(i int) string { return names[i] },
			fuzzyfinder.WithPromptString("command: "))
		if err != nil {
			return err
		}
		fmt.Println(names[idx])
		return nil
	},
}

func init() {
	listCmd.Flags().Bool("pick", false, "choose a command interactively via fuzzy search")
}

// commandNames returns the names of every command declared in root's own
// frame (bootstrap declares everything flat, so no parent/caller walk is
// needed here); type names and other non-command values are left out.
func commandNames(root *eval.Scope) []string {
	var names []string
	for _, name := range root.LocalNames() {
		if v, ok := root.Get(name); ok && v.Kind() == eval.KindCommand {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
