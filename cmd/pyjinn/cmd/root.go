package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version is set by build flags.
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "pyjinn",
	Short: "Pyjinn interpreter CLI",
	Long: `pyjinn embeds and runs the interpreter against JSON AST documents.

Pyjinn executes a substantial Python-3 subset whose programs are fed in as
a JSON AST (spec.md §6.1) rather than parsed from source text by this
tool: produce the JSON AST with whatever front end your embedding
pipeline already uses, then load it here.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))
}
