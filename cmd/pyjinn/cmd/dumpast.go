package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"

	"github.com/maxuser0/pyjinn-sub000/pkg/pyjinn"
)

var dumpASTCmd = &cobra.Command{
	Use:   "dump-ast <script.json>",
	Short: "Validate a JSON AST document and pretty-print it",
	Args:  cobra.ExactArgs(1),
	RunE:  dumpAST,
}

func init() {
	rootCmd.AddCommand(dumpASTCmd)
}

func dumpAST(_ *cobra.Command, args []string) error {
	filename := args[0]
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("reading %s: %w", filename, err)
	}

	script, err := pyjinn.New()
	if err != nil {
		return fmt.Errorf("constructing interpreter: %w", err)
	}
	if _, err := script.ParseMain(data); err != nil {
		return fmt.Errorf("parsing %s: %w", filename, err)
	}

	os.Stdout.Write(pretty.Pretty(data))
	return nil
}
