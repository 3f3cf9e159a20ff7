package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/maxuser0/pyjinn-sub000/pkg/pyjinn"
)

var runCmd = &cobra.Command{
	Use:   "run <script.json>",
	Short: "Load a JSON AST document and execute it",
	Args:  cobra.ExactArgs(1),
	RunE:  runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runScript(_ *cobra.Command, args []string) error {
	filename := args[0]
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("reading %s: %w", filename, err)
	}

	script, err := pyjinn.New()
	if err != nil {
		return fmt.Errorf("constructing interpreter: %w", err)
	}

	result, err := script.Eval(data)
	if result != nil {
		fmt.Print(result.Output)
	}
	if err != nil {
		return fmt.Errorf("running %s: %w", filename, err)
	}
	return nil
}
