package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/maxuser0/pyjinn-sub000/internal/compiler"
	"github.com/maxuser0/pyjinn-sub000/pkg/pyjinn"
)

var disasmCmd = &cobra.Command{
	Use:   "disasm <script.json>",
	Short: "Print a human-readable disassembly of a compiled JSON AST document",
	Args:  cobra.ExactArgs(1),
	RunE:  disasmScript,
}

func init() {
	rootCmd.AddCommand(disasmCmd)
}

func disasmScript(_ *cobra.Command, args []string) error {
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
	program, err := script.CompileMain()
	if err != nil {
		return fmt.Errorf("compiling %s: %w", filename, err)
	}

	fmt.Print(compiler.DisassembleToString(program.Code()))
	return nil
}
