package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/maxuser0/pyjinn-sub000/internal/compiler"
	"github.com/maxuser0/pyjinn-sub000/pkg/pyjinn"
)

var compileCmd = &cobra.Command{
	Use:   "compile <script.json>",
	Short: "Compile a JSON AST document and print its instruction/jump/line tables",
	Args:  cobra.ExactArgs(1),
	RunE:  compileScript,
}

func init() {
	rootCmd.AddCommand(compileCmd)
}

func compileScript(_ *cobra.Command, args []string) error {
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

	code := program.Code()
	fmt.Printf("Instructions: %d\n", len(code.Instructions))
	fmt.Printf("Exceptions:   %d\n", len(code.Exceptions))
	for i, rng := range code.Exceptions {
		clause := "except"
		if rng.Clause == compiler.ClauseFinally {
			clause = "finally"
		}
		fmt.Printf("  [%d] %s start=%04d end=%04d target=%04d depth=%d\n",
			i, clause, rng.StartIP, rng.EndIP, rng.TargetIP, rng.InitialStackDepth)
	}

	fmt.Println("Lines:")
	start, line := 0, -1
	for ip := 0; ip < len(code.Instructions); ip++ {
		l := code.LineForIP(ip)
		if l == line {
			continue
		}
		if line != -1 {
			fmt.Printf("  %04d-%04d line %d\n", start, ip-1, line)
		}
		start, line = ip, l
	}
	if line != -1 {
		fmt.Printf("  %04d-%04d line %d\n", start, len(code.Instructions)-1, line)
	}
	return nil
}
