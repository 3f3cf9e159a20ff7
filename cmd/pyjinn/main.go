// Command pyjinn is a small CLI front end over pkg/pyjinn, exercising the
// embedding API the way a script host embedder would: load a JSON AST
// document, run it, inspect what it compiles to.
package main

import (
	"fmt"
	"os"

	"github.com/maxuser0/pyjinn-sub000/cmd/pyjinn/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
