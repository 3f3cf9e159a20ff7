package builtins

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/maxuser0/pyjinn-sub000/internal/hostapi"
	"github.com/maxuser0/pyjinn-sub000/internal/values"
)

// IOHost is the stream provider print() writes through (spec.md §6.3
// "redirect stdout/stderr consumers"). Set via SetIOHost by the embedding
// package (pkg/pyjinn); nil means "the process's own stdout", so print()
// still works in a package that never wires an IOHost (unit tests of
// other packages, for instance).
var IOHost hostapi.IOHost

// SetIOHost installs the stream provider subsequent print() calls write
// through.
func SetIOHost(h hostapi.IOHost) { IOHost = h }

func registerIO(r *Registry) {
	r.Funcs["print"] = builtinPrint
}

// builtinPrint implements Python's print(*args, sep=' ', end='\n'),
// spelled as keyword args smuggled in via a trailing KwArgsBag the
// compiler/evaluator append when a call site has keyword arguments
// (spec.md §2 value list: "keyword args bag").
func builtinPrint(ctx *values.Context, args []values.Value) (values.Value, error) {
	sep, end, positional := extractPrintKwargs(args)
	parts := make([]string, len(positional))
	for i, a := range positional {
		parts[i] = a.String()
	}
	var out io.Writer = os.Stdout
	if IOHost != nil {
		out = IOHost.Stdout()
	}
	fmt.Fprint(out, strings.Join(parts, sep)+end)
	return values.None, nil
}

func extractPrintKwargs(args []values.Value) (sep, end string, positional []values.Value) {
	sep, end = " ", "\n"
	positional = args
	if n := len(args); n > 0 {
		if bag, ok := args[n-1].(*values.KwArgsBag); ok {
			positional = args[:n-1]
			if v, ok := bag.Values["sep"]; ok {
				if s, ok := v.(*values.StringValue); ok {
					sep = s.Value
				}
			}
			if v, ok := bag.Values["end"]; ok {
				if s, ok := v.(*values.StringValue); ok {
					end = s.Value
				}
			}
		}
	}
	return sep, end, positional
}
