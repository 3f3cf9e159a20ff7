package pyjinn

import (
	"bytes"
	"io"
	"strings"
)

// bufferedIOHost is the default hostapi.IOHost installed by New: stdout
// and stderr are captured into in-memory buffers (so Eval's Result.Output
// works with no setup), and stdin reads as empty, matching a script host
// that has no interactive terminal attached.
type bufferedIOHost struct {
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newBufferedIOHost() *bufferedIOHost {
	return &bufferedIOHost{stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}}
}

func (h *bufferedIOHost) Stdout() io.Writer { return h.stdout }
func (h *bufferedIOHost) Stderr() io.Writer { return h.stderr }
func (h *bufferedIOHost) Stdin() io.Reader  { return strings.NewReader("") }

// sinceLen returns everything written to stdout after the first n bytes,
// for capturing one run's output out of a buffer a Script reuses across
// several Eval/RunProgram calls.
func (h *bufferedIOHost) sinceLen(n int) string {
	all := h.stdout.String()
	if n > len(all) {
		return ""
	}
	return all[n:]
}
