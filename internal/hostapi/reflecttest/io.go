package reflecttest

import (
	"bytes"
	"io"
	"os"

	"github.com/maxuser0/pyjinn-sub000/internal/hostapi"
)

// IO is a mutable hostapi.IOHost, defaulting to the process's own
// stdout/stderr/stdin. Tests typically swap in *bytes.Buffer via
// SetStdout/SetStderr to capture script output (spec.md §6.3 "redirect
// stdout/stderr consumers").
type IO struct {
	out io.Writer
	err io.Writer
	in  io.Reader
}

// NewIO returns an IO wired to the process's real streams.
func NewIO() *IO {
	return &IO{out: os.Stdout, err: os.Stderr, in: os.Stdin}
}

// NewBufferedIO returns an IO with stdout/stderr captured in-memory,
// convenient for golden-output tests.
func NewBufferedIO() (*IO, *bytes.Buffer, *bytes.Buffer) {
	var out, errBuf bytes.Buffer
	return &IO{out: &out, err: &errBuf, in: bytes.NewReader(nil)}, &out, &errBuf
}

func (io_ *IO) Stdout() io.Writer { return io_.out }
func (io_ *IO) Stderr() io.Writer { return io_.err }
func (io_ *IO) Stdin() io.Reader  { return io_.in }

func (io_ *IO) SetStdout(w io.Writer) { io_.out = w }
func (io_ *IO) SetStderr(w io.Writer) { io_.err = w }
func (io_ *IO) SetStdin(r io.Reader)  { io_.in = r }

var _ hostapi.IOHost = (*IO)(nil)
