// Package environment defines the Environment capability: the byte-stream sinks the kernel engine
// writes to on behalf of the guest's stdout and stderr.
package environment

import (
	"io"
	"os"

	"github.com/smoynes/rvsys/internal/kernelerr"
)

// Environment is the capability the kernel engine uses to deliver guest output.
type Environment interface {
	// WriteToStdout writes data to the guest's standard output, returning the number of bytes
	// accepted.
	WriteToStdout(data []byte) (uint64, error)
	// WriteToStderr writes data to the guest's standard error, returning the number of bytes
	// accepted.
	WriteToStderr(data []byte) (uint64, error)
}

// Std is the reference Environment, writing to real host streams. A host I/O failure is reported
// as kernelerr.ErrIO, per spec §4.2.
type Std struct {
	Stdout io.Writer
	Stderr io.Writer
}

// NewStd creates a Std writing to os.Stdout and os.Stderr.
func NewStd() *Std {
	return &Std{Stdout: os.Stdout, Stderr: os.Stderr}
}

func (s *Std) WriteToStdout(data []byte) (uint64, error) {
	return writeAll(s.Stdout, data)
}

func (s *Std) WriteToStderr(data []byte) (uint64, error) {
	return writeAll(s.Stderr, data)
}

func writeAll(w io.Writer, data []byte) (uint64, error) {
	n, err := w.Write(data)
	if err != nil {
		return uint64(n), kernelerr.ErrIO
	}

	return uint64(n), nil
}

var _ Environment = (*Std)(nil)
