package environment_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/smoynes/rvsys/internal/environment"
	"github.com/smoynes/rvsys/internal/kernelerr"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk on fire")
}

func TestStd_write(tt *testing.T) {
	tt.Parallel()

	var out, errOut bytes.Buffer

	env := &environment.Std{Stdout: &out, Stderr: &errOut}

	n, err := env.WriteToStdout([]byte("hello\n"))
	if err != nil {
		tt.Fatalf("WriteToStdout: %v", err)
	}

	if n != 6 {
		tt.Errorf("n = %d, want 6", n)
	}

	if out.String() != "hello\n" {
		tt.Errorf("stdout = %q, want %q", out.String(), "hello\n")
	}

	if _, err := env.WriteToStderr([]byte("oops")); err != nil {
		tt.Fatalf("WriteToStderr: %v", err)
	}

	if errOut.String() != "oops" {
		tt.Errorf("stderr = %q, want %q", errOut.String(), "oops")
	}
}

func TestStd_writeFailure(tt *testing.T) {
	tt.Parallel()

	env := &environment.Std{Stdout: failingWriter{}, Stderr: failingWriter{}}

	if _, err := env.WriteToStdout([]byte("x")); !errors.Is(err, kernelerr.ErrIO) {
		tt.Errorf("WriteToStdout error = %v, want EIO", err)
	}
}
