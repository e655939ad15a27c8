package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/smoynes/rvsys/internal/cli"
	"github.com/smoynes/rvsys/internal/debugnames"
	"github.com/smoynes/rvsys/internal/environment"
	"github.com/smoynes/rvsys/internal/kernel"
	"github.com/smoynes/rvsys/internal/log"
	"github.com/smoynes/rvsys/internal/machine"
	"github.com/smoynes/rvsys/internal/machine/machinetest"
	"github.com/smoynes/rvsys/internal/vfs"
	"github.com/smoynes/rvsys/internal/vfs/hostfs"
	"github.com/smoynes/rvsys/internal/vfs/memfs"
	"golang.org/x/term"
)

// nameColumnWidth returns how wide to pad the syscall-name column in trace output: the widest
// name plus a gutter, capped to whatever fits the controlling terminal so long names don't wrap.
func nameColumnWidth(out io.Writer) int {
	const (
		want = 20
		min  = 8
	)

	f, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return want
	}

	cols, _, err := term.GetSize(int(f.Fd()))
	if err != nil || cols <= 0 {
		return want
	}

	if cols/2 < want {
		if cols/2 < min {
			return min
		}

		return cols / 2
	}

	return want
}

// Tracer returns the "trace" sub-command, which replays a recorded syscall-request script
// against a Kernel wired to a flat-memory machinetest.Fake, stdio Environment, and a FileSystem
// backend chosen by flag.
func Tracer() cli.Command {
	return &tracer{}
}

type tracer struct {
	memSize int
	root    string
	exited  bool
	col     int

	checkpoint *kernel.State
}

func (tracer) Description() string {
	return "replay a recorded syscall-request script"
}

func (tracer) Usage(out io.Writer) error {
	_, err := fmt.Fprintln(out, `trace script.txt

Replays a script of "write" and "call" directives against the kernel engine,
printing each syscall's decoded result. With -root, paths resolve against the
real filesystem (hostfs); otherwise an empty in-memory filesystem is used.

Script lines:

        write      <addr> <quoted string>
        call       <num> [a1] [a2] [a3] [a4] [a5]
        checkpoint
        restore

checkpoint snapshots the descriptor table; restore replaces it with the
most recent checkpoint, undoing any open/close calls made since.

Blank lines and lines starting with "#" are ignored.`)

	return err
}

func (t *tracer) FlagSet() *cli.FlagSet {
	fs := flag.NewFlagSet("trace", flag.ExitOnError)
	fs.IntVar(&t.memSize, "memsize", 1<<20, "flat guest memory size in bytes")
	fs.StringVar(&t.root, "root", "", "if set, resolve paths against this host directory via hostfs")

	return fs
}

func (t *tracer) filesystem() vfs.FileSystem {
	if t.root != "" {
		return hostfs.New(t.root)
	}

	return memfs.New(nil)
}

// Run reads the script named by args[0], executing each directive in order.
func (t *tracer) Run(_ context.Context, args []string, out io.Writer, logger *log.Logger) int {
	if len(args) != 1 {
		fmt.Fprintln(out, "trace: expected exactly one script argument")
		return 1
	}

	file, err := os.Open(args[0])
	if err != nil {
		logger.Error("opening script", "err", err)
		return 1
	}
	defer file.Close()

	m := machinetest.New(t.memSize)
	env := environment.NewStd()
	k := kernel.New(m, env, t.filesystem(), kernel.WithLogger(logger))
	t.col = nameColumnWidth(out)

	scanner := bufio.NewScanner(file)
	lineNo := 0

	for scanner.Scan() {
		lineNo++

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if err := t.runLine(m, k, line, out); err != nil {
			fmt.Fprintf(out, "line %d: %v\n", lineNo, err)
			return 1
		}

		if t.exited {
			break
		}
	}

	if err := scanner.Err(); err != nil {
		logger.Error("reading script", "err", err)
		return 1
	}

	return 0
}

func (t *tracer) runLine(m *machinetest.Fake, k *kernel.Kernel, line string, out io.Writer) error {
	fields := strings.SplitN(line, " ", 2)

	switch fields[0] {
	case "checkpoint":
		t.checkpoint = k.State.Snapshot()
		return nil
	case "restore":
		if t.checkpoint == nil {
			return fmt.Errorf("restore: no checkpoint taken yet")
		}

		k.State.RestoreFrom(t.checkpoint)

		return nil
	}

	if len(fields) != 2 {
		return fmt.Errorf("expected a directive and arguments")
	}

	switch fields[0] {
	case "write":
		return t.runWrite(m, strings.TrimSpace(fields[1]))
	case "call":
		return t.runCall(m, k, strings.Fields(fields[1]), out)
	default:
		return fmt.Errorf("unknown directive %q", fields[0])
	}
}

func (t *tracer) runWrite(m *machinetest.Fake, rest string) error {
	parts := strings.SplitN(rest, " ", 2)
	if len(parts) != 2 {
		return fmt.Errorf("write: expected <addr> <quoted string>")
	}

	addr, err := strconv.ParseUint(parts[0], 0, 64)
	if err != nil {
		return fmt.Errorf("write: bad address: %w", err)
	}

	text, err := strconv.Unquote(strings.TrimSpace(parts[1]))
	if err != nil {
		return fmt.Errorf("write: bad quoted string: %w", err)
	}

	return m.WriteMemory(addr, append([]byte(text), 0))
}

func (t *tracer) runCall(m *machinetest.Fake, k *kernel.Kernel, argWords []string, out io.Writer) error {
	if len(argWords) == 0 {
		return fmt.Errorf("call: expected a syscall number")
	}

	regs := []machine.Reg{machine.A0, machine.A1, machine.A2, machine.A3, machine.A4, machine.A5}

	for i, word := range argWords {
		if i >= len(regs) {
			return fmt.Errorf("call: too many arguments")
		}

		v, err := strconv.ParseUint(word, 0, 64)
		if err != nil {
			return fmt.Errorf("call: bad argument %q: %w", word, err)
		}

		m.SetReg(regs[i], v)
	}

	number := m.Reg(machine.A0)

	outcome := k.Dispatch()
	if code, exited := outcome.Exited(); exited {
		t.exited = true
		fmt.Fprintf(out, "%-*s exit(%d)\n", t.col, debugnames.Syscall(number), code)

		return nil
	}

	fmt.Fprintf(out, "%-*s a0=%#x\n", t.col, debugnames.Syscall(number), m.Reg(machine.A0))

	return nil
}
