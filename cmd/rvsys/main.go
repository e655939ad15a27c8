// cmd/rvsys is the command-line interface to the kernel engine: a tool for replaying recorded
// riscv64/musl syscall traces against it outside of a live VM.
package main

import (
	"context"
	"os"

	"github.com/smoynes/rvsys/internal/cli"
	"github.com/smoynes/rvsys/internal/cli/cmd"
)

var commands = []cli.Command{
	cmd.Tracer(),
}

// Entry point.
func main() {
	result :=
		cli.New(context.Background()).
			WithLogger(os.Stderr).
			WithCommands(commands).
			WithHelp(cmd.Help(commands)).
			Execute(os.Args[1:])

	os.Exit(result)
}
