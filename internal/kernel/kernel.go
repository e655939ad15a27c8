// Package kernel implements the syscall dispatcher: argument marshalling through a Machine,
// the descriptor table, and the handlers for the supported Linux/riscv64/musl syscall subset.
package kernel

import (
	"github.com/smoynes/rvsys/internal/environment"
	"github.com/smoynes/rvsys/internal/log"
	"github.com/smoynes/rvsys/internal/machine"
	"github.com/smoynes/rvsys/internal/vfs"
)

// Kernel is the syscall engine for one guest process: a composite context over Machine,
// Environment, and FileSystem, a descriptor table, and the uid/gid the guest observes.
type Kernel struct {
	Context Context
	State   *State

	uid, gid uint32

	log *log.Logger
}

// New builds a Kernel from its collaborators, applying opts in two passes: each OptionFn runs
// once early and then once late. The default logger and zero-valued uid/gid are set before
// either pass runs.
func New(m machine.Machine, env environment.Environment, fs vfs.FileSystem, opts ...OptionFn) *Kernel {
	k := &Kernel{
		Context: Context{Machine: m, Environment: env, FileSystem: fs},
		State:   NewState(),
		log:     log.DefaultLogger(),
	}

	for _, opt := range opts {
		opt(k, false)
	}

	for _, opt := range opts {
		opt(k, true)
	}

	return k
}

// OptionFn configures a Kernel at construction. late distinguishes the first pass (false) from
// the second (true).
type OptionFn func(k *Kernel, late bool)

// WithLogger installs a custom logger, replacing the default.
func WithLogger(l *log.Logger) OptionFn {
	return func(k *Kernel, late bool) {
		if !late {
			k.log = l
		}
	}
}

// WithCredentials sets the uid/gid the guest observes via getuid/getgid and family, and that
// setuid/setgid compare against.
func WithCredentials(uid, gid uint32) OptionFn {
	return func(k *Kernel, late bool) {
		if late {
			k.uid = uid
			k.gid = gid
		}
	}
}

// Outcome is what a dispatched syscall leaves the caller to do next.
type Outcome struct {
	exit     bool
	exitCode uint8
}

// Continue signals the guest should keep running; more syscalls may follow.
var Continue = Outcome{}

// Exit signals the guest has terminated with the given status; the outer driver must stop the
// VM and service no further syscalls.
func Exit(code uint8) Outcome {
	return Outcome{exit: true, exitCode: code}
}

// Exited reports whether this Outcome is a termination, and if so, its status code.
func (o Outcome) Exited() (code uint8, exited bool) {
	return o.exitCode, o.exit
}
