package kernel

import (
	"github.com/smoynes/rvsys/internal/environment"
	"github.com/smoynes/rvsys/internal/machine"
	"github.com/smoynes/rvsys/internal/vfs"
)

// Context is the composite holder a Kernel dispatches through: a single forwarding struct that
// exposes Machine, Environment, and FileSystem together, rather than a tower of interface
// wrappers. Any caller that can supply all three may build a Kernel.
type Context struct {
	machine.Machine
	environment.Environment
	vfs.FileSystem
}
