package machine_test

import (
	"testing"

	"github.com/smoynes/rvsys/internal/machine"
	"github.com/smoynes/rvsys/internal/machine/machinetest"
)

func TestInit(tt *testing.T) {
	tt.Parallel()

	const (
		memSize   = 0x10000
		defaultSP = 0xff00
		defaultRA = 0xdead
	)

	m := machinetest.New(memSize)
	argv := []string{"prog", "-x"}
	envp := []string{"HOME=/root"}

	if err := machine.Init(m, defaultSP, defaultRA, argv, envp); err != nil {
		tt.Fatalf("Init: %v", err)
	}

	if got := m.Reg(machine.RA); got != defaultRA {
		tt.Errorf("RA = %#x, want %#x", got, defaultRA)
	}

	sp := m.Reg(machine.SP)
	if sp == 0 || sp >= defaultSP {
		tt.Fatalf("SP = %#x, want < %#x", sp, defaultSP)
	}

	a0 := m.Reg(machine.A0)

	argc, err := m.ReadU64(a0)
	if err != nil {
		tt.Fatalf("ReadU64(argc): %v", err)
	}

	if argc != uint64(len(argv)) {
		tt.Errorf("argc = %d, want %d", argc, len(argv))
	}

	for i, want := range argv {
		ptrAddr := a0 + 8 + uint64(i)*8

		ptr, err := m.ReadU64(ptrAddr)
		if err != nil {
			tt.Fatalf("ReadU64(argv[%d] ptr): %v", i, err)
		}

		got, err := m.ReadCString(ptr, 64)
		if err != nil {
			tt.Fatalf("ReadCString(argv[%d]): %v", i, err)
		}

		if got != want {
			tt.Errorf("argv[%d] = %q, want %q", i, got, want)
		}
	}

	argvNullAddr := a0 + 8 + uint64(len(argv))*8

	if null, _ := m.ReadU64(argvNullAddr); null != 0 {
		tt.Errorf("argv NULL terminator = %#x, want 0", null)
	}

	envpBase := argvNullAddr + 8

	for i, want := range envp {
		ptrAddr := envpBase + uint64(i)*8

		ptr, err := m.ReadU64(ptrAddr)
		if err != nil {
			tt.Fatalf("ReadU64(envp[%d] ptr): %v", i, err)
		}

		got, err := m.ReadCString(ptr, 64)
		if err != nil {
			tt.Fatalf("ReadCString(envp[%d]): %v", i, err)
		}

		if got != want {
			tt.Errorf("envp[%d] = %q, want %q", i, got, want)
		}
	}

	envpNullAddr := envpBase + uint64(len(envp))*8

	if null, _ := m.ReadU64(envpNullAddr); null != 0 {
		tt.Errorf("envp NULL terminator = %#x, want 0", null)
	}

	auxvBase := envpNullAddr + 8

	key, _ := m.ReadU64(auxvBase)
	val, _ := m.ReadU64(auxvBase + 8)

	if key != 6 || val != 4096 {
		tt.Errorf("auxv[0] = (%d, %d), want (6, 4096)", key, val)
	}

	termKey, _ := m.ReadU64(auxvBase + 16)
	termVal, _ := m.ReadU64(auxvBase + 24)

	if termKey != 0 || termVal != 0 {
		tt.Errorf("auxv terminator = (%d, %d), want (0, 0)", termKey, termVal)
	}
}

func TestReadCStringByte_noNUL(tt *testing.T) {
	tt.Parallel()

	m := machinetest.New(16)
	if err := m.WriteMemory(0, []byte("abcdefgh")); err != nil {
		tt.Fatal(err)
	}

	if _, err := m.ReadCString(0, 4); err == nil {
		tt.Error("ReadCString: want error when no NUL within maxLen")
	}
}
