package machine

import "github.com/smoynes/rvsys/internal/abi"

// Init builds the System V-style process-startup stack below defaultSP and points the machine's
// registers at it, per spec §4.1:
//
//	[low addr]                                                                        [high addr]
//	argc | argv[0]..argv[n-1] | NULL | envp[0]..envp[m-1] | NULL | AT_PAGESZ,4096 | AT_NULL,0
//
// with the argv/envp string bodies written just below the pointer table, in order, each
// NUL-terminated. On return, SP points at the bottom of this layout, A0 holds the address of argc,
// and RA holds defaultRA.
func Init(m Machine, defaultSP, defaultRA uint64, argv, envp []string) error {
	argc := uint64(len(argv))
	envpLen := uint64(len(envp))

	const auxvLen = 1 // one real (AT_PAGESZ, 4096) entry, plus the (0,0) terminator below.

	headerWords := 1 + argc + 1 + envpLen + 1 + (auxvLen+1)*2
	sp := defaultSP - headerWords*8

	addressInit := sp

	p := sp
	if err := m.WriteU64(p, argc); err != nil {
		return err
	}

	p += 8

	writeStrings := func(strs []string) error {
		for _, s := range strs {
			bytes := append([]byte(s), 0)
			sp -= uint64(len(bytes))

			if err := m.WriteMemory(sp, bytes); err != nil {
				return err
			}

			if err := m.WriteU64(p, sp); err != nil {
				return err
			}

			p += 8
		}

		return nil
	}

	if err := writeStrings(argv); err != nil {
		return err
	}

	p += 8 // argv NULL terminator.

	if err := writeStrings(envp); err != nil {
		return err
	}

	p += 8 // envp NULL terminator.

	auxv := [][2]uint64{{abi.AtPagesz, abi.Pagesz}, {0, 0}}
	for _, kv := range auxv {
		if err := m.WriteU64(p, kv[0]); err != nil {
			return err
		}

		p += 8

		if err := m.WriteU64(p, kv[1]); err != nil {
			return err
		}

		p += 8
	}

	m.SetReg(SP, sp)
	m.SetReg(A0, addressInit)
	m.SetReg(RA, defaultRA)

	return nil
}
