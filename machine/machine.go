package machine

import (
	"log"
)

// View is read-only access to machine state, as seen by instruction handlers.
type View interface {
	WordSize() int
	Capacity() int
	Register(index int) ([]byte, error)
	Read(address int64, length int) ([]byte, error)
	ReadString(address int64, maxLength int) (string, error)
	Check(address int64, length int) error
	CheckStack(sp int64) error
}

// Machine is a register file plus memory.
type Machine struct {
	Verbose bool // Set to log every committed transformation.

	Registers *Registers
	*Memory
}

var _ View = (*Machine)(nil)

// NewMachine allocates a zeroed machine.
func NewMachine(wordSize int, memoryWords int) (m *Machine, err error) {
	regs, err := NewRegisters(wordSize)
	if err != nil {
		return
	}
	mem, err := NewMemory(wordSize, memoryWords)
	if err != nil {
		return
	}

	m = &Machine{
		Registers: regs,
		Memory:    mem,
	}
	return
}

// Register returns a copy of a register word.
func (m *Machine) Register(index int) ([]byte, error) {
	return m.Registers.Get(index)
}

// PC returns the program counter.
func (m *Machine) PC() int {
	pc, _ := m.Registers.Int(REG_PC)
	return int(pc)
}

// Apply commits a sequence. Every transformation is validated before any
// is written, so a failing sequence leaves the machine untouched.
func (m *Machine) Apply(seq Sequence) (err error) {
	for _, tr := range seq {
		err = tr.Target.check(m, tr.Value)
		if err != nil {
			return
		}
	}

	for _, tr := range seq {
		if m.Verbose {
			log.Printf("machine: %v", tr)
		}
		tr.Target.write(m, tr.Value)
	}

	return
}

// Reset zeros registers and memory.
func (m *Machine) Reset() {
	m.Registers.Reset()
	m.Memory.Reset()
}
