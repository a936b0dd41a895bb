package machine

import (
	"fmt"
)

// Target is the destination of a Transformation: a Register or a MemoryRange.
type Target interface {
	fmt.Stringer
	check(m *Machine, value []byte) error
	write(m *Machine, value []byte)
}

// Register targets one register by index.
type Register int

var _ Target = Register(0)

func (reg Register) String() string {
	return "$" + RegisterName(int(reg))
}

func (reg Register) check(m *Machine, value []byte) error {
	return m.Registers.check(int(reg), value)
}

func (reg Register) write(m *Machine, value []byte) {
	_ = m.Registers.Set(int(reg), value)
}

// MemoryRange targets Length bytes at Address.
type MemoryRange struct {
	Address int64
	Length  int
}

var _ Target = MemoryRange{}

func (mr MemoryRange) String() string {
	return fmt.Sprintf("[%d:%d]", mr.Address, mr.Address+int64(mr.Length))
}

func (mr MemoryRange) check(m *Machine, value []byte) (err error) {
	if len(value) != mr.Length {
		return ErrValueLength
	}
	return m.Memory.Check(mr.Address, mr.Length)
}

func (mr MemoryRange) write(m *Machine, value []byte) {
	_ = m.Memory.Write(mr.Address, value)
}

// Transformation is one atomic state edit.
type Transformation struct {
	Target Target
	Value  []byte
}

func (tr Transformation) String() string {
	return fmt.Sprintf("%v = %x", tr.Target, tr.Value)
}

// Sequence is the ordered list of edits produced by one instruction.
type Sequence []Transformation

// SetRegister appends a register write.
func (seq Sequence) SetRegister(index int, value []byte) Sequence {
	return append(seq, Transformation{Target: Register(index), Value: value})
}

// SetMemory appends a memory write.
func (seq Sequence) SetMemory(address int64, value []byte) Sequence {
	return append(seq, Transformation{Target: MemoryRange{Address: address, Length: len(value)}, Value: value})
}

// Set appends a write to an arbitrary target.
func (seq Sequence) Set(target Target, value []byte) Sequence {
	return append(seq, Transformation{Target: target, Value: value})
}

// Writes reports whether the sequence writes the register at index.
func (seq Sequence) Writes(index int) bool {
	for _, tr := range seq {
		if reg, ok := tr.Target.(Register); ok && int(reg) == index {
			return true
		}
	}
	return false
}
