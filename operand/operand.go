// Package operand is the typed operand model of an instruction line.
//
// Operands are a closed set: Register, Immediate, Dereference and Label.
// Each reports a Capability, which is what instruction overloads are
// matched against.
package operand

import (
	"bytes"
	"fmt"

	"github.com/ezrec/ezasm/machine"
)

// Capability is the set of access modes an operand supports.
type Capability int

const (
	CAP_READ       = Capability(1 << 0)   // Operand can be read.
	CAP_WRITE      = Capability(1 << 1)   // Operand can be written.
	CAP_READ_WRITE = CAP_READ | CAP_WRITE // Operand can be read and written.
)

// Allows reports whether the capability covers need.
func (c Capability) Allows(need Capability) bool {
	return c&need == need
}

func (c Capability) String() string {
	switch c {
	case CAP_READ:
		return "in"
	case CAP_WRITE:
		return "out"
	case CAP_READ_WRITE:
		return "inout"
	}
	return fmt.Sprintf("Capability(%d)", int(c))
}

// Operand is one argument of a line.
type Operand interface {
	fmt.Stringer
	Capability() Capability
}

// Input is an operand that can be read.
type Input interface {
	Operand
	Get(v machine.View) ([]byte, error)
}

// Output is an operand that can be read and written.
type Output interface {
	Input
	Target(v machine.View) (machine.Target, error)
}

// Register refers to a register by index.
type Register int

var _ Output = Register(0)

func (reg Register) Capability() Capability {
	return CAP_READ_WRITE
}

func (reg Register) String() string {
	return "$" + machine.RegisterName(int(reg))
}

func (reg Register) Get(v machine.View) ([]byte, error) {
	return v.Register(int(reg))
}

func (reg Register) Target(v machine.View) (machine.Target, error) {
	return machine.Register(reg), nil
}

// Immediate is a constant word.
type Immediate []byte

var _ Input = Immediate(nil)

func (imm Immediate) Capability() Capability {
	return CAP_READ
}

// String is the hex form of the raw word, which parses back to the same bytes.
func (imm Immediate) String() string {
	return fmt.Sprintf("0x%x", []byte(imm))
}

func (imm Immediate) Get(v machine.View) (word []byte, err error) {
	word = bytes.Clone(imm)
	return
}

// Dereference is the memory word at a register plus a byte offset.
type Dereference struct {
	Register int
	Offset   int64
}

var _ Output = Dereference{}

func (deref Dereference) Capability() Capability {
	return CAP_READ_WRITE
}

func (deref Dereference) String() string {
	return fmt.Sprintf("%d($%s)", deref.Offset, machine.RegisterName(deref.Register))
}

// Address computes the dereferenced address.
func (deref Dereference) Address(v machine.View) (address int64, err error) {
	base, err := v.Register(deref.Register)
	if err != nil {
		return
	}
	address = machine.Int(base) + deref.Offset
	return
}

func (deref Dereference) Get(v machine.View) (word []byte, err error) {
	address, err := deref.Address(v)
	if err != nil {
		return
	}
	return v.Read(address, v.WordSize())
}

func (deref Dereference) Target(v machine.View) (target machine.Target, err error) {
	address, err := deref.Address(v)
	if err != nil {
		return
	}
	target = machine.MemoryRange{Address: address, Length: v.WordSize()}
	return
}

// Label refers to a line by name. It is readable once resolved to a line index.
type Label struct {
	Name     string
	Index    int
	Resolved bool
}

var _ Input = Label{}

func (label Label) Capability() Capability {
	return CAP_READ
}

func (label Label) String() string {
	return label.Name
}

func (label Label) Get(v machine.View) (word []byte, err error) {
	if !label.Resolved {
		err = ErrLabelUnresolved(label.Name)
		return
	}
	word = machine.IntWord(int64(label.Index), v.WordSize())
	return
}

// Resolve binds the label to a line index.
func (label Label) Resolve(index int) Label {
	label.Index = index
	label.Resolved = true
	return label
}

// Equal compares two operands structurally.
func Equal(a, b Operand) bool {
	switch a := a.(type) {
	case Immediate:
		b, ok := b.(Immediate)
		return ok && bytes.Equal(a, b)
	default:
		return a == b
	}
}

// Capabilities lists the capability of each operand.
func Capabilities(args []Operand) (caps []Capability) {
	caps = make([]Capability, len(args))
	for n, arg := range args {
		caps[n] = arg.Capability()
	}
	return
}

// Int reads an input as a signed integer.
func Int(v machine.View, in Input) (value int64, err error) {
	word, err := in.Get(v)
	if err != nil {
		return
	}
	value = machine.Int(word)
	return
}

// Float reads an input as a floating point value.
func Float(v machine.View, in Input) (value float64, err error) {
	word, err := in.Get(v)
	if err != nil {
		return
	}
	return machine.Float(word)
}
