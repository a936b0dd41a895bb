package instr

import (
	"github.com/ezrec/ezasm/machine"
	"github.com/ezrec/ezasm/operand"
)

// Arithmetic implements integer and bitwise instructions.
type Arithmetic struct {
	host Host
}

var ArithmeticGroup = Group{
	Name: "arithmetic",
	New:  func(host Host) any { return &Arithmetic{host: host} },
	Overloads: []Overload{
		withOutInIn("add", (*Arithmetic).Add),
		withOutInIn("sub", (*Arithmetic).Sub),
		withOutInIn("mul", (*Arithmetic).Mul),
		withOutInIn("div", (*Arithmetic).Div),
		withOutInIn("mod", (*Arithmetic).Mod),
		withOutInIn("and", (*Arithmetic).And),
		withOutInIn("or", (*Arithmetic).Or),
		withOutInIn("xor", (*Arithmetic).Xor),
		withOutInIn("sll", (*Arithmetic).Sll),
		withOutInIn("srl", (*Arithmetic).Srl),
		withOutIn("not", (*Arithmetic).Not),
		withOutIn("move", (*Arithmetic).Move),
		withOut("inc", (*Arithmetic).Inc),
		withOut("dec", (*Arithmetic).Dec),
	},
}

// store writes an integer result to an output operand.
func store(host Host, out operand.Output, value int64) (seq machine.Sequence, err error) {
	target, err := out.Target(host)
	if err != nil {
		return
	}
	seq = seq.Set(target, machine.IntWord(value, host.WordSize()))
	return
}

// binary applies fn to two integer inputs and stores the result.
func (ar *Arithmetic) binary(out operand.Output, a, b operand.Input, fn func(a, b int64) (int64, error)) (seq machine.Sequence, err error) {
	av, err := operand.Int(ar.host, a)
	if err != nil {
		return
	}
	bv, err := operand.Int(ar.host, b)
	if err != nil {
		return
	}
	value, err := fn(av, bv)
	if err != nil {
		return
	}
	return store(ar.host, out, value)
}

// wordMask is the unsigned mask of one word.
func (ar *Arithmetic) wordMask() uint64 {
	bits := uint(ar.host.WordSize() * 8)
	if bits >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << bits) - 1
}

// shift reduces the shift amount modulo the word width in bits.
func (ar *Arithmetic) shift(amount int64) uint {
	return uint(amount) % uint(ar.host.WordSize()*8)
}

func (ar *Arithmetic) Add(out operand.Output, a, b operand.Input) (machine.Sequence, error) {
	return ar.binary(out, a, b, func(a, b int64) (int64, error) { return a + b, nil })
}

func (ar *Arithmetic) Sub(out operand.Output, a, b operand.Input) (machine.Sequence, error) {
	return ar.binary(out, a, b, func(a, b int64) (int64, error) { return a - b, nil })
}

func (ar *Arithmetic) Mul(out operand.Output, a, b operand.Input) (machine.Sequence, error) {
	return ar.binary(out, a, b, func(a, b int64) (int64, error) { return a * b, nil })
}

func (ar *Arithmetic) Div(out operand.Output, a, b operand.Input) (machine.Sequence, error) {
	return ar.binary(out, a, b, func(a, b int64) (int64, error) {
		if b == 0 {
			return 0, ErrDivideByZero
		}
		return a / b, nil
	})
}

func (ar *Arithmetic) Mod(out operand.Output, a, b operand.Input) (machine.Sequence, error) {
	return ar.binary(out, a, b, func(a, b int64) (int64, error) {
		if b == 0 {
			return 0, ErrDivideByZero
		}
		return a % b, nil
	})
}

func (ar *Arithmetic) And(out operand.Output, a, b operand.Input) (machine.Sequence, error) {
	return ar.binary(out, a, b, func(a, b int64) (int64, error) { return a & b, nil })
}

func (ar *Arithmetic) Or(out operand.Output, a, b operand.Input) (machine.Sequence, error) {
	return ar.binary(out, a, b, func(a, b int64) (int64, error) { return a | b, nil })
}

func (ar *Arithmetic) Xor(out operand.Output, a, b operand.Input) (machine.Sequence, error) {
	return ar.binary(out, a, b, func(a, b int64) (int64, error) { return a ^ b, nil })
}

// Sll shifts left; the shift amount is taken modulo the word width.
func (ar *Arithmetic) Sll(out operand.Output, a, b operand.Input) (machine.Sequence, error) {
	return ar.binary(out, a, b, func(a, b int64) (int64, error) { return a << ar.shift(b), nil })
}

// Srl shifts right logically, treating the word as unsigned.
func (ar *Arithmetic) Srl(out operand.Output, a, b operand.Input) (machine.Sequence, error) {
	return ar.binary(out, a, b, func(a, b int64) (int64, error) {
		return int64((uint64(a) & ar.wordMask()) >> ar.shift(b)), nil
	})
}

func (ar *Arithmetic) Not(out operand.Output, a operand.Input) (seq machine.Sequence, err error) {
	value, err := operand.Int(ar.host, a)
	if err != nil {
		return
	}
	return store(ar.host, out, ^value)
}

func (ar *Arithmetic) Move(out operand.Output, a operand.Input) (seq machine.Sequence, err error) {
	value, err := operand.Int(ar.host, a)
	if err != nil {
		return
	}
	return store(ar.host, out, value)
}

func (ar *Arithmetic) Inc(out operand.Output) (machine.Sequence, error) {
	return ar.binary(out, out, operand.Immediate{1}, func(a, b int64) (int64, error) { return a + b, nil })
}

func (ar *Arithmetic) Dec(out operand.Output) (machine.Sequence, error) {
	return ar.binary(out, out, operand.Immediate{1}, func(a, b int64) (int64, error) { return a - b, nil })
}
