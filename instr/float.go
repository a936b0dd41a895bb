package instr

import (
	"math"

	"github.com/ezrec/ezasm/machine"
	"github.com/ezrec/ezasm/operand"
)

// Float implements floating point instructions. Words are IEEE-754 values
// of the machine word size, which must be 4 or 8 bytes.
type Float struct {
	host Host
}

var FloatGroup = Group{
	Name: "float",
	New:  func(host Host) any { return &Float{host: host} },
	Overloads: []Overload{
		withOutInIn("addf", (*Float).Addf),
		withOutInIn("subf", (*Float).Subf),
		withOutInIn("mulf", (*Float).Mulf),
		withOutInIn("divf", (*Float).Divf),
		withOutIn("itof", (*Float).Itof),
		withOutIn("ftoi", (*Float).Ftoi),
	},
}

// storeFloat writes a float result to an output operand.
func storeFloat(host Host, out operand.Output, value float64) (seq machine.Sequence, err error) {
	word, err := machine.FloatWord(value, host.WordSize())
	if err != nil {
		return
	}
	target, err := out.Target(host)
	if err != nil {
		return
	}
	seq = seq.Set(target, word)
	return
}

func (fl *Float) binary(out operand.Output, a, b operand.Input, fn func(a, b float64) float64) (seq machine.Sequence, err error) {
	av, err := operand.Float(fl.host, a)
	if err != nil {
		return
	}
	bv, err := operand.Float(fl.host, b)
	if err != nil {
		return
	}
	return storeFloat(fl.host, out, fn(av, bv))
}

func (fl *Float) Addf(out operand.Output, a, b operand.Input) (machine.Sequence, error) {
	return fl.binary(out, a, b, func(a, b float64) float64 { return a + b })
}

func (fl *Float) Subf(out operand.Output, a, b operand.Input) (machine.Sequence, error) {
	return fl.binary(out, a, b, func(a, b float64) float64 { return a - b })
}

func (fl *Float) Mulf(out operand.Output, a, b operand.Input) (machine.Sequence, error) {
	return fl.binary(out, a, b, func(a, b float64) float64 { return a * b })
}

// Divf follows IEEE-754, so division by zero yields an infinity or NaN.
func (fl *Float) Divf(out operand.Output, a, b operand.Input) (machine.Sequence, error) {
	return fl.binary(out, a, b, func(a, b float64) float64 { return a / b })
}

func (fl *Float) Itof(out operand.Output, a operand.Input) (seq machine.Sequence, err error) {
	value, err := operand.Int(fl.host, a)
	if err != nil {
		return
	}
	return storeFloat(fl.host, out, float64(value))
}

// Ftoi truncates toward zero.
func (fl *Float) Ftoi(out operand.Output, a operand.Input) (seq machine.Sequence, err error) {
	value, err := operand.Float(fl.host, a)
	if err != nil {
		return
	}
	return store(fl.host, out, int64(math.Trunc(value)))
}
