package instr

import (
	"github.com/ezrec/ezasm/machine"
	"github.com/ezrec/ezasm/operand"
)

// Comparison implements set-on-condition instructions, which write 1 when
// the condition holds and 0 otherwise.
type Comparison struct {
	host Host
}

var ComparisonGroup = Group{
	Name: "comparison",
	New:  func(host Host) any { return &Comparison{host: host} },
	Overloads: []Overload{
		withOutInIn("slt", (*Comparison).Slt),
		withOutInIn("sle", (*Comparison).Sle),
		withOutInIn("sgt", (*Comparison).Sgt),
		withOutInIn("sge", (*Comparison).Sge),
		withOutInIn("seq", (*Comparison).Seq),
		withOutInIn("sne", (*Comparison).Sne),
	},
}

// compare reads two integer inputs and applies cond.
func compare(host Host, a, b operand.Input, cond func(a, b int64) bool) (ok bool, err error) {
	av, err := operand.Int(host, a)
	if err != nil {
		return
	}
	bv, err := operand.Int(host, b)
	if err != nil {
		return
	}
	ok = cond(av, bv)
	return
}

func (cmp *Comparison) set(out operand.Output, a, b operand.Input, cond func(a, b int64) bool) (seq machine.Sequence, err error) {
	ok, err := compare(cmp.host, a, b, cond)
	if err != nil {
		return
	}
	var value int64
	if ok {
		value = 1
	}
	return store(cmp.host, out, value)
}

func (cmp *Comparison) Slt(out operand.Output, a, b operand.Input) (machine.Sequence, error) {
	return cmp.set(out, a, b, func(a, b int64) bool { return a < b })
}

func (cmp *Comparison) Sle(out operand.Output, a, b operand.Input) (machine.Sequence, error) {
	return cmp.set(out, a, b, func(a, b int64) bool { return a <= b })
}

func (cmp *Comparison) Sgt(out operand.Output, a, b operand.Input) (machine.Sequence, error) {
	return cmp.set(out, a, b, func(a, b int64) bool { return a > b })
}

func (cmp *Comparison) Sge(out operand.Output, a, b operand.Input) (machine.Sequence, error) {
	return cmp.set(out, a, b, func(a, b int64) bool { return a >= b })
}

func (cmp *Comparison) Seq(out operand.Output, a, b operand.Input) (machine.Sequence, error) {
	return cmp.set(out, a, b, func(a, b int64) bool { return a == b })
}

func (cmp *Comparison) Sne(out operand.Output, a, b operand.Input) (machine.Sequence, error) {
	return cmp.set(out, a, b, func(a, b int64) bool { return a != b })
}
