package instr

import (
	"github.com/ezrec/ezasm/machine"
	"github.com/ezrec/ezasm/operand"
)

// Branch implements conditional jumps. The third operand is the target
// line index, usually a resolved label.
type Branch struct {
	host Host
}

var BranchGroup = Group{
	Name: "branch",
	New:  func(host Host) any { return &Branch{host: host} },
	Overloads: []Overload{
		withInInIn("beq", (*Branch).Beq),
		withInInIn("bne", (*Branch).Bne),
		withInInIn("blt", (*Branch).Blt),
		withInInIn("ble", (*Branch).Ble),
		withInInIn("bgt", (*Branch).Bgt),
		withInInIn("bge", (*Branch).Bge),
	},
}

// jump sets the program counter to the value of target.
func jump(host Host, target operand.Input) (seq machine.Sequence, err error) {
	word, err := target.Get(host)
	if err != nil {
		return
	}
	seq = seq.SetRegister(machine.REG_PC, machine.IntWord(machine.Int(word), host.WordSize()))
	return
}

func (br *Branch) branch(a, b, target operand.Input, cond func(a, b int64) bool) (seq machine.Sequence, err error) {
	ok, err := compare(br.host, a, b, cond)
	if err != nil || !ok {
		return
	}
	return jump(br.host, target)
}

func (br *Branch) Beq(a, b, target operand.Input) (machine.Sequence, error) {
	return br.branch(a, b, target, func(a, b int64) bool { return a == b })
}

func (br *Branch) Bne(a, b, target operand.Input) (machine.Sequence, error) {
	return br.branch(a, b, target, func(a, b int64) bool { return a != b })
}

func (br *Branch) Blt(a, b, target operand.Input) (machine.Sequence, error) {
	return br.branch(a, b, target, func(a, b int64) bool { return a < b })
}

func (br *Branch) Ble(a, b, target operand.Input) (machine.Sequence, error) {
	return br.branch(a, b, target, func(a, b int64) bool { return a <= b })
}

func (br *Branch) Bgt(a, b, target operand.Input) (machine.Sequence, error) {
	return br.branch(a, b, target, func(a, b int64) bool { return a > b })
}

func (br *Branch) Bge(a, b, target operand.Input) (machine.Sequence, error) {
	return br.branch(a, b, target, func(a, b int64) bool { return a >= b })
}
