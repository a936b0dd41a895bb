package instr

import (
	"github.com/ezrec/ezasm/machine"
	"github.com/ezrec/ezasm/operand"
)

// Function implements jumps, calls and returns.
type Function struct {
	host Host
}

var FunctionGroup = Group{
	Name: "function",
	New:  func(host Host) any { return &Function{host: host} },
	Overloads: []Overload{
		withIn("j", (*Function).J),
		withIn("jal", (*Function).Jal),
		withNone("_return", (*Function).Return),
		withNone("exit", (*Function).Exit),
	},
}

func (fn *Function) J(target operand.Input) (machine.Sequence, error) {
	return jump(fn.host, target)
}

// Jal stores the line after the call in $ra, then jumps.
func (fn *Function) Jal(target operand.Input) (seq machine.Sequence, err error) {
	pc, err := operand.Int(fn.host, operand.Register(machine.REG_PC))
	if err != nil {
		return
	}
	seq, err = jump(fn.host, target)
	if err != nil {
		return
	}
	seq = append(machine.Sequence{}.SetRegister(machine.REG_RA, machine.IntWord(pc+1, fn.host.WordSize())), seq...)
	return
}

func (fn *Function) Return() (machine.Sequence, error) {
	return jump(fn.host, operand.Register(machine.REG_RA))
}

// Exit moves the program counter past the last line.
func (fn *Function) Exit() (seq machine.Sequence, err error) {
	seq = seq.SetRegister(machine.REG_PC, machine.IntWord(int64(fn.host.Lines()), fn.host.WordSize()))
	return
}
