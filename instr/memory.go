package instr

import (
	"github.com/ezrec/ezasm/machine"
	"github.com/ezrec/ezasm/operand"
)

// Memory implements stack and load/store instructions.
type Memory struct {
	host Host
}

var MemoryGroup = Group{
	Name: "memory",
	New:  func(host Host) any { return &Memory{host: host} },
	Overloads: []Overload{
		withIn("push", (*Memory).Push),
		withOut("pop", (*Memory).Pop),
		withOutIn("load", (*Memory).Load),
		withInIn("store", (*Memory).Store),
	},
}

func (mem *Memory) sp() (int64, error) {
	return operand.Int(mem.host, operand.Register(machine.REG_SP))
}

// Push decrements $sp by one word and stores the value there.
func (mem *Memory) Push(value operand.Input) (seq machine.Sequence, err error) {
	word, err := value.Get(mem.host)
	if err != nil {
		return
	}
	sp, err := mem.sp()
	if err != nil {
		return
	}
	ws := mem.host.WordSize()
	sp -= int64(ws)
	err = mem.host.CheckStack(sp)
	if err != nil {
		return
	}

	seq = seq.SetRegister(machine.REG_SP, machine.IntWord(sp, ws)).SetMemory(sp, word)
	return
}

// Pop loads the word at $sp, then increments $sp by one word.
func (mem *Memory) Pop(out operand.Output) (seq machine.Sequence, err error) {
	sp, err := mem.sp()
	if err != nil {
		return
	}
	err = mem.host.CheckStack(sp)
	if err != nil {
		return
	}
	ws := mem.host.WordSize()
	word, err := mem.host.Read(sp, ws)
	if err != nil {
		return
	}
	target, err := out.Target(mem.host)
	if err != nil {
		return
	}

	seq = seq.SetRegister(machine.REG_SP, machine.IntWord(sp+int64(ws), ws)).Set(target, word)
	return
}

// Load reads the word at address.
func (mem *Memory) Load(out operand.Output, address operand.Input) (seq machine.Sequence, err error) {
	addr, err := operand.Int(mem.host, address)
	if err != nil {
		return
	}
	word, err := mem.host.Read(addr, mem.host.WordSize())
	if err != nil {
		return
	}
	target, err := out.Target(mem.host)
	if err != nil {
		return
	}
	seq = seq.Set(target, word)
	return
}

// Store writes value to the word at address.
func (mem *Memory) Store(value operand.Input, address operand.Input) (seq machine.Sequence, err error) {
	word, err := value.Get(mem.host)
	if err != nil {
		return
	}
	addr, err := operand.Int(mem.host, address)
	if err != nil {
		return
	}
	seq = seq.SetMemory(addr, word)
	return
}
