package instr

import (
	"bytes"
	"strings"

	"github.com/ezrec/ezasm/machine"
)

// testHost is a bare machine with a console, for handler tests.
type testHost struct {
	*machine.Machine
	console *Console
	lines   int
	output  bytes.Buffer
}

var _ Host = (*testHost)(nil)

func newTestHost(input string) (host *testHost) {
	m, err := machine.NewMachine(machine.DEFAULT_WORD_SIZE, 256)
	if err != nil {
		panic(err)
	}
	host = &testHost{Machine: m, lines: 10}
	host.console = NewConsole(strings.NewReader(input), &host.output)
	return
}

func (host *testHost) Console() *Console {
	return host.console
}

func (host *testHost) Lines() int {
	return host.lines
}

func (host *testHost) ApplyTransformations(seq machine.Sequence) error {
	return host.Apply(seq)
}

func (host *testHost) set(index int, value int64) {
	err := host.Registers.Set(index, machine.IntWord(value, host.WordSize()))
	if err != nil {
		panic(err)
	}
}

func (host *testHost) get(index int) int64 {
	value, err := host.Registers.Int(index)
	if err != nil {
		panic(err)
	}
	return value
}
