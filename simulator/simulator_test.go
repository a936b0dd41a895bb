package simulator

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/ezrec/ezasm/asm"
	"github.com/ezrec/ezasm/instr"
	"github.com/ezrec/ezasm/machine"
	"github.com/ezrec/ezasm/operand"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const factorial = `# recursive factorial
	readi $a0
	jal fact
	printi $r0
	printc '\n'
	exit

fact:
	push $ra
	push $a0
	move $r0, 1
	ble $a0, 1, fact_done
	dec $a0
	jal fact
	pop $a0
	push $a0
	mul $r0, $r0, $a0
fact_done:
	pop $a0
	pop $ra
	return
`

func newTestSimulator(t *testing.T, source string, input string) (sim *Simulator, output *bytes.Buffer) {
	output = &bytes.Buffer{}

	config := DefaultConfig()
	config.MemoryWords = 64
	config.Input = strings.NewReader(input)
	config.Output = output

	sim, err := New(config)
	require.NoError(t, err)

	if len(source) > 0 {
		require.NoError(t, sim.Parse(strings.NewReader(source)))
	}

	return
}

func TestSimulator(t *testing.T) {
	assert := assert.New(t)

	sim, _ := newTestSimulator(t, "", "")

	assert.False(sim.Verbose)
	assert.Nil(sim.Program)
	assert.Equal(0, sim.Lines())
	assert.True(sim.IsDone())
	assert.Equal(0, sim.LineNo())
	assert.Equal(machine.DEFAULT_WORD_SIZE, sim.WordSize())
	assert.Equal(2*64*4, sim.Capacity())

	_, err := New(Config{WordSize: 9, MemoryWords: 4})
	assert.ErrorIs(err, machine.ErrWordSize)
}

func TestSimulatorRun(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		input  string
		output string
	}){
		{"one", "1", "1\n"},
		{"three", "3", "6\n"},
		{"five", " 5\n", "120\n"},
	}

	for _, entry := range table {
		sim, output := newTestSimulator(t, factorial, entry.input)

		assert.NoError(sim.Prepare(), entry.name)
		assert.NoError(sim.Run(), entry.name)
		assert.Equal(entry.output, output.String(), entry.name)
		assert.True(sim.IsDone(), entry.name)

		sp, err := sim.Registers.Int(machine.REG_SP)
		assert.NoError(err)
		assert.Equal(sim.InitialStackPointer(), sp, entry.name)
	}
}

func TestSimulatorStrings(t *testing.T) {
	assert := assert.New(t)

	sim, output := newTestSimulator(t, "readln 0, 32\nprints 0, 32\nprints 0\n", "hello world\nignored")

	assert.NoError(sim.Prepare())
	assert.NoError(sim.Run())
	assert.Equal("hello worldhello world", output.String())

	text, err := sim.ReadString(0, 32)
	assert.NoError(err)
	assert.Equal("hello world", text)
}

func TestSimulatorExecuteLineFromPC(t *testing.T) {
	assert := assert.New(t)

	sim, _ := newTestSimulator(t, "move $t0, 5\n\n# skip\nj 0\n", "")
	assert.NoError(sim.Prepare())

	assert.Equal(1, sim.LineNo())
	assert.NoError(sim.ExecuteLineFromPC())
	assert.Equal(1, sim.PC())
	assert.Equal(4, sim.LineNo())

	assert.NoError(sim.ExecuteLineFromPC())
	assert.Equal(0, sim.PC())
	assert.Equal(int64(5), sim.Snapshot()[machine.REG_T0])
}

func TestSimulatorExecute(t *testing.T) {
	assert := assert.New(t)

	sim, _ := newTestSimulator(t, "", "")

	line := &asm.Line{
		Instruction: "add",
		Args: []operand.Operand{
			operand.Register(machine.REG_T0),
			operand.Immediate(machine.IntWord(2, 4)),
			operand.Immediate(machine.IntWord(3, 4)),
		},
	}
	assert.NoError(sim.Execute(line))
	assert.Equal(int64(5), sim.Snapshot()[machine.REG_T0])
	assert.Equal(0, sim.PC())

	err := sim.Execute(&asm.Line{Instruction: "frob"})
	assert.Equal(instr.ErrIllegalInstruction("frob"), err)
}

func TestSimulatorRuntimeError(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		source string
		lineNo int
		err    error
	}){
		{"divide", "move $t0, 1\n\ndiv $t0, $t0, $zero\n", 3, instr.ErrDivideByZero},
		{"bounds", "load $t0, -4\n", 1, machine.ErrOutOfBounds},
		{"underflow", "pop $t0\n", 1, machine.ErrOutOfBounds},
		{"offset read", "move $t0, 9223372036854775807($zero)\n", 1, machine.ErrOutOfBounds},
		{"offset write", "move $t0, 4\nmove 9223372036854775807($t0), 1\n", 2, machine.ErrOutOfBounds},
		{"misaligned", "move $sp, 3\npush $t0\n", 2, machine.ErrMisalignedStackPointer(-1)},
		{"input", "readi $t0\n", 1, instr.ErrTerminal("reading integer from input")},
	}

	for _, entry := range table {
		sim, _ := newTestSimulator(t, entry.source, "")

		assert.NoError(sim.Prepare(), entry.name)
		err := sim.Run()
		assert.ErrorIs(err, entry.err, entry.name)
		assert.ErrorIs(err, machine.ErrSimulation, entry.name)

		var rerr *ErrRuntime
		if assert.True(errors.As(err, &rerr), entry.name) {
			assert.Equal(entry.lineNo, rerr.LineNo, entry.name)
		}
	}
}

func TestSimulatorParseError(t *testing.T) {
	assert := assert.New(t)

	sim, _ := newTestSimulator(t, "exit\n", "")
	prog := sim.Program

	err := sim.Parse(strings.NewReader("exit\nbogus $t0\n"))
	assert.ErrorIs(err, asm.ErrInstructionUnknown)
	assert.Same(prog, sim.Program)
}
