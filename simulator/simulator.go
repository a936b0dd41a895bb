// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package simulator

import (
	"io"
	"log"

	"github.com/ezrec/ezasm/asm"
	"github.com/ezrec/ezasm/instr"
	"github.com/ezrec/ezasm/machine"
)

// Simulator state. Machine + program + terminal.
type Simulator struct {
	Verbose          bool         // If set, enables verbose logging.
	*machine.Machine              // Registers and memory.
	Program          *asm.Program // Currently loaded program.

	console    *instr.Console
	dispatcher *instr.Dispatcher
	lexer      asm.Lexer
}

var _ instr.Host = (*Simulator)(nil)

// New creates a simulator with a zeroed machine and no program.
func New(config Config) (sim *Simulator, err error) {
	m, err := machine.NewMachine(config.WordSize, config.MemoryWords)
	if err != nil {
		return
	}

	sim = &Simulator{
		Machine: m,
		console: instr.NewConsole(config.Input, config.Output),
		lexer: asm.Lexer{
			Registry:    instr.Default,
			WordSize:    config.WordSize,
			MemoryWords: config.MemoryWords,
		},
	}
	sim.dispatcher = instr.NewDispatcher(instr.Default, sim)

	return
}

// Console returns the terminal console.
func (sim *Simulator) Console() *instr.Console {
	return sim.console
}

// SetInput redirects terminal input.
func (sim *Simulator) SetInput(input io.Reader) {
	sim.console.SetInput(input)
}

// SetOutput redirects terminal output.
func (sim *Simulator) SetOutput(output io.Writer) {
	sim.console.SetOutput(output)
}

// Lines returns the number of instructions in the loaded program.
func (sim *Simulator) Lines() int {
	if sim.Program == nil {
		return 0
	}
	return sim.Program.Len()
}

// ApplyTransformations commits a sequence to the machine.
func (sim *Simulator) ApplyTransformations(seq machine.Sequence) error {
	sim.Machine.Verbose = sim.Verbose
	return sim.Machine.Apply(seq)
}

// Parse parses source text and loads it as the current program. On error
// the current program is kept.
func (sim *Simulator) Parse(reader io.Reader) (err error) {
	sim.lexer.Verbose = sim.Verbose
	prog, err := sim.lexer.Parse(reader)
	if err != nil {
		return
	}

	sim.Program = prog
	return
}

// LineNo returns the source line number of the instruction at the program
// counter, or 0 if there is none.
func (sim *Simulator) LineNo() int {
	if sim.Program == nil {
		return 0
	}
	return sim.Program.LineNo(sim.PC())
}

// IsDone reports whether the program counter is outside the program.
func (sim *Simulator) IsDone() bool {
	pc := sim.PC()
	return pc < 0 || pc >= sim.Lines()
}

// ResetAll zeros registers and memory, returning the program counter to the
// first instruction.
func (sim *Simulator) ResetAll() {
	sim.Machine.Reset()
}

// Prepare readies the machine to run the loaded program from the start.
func (sim *Simulator) Prepare() (err error) {
	sim.ResetAll()
	sim.console.Reset()

	sp := machine.IntWord(sim.InitialStackPointer(), sim.WordSize())
	return sim.Registers.Set(machine.REG_SP, sp)
}

// Execute runs a single line against the machine. The program counter is
// only changed if the line itself writes it.
func (sim *Simulator) Execute(line *asm.Line) (err error) {
	return sim.dispatcher.Execute(line.Instruction, line.Args)
}

// Next computes the transformations of the instruction at the program
// counter, including the program counter advance, without applying them.
func (sim *Simulator) Next() (seq machine.Sequence, err error) {
	pc := sim.PC()
	lineno := sim.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	if sim.IsDone() {
		err = ErrProgramDone
		return
	}

	sim.dispatcher.Verbose = sim.Verbose

	line := sim.Program.Lines[pc]
	if sim.Verbose {
		log.Printf("simulator: %d: %v", lineno, line)
	}

	seq, err = sim.dispatcher.Invoke(line.Instruction, line.Args)
	if err != nil {
		return
	}

	if !seq.Writes(machine.REG_PC) {
		seq = seq.SetRegister(machine.REG_PC, machine.IntWord(int64(pc+1), sim.WordSize()))
	}

	return
}

// ExecuteLineFromPC runs the instruction at the program counter and
// advances it.
func (sim *Simulator) ExecuteLineFromPC() (err error) {
	lineno := sim.LineNo()

	seq, err := sim.Next()
	if err != nil {
		return
	}

	err = sim.ApplyTransformations(seq)
	if err != nil {
		err = &ErrRuntime{LineNo: lineno, Err: err}
	}
	return
}

// Run executes from the program counter until the program completes or
// fails.
func (sim *Simulator) Run() (err error) {
	for !sim.IsDone() {
		err = sim.ExecuteLineFromPC()
		if err != nil {
			return
		}
	}
	return
}

// Snapshot returns the integer value of every register.
func (sim *Simulator) Snapshot() []int64 {
	return sim.Registers.Snapshot()
}
