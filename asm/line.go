package asm

import (
	"slices"
	"strings"

	"github.com/ezrec/ezasm/operand"
)

// Line is one parsed instruction.
type Line struct {
	Instruction string            // Lowercase mnemonic.
	Args        []operand.Operand // Operands, in source order.
}

// Equal compares lines structurally.
func (line *Line) Equal(other *Line) bool {
	if line == nil || other == nil {
		return line == other
	}
	return line.Instruction == other.Instruction &&
		slices.EqualFunc(line.Args, other.Args, operand.Equal)
}

// String is the canonical source form of the line, which parses back to
// an equal line.
func (line *Line) String() string {
	if len(line.Args) == 0 {
		return line.Instruction
	}

	args := make([]string, len(line.Args))
	for n, arg := range line.Args {
		args[n] = arg.String()
	}
	return line.Instruction + " " + strings.Join(args, ", ")
}
