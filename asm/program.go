package asm

import (
	"bufio"
	"io"
	"log"
	"strings"

	"github.com/ezrec/ezasm/operand"
)

// Program is a parsed source with its labels resolved to line indexes.
type Program struct {
	Lines   []*Line        // Instructions, in execution order.
	LineNos []int          // Source line number of each instruction.
	Labels  map[string]int // Label names to instruction indexes.
}

// Len returns the number of instructions.
func (prog *Program) Len() int {
	return len(prog.Lines)
}

// LineNo returns the source line number of instruction index, or 0 when the
// index is outside the program.
func (prog *Program) LineNo(index int) int {
	if index < 0 || index >= len(prog.LineNos) {
		return 0
	}
	return prog.LineNos[index]
}

// Parse reads a complete source. Any error rejects the whole program.
func (lex *Lexer) Parse(reader io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(reader)

	working := &Program{
		Labels: map[string]int{},
	}
	sources := []string{}

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := scanner.Text()

		var line *Line
		var label string
		line, label, err = lex.parse(text, lineNo)
		if err != nil {
			return
		}

		if len(label) > 0 {
			if _, ok := working.Labels[label]; ok {
				err = &ErrParse{LineNo: lineNo, Line: strings.TrimSpace(text), Err: ErrLabelDuplicate}
				return
			}
			working.Labels[label] = len(working.Lines)
			if lex.Verbose {
				log.Printf("asm: %d: label %v = %d", lineNo, label, len(working.Lines))
			}
			continue
		}

		if line == nil {
			continue
		}

		working.Lines = append(working.Lines, line)
		working.LineNos = append(working.LineNos, lineNo)
		sources = append(sources, strings.TrimSpace(text))
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	for n, line := range working.Lines {
		working.Lines[n], err = working.resolve(line)
		if err != nil {
			err = &ErrParse{LineNo: working.LineNos[n], Line: sources[n], Err: err}
			return
		}
	}

	prog = working
	return
}

// ParseString parses a complete source held in a string.
func (lex *Lexer) ParseString(source string) (*Program, error) {
	return lex.Parse(strings.NewReader(source))
}

// resolve returns line with every label operand bound to its index.
func (prog *Program) resolve(line *Line) (resolved *Line, err error) {
	resolved = line
	for n, arg := range line.Args {
		label, ok := arg.(operand.Label)
		if !ok {
			continue
		}
		index, ok := prog.Labels[label.Name]
		if !ok {
			err = ErrLabelMissing(label.Name)
			return
		}
		if resolved == line {
			resolved = &Line{
				Instruction: line.Instruction,
				Args:        append([]operand.Operand(nil), line.Args...),
			}
		}
		resolved.Args[n] = label.Resolve(index)
	}
	return
}
