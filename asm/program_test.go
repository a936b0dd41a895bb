package asm

import (
	"errors"
	"testing"

	"github.com/ezrec/ezasm/operand"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const countdown = `# count down from 3
	move $t0, 3
loop:
	printi $t0
	dec $t0
	bgt $t0, $zero, loop   # again
	jal done
	exit

done:
	return
`

func TestParse(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	lex := &Lexer{}
	prog, err := lex.ParseString(countdown)
	require.NoError(err)

	assert.Equal(7, prog.Len())
	assert.Equal(map[string]int{"loop": 1, "done": 6}, prog.Labels)
	assert.Equal([]int{2, 4, 5, 6, 7, 8, 11}, prog.LineNos)
	assert.Equal(7, prog.LineNo(4))
	assert.Equal(0, prog.LineNo(7))
	assert.Equal(0, prog.LineNo(-1))

	assert.Equal(operand.Label{Name: "loop", Index: 1, Resolved: true}, prog.Lines[3].Args[2])
	assert.Equal(operand.Label{Name: "done", Index: 6, Resolved: true}, prog.Lines[4].Args[0])
	assert.Equal("return", prog.Lines[6].Instruction)
}

func TestParseLabelAtEnd(t *testing.T) {
	assert := assert.New(t)

	lex := &Lexer{}
	prog, err := lex.ParseString("j end\nend:\n")
	assert.NoError(err)
	assert.Equal(map[string]int{"end": 1}, prog.Labels)
	assert.Equal(operand.Label{Name: "end", Index: 1, Resolved: true}, prog.Lines[0].Args[0])
}

func TestParseError(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		source string
		lineNo int
		err    error
	}){
		{"duplicate", "a:\nexit\na:\n", 3, ErrLabelDuplicate},
		{"missing", "exit\n\nj nowhere\n", 3, ErrLabelMissing("nowhere")},
		{"unknown", "exit\nfrob\n", 2, ErrInstructionUnknown},
		{"operand", "move $t0, 0xZZ\n", 1, ErrOperand("0xZZ")},
	}

	lex := &Lexer{}
	for _, entry := range table {
		prog, err := lex.ParseString(entry.source)
		assert.Nil(prog, entry.name)
		assert.ErrorIs(err, entry.err, entry.name)
		var perr *ErrParse
		if assert.True(errors.As(err, &perr), entry.name) {
			assert.Equal(entry.lineNo, perr.LineNo, entry.name)
		}
	}
}
