package asm

import (
	"fmt"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// eval evaluates a $(...) constant expression.
func (lex *Lexer) eval(expr string, lineNo int) (value int64, err error) {
	thread := starlark.Thread{Name: "asm"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{
		"WORD_SIZE":    starlark.MakeInt(lex.wordSize()),
		"MEMORY_WORDS": starlark.MakeInt(lex.memoryWords()),
		"LINENO":       starlark.MakeInt(lineNo),
	}

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrExpression, err)
		return
	}

	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = fmt.Errorf("%w: %v", ErrExpression, expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = fmt.Errorf("%w: %v", ErrExpression, expr)
		return
	}

	return
}
