package asm

import (
	"errors"

	"github.com/ezrec/ezasm/translate"
)

var f = translate.From

var (
	ErrInstructionUnknown = errors.New(f("unknown instruction"))
	ErrSignature          = errors.New(f("operands match no signature"))
	ErrLabelDuplicate     = errors.New(f("label already defined"))
	ErrExpression         = errors.New(f("expression must evaluate to an integer"))
	ErrImmediateRange     = errors.New(f("immediate out of range"))
)

// ErrOperand is a token that matches no operand form.
type ErrOperand string

func (err ErrOperand) Error() string {
	return f("invalid operand '%v'", string(err))
}

// ErrLabelMissing is a reference to an undefined label.
type ErrLabelMissing string

func (err ErrLabelMissing) Error() string {
	return f("label '%v' is not defined", string(err))
}

// ErrParse locates a parse failure in the source.
type ErrParse struct {
	LineNo int    // Source line number, starting from 1.
	Line   string // Source text of the line.
	Err    error
}

func (err *ErrParse) Error() string {
	return f("line %d: %v: %v", err.LineNo, err.Err, err.Line)
}

func (err *ErrParse) Unwrap() error {
	return err.Err
}
