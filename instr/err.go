package instr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ezrec/ezasm/machine"
	"github.com/ezrec/ezasm/operand"
	"github.com/ezrec/ezasm/translate"
)

var f = translate.From

var (
	// Registration errors
	ErrInstructionLoad = errors.New(f("instruction load"))
	ErrHandlerMissing  = errors.New(f("handler missing"))
	ErrNameInvalid     = errors.New(f("name invalid"))
	ErrParamInvalid    = errors.New(f("parameter invalid"))
	ErrDuplicate       = errors.New(f("duplicate signature"))
	ErrGroupInvalid    = errors.New(f("group invalid"))

	// Dispatch errors
	ErrSignature = errors.New(f("no overload accepts the operands"))

	// Handler errors
	ErrDivideByZero = fmt.Errorf("%w: %s", machine.ErrSimulation, f("divide by zero"))
)

// ErrIllegalInstruction is an unregistered mnemonic.
type ErrIllegalInstruction string

func (err ErrIllegalInstruction) Error() string {
	return f("illegal instruction '%v'", string(err))
}

// ErrMismatch is a registered mnemonic with no overload for the operands.
type ErrMismatch struct {
	Instruction string
	Args        []operand.Capability
}

func (err *ErrMismatch) Error() string {
	args := make([]string, len(err.Args))
	for n, arg := range err.Args {
		args[n] = arg.String()
	}
	return f("%v(%v): %v", err.Instruction, strings.Join(args, ", "), ErrSignature)
}

func (err *ErrMismatch) Unwrap() error {
	return ErrSignature
}

// ErrExecute wraps a failure raised by an instruction handler.
type ErrExecute struct {
	Instruction string
	Err         error
}

func (err *ErrExecute) Error() string {
	return f("%v: %v", err.Instruction, err.Err)
}

func (err *ErrExecute) Unwrap() error {
	return err.Err
}

func (err *ErrExecute) Is(target error) bool {
	return target == machine.ErrSimulation
}

// ErrTerminal describes a failed terminal operation.
type ErrTerminal string

func (err ErrTerminal) Error() string {
	return f("error %v", string(err))
}

func (err ErrTerminal) Is(target error) bool {
	return target == machine.ErrSimulation
}
