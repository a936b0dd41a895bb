package simulator

import (
	"errors"
	"fmt"

	"github.com/ezrec/ezasm/machine"
	"github.com/ezrec/ezasm/translate"
)

var f = translate.From

var (
	ErrProgramMissing = errors.New(f("no program loaded"))
	ErrTransition     = errors.New(f("invalid state transition"))
	ErrJoinTimeout    = errors.New(f("worker did not stop in time"))

	ErrProgramDone = fmt.Errorf("%w: %s", machine.ErrSimulation, f("program counter outside program"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("line %d %v", err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

// ErrState is a control request that is invalid in the current state.
type ErrState struct {
	Request string
	State   State
}

func (err *ErrState) Error() string {
	return f("%v: %v while %v", ErrTransition, err.Request, err.State)
}

func (err *ErrState) Unwrap() error {
	return ErrTransition
}
