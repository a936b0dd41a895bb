package machine

import (
	"errors"
	"fmt"

	"github.com/ezrec/ezasm/translate"
)

var f = translate.From

var (
	// ErrSimulation is matched by every runtime failure of a simulation.
	ErrSimulation = errors.New(f("simulation error"))

	ErrOutOfBounds     = fmt.Errorf("%w: %s", ErrSimulation, f("memory access out of bounds"))
	ErrRegisterInvalid = fmt.Errorf("%w: %s", ErrSimulation, f("register invalid"))
	ErrWordSize        = fmt.Errorf("%w: %s", ErrSimulation, f("word size invalid"))
	ErrFloatWordSize   = fmt.Errorf("%w: %s", ErrSimulation, f("float requires a 4 or 8 byte word"))
	ErrValueLength     = fmt.Errorf("%w: %s", ErrSimulation, f("value length does not match target"))
)

// ErrMisalignedStackPointer is the offending stack pointer of an unaligned
// stack access.
type ErrMisalignedStackPointer int64

func (err ErrMisalignedStackPointer) Error() string {
	return f("misaligned stack pointer (sp) value: %d", int64(err))
}

func (err ErrMisalignedStackPointer) Is(target error) bool {
	return target == ErrSimulation
}

// ErrAddress describes an out of bounds memory access.
type ErrAddress struct {
	Address  int64
	Length   int
	Capacity int
}

func (err *ErrAddress) Error() string {
	return f("address %d length %d outside memory of %d bytes", err.Address, err.Length, err.Capacity)
}

func (err *ErrAddress) Unwrap() error {
	return ErrOutOfBounds
}

// ErrRegister is an invalid register index.
type ErrRegister int

func (err ErrRegister) Error() string {
	return f("register $%d invalid", int(err))
}

func (err ErrRegister) Unwrap() error {
	return ErrRegisterInvalid
}
