package operand

import (
	"github.com/ezrec/ezasm/machine"
	"github.com/ezrec/ezasm/translate"
)

var f = translate.From

// ErrLabelUnresolved is a label read before it was bound to a line.
type ErrLabelUnresolved string

func (err ErrLabelUnresolved) Error() string {
	return f("label %v unresolved", string(err))
}

func (err ErrLabelUnresolved) Is(target error) bool {
	return target == machine.ErrSimulation
}
