package instr

import (
	"log"
	"sync"

	"github.com/ezrec/ezasm/machine"
	"github.com/ezrec/ezasm/operand"
)

// Dispatcher runs instructions against one host. It owns one instance of
// every registered group, bound to that host.
type Dispatcher struct {
	Verbose bool // Set to log every dispatched instruction.

	registry *Registry
	host     Host

	mutex    sync.Mutex
	instance []any
}

// NewDispatcher binds a registry to a host, creating every group instance.
func NewDispatcher(registry *Registry, host Host) (disp *Dispatcher) {
	disp = &Dispatcher{
		registry: registry,
		host:     host,
	}

	for n := range registry.groupCount() {
		disp.instance = append(disp.instance, registry.group(n).New(host))
	}

	return
}

// Registry returns the registry of the dispatcher.
func (disp *Dispatcher) Registry() *Registry {
	return disp.registry
}

// bound returns the group instance at index. Groups registered after the
// dispatcher was created are bound here.
func (disp *Dispatcher) bound(index int) any {
	disp.mutex.Lock()
	defer disp.mutex.Unlock()

	for len(disp.instance) <= index {
		disp.instance = append(disp.instance, disp.registry.group(len(disp.instance)).New(disp.host))
	}

	return disp.instance[index]
}

// Invoke resolves and runs an instruction, returning its transformations
// without applying them.
func (disp *Dispatcher) Invoke(name string, args []operand.Operand) (seq machine.Sequence, err error) {
	ov, err := disp.registry.Resolve(name, operand.Capabilities(args))
	if err != nil {
		if _, illegal := err.(ErrIllegalInstruction); !illegal {
			err = &ErrExecute{Instruction: name, Err: err}
		}
		return
	}

	if disp.Verbose {
		log.Printf("dispatch: %v %v", ov, args)
	}

	seq, err = ov.Handler(disp.bound(ov.group), args)
	if err != nil {
		err = &ErrExecute{Instruction: canonical(ov.Name), Err: err}
		return
	}

	return
}

// Execute runs an instruction and hands its transformations to the host.
func (disp *Dispatcher) Execute(name string, args []operand.Operand) (err error) {
	seq, err := disp.Invoke(name, args)
	if err != nil {
		return
	}

	return disp.host.ApplyTransformations(seq)
}
