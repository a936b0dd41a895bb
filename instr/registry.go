package instr

import (
	"errors"
	"fmt"
	"iter"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/ezrec/ezasm/internal"
	"github.com/ezrec/ezasm/machine"
	"github.com/ezrec/ezasm/operand"
)

// Parameter kinds of an overload signature.
const (
	IN  = operand.CAP_READ       // Parameter is read.
	OUT = operand.CAP_READ_WRITE // Parameter is written, and may be read.
)

// Host is the simulator a dispatcher is bound to.
type Host interface {
	machine.View
	Console() *Console // Terminal input and output.
	Lines() int        // Number of lines in the program.
	ApplyTransformations(seq machine.Sequence) error
}

// Handler runs an instruction on a bound group instance.
type Handler func(group any, args []operand.Operand) (machine.Sequence, error)

// Overload is one signature of an instruction.
type Overload struct {
	Name    string               // Instruction name, as declared.
	Params  []operand.Capability // Required capability of each operand.
	Handler Handler              // Implementation.

	group int // Index of the owning group in the registry.
}

// Accepts reports whether the overload can be called with operands of the
// given capabilities.
func (ov *Overload) Accepts(args []operand.Capability) bool {
	if len(args) != len(ov.Params) {
		return false
	}
	for n, param := range ov.Params {
		if !args[n].Allows(param) {
			return false
		}
	}
	return true
}

func (ov *Overload) String() string {
	params := make([]string, len(ov.Params))
	for n, param := range ov.Params {
		params[n] = param.String()
	}
	return fmt.Sprintf("%v(%v)", ov.Name, strings.Join(params, ", "))
}

// Group is a set of related instructions sharing one handler type.
type Group struct {
	Name      string         // Group name, for diagnostics.
	New       func(Host) any // Creates a group instance bound to a host.
	Overloads []Overload     // Instructions of the group.
}

// Registry maps instruction names to their overloads.
type Registry struct {
	mutex     sync.RWMutex
	groups    []Group
	overloads map[string][]Overload
}

var reName = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		overloads: make(map[string][]Overload),
	}
}

// canonical lowercases a declared name and strips the leading '_' used to
// declare reserved words such as "_return".
func canonical(name string) string {
	return strings.TrimPrefix(strings.ToLower(name), "_")
}

// Register validates and adds a group. On error nothing is registered.
func (reg *Registry) Register(group Group) (err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrInstructionLoad, fmt.Errorf("%v: %w", group.Name, err))
		}
	}()

	if group.New == nil {
		err = ErrGroupInvalid
		return
	}

	reg.mutex.Lock()
	defer reg.mutex.Unlock()

	index := len(reg.groups)
	added := make(map[string][]Overload)

	for _, ov := range group.Overloads {
		name := canonical(ov.Name)
		if !reName.MatchString(name) {
			err = fmt.Errorf("%v: %w", ov.Name, ErrNameInvalid)
			return
		}
		if ov.Handler == nil {
			err = fmt.Errorf("%v: %w", ov.Name, ErrHandlerMissing)
			return
		}
		for _, param := range ov.Params {
			if param != IN && param != OUT {
				err = fmt.Errorf("%v: %w", ov.Name, ErrParamInvalid)
				return
			}
		}
		for _, other := range slices.Concat(reg.overloads[name], added[name]) {
			if slices.Equal(other.Params, ov.Params) {
				err = fmt.Errorf("%v: %w", ov.Name, ErrDuplicate)
				return
			}
		}

		ov.group = index
		added[name] = append(added[name], ov)
	}

	reg.groups = append(reg.groups, group)
	for name, list := range added {
		reg.overloads[name] = append(reg.overloads[name], list...)
	}

	return
}

// MustRegister registers a group, and panics on a registration defect.
func (reg *Registry) MustRegister(group Group) {
	err := reg.Register(group)
	if err != nil {
		panic(err)
	}
}

// Has reports whether an instruction name is registered.
func (reg *Registry) Has(name string) bool {
	reg.mutex.RLock()
	defer reg.mutex.RUnlock()

	_, ok := reg.overloads[strings.ToLower(name)]
	return ok
}

// Resolve returns the first overload of name, in registration order, that
// accepts operands of the given capabilities. An unknown name returns
// ErrIllegalInstruction; a known name without a matching overload returns
// an ErrMismatch.
func (reg *Registry) Resolve(name string, args []operand.Capability) (ov *Overload, err error) {
	reg.mutex.RLock()
	defer reg.mutex.RUnlock()

	name = strings.ToLower(name)
	overloads, ok := reg.overloads[name]
	if !ok {
		err = ErrIllegalInstruction(name)
		return
	}

	for n := range overloads {
		if overloads[n].Accepts(args) {
			ov = &overloads[n]
			return
		}
	}

	err = &ErrMismatch{Instruction: name, Args: args}
	return
}

// Overloads returns the overloads registered for name.
func (reg *Registry) Overloads(name string) []Overload {
	reg.mutex.RLock()
	defer reg.mutex.RUnlock()

	return slices.Clone(reg.overloads[strings.ToLower(name)])
}

// Names returns the sorted registered instruction names.
func (reg *Registry) Names() (names []string) {
	reg.mutex.RLock()
	defer reg.mutex.RUnlock()

	for name := range reg.overloads {
		names = append(names, name)
	}
	slices.Sort(names)
	return
}

// All iterates every overload, group by group, in registration order.
func (reg *Registry) All() iter.Seq[Overload] {
	reg.mutex.RLock()
	lists := make([][]Overload, len(reg.groups))
	for n, group := range reg.groups {
		lists[n] = group.Overloads
	}
	reg.mutex.RUnlock()

	return internal.IterSlicesConcat(lists...)
}

// groupCount returns the number of registered groups.
func (reg *Registry) groupCount() int {
	reg.mutex.RLock()
	defer reg.mutex.RUnlock()

	return len(reg.groups)
}

// group returns the registered group at index.
func (reg *Registry) group(index int) Group {
	reg.mutex.RLock()
	defer reg.mutex.RUnlock()

	return reg.groups[index]
}

// Default is the registry of the EzASM instruction set.
var Default = NewRegistry()

func init() {
	Default.MustRegister(ArithmeticGroup)
	Default.MustRegister(FloatGroup)
	Default.MustRegister(ComparisonGroup)
	Default.MustRegister(BranchGroup)
	Default.MustRegister(FunctionGroup)
	Default.MustRegister(MemoryGroup)
	Default.MustRegister(TerminalGroup)
}
