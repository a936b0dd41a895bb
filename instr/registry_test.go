package instr

import (
	"errors"
	"slices"
	"testing"

	"github.com/ezrec/ezasm/machine"
	"github.com/ezrec/ezasm/operand"
	"github.com/stretchr/testify/assert"
)

func nop[G any](g G) (machine.Sequence, error) {
	return nil, nil
}

func TestRegistryResolve(t *testing.T) {
	assert := assert.New(t)

	reg := Default

	table := [](struct {
		name   string
		args   []operand.Capability
		params []operand.Capability
	}){
		{"add", []operand.Capability{operand.CAP_READ_WRITE, operand.CAP_READ, operand.CAP_READ}, []operand.Capability{OUT, IN, IN}},
		{"ADD", []operand.Capability{operand.CAP_READ_WRITE, operand.CAP_READ_WRITE, operand.CAP_READ_WRITE}, []operand.Capability{OUT, IN, IN}},
		{"prints", []operand.Capability{operand.CAP_READ, operand.CAP_READ}, []operand.Capability{IN, IN}},
		{"prints", []operand.Capability{operand.CAP_READ}, []operand.Capability{IN}},
		{"return", []operand.Capability{}, []operand.Capability{}},
		{"exit", nil, []operand.Capability{}},
	}

	for _, entry := range table {
		ov, err := reg.Resolve(entry.name, entry.args)
		if !assert.NoError(err, entry.name) {
			continue
		}
		assert.Equal(entry.params, ov.Params, entry.name)
	}
}

func TestRegistryResolveError(t *testing.T) {
	assert := assert.New(t)

	reg := Default

	_, err := reg.Resolve("frobnicate", nil)
	assert.Equal(ErrIllegalInstruction("frobnicate"), err)
	assert.Equal("illegal instruction 'frobnicate'", err.Error())

	_, err = reg.Resolve("add", []operand.Capability{operand.CAP_READ, operand.CAP_READ, operand.CAP_READ})
	assert.ErrorIs(err, ErrSignature)
	var mismatch *ErrMismatch
	assert.True(errors.As(err, &mismatch))
	assert.Equal("add", mismatch.Instruction)

	_, err = reg.Resolve("add", []operand.Capability{operand.CAP_READ_WRITE, operand.CAP_READ})
	assert.ErrorIs(err, ErrSignature)
}

func TestRegistryNames(t *testing.T) {
	assert := assert.New(t)

	names := Default.Names()
	assert.True(slices.IsSorted(names))
	for _, name := range []string{"add", "beq", "jal", "return", "push", "printi", "readln"} {
		assert.Contains(names, name)
		assert.True(Default.Has(name), name)
	}
	assert.NotContains(names, "_return")
	assert.False(Default.Has("frobnicate"))

	count := 0
	for range Default.All() {
		count++
	}
	total := 0
	for _, name := range names {
		total += len(Default.Overloads(name))
	}
	assert.Equal(total, count)
}

func TestRegistryRegister(t *testing.T) {
	assert := assert.New(t)

	newGroup := func(overloads ...Overload) Group {
		return Group{
			Name:      "test",
			New:       func(Host) any { return nil },
			Overloads: overloads,
		}
	}

	table := [](struct {
		name  string
		group Group
		err   error
	}){
		{"ok", newGroup(withNone("alpha", nop[any])), nil},
		{"no_new", Group{Name: "test"}, ErrGroupInvalid},
		{"bad_name", newGroup(withNone("9lives", nop[any])), ErrNameInvalid},
		{"bad_chars", newGroup(withNone("a-b", nop[any])), ErrNameInvalid},
		{"no_handler", newGroup(Overload{Name: "beta"}), ErrHandlerMissing},
		{"bad_param", newGroup(Overload{
			Name:    "gamma",
			Params:  []operand.Capability{operand.CAP_WRITE},
			Handler: func(any, []operand.Operand) (machine.Sequence, error) { return nil, nil },
		}), ErrParamInvalid},
		{"duplicate", newGroup(withNone("delta", nop[any]), withNone("delta", nop[any])), ErrDuplicate},
	}

	for _, entry := range table {
		reg := NewRegistry()
		err := reg.Register(entry.group)
		if entry.err == nil {
			assert.NoError(err, entry.name)
			continue
		}
		assert.ErrorIs(err, ErrInstructionLoad, entry.name)
		assert.ErrorIs(err, entry.err, entry.name)
		assert.Empty(reg.Names(), entry.name)
	}
}

func TestRegistryDuplicateAcrossGroups(t *testing.T) {
	assert := assert.New(t)

	reg := NewRegistry()
	reg.MustRegister(ArithmeticGroup)

	err := reg.Register(Group{
		Name:      "again",
		New:       func(Host) any { return nil },
		Overloads: []Overload{withOutInIn("ADD", (*Arithmetic).Add)},
	})
	assert.ErrorIs(err, ErrDuplicate)

	assert.Panics(func() { reg.MustRegister(ArithmeticGroup) })
}
