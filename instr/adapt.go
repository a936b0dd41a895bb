package instr

import (
	"github.com/ezrec/ezasm/machine"
	"github.com/ezrec/ezasm/operand"
)

// The with* functions declare an overload from a typed group method. The
// parameter list of the method fixes the signature; the dispatcher only
// calls a handler with operands that satisfy it.

type result = machine.Sequence

func withNone[G any](name string, fn func(G) (result, error)) Overload {
	return Overload{
		Name:   name,
		Params: []operand.Capability{},
		Handler: func(g any, args []operand.Operand) (result, error) {
			return fn(g.(G))
		},
	}
}

func withIn[G any](name string, fn func(G, operand.Input) (result, error)) Overload {
	return Overload{
		Name:   name,
		Params: []operand.Capability{IN},
		Handler: func(g any, args []operand.Operand) (result, error) {
			return fn(g.(G), args[0].(operand.Input))
		},
	}
}

func withOut[G any](name string, fn func(G, operand.Output) (result, error)) Overload {
	return Overload{
		Name:   name,
		Params: []operand.Capability{OUT},
		Handler: func(g any, args []operand.Operand) (result, error) {
			return fn(g.(G), args[0].(operand.Output))
		},
	}
}

func withInIn[G any](name string, fn func(G, operand.Input, operand.Input) (result, error)) Overload {
	return Overload{
		Name:   name,
		Params: []operand.Capability{IN, IN},
		Handler: func(g any, args []operand.Operand) (result, error) {
			return fn(g.(G), args[0].(operand.Input), args[1].(operand.Input))
		},
	}
}

func withOutIn[G any](name string, fn func(G, operand.Output, operand.Input) (result, error)) Overload {
	return Overload{
		Name:   name,
		Params: []operand.Capability{OUT, IN},
		Handler: func(g any, args []operand.Operand) (result, error) {
			return fn(g.(G), args[0].(operand.Output), args[1].(operand.Input))
		},
	}
}

func withInInIn[G any](name string, fn func(G, operand.Input, operand.Input, operand.Input) (result, error)) Overload {
	return Overload{
		Name:   name,
		Params: []operand.Capability{IN, IN, IN},
		Handler: func(g any, args []operand.Operand) (result, error) {
			return fn(g.(G), args[0].(operand.Input), args[1].(operand.Input), args[2].(operand.Input))
		},
	}
}

func withOutInIn[G any](name string, fn func(G, operand.Output, operand.Input, operand.Input) (result, error)) Overload {
	return Overload{
		Name:   name,
		Params: []operand.Capability{OUT, IN, IN},
		Handler: func(g any, args []operand.Operand) (result, error) {
			return fn(g.(G), args[0].(operand.Output), args[1].(operand.Input), args[2].(operand.Input))
		},
	}
}
