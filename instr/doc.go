// Package instr holds the instruction registry, the dispatcher, and the
// instruction handler groups of the EzASM instruction set.
//
// A handler group is a type whose methods implement related instructions.
// Each group is declared once as a Group value listing its overloads, and is
// registered into a Registry at package initialization. A Dispatcher binds
// one instance of every group to a Host (a simulator) and runs lines.
package instr
