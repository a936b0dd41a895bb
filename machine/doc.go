// Package machine implements the state of the EzASM simulated machine.
//
// A Machine is a register file of 32 word-sized registers plus a flat byte
// addressable memory split into a heap segment (low addresses) and a stack
// segment (high addresses). Instruction handlers never write the machine
// directly; they describe their effect as a Sequence of Transformations,
// which Machine.Apply commits as a single unit.
package machine
