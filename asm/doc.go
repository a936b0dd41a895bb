// Package asm lexes and parses EzASM source text into programs.
//
// One source line holds at most one instruction:
//
//	# comment
//	label:
//	add $t0, $t1, 0x10     # inline comment
//	load $a0, -4($sp);
//	printc 'A'
//	move $t2, $(WORD_SIZE * 4)
//
// Operands are registers ($name or $index), immediates in decimal, 0x or 0b
// form with an optional fraction, dereferences offset($reg), and labels.
// Character literals and $(...) constant expressions are expanded to
// decimal immediates before the line is tokenized.
package asm
