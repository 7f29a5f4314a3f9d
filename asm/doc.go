// Package asm implements the front-end pipeline that turns FV-1
// assembly source into a 128-word program: a hand-rolled lexer, a
// precedence-climbing expression evaluator over a tagged
// integer/real scalar, a case-folded symbol table with a delay-region
// allocator, and a driver that dispatches statements to the opcode
// encoders in encode.go.
//
// Comments and labels:
//
// ';' begins a comment that runs to end of line. A statement is a
// target label (NAME:), a symbol definition (EQU NAME EXPR or NAME
// EQU EXPR), a memory allocation (MEM NAME EXPR), or a mnemonic
// instruction, one per source line.
//
// Targets bind to the address of the next instruction, not the
// statement that follows them, so several labels may stack before one
// instruction:
//
//		skp RUN, loop
//		clr
//	loop:
//	top:	rdax ADCL, 1.0
//		wrax DACL, 0.0
//
// skp and jmp accept a forward-referenced bare identifier as their
// offset operand; it is resolved to a relative offset once the whole
// source has been read. A target that does not lie at least two
// instructions after the skp (including any backward target) is an
// error. A parenthesized offset expression is always evaluated
// immediately instead.
package asm
