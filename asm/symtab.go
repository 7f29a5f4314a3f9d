// This file is part of asfv1.

package asm

import (
	"fmt"
	"strings"

	"github.com/ndf-zz/asfv1/fv1"
)

// delayCeiling is the hard limit on cumulative delay-region length,
// one sample per word of the FV-1's circular delay buffer.
const delayCeiling = 32768

type symKind int

const (
	symInt symKind = iota
	symReal
	symDelay
)

type symEntry struct {
	kind          symKind
	i             int64
	f             float64
	start, length int64
}

// SymbolTable maps case-folded names to integers, reals, or delay
// regions, and separately maps target names to bound instruction
// addresses. The two namespaces are logically distinct but must stay
// disjoint: a name used in one cannot also appear in the other.
type SymbolTable struct {
	syms    map[string]symEntry
	targets map[string]int
	cursor  int64 // delay allocator, advances by length per MEM
}

// NewSymbolTable returns a table seeded with the FV-1's predefined
// registers and constants.
func NewSymbolTable() *SymbolTable {
	t := &SymbolTable{
		syms:    make(map[string]symEntry),
		targets: make(map[string]int),
	}
	for _, p := range fv1.Predefined() {
		t.syms[p.Name] = symEntry{kind: symInt, i: p.Value}
	}
	return t
}

// DefineInt binds name to an integer value. redefined reports whether
// name already had a binding (the caller should emit a warning).
func (t *SymbolTable) DefineInt(name string, v int64) (redefined bool, err error) {
	return t.define(name, symEntry{kind: symInt, i: v})
}

// DefineReal binds name to a real value.
func (t *SymbolTable) DefineReal(name string, v float64) (redefined bool, err error) {
	return t.define(name, symEntry{kind: symReal, f: v})
}

func (t *SymbolTable) define(name string, e symEntry) (redefined bool, err error) {
	if _, ok := t.targets[name]; ok {
		return false, fmt.Errorf("%q is already bound as a target", name)
	}
	_, redefined = t.syms[name]
	t.syms[name] = e
	return redefined, nil
}

// DefineDelay allocates a delay region of the given length at the
// current cursor and binds name (and its derived NAME^/NAME# forms)
// to it, advancing the cursor to the region's NAME# address
// (start+length), which the next region may reuse as its own start.
// The ceiling check still reserves one sample past the requested
// length (so a single region of exactly 32768 samples is rejected),
// but the cursor itself only advances by length: NAME#'s address is
// not consumed space, only the last address a following region may
// start from. It fails with "Delay exhausted" if the allocation would
// exceed the 32768-sample ceiling.
func (t *SymbolTable) DefineDelay(name string, length int64) (redefined bool, err error) {
	if length < 0 {
		return false, fmt.Errorf("memory length must be non-negative")
	}
	if t.cursor+length+1 > delayCeiling {
		return false, fmt.Errorf("Delay exhausted")
	}
	start := t.cursor
	t.cursor += length
	return t.define(name, symEntry{kind: symDelay, start: start, length: length})
}

// Lookup resolves a case-folded identifier, including a fused NAME^
// or NAME# suffix, to its Value. Plain names resolve to their bound
// value (a delay region's plain name yields its start). Suffixed
// names require the base name to be a delay region.
func (t *SymbolTable) Lookup(name string) (Value, error) {
	base, suffix := splitSuffix(name)
	e, ok := t.syms[base]
	if !ok {
		if _, isTarget := t.targets[base]; isTarget {
			return Value{}, fmt.Errorf("%q is a target, not usable in an expression", base)
		}
		return Value{}, fmt.Errorf("undefined symbol %q", name)
	}
	if suffix == 0 {
		switch e.kind {
		case symInt:
			return Int(e.i), nil
		case symReal:
			return Real(e.f), nil
		case symDelay:
			return Int(e.start), nil
		}
	}
	if e.kind != symDelay {
		return Value{}, fmt.Errorf("%q is not a delay region, suffix not applicable", base)
	}
	switch suffix {
	case '^':
		return Int(e.start + e.length/2), nil
	case '#':
		return Int(e.start + e.length), nil
	}
	return Value{}, fmt.Errorf("unreachable")
}

func splitSuffix(name string) (string, rune) {
	if strings.HasSuffix(name, "^") {
		return strings.TrimSuffix(name, "^"), '^'
	}
	if strings.HasSuffix(name, "#") {
		return strings.TrimSuffix(name, "#"), '#'
	}
	return name, 0
}

// BindTarget binds name to an instruction address. It fails if name
// already names a symbol.
func (t *SymbolTable) BindTarget(name string, addr int) error {
	if _, ok := t.syms[name]; ok {
		return fmt.Errorf("%q is already bound as a symbol", name)
	}
	if _, ok := t.targets[name]; ok {
		return fmt.Errorf("target %q redefined", name)
	}
	t.targets[name] = addr
	return nil
}

// TargetAddr looks up a bound target's instruction address.
func (t *SymbolTable) TargetAddr(name string) (int, bool) {
	a, ok := t.targets[name]
	return a, ok
}

// IsTarget reports whether name is bound in the target namespace.
func (t *SymbolTable) IsTarget(name string) bool {
	_, ok := t.targets[name]
	return ok
}

// IsSymbol reports whether name is bound in the symbol namespace.
func (t *SymbolTable) IsSymbol(name string) bool {
	_, ok := t.syms[name]
	return ok
}
