// This file is part of asfv1.

package asm

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/ndf-zz/asfv1/fv1"
)

// Config selects the assembler's overflow and output-shaping policy.
// It replaces the source tool's construction-time option functions: a
// plain struct is enough here since there is no multi-step build
// order to enforce.
type Config struct {
	Quiet       bool // suppress display of warnings; Assemble still returns them, the CLI skips printing them
	Clamp       bool // clamp out-of-range operands instead of erroring
	ExplicitNop bool // fill unused program slots with skp 0,0 instead of a collapsed skip
	SpinReals   bool // treat bare integer literals 1, 2 as real 1.0, 2.0

	// Logger, if non-nil, receives one Debug record per instruction
	// emitted, delay region allocated, and fix-up resolved. The core
	// never writes to stdio directly; this is the only place a driver
	// decision becomes observable outside the returned Program and
	// warning list.
	Logger *slog.Logger
}

// tracef logs one verbose-trace line if a Logger is configured; a nil
// Logger makes this a no-op rather than requiring every call site to
// guard against it.
func (p *parser) tracef(msg string, args ...any) {
	if p.cfg.Logger == nil {
		return
	}
	p.cfg.Logger.Debug(msg, args...)
}

type fixup struct {
	instrAddr  int
	targetName string
	cond       uint32
	line       int
}

// parser drives statement-level parsing: it owns the token stream,
// the symbol table, the in-progress program, the pending-target
// queue, and the skp/jmp fix-up list.
type parser struct {
	lex    *Lexer
	tok    Token
	peeked *Token

	sym *SymbolTable
	cfg Config

	warnings []Warning
	prog     fv1.Program
	pc       int

	pendingTargets []string
	fixups         []fixup
}

func newParser(src string, cfg Config) (*parser, error) {
	p := &parser{
		lex: NewLexer(src),
		sym: NewSymbolTable(),
		cfg: cfg,
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *parser) advance() error {
	if p.peeked != nil {
		p.tok = *p.peeked
		p.peeked = nil
		return nil
	}
	t, err := p.lex.Next()
	if err != nil {
		return &ErrAsm{Diagnostic{p.tok.Line, err.Error()}}
	}
	p.tok = t
	return nil
}

func (p *parser) peek() (Token, error) {
	if p.peeked == nil {
		t, err := p.lex.Next()
		if err != nil {
			return Token{}, &ErrAsm{Diagnostic{p.tok.Line, err.Error()}}
		}
		p.peeked = &t
	}
	return *p.peeked, nil
}

func (p *parser) fail(line int, msg string) error {
	return &ErrAsm{Diagnostic{line, msg}}
}

func (p *parser) warn(line int, msg string) {
	p.warnings = append(p.warnings, Warning{line, msg})
}

// expectEOL consumes the statement terminator; anything else is
// "too many operands" since every statement grammar production stops
// at an explicit point before EOL.
func (p *parser) expectEOL() error {
	if p.tok.Kind == EOL || p.tok.Kind == EOF {
		if p.tok.Kind == EOL {
			return p.advance()
		}
		return nil
	}
	return p.fail(p.tok.Line, "too many operands")
}

// expectArgSep consumes a comma between operands.
func (p *parser) expectArgSep() error {
	if p.tok.Kind != ARGSEP {
		return p.fail(p.tok.Line, "missing operand, expected ','")
	}
	return p.advance()
}

// Assemble reads source text from r and runs the full pipeline,
// returning the finished program and any accumulated warnings.
// Assembly stops at the first fatal diagnostic.
func Assemble(r io.Reader, cfg Config) (*fv1.Program, []Warning, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, errors.Wrap(err, "asm: reading source")
	}

	p, err := newParser(string(data), cfg)
	if err != nil {
		return nil, nil, err
	}

	for p.tok.Kind != EOF {
		if err := p.statement(); err != nil {
			return nil, p.warnings, err
		}
	}

	for _, t := range p.pendingTargets {
		if err := p.sym.BindTarget(t, p.pc); err != nil {
			return nil, p.warnings, p.fail(p.tok.Line, err.Error())
		}
	}
	p.pendingTargets = nil

	if err := p.resolveFixups(); err != nil {
		return nil, p.warnings, err
	}

	p.prog.Pad(p.cfg.ExplicitNop)
	return &p.prog, p.warnings, nil
}

// statement parses and emits exactly one top-level construct: a
// target label, a symbol definition (EQU), a memory allocation (MEM),
// or a mnemonic instruction.
func (p *parser) statement() error {
	switch p.tok.Kind {
	case EOL:
		return p.advance()
	case LABEL:
		name := p.tok.Text
		line := p.tok.Line
		if p.sym.IsSymbol(name) {
			return p.fail(line, "target "+name+" collides with existing symbol")
		}
		p.pendingTargets = append(p.pendingTargets, name)
		return p.advance()
	case IDENT:
		return p.identStatement()
	default:
		return p.fail(p.tok.Line, "unexpected token "+p.tok.Kind.String())
	}
}

func (p *parser) identStatement() error {
	name := p.tok.Text
	line := p.tok.Line

	switch name {
	case "EQU":
		if err := p.advance(); err != nil {
			return err
		}
		if p.tok.Kind != IDENT {
			return p.fail(p.tok.Line, "expected identifier after EQU")
		}
		return p.equDefinition(p.tok.Text, line)
	case "MEM":
		if err := p.advance(); err != nil {
			return err
		}
		if p.tok.Kind != IDENT {
			return p.fail(p.tok.Line, "expected identifier after MEM")
		}
		return p.memDirective(p.tok.Text, line)
	}

	nt, err := p.peek()
	if err != nil {
		return err
	}
	if nt.Kind == IDENT && nt.Text == "EQU" {
		if err := p.advance(); err != nil { // consume NAME; equDefinition consumes EQU
			return err
		}
		return p.equDefinition(name, line)
	}

	return p.instruction(name, line)
}

// equDefinition consumes the current token (NAME in "EQU NAME EXPR",
// the EQU keyword in "NAME EQU EXPR"), then parses the EXPR and binds
// it to name.
func (p *parser) equDefinition(name string, line int) error {
	if err := p.advance(); err != nil { // consume NAME or EQU token
		return err
	}
	val, err := p.parseExpr()
	if err != nil {
		return p.fail(line, err.Error())
	}
	var redefined bool
	if val.Real {
		redefined, err = p.sym.DefineReal(name, val.F)
	} else {
		redefined, err = p.sym.DefineInt(name, val.I)
	}
	if err != nil {
		return p.fail(line, err.Error())
	}
	if redefined {
		p.warn(line, "redefinition of "+name)
	}
	return p.expectEOL()
}

func (p *parser) memDirective(name string, line int) error {
	if err := p.advance(); err != nil { // consume NAME token
		return err
	}
	val, err := p.parseExpr()
	if err != nil {
		return p.fail(line, err.Error())
	}
	if val.Real {
		return p.fail(line, "non-integer memory length")
	}
	redefined, err := p.sym.DefineDelay(name, val.I)
	if err != nil {
		return p.fail(line, err.Error())
	}
	if redefined {
		p.warn(line, "redefinition of "+name)
	}
	p.tracef("delay allocated", "name", name, "length", val.I)
	return p.expectEOL()
}

// instruction binds any pending targets to the current address, then
// dispatches to the mnemonic's encoder.
func (p *parser) instruction(name string, line int) error {
	for _, t := range p.pendingTargets {
		if err := p.sym.BindTarget(t, p.pc); err != nil {
			return p.fail(line, err.Error())
		}
	}
	p.pendingTargets = nil

	if p.pc >= fv1.ProgramSize {
		return p.fail(line, "instruction count exceeds 128")
	}

	if err := p.advance(); err != nil { // consume mnemonic
		return err
	}

	word, err := p.encode(name, line)
	if err != nil {
		return p.fail(line, err.Error())
	}

	p.prog.Words[p.pc] = word
	p.prog.Lines[p.pc] = line
	p.tracef("instruction emitted", "addr", p.pc, "mnemonic", name, "word", fmt.Sprintf("%08X", uint32(word)))
	p.pc++
	p.prog.Filled = p.pc

	return p.expectEOL()
}

// resolveFixups binds every deferred skp/jmp target, computing the
// relative offset and failing if it doesn't land strictly after the
// instruction or doesn't fit the 6-bit field.
func (p *parser) resolveFixups() error {
	for _, fx := range p.fixups {
		addr, ok := p.sym.TargetAddr(fx.targetName)
		if !ok {
			return p.fail(fx.line, "undefined target "+fx.targetName)
		}
		offset := addr - fx.instrAddr - 1
		if offset <= 0 {
			return p.fail(fx.line, "target "+fx.targetName+" does not follow SKP")
		}
		if offset > 63 {
			return p.fail(fx.line, "skip offset too large")
		}
		p.prog.Words[fx.instrAddr] = skpWord(fx.cond, uint32(offset))
		p.tracef("fix-up resolved", "target", fx.targetName, "addr", fx.instrAddr, "offset", offset)
	}
	return nil
}
