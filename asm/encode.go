// This file is part of asfv1.

package asm

import (
	"fmt"

	"github.com/ndf-zz/asfv1/fv1"
)

// field packs v (masked to bits wide) at bit offset shift.
func field(v uint32, bits uint, shift uint) uint32 {
	return (v & (uint32(1)<<bits - 1)) << shift
}

// uintRange returns the signed range of values that pack losslessly
// into an unsigned field of the given width, two's-complement style:
// either the unsigned reading [0, 2^bits-1] or the negative half of
// the signed reading [-2^(bits-1), -1] addresses the same bits.
func uintRange(bits uint) (lo, hi int64) {
	return -(int64(1) << (bits - 1)), int64(1)<<bits - 1
}

func packUint(v int64, bits uint) uint32 {
	return uint32(v) & (uint32(1)<<bits - 1)
}

// packOperand converts v into a bits-wide field per the coercion
// rule: a real value is fixed-point converted through format; an
// integer value is range-checked (or clamped) and masked directly
// into the field's two's-complement bit pattern, bypassing the
// fixed-point table entirely.
func (p *parser) packOperand(v Value, bits uint, format fv1.Format, line int) (uint32, error) {
	if v.Real {
		if format.Ref == 0 {
			return 0, fmt.Errorf("real value not allowed for an integer-only field")
		}
		bitsField, clamped, rangeErr := format.EncodeReal(v.F, p.cfg.Clamp)
		if rangeErr {
			return 0, fmt.Errorf("operand %v out of range for %s [%v, %v]", v.F, format.Name, format.RealMin(), format.RealMax())
		}
		if clamped {
			p.warn(line, fmt.Sprintf("operand %v clamped to %s range", v.F, format.Name))
		}
		return bitsField, nil
	}
	lo, hi := uintRange(bits)
	iv := v.I
	if iv < lo || iv > hi {
		if !p.cfg.Clamp {
			return 0, fmt.Errorf("operand %d out of range for %d-bit field", iv, bits)
		}
		if iv < lo {
			iv = lo
		} else {
			iv = hi
		}
		p.warn(line, fmt.Sprintf("operand %d clamped to %d-bit field", v.I, bits))
	}
	return packUint(iv, bits), nil
}

// operand parses one comma-separated operand expression.
func (p *parser) operand(line int) (Value, error) {
	v, err := p.parseExpr()
	if err != nil {
		return Value{}, err
	}
	return v, nil
}

func skpWord(cond uint32, offset uint32) fv1.Word {
	return fv1.Word(field(cond, 5, 27) | field(offset, 6, 21) | uint32(fv1.OpSKP))
}

// encode dispatches a mnemonic (already upper-cased by the lexer) to
// its operand reader and bit-packer; the mnemonic token itself has
// already been consumed by the caller.
func (p *parser) encode(name string, line int) (fv1.Word, error) {
	switch name {
	case "RDA":
		return p.encodeAddrMult(fv1.OpRDA, fv1.S1_9, line)
	case "WRA":
		return p.encodeAddrMult(fv1.OpWRA, fv1.S1_9, line)
	case "WRAP":
		return p.encodeAddrMult(fv1.OpWRAP, fv1.S1_9, line)
	case "RMPA":
		return p.encodeRmpa(line)
	case "RDAX":
		return p.encodeRegMult(fv1.OpRDAX, line)
	case "RDFX":
		return p.encodeRegMult(fv1.OpRDFX, line)
	case "WRAX":
		return p.encodeRegMult(fv1.OpWRAX, line)
	case "WRHX":
		return p.encodeRegMult(fv1.OpWRHX, line)
	case "WRLX":
		return p.encodeRegMult(fv1.OpWRLX, line)
	case "MAXX":
		return p.encodeRegMult(fv1.OpMAXX, line)
	case "LDAX":
		return p.encodeLdax(line)
	case "MULX":
		return p.encodeMulx(line)
	case "LOG":
		return p.encodeMultOffset(fv1.OpLOG, line)
	case "EXP":
		return p.encodeMultOffset(fv1.OpEXP, line)
	case "SOF":
		return p.encodeSof(line)
	case "AND":
		return p.encodeVal(fv1.OpAND, line)
	case "OR":
		return p.encodeVal(fv1.OpOR, line)
	case "XOR":
		return p.encodeVal(fv1.OpXOR, line)
	case "CLR":
		return fv1.Word(field(0, 24, 8) | uint32(fv1.OpAND)), nil
	case "NOT":
		return fv1.Word(field(0xffffff, 24, 8) | uint32(fv1.OpXOR)), nil
	case "ABSA":
		return p.encodeAbsa(line)
	case "SKP":
		return p.encodeSkp(line)
	case "NOP":
		return skpWord(0, 0), nil
	case "JMP":
		return p.encodeJmp(line)
	case "WLDS":
		return p.encodeWld(false, line)
	case "WLDR":
		return p.encodeWld(true, line)
	case "JAM":
		return p.encodeJam(line)
	case "CHO":
		return p.encodeCho(line)
	case "RAW":
		return p.encodeRaw(line)
	default:
		return 0, fmt.Errorf("unknown mnemonic %q", name)
	}
}

// encodeAddrMult implements the rda/wra/wrap family:
// MULT(S1_9,11b)<<21 | ADDR(uint15)<<5 | opcode.
func (p *parser) encodeAddrMult(op fv1.Opcode, mult fv1.Format, line int) (fv1.Word, error) {
	addr, err := p.operand(line)
	if err != nil {
		return 0, err
	}
	if err := p.expectArgSep(); err != nil {
		return 0, err
	}
	m, err := p.operand(line)
	if err != nil {
		return 0, err
	}
	addrBits, err := p.packOperand(addr, 15, fv1.Format{}, line)
	if err != nil {
		return 0, err
	}
	multBits, err := p.packOperand(m, mult.Bits, mult, line)
	if err != nil {
		return 0, err
	}
	return fv1.Word(field(multBits, mult.Bits, 21) | field(addrBits, 15, 5) | uint32(op)), nil
}

// encodeRegMult implements the rdax/rdfx/wrax/wrhx/wrlx/maxx family:
// MULT(S1_14,16b)<<16 | REG(uint6)<<5 | opcode.
func (p *parser) encodeRegMult(op fv1.Opcode, line int) (fv1.Word, error) {
	reg, err := p.operand(line)
	if err != nil {
		return 0, err
	}
	if err := p.expectArgSep(); err != nil {
		return 0, err
	}
	m, err := p.operand(line)
	if err != nil {
		return 0, err
	}
	regBits, err := p.packOperand(reg, 6, fv1.Format{}, line)
	if err != nil {
		return 0, err
	}
	multBits, err := p.packOperand(m, fv1.S1_14.Bits, fv1.S1_14, line)
	if err != nil {
		return 0, err
	}
	return fv1.Word(field(multBits, fv1.S1_14.Bits, 16) | field(regBits, 6, 5) | uint32(op)), nil
}

// encodeLdax implements the alias ldax REG = rdfx REG, 0 (opcode 0x05).
func (p *parser) encodeLdax(line int) (fv1.Word, error) {
	reg, err := p.operand(line)
	if err != nil {
		return 0, err
	}
	regBits, err := p.packOperand(reg, 6, fv1.Format{}, line)
	if err != nil {
		return 0, err
	}
	return fv1.Word(field(regBits, 6, 5) | uint32(fv1.OpRDFX)), nil
}

// encodeMulx implements mulx REG: REG(uint6)<<5 | opcode.
func (p *parser) encodeMulx(line int) (fv1.Word, error) {
	reg, err := p.operand(line)
	if err != nil {
		return 0, err
	}
	regBits, err := p.packOperand(reg, 6, fv1.Format{}, line)
	if err != nil {
		return 0, err
	}
	return fv1.Word(field(regBits, 6, 5) | uint32(fv1.OpMULX)), nil
}

// encodeAbsa implements the alias absa = maxx 0, 0.
func (p *parser) encodeAbsa(line int) (fv1.Word, error) {
	return fv1.Word(uint32(fv1.OpMAXX)), nil
}

// encodeMultOffset implements log/exp: MULT(S4_6,11b)<<16 |
// OFFSET(S_10,11b)<<5 | opcode. This mirrors sof's layout shifted
// down to the S4_6 field width, the one entry in the fixed-point
// table the explicit operand tables otherwise leave unused; the
// exact shift positions are a documented reconstruction, not
// verified bit-exact against a reference binary.
func (p *parser) encodeMultOffset(op fv1.Opcode, line int) (fv1.Word, error) {
	m, err := p.operand(line)
	if err != nil {
		return 0, err
	}
	if err := p.expectArgSep(); err != nil {
		return 0, err
	}
	off, err := p.operand(line)
	if err != nil {
		return 0, err
	}
	multBits, err := p.packOperand(m, fv1.S4_6.Bits, fv1.S4_6, line)
	if err != nil {
		return 0, err
	}
	offBits, err := p.packOperand(off, fv1.S_10.Bits, fv1.S_10, line)
	if err != nil {
		return 0, err
	}
	return fv1.Word(field(multBits, fv1.S4_6.Bits, 16) | field(offBits, fv1.S_10.Bits, 5) | uint32(op)), nil
}

// encodeRmpa implements rmpa MULT: MULT(S4_6,11b)<<21 | opcode,
// reusing the otherwise-unused S4_6 format slot; reconstructed as
// for log/exp above.
func (p *parser) encodeRmpa(line int) (fv1.Word, error) {
	m, err := p.operand(line)
	if err != nil {
		return 0, err
	}
	multBits, err := p.packOperand(m, fv1.S4_6.Bits, fv1.S4_6, line)
	if err != nil {
		return 0, err
	}
	return fv1.Word(field(multBits, fv1.S4_6.Bits, 21) | uint32(fv1.OpRMPA)), nil
}

// encodeSof implements sof MULT, OFF: MULT(S1_14,16b)<<16 |
// OFF(S_10,11b)<<5 | opcode.
func (p *parser) encodeSof(line int) (fv1.Word, error) {
	m, err := p.operand(line)
	if err != nil {
		return 0, err
	}
	if err := p.expectArgSep(); err != nil {
		return 0, err
	}
	off, err := p.operand(line)
	if err != nil {
		return 0, err
	}
	multBits, err := p.packOperand(m, fv1.S1_14.Bits, fv1.S1_14, line)
	if err != nil {
		return 0, err
	}
	offBits, err := p.packOperand(off, fv1.S_10.Bits, fv1.S_10, line)
	if err != nil {
		return 0, err
	}
	return fv1.Word(field(multBits, fv1.S1_14.Bits, 16) | field(offBits, fv1.S_10.Bits, 5) | uint32(fv1.OpSOF)), nil
}

// encodeVal implements and/or/xor VAL: VAL(S_23,24b)<<8 | opcode.
func (p *parser) encodeVal(op fv1.Opcode, line int) (fv1.Word, error) {
	v, err := p.operand(line)
	if err != nil {
		return 0, err
	}
	valBits, err := p.packOperand(v, fv1.S_23.Bits, fv1.S_23, line)
	if err != nil {
		return 0, err
	}
	return fv1.Word(field(valBits, fv1.S_23.Bits, 8) | uint32(op)), nil
}

// encodeRaw implements raw U32: the value placed verbatim.
func (p *parser) encodeRaw(line int) (fv1.Word, error) {
	v, err := p.operand(line)
	if err != nil {
		return 0, err
	}
	return fv1.Word(uint32(v.AsInt())), nil
}

// encodeSkp and encodeJmp implement skp COND, OFFSET and its jmp
// OFFSET = skp 0, OFFSET alias. The offset operand is special: a
// bare, as-yet-undefined identifier enqueues a fix-up instead of
// failing as an undefined symbol; any other expression (including a
// parenthesized one) evaluates immediately and bypasses the fix-up
// path entirely.
func (p *parser) encodeSkp(line int) (fv1.Word, error) {
	cond, err := p.operand(line)
	if err != nil {
		return 0, err
	}
	if err := p.expectArgSep(); err != nil {
		return 0, err
	}
	condBits, err := p.packOperand(cond, 5, fv1.Format{}, line)
	if err != nil {
		return 0, err
	}
	return p.finishSkp(condBits, line)
}

func (p *parser) encodeJmp(line int) (fv1.Word, error) {
	return p.finishSkp(0, line)
}

// finishSkp reads the trailing offset operand. A bare identifier
// naming an already-bound target (a backward reference, or a label on
// this same instruction) is rejected immediately with "does not follow
// SKP", since its offset is never positive; one naming neither a symbol nor a
// target (a forward reference) defers to the fix-up list; anything
// else, including a symbol name or a parenthesized expression,
// evaluates as a plain operand.
func (p *parser) finishSkp(condBits uint32, line int) (fv1.Word, error) {
	if p.tok.Kind == IDENT {
		name := p.tok.Text
		if !p.sym.IsSymbol(name) {
			if addr, ok := p.sym.TargetAddr(name); ok {
				if err := p.advance(); err != nil {
					return 0, err
				}
				offset := addr - p.pc - 1
				if offset <= 0 {
					return 0, fmt.Errorf("target %q does not follow SKP", name)
				}
				if offset > 63 {
					return 0, fmt.Errorf("skip offset too large")
				}
				return skpWord(condBits, uint32(offset)), nil
			}
			if err := p.advance(); err != nil {
				return 0, err
			}
			p.fixups = append(p.fixups, fixup{
				instrAddr:  p.pc,
				targetName: name,
				cond:       condBits,
				line:       line,
			})
			return skpWord(condBits, 0), nil
		}
	}
	off, err := p.operand(line)
	if err != nil {
		return 0, err
	}
	offBits, err := p.packOperand(off, 6, fv1.Format{}, line)
	if err != nil {
		return 0, err
	}
	return skpWord(condBits, offBits), nil
}

// encodeWld implements wlds/wldr LFO, FREQ, AMP. Field layout is a
// documented reconstruction (bit 30 selects which of the pair of
// sin/ramp oscillators, bit 29 distinguishes wlds from wldr, FREQ and
// AMP occupy the remaining unsigned fields): the specification does
// not give a bit-exact formula for this family. LFO accepts the full
// two-bit selector symbols (SIN0/SIN1/RMP0/RMP1, values 0-3, shared
// with cho's LFO operand) and folds to the one bit that distinguishes
// a pair's two members — wlds/wldr already pick SIN vs RMP by
// mnemonic, so only the low bit of the selector is meaningful here.
func (p *parser) encodeWld(ramp bool, line int) (fv1.Word, error) {
	lfo, err := p.operand(line)
	if err != nil {
		return 0, err
	}
	if err := p.expectArgSep(); err != nil {
		return 0, err
	}
	freq, err := p.operand(line)
	if err != nil {
		return 0, err
	}
	if err := p.expectArgSep(); err != nil {
		return 0, err
	}
	amp, err := p.operand(line)
	if err != nil {
		return 0, err
	}
	lfoBits, err := p.packOperand(lfo, 2, fv1.Format{}, line)
	if err != nil {
		return 0, err
	}
	freqBits, err := p.packOperand(freq, 9, fv1.Format{}, line)
	if err != nil {
		return 0, err
	}
	ampBits, err := p.packOperand(amp, 15, fv1.Format{}, line)
	if err != nil {
		return 0, err
	}
	w := field(ampBits, 15, 5) | field(freqBits, 9, 20) | field(lfoBits&1, 1, 30) | uint32(fv1.OpWLDS)
	if ramp {
		w |= field(1, 1, 29)
	}
	return fv1.Word(w), nil
}

// encodeJam implements jam LFO; like encodeWld, the bit position of
// the LFO selector is a reconstruction, and LFO folds the same
// two-bit selector down to the one bit this field holds.
func (p *parser) encodeJam(line int) (fv1.Word, error) {
	lfo, err := p.operand(line)
	if err != nil {
		return 0, err
	}
	lfoBits, err := p.packOperand(lfo, 2, fv1.Format{}, line)
	if err != nil {
		return 0, err
	}
	return fv1.Word(field(lfoBits&1, 1, 30) | uint32(fv1.OpJAM)), nil
}

// encodeCho implements cho TYPE, LFO[, FLAGS][, ADDR]. FLAGS and ADDR
// are optional: a 2-operand form (TYPE, LFO) implies FLAGS = REG
// (0x02), ADDR = 0; a 3-operand form (TYPE, LFO, ADDR) implies FLAGS =
// 0. The reference note for this only documents the shorthand for
// `cho rdal`; generalized here to apply regardless of TYPE.
func (p *parser) encodeCho(line int) (fv1.Word, error) {
	typ, err := p.operand(line)
	if err != nil {
		return 0, err
	}
	if err := p.expectArgSep(); err != nil {
		return 0, err
	}
	lfo, err := p.operand(line)
	if err != nil {
		return 0, err
	}

	var flags, addr Value
	switch {
	case p.tok.Kind == ARGSEP:
		if err := p.advance(); err != nil {
			return 0, err
		}
		first, err := p.operand(line)
		if err != nil {
			return 0, err
		}
		if p.tok.Kind == ARGSEP {
			if err := p.advance(); err != nil {
				return 0, err
			}
			second, err := p.operand(line)
			if err != nil {
				return 0, err
			}
			flags, addr = first, second
		} else {
			flags, addr = Int(0), first
		}
	default:
		flags, addr = Int(fv1.ChoFlagReg), Int(0)
	}

	typeBits, err := p.packOperand(typ, 2, fv1.Format{}, line)
	if err != nil {
		return 0, err
	}
	lfoBits, err := p.packOperand(lfo, 2, fv1.Format{}, line)
	if err != nil {
		return 0, err
	}
	flagsBits, err := p.packOperand(flags, 6, fv1.Format{}, line)
	if err != nil {
		return 0, err
	}
	addrBits, err := p.packOperand(addr, fv1.S_15.Bits, fv1.S_15, line)
	if err != nil {
		return 0, err
	}
	w := field(addrBits, fv1.S_15.Bits, 5) | field(lfoBits, 2, 21) | field(flagsBits, 6, 24) | field(typeBits, 2, 30) | uint32(fv1.OpCHO)
	return fv1.Word(w), nil
}
