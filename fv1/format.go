package fv1

import "math"

// Format describes one of the FV-1's signed fixed-point encodings: a
// two's-complement field of Bits width where +1.0 is represented by
// the integer value Ref.
type Format struct {
	Name string
	Bits uint
	Ref  int64
}

// Fixed-point formats used by instruction operand fields, per the
// FV-1 instruction set.
var (
	S4_6  = Format{"S4.6", 11, 64}
	S1_9  = Format{"S1.9", 11, 512}
	S_10  = Format{"S.10", 11, 1024}
	S1_14 = Format{"S1.14", 16, 16384}
	S_15  = Format{"S.15", 16, 32768}
	S_23  = Format{"S.23", 24, 8388608}
)

// minInt/maxInt are the fixed-point field's representable range, the
// full two's-complement range of a Bits-wide field,
// [-2^(Bits-1), 2^(Bits-1)-1], expressed as raw integers.
func (f Format) minInt() int64 { return -(int64(1) << (f.Bits - 1)) }
func (f Format) maxInt() int64 { return int64(1)<<(f.Bits-1) - 1 }

// RealMin and RealMax are the representable real bounds of the format.
func (f Format) RealMin() float64 { return float64(f.minInt()) / float64(f.Ref) }
func (f Format) RealMax() float64 { return float64(f.maxInt()) / float64(f.Ref) }

// mask returns the bit mask for the format's field width.
func (f Format) mask() uint32 { return uint32(1)<<f.Bits - 1 }

// EncodeReal converts a real value to the format's fixed-point
// representation, clamping or erroring on overflow per clamp. It
// returns the masked field bits and whether clamping occurred.
func (f Format) EncodeReal(v float64, clamp bool) (bits uint32, clamped bool, rangeErr bool) {
	fixed := int64(math.Round(v * float64(f.Ref)))
	lo, hi := f.minInt(), f.maxInt()
	if fixed < lo || fixed > hi {
		if !clamp {
			return 0, false, true
		}
		if fixed < lo {
			fixed = lo
		} else {
			fixed = hi
		}
		clamped = true
	}
	return uint32(fixed) & f.mask(), clamped, false
}
