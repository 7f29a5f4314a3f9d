package fv1

// PredefinedInt is a register or constant name the assembler seeds
// its symbol table with, taken verbatim from the FV-1 register map.
type PredefinedInt struct {
	Name  string
	Value int64
}

// Predefined returns the fixed constant table used to seed a fresh
// symbol table: DSP registers, LFO selectors, cho type selectors, cho
// flag bits, and skp condition bits. Names are already upper-case;
// the symbol table case-folds lookups the same way.
func Predefined() []PredefinedInt {
	p := []PredefinedInt{
		{"SIN0_RATE", 0x00},
		{"SIN0_RANGE", 0x01},
		{"SIN1_RATE", 0x02},
		{"SIN1_RANGE", 0x03},
		{"RMP0_RATE", 0x04},
		{"RMP0_RANGE", 0x05},
		{"RMP1_RATE", 0x06},
		{"RMP1_RANGE", 0x07},
		{"POT0", 0x10},
		{"POT1", 0x11},
		{"POT2", 0x12},
		{"ADCL", 0x14},
		{"ADCR", 0x15},
		{"DACL", 0x16},
		{"DACR", 0x17},
		{"ADDR_PTR", 0x18},

		{"SIN0", LfoSin0},
		{"SIN1", LfoSin1},
		{"RMP0", LfoRmp0},
		{"RMP1", LfoRmp1},

		{"RDA", ChoRDA},
		{"SOF", ChoSOF},
		{"RDAL", ChoRDAL},

		{"SIN", ChoFlagSin},
		{"COS", ChoFlagCos},
		{"REG", ChoFlagReg},
		{"COMPC", ChoFlagCompC},
		{"COMPA", ChoFlagCompA},
		{"RPTR2", ChoFlagRPtr2},
		{"NA", ChoFlagNA},

		{"NEG", SkpNeg},
		{"GEZ", SkpGez},
		{"ZRO", SkpZro},
		{"ZRC", SkpZrc},
		{"RUN", SkpRun},
	}
	for i := 0; i < 32; i++ {
		p = append(p, PredefinedInt{"REG" + itoa(i), 0x20 + int64(i)})
	}
	return p
}

// itoa avoids pulling in strconv for a tiny fixed-range conversion
// used only at symbol-table seeding time.
func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [4]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}
