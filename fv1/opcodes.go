package fv1

// Opcode is the 5-bit low field of an instruction word that selects
// its mnemonic.
type Opcode uint32

// FV-1 opcodes, low 5 bits of the instruction word.
const (
	OpRDA  Opcode = 0x00
	OpRMPA Opcode = 0x01
	OpWRA  Opcode = 0x02
	OpWRAP Opcode = 0x03
	OpRDAX Opcode = 0x04
	OpRDFX Opcode = 0x05
	OpWRAX Opcode = 0x06
	OpWRHX Opcode = 0x07
	OpWRLX Opcode = 0x08
	OpMAXX Opcode = 0x09
	OpMULX Opcode = 0x0A
	OpLOG  Opcode = 0x0B
	OpEXP  Opcode = 0x0C
	OpSOF  Opcode = 0x0D
	OpAND  Opcode = 0x0E
	OpOR   Opcode = 0x0F
	OpXOR  Opcode = 0x10
	OpSKP  Opcode = 0x11
	OpWLDS Opcode = 0x12 // shared with WLDR, distinguished by bit 29
	OpJAM  Opcode = 0x13
	OpCHO  Opcode = 0x14
)

// cho type selectors, predefined symbols RDA/SOF/RDAL.
const (
	ChoRDA  = 0
	ChoSOF  = 2
	ChoRDAL = 3
)

// cho flag bits.
const (
	ChoFlagSin   = 0x01
	ChoFlagCos   = 0x01
	ChoFlagReg   = 0x02
	ChoFlagCompC = 0x04
	ChoFlagCompA = 0x08
	ChoFlagRPtr2 = 0x10
	ChoFlagNA    = 0x20
)

// skp condition bits.
const (
	SkpNeg = 0x01
	SkpGez = 0x02
	SkpZro = 0x04
	SkpZrc = 0x08
	SkpRun = 0x10
)

// LFO selectors.
const (
	LfoSin0 = 0
	LfoSin1 = 1
	LfoRmp0 = 2
	LfoRmp1 = 3
)
