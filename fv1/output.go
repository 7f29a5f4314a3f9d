package fv1

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ndf-zz/asfv1/internal/errio"
)

// WriteBinary writes the program as 512 bytes (128 big-endian 32-bit
// words) with no framing.
func (p *Program) WriteBinary(w io.Writer) error {
	var buf bytes.Buffer
	buf.Grow(ProgramSize * 4)
	for _, word := range p.Words {
		if err := binary.Write(&buf, binary.BigEndian, uint32(word)); err != nil {
			return err
		}
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// hexRecordLen is the number of instructions packed into one Intel
// HEX data record (16 bytes, 4 big-endian words).
const hexRecordLen = 4

// WriteHex writes the program as Intel HEX, base address 0x0200*slot,
// one data record per 4 instructions (16 bytes), terminated by an EOF
// record. slot selects one of the eight program banks on a shared
// EEPROM image; it is the caller's responsibility to range-check it.
func (p *Program) WriteHex(w io.Writer, slot int) error {
	ew := errio.NewWriter(w)
	base := uint32(0x0200) * uint32(slot)
	for i := 0; i < ProgramSize; i += hexRecordLen {
		var data [hexRecordLen * 4]byte
		for j := 0; j < hexRecordLen; j++ {
			binary.BigEndian.PutUint32(data[j*4:], uint32(p.Words[i+j]))
		}
		addr := base + uint32(i*4)
		writeHexRecord(ew, uint16(addr), 0x00, data[:])
	}
	writeHexRecord(ew, 0, 0x01, nil)
	return ew.Err
}

// writeHexRecord writes one Intel HEX record: ':' LL AAAA TT DD...DD CC.
// Errors are latched on w and surfaced once by the caller.
func writeHexRecord(w io.Writer, addr uint16, recType byte, data []byte) {
	sum := byte(len(data)) + byte(addr>>8) + byte(addr) + recType
	for _, b := range data {
		sum += b
	}
	checksum := byte(0) - sum

	var line bytes.Buffer
	fmt.Fprintf(&line, ":%02X%04X%02X", len(data), addr, recType)
	for _, b := range data {
		fmt.Fprintf(&line, "%02X", b)
	}
	fmt.Fprintf(&line, "%02X\r\n", checksum)
	w.Write(line.Bytes())
}
