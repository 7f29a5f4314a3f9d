package fv1_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ndf-zz/asfv1/fv1"
)

func TestWriteBinaryIsFixed512Bytes(t *testing.T) {
	var prog fv1.Program
	prog.Words[0] = 0xDEADBEEF
	prog.Words[1] = 0x00000011
	prog.Filled = 2
	prog.Pad(true)

	var buf bytes.Buffer
	if err := prog.WriteBinary(&buf); err != nil {
		t.Fatalf("WriteBinary: %v", err)
	}
	if buf.Len() != 512 {
		t.Fatalf("WriteBinary wrote %d bytes, want 512", buf.Len())
	}
	want := []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x00, 0x00, 0x00, 0x11}
	if !bytes.Equal(buf.Bytes()[:8], want) {
		t.Fatalf("first two words = % 02X, want % 02X", buf.Bytes()[:8], want)
	}
}

func TestWriteHexRecordFraming(t *testing.T) {
	var prog fv1.Program
	prog.Words[0] = 0x12345678
	prog.Filled = 1
	prog.Pad(true)

	var buf bytes.Buffer
	if err := prog.WriteHex(&buf, 0); err != nil {
		t.Fatalf("WriteHex: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\r\n"), "\r\n")
	if len(lines) != 33 { // 32 data records (128 words / 4 per record) + 1 EOF record
		t.Fatalf("got %d records, want 33", len(lines))
	}
	first := lines[0]
	if !strings.HasPrefix(first, ":10000000") {
		t.Fatalf("first record header = %q, want prefix \":10000000\"", first)
	}
	if !strings.Contains(first, "12345678") {
		t.Fatalf("first record data missing 12345678 word: %q", first)
	}
	last := lines[len(lines)-1]
	if last != ":00000001FF" {
		t.Fatalf("last record = %q, want EOF record \":00000001FF\"", last)
	}
}

func TestWriteHexBaseAddressPerSlot(t *testing.T) {
	var prog fv1.Program
	prog.Pad(true)

	var buf bytes.Buffer
	if err := prog.WriteHex(&buf, 3); err != nil {
		t.Fatalf("WriteHex: %v", err)
	}
	first := strings.SplitN(buf.String(), "\r\n", 2)[0]
	// slot 3 base address is 0x0200*3 = 0x0600.
	if !strings.HasPrefix(first, ":10060000") {
		t.Fatalf("first record header = %q, want prefix \":10060000\" (slot 3 base)", first)
	}
}
