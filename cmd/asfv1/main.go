// Command asfv1 assembles Spin Semiconductor FV-1 DSP assembly source
// into a 128-word program, written as Intel HEX or raw binary.
package main

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	getopt "github.com/pborman/getopt/v2"
	"github.com/pkg/errors"

	"github.com/ndf-zz/asfv1/asm"
	"github.com/ndf-zz/asfv1/fv1"
)

func atExit(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "asfv1: %v\n", err)
	os.Exit(1)
}

func main() {
	optHelp := getopt.BoolLong("help", 'h', "show this help")
	optQuiet := getopt.BoolLong("quiet", 'q', "suppress warnings")
	optVerbose := getopt.BoolLong("verbose", 'v', "trace driver decisions to stderr")
	optClamp := getopt.BoolLong("clamp", 'c', "clamp out-of-range operands instead of erroring")
	optNop := getopt.BoolLong("nop", 'n', "fill unused slots with explicit skp 0,0")
	optSpinReals := getopt.BoolLong("spinreals", 's', "treat bare integer literals 1, 2 as real")
	optSlot := getopt.IntLong("slot", 'p', 0, "program slot 0-7 (ignored in binary mode)")
	optBinary := getopt.BoolLong("binary", 'b', "force raw binary output")
	optListing := getopt.StringLong("listing", 'l', "", "write a listing to `file` (- for stdout)")
	getopt.SetParameters("infile [outfile]")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	args := getopt.Args()
	if len(args) < 1 {
		getopt.Usage()
		os.Exit(1)
	}
	infile := args[0]

	if *optSlot < 0 || *optSlot > 7 {
		atExit(errors.Errorf("program slot %d out of range 0-7", *optSlot))
	}

	var logger *slog.Logger
	if *optVerbose {
		logger = slog.New(newTraceHandler(os.Stderr))
	}

	src, err := readSource(infile)
	if err != nil {
		atExit(errors.Wrapf(err, "reading %s", infile))
	}

	cfg := asm.Config{
		Quiet:       *optQuiet,
		Clamp:       *optClamp,
		ExplicitNop: *optNop,
		SpinReals:   *optSpinReals,
		Logger:      logger,
	}

	prog, warnings, err := asm.Assemble(bytes.NewReader(src), cfg)
	if err != nil {
		atExit(errors.Wrapf(err, "%s", infile))
	}

	if !cfg.Quiet {
		for _, w := range warnings {
			fmt.Fprintf(os.Stderr, "%s:%s\n", infile, w.String())
		}
	}

	if *optListing != "" {
		if err := writeListing(*optListing, prog); err != nil {
			atExit(errors.Wrap(err, "writing listing"))
		}
	}

	outfile := ""
	if len(args) > 1 {
		outfile = args[1]
	}
	if err := writeProgram(prog, outfile, *optSlot, *optBinary); err != nil {
		atExit(errors.Wrap(err, "writing program"))
	}
}

// readSource loads the whole file and normalizes its encoding: a
// UTF-16 BOM triggers a transcode to UTF-8 via unicode/utf16, a UTF-8
// BOM is stripped, and anything else passes through untouched. Per
// the CLI's accepted-input contract, UTF-16 is only recognized when
// led by an explicit byte-order mark.
func readSource(name string) ([]byte, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	switch {
	case len(data) >= 2 && data[0] == 0xFF && data[1] == 0xFE:
		return decodeUTF16(data[2:], false), nil
	case len(data) >= 2 && data[0] == 0xFE && data[1] == 0xFF:
		return decodeUTF16(data[2:], true), nil
	case len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF:
		return data[3:], nil
	}
	return data, nil
}

// decodeUTF16 converts little- or big-endian UTF-16 code units
// (BOM already stripped) to a UTF-8 byte slice.
func decodeUTF16(data []byte, bigEndian bool) []byte {
	n := len(data) / 2
	units := make([]uint16, n)
	for i := 0; i < n; i++ {
		if bigEndian {
			units[i] = uint16(data[2*i])<<8 | uint16(data[2*i+1])
		} else {
			units[i] = uint16(data[2*i+1])<<8 | uint16(data[2*i])
		}
	}
	runes := utf16.Decode(units)
	buf := make([]byte, 0, len(runes)*utf8.UTFMax)
	for _, r := range runes {
		buf = utf8.AppendRune(buf, r)
	}
	return buf
}

// writeProgram emits the assembled program as binary or Intel HEX. -b
// forces binary regardless of outfile's extension; absent -b, a
// ".bin" extension selects binary and anything else (including no
// outfile, which writes HEX to stdout) selects Intel HEX.
func writeProgram(prog *fv1.Program, outfile string, slot int, binary bool) error {
	w := os.Stdout
	if outfile != "" {
		f, err := os.Create(outfile)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	if binary || strings.EqualFold(filepath.Ext(outfile), ".bin") {
		return prog.WriteBinary(w)
	}
	return prog.WriteHex(w, slot)
}

// writeListing writes one line per program slot: address, encoded
// hex word, and the source line it came from (blank for padding).
func writeListing(name string, prog *fv1.Program) error {
	w := os.Stdout
	if name != "-" {
		f, err := os.Create(name)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	for i := 0; i < fv1.ProgramSize; i++ {
		if prog.Lines[i] != 0 {
			fmt.Fprintf(w, "%3d  %08X  line %d\n", i, uint32(prog.Words[i]), prog.Lines[i])
		} else {
			fmt.Fprintf(w, "%3d  %08X\n", i, uint32(prog.Words[i]))
		}
	}
	return nil
}
