package asm_test

import (
	"fmt"
	"strings"

	"github.com/ndf-zz/asfv1/asm"
)

// Assembles a short delay-line patch and prints the resulting words.
func ExampleAssemble() {
	code := `
; feed the left input through a short delay at half level
MEM delay 1000

		rdax ADCL, 0.5
		wra delay, 0.5
		rda delay#, 0.5
		wrax DACL, 0.5
`
	prog, _, err := asm.Assemble(strings.NewReader(code), asm.Config{})
	if err != nil {
		fmt.Println(err)
		return
	}

	for i := 0; i < 4; i++ {
		fmt.Printf("%3d  %08X\n", i, uint32(prog.Words[i]))
	}

	// Output:
	//   0  20000284
	//   1  20000002
	//   2  20007D00
	//   3  200002C6
}

// Several target labels may stack before a single instruction; all of
// them bind to that instruction's address.
func Example_stackedLabels() {
	code := `
a:
b:	rdax ADCL, 0.0
		wrax DACL, 0.0
`
	prog, warnings, err := asm.Assemble(strings.NewReader(code), asm.Config{})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(len(warnings), "warnings")
	fmt.Printf("%08X\n", uint32(prog.Words[0]))

	// Output:
	// 0 warnings
	// 00000284
}
