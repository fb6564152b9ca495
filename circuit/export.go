package circuit

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// WriteStim writes c in stim's text format; fan-outs become CX pair lists.
func (c Circuit) WriteStim(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, g := range c.gates {
		var sb strings.Builder
		if g.Kind == KindH {
			sb.WriteString("H")
			for _, q := range g.Targets {
				fmt.Fprintf(&sb, " %d", q)
			}
		} else {
			sb.WriteString("CX")
			for _, q := range g.Targets {
				fmt.Fprintf(&sb, " %d %d", g.Control, q)
			}
		}
		sb.WriteByte('\n')
		if _, err := bw.WriteString(sb.String()); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteQASM writes c as OpenQASM 2.0 over a register of n qubits.
// n <= 0 sizes the register from the largest qubit label.
func (c Circuit) WriteQASM(w io.Writer, n int) error {
	if n <= 0 {
		for _, q := range c.Qubits() {
			if q+1 > n {
				n = q + 1
			}
		}
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "OPENQASM 2.0;\ninclude \"qelib1.inc\";\nqreg q[%d];\n", n)
	for _, g := range c.Expand().gates {
		if g.Kind == KindH {
			fmt.Fprintf(bw, "h q[%d];\n", g.Targets[0])
		} else {
			fmt.Fprintf(bw, "cx q[%d],q[%d];\n", g.Control, g.Targets[0])
		}
	}
	return bw.Flush()
}
