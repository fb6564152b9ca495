// Command qrm_rates tabulates the catalytic and entanglement-assisted rates of
// Reed-Muller product codes and the Theorem 3 range l(r).
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/qrm-go/qrm/rates"
)

func writePoints(w io.Writer, pts []rates.Point) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"r", "m", "catalytic", "ea", "theorem3"}); err != nil {
		return err
	}
	for _, p := range pts {
		if err := cw.Write([]string{
			strconv.Itoa(p.R),
			strconv.Itoa(p.M),
			p.Catalytic.Decimal().String(),
			p.EA.Decimal().String(),
			strconv.FormatBool(p.Bound),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeBounds(w io.Writer, lo, hi int) error {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"r", "lower bound 2r+2", "l(r)", "max m"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for r := lo; r <= hi; r++ {
		l, err := rates.LR(r)
		if err != nil {
			return err
		}
		table.Append([]string{strconv.Itoa(r), strconv.Itoa(2*r + 2), strconv.Itoa(l), strconv.Itoa(2*r + l)})
	}
	table.Render()
	return nil
}

func main() {
	var (
		mMax  = flag.Int("max-m", 40, "scan 1 <= m <= max-m for positive catalytic rates")
		rLo   = flag.Int("bound-from", 0, "first r of the l(r) table")
		rHi   = flag.Int("bound-to", 10, "last r of the l(r) table")
		out   = flag.String("out", "", "CSV output (default stdout)")
		quiet = flag.Bool("quiet", false, "skip the l(r) table")
	)
	flag.Parse()

	pts, err := rates.Points(*mMax)
	if err != nil {
		fatalf("%v", err)
	}
	w := io.Writer(os.Stdout)
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			fatalf("create %s: %v", *out, err)
		}
		defer f.Close()
		w = f
	}
	if err := writePoints(w, pts); err != nil {
		fatalf("write csv: %v", err)
	}
	if !*quiet {
		if err := writeBounds(os.Stderr, *rLo, *rHi); err != nil {
			fatalf("%v", err)
		}
	}
}

func fatalf(f string, a ...any) {
	fmt.Fprintf(os.Stderr, f+"\n", a...)
	os.Exit(1)
}
