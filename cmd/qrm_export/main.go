// Command qrm_export synthesizes one encoder, or loads a stored one, and writes it as
// stim, OpenQASM 2.0, JSON or a compressed artifact.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/qrm-go/qrm/circuit"
	"github.com/qrm-go/qrm/internal/artifact"
	"github.com/qrm-go/qrm/partition"
	"github.com/qrm-go/qrm/synth"
)

type options struct {
	variant   string
	r, m, rIn int
	split     int
	statePrep bool
	onlyCNOTs bool
	naive     bool
}

func (o options) config() (*synth.Config, error) {
	v, err := synth.ParseVariant(o.variant)
	if err != nil {
		return nil, err
	}
	opts := []synth.Option{}
	if o.rIn >= -1 {
		opts = append(opts, synth.WithRIn(o.rIn))
	}
	if o.split > 0 && v != synth.Standard {
		opts = append(opts, synth.WithPartition(partition.Uniform(o.split, o.m)))
	}
	if o.statePrep {
		opts = append(opts, synth.WithStatePrep())
	}
	if o.onlyCNOTs {
		opts = append(opts, synth.WithOnlyCNOTs())
	}
	if o.naive {
		opts = append(opts, synth.WithoutRowTransform())
	}
	return synth.NewConfig(v, o.r, o.m, opts...)
}

func export(w io.Writer, c circuit.Circuit, format string, n int) error {
	switch format {
	case "stim":
		return c.WriteStim(w)
	case "qasm":
		return c.WriteQASM(w, n)
	case "json":
		b, err := c.MarshalJSON()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", b)
		return err
	}
	return fmt.Errorf("unknown format %q", format)
}

func main() {
	var (
		o      options
		format = flag.String("format", "stim", "stim|qasm|json|artifact")
		in     = flag.String("in", "", "load this artifact instead of synthesizing")
		out    = flag.String("out", "", "output file (default stdout; a directory for -format artifact)")
		codec  = flag.String("codec", "zstd", "artifact codec: none|zstd|lz4")
	)
	flag.StringVar(&o.variant, "variant", "recursive", "standard|recursive|basis|asymmetric|punctured")
	flag.IntVar(&o.r, "r", 1, "code degree (X-stabilizer degree for asymmetric)")
	flag.IntVar(&o.m, "m", 3, "number of variables; the code has 2^m qubits")
	flag.IntVar(&o.rIn, "r-in", -2, "logical degree for asymmetric (default r)")
	flag.IntVar(&o.split, "split", 0, "split on this variable index at every level")
	flag.BoolVar(&o.statePrep, "state-prep", false, "punctured: drop the all-ones logical")
	flag.BoolVar(&o.onlyCNOTs, "only-cnots", false, "omit Hadamards")
	flag.BoolVar(&o.naive, "naive", false, "standard: keep the untransformed generator rows")
	flag.Parse()

	var (
		c circuit.Circuit
		n int
	)
	if *in != "" {
		a, err := artifact.Load(*in)
		if err != nil {
			fatalf("%v", err)
		}
		c, n = a.Circuit, int(a.Header.Qubits)
	} else {
		cfg, err := o.config()
		if err != nil {
			fatalf("%v", err)
		}
		res, err := synth.Synthesize(cfg)
		if err != nil {
			fatalf("%v", err)
		}
		if *format == "artifact" {
			cd, err := artifact.CodecByName(*codec)
			if err != nil {
				fatalf("%v", err)
			}
			dir := *out
			if dir == "" {
				dir = "."
			}
			path, err := artifact.Save(dir, cfg, res, cd)
			if err != nil {
				fatalf("%v", err)
			}
			fmt.Printf("wrote %s (%d CNOTs, %d H)\n", path, res.Circuit.CNOTCount(), res.Circuit.HCount())
			return
		}
		c, n = res.Circuit, 1<<cfg.M
	}

	w := io.Writer(os.Stdout)
	if *out != "" {
		if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
			fatalf("mkdir %s: %v", filepath.Dir(*out), err)
		}
		f, err := os.Create(*out)
		if err != nil {
			fatalf("create %s: %v", *out, err)
		}
		defer f.Close()
		w = f
	}
	if err := export(w, c, *format, n); err != nil {
		fatalf("%v", err)
	}
}

func fatalf(f string, a ...any) {
	fmt.Fprintf(os.Stderr, f+"\n", a...)
	os.Exit(1)
}
