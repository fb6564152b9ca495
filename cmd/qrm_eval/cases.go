package main

import (
	"math/rand"

	"github.com/qrm-go/qrm/internal/config"
	"github.com/qrm-go/qrm/partition"
	"github.com/qrm-go/qrm/synth"
)

type evalCase struct {
	Variant synth.Variant
	R, M    int
	RIn     int
	// Trial 0 is the standard layout; later trials use a random split order and a
	// shuffled qubit layout.
	Trial     int
	StatePrep bool
	spec      *partition.Spec
	qubits    []int
}

func (c evalCase) options() []synth.Option {
	opts := []synth.Option{synth.WithRIn(c.RIn)}
	if c.StatePrep {
		opts = append(opts, synth.WithStatePrep())
	}
	if c.spec != nil {
		opts = append(opts, synth.WithPartition(c.spec))
	}
	if c.qubits != nil {
		opts = append(opts, synth.WithQubits(c.qubits))
	}
	return opts
}

// rIns lists the logical degrees to sweep for one (variant, r, m).
func rIns(v synth.Variant, r, m int) []int {
	if v != synth.Asymmetric {
		return []int{r}
	}
	out := make([]int, 0, m-r+1)
	for rIn := r; rIn <= m; rIn++ {
		out = append(out, rIn)
	}
	return out
}

// buildCases enumerates every valid case of the sweep in a fixed order, drawing the
// random trials from one seeded source so reruns are identical.
func buildCases(sc config.SweepConfig) ([]evalCase, error) {
	variants, err := sc.ParsedVariants()
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(sc.Seed))
	var out []evalCase
	for _, v := range variants {
		for m := sc.MinM; m <= sc.MaxM; m++ {
			for r := -1; r <= m; r++ {
				for _, rIn := range rIns(v, r, m) {
					base := evalCase{Variant: v, R: r, M: m, RIn: rIn, StatePrep: sc.StatePrep}
					if _, err := synth.NewConfig(v, r, m, base.options()...); err != nil {
						continue
					}
					out = append(out, base)
					if v == synth.Standard {
						continue
					}
					for k := 1; k <= sc.RandomPartitions; k++ {
						c := base
						c.Trial = k
						c.spec = partition.Random(rng, m)
						c.qubits = rng.Perm(1 << m)
						out = append(out, c)
					}
				}
			}
		}
	}
	return out, nil
}
