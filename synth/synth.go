// Package synth builds H/CNOT encoders for classical and quantum Reed-Muller codes.
package synth

import (
	"sort"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/qrm-go/qrm/circuit"
	"github.com/qrm-go/qrm/perm"
	"github.com/qrm-go/qrm/rm"
)

// Result is a synthesized encoder.
type Result struct {
	Variant Variant
	Circuit circuit.Circuit
	// Qubits is the label list the encoder was built over, including a dropped qubit.
	Qubits []int
	// MessageQubits carry the logical inputs, ordered by row.
	MessageQubits []int
	// EntangledQubits receive a Hadamard (also when Hadamards are suppressed).
	EntangledQubits []int
	// Rows are the rows placed by the outermost layer; Perm sends the slot label of
	// Rows[k], Qubits[k] (or Qubits[k+1] when punctured), to its physical qubit.
	Rows []int
	Perm *perm.Permutation
	// Placement maps every logical row to the qubit carrying it.
	Placement map[int]int
	// Dropped is the qubit removed by the Punctured variant, -1 otherwise.
	Dropped int
}

// Encode is NewConfig followed by Synthesize.
func Encode(v Variant, r, m int, opts ...Option) (*Result, error) {
	cfg, err := NewConfig(v, r, m, opts...)
	if err != nil {
		return nil, err
	}
	return Synthesize(cfg)
}

// Synthesize runs the variant selected by cfg. m = 0 yields an empty circuit for every
// variant that accepts it; its single qubit still carries the logical row when t >= 0.
func Synthesize(cfg *Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &engine{cfg: cfg, log: cfg.Logger, tracer: cfg.Tracer}
	if e.log == nil {
		e.log = zap.NewNop()
	}
	if e.tracer == nil {
		e.tracer = nopTracer{}
	}
	ql := cfg.labels()
	res := &Result{Variant: cfg.Variant, Qubits: ql, Dropped: -1, Placement: map[int]int{}}
	if cfg.M == 0 {
		res.Circuit = circuit.New()
		res.Perm = perm.Identity(ql)
		s, t := cfg.degrees()
		for _, row := range messageRows(cfg, s, t) {
			res.Placement[row] = ql[row]
			res.MessageQubits = append(res.MessageQubits, ql[row])
		}
		return res, nil
	}
	if cfg.Variant == Standard {
		if err := e.flat(res, ql); err != nil {
			return nil, errors.Wrapf(err, "synthesize %s r=%d m=%d", cfg.Variant, cfg.R, cfg.M)
		}
		return res, nil
	}
	s, t := cfg.degrees()
	var (
		n      *node
		err    error
		layout = ql
	)
	switch cfg.Variant {
	case Recursive, Asymmetric:
		n, err = e.quantum(s, t, cfg.M, ql, cfg.Partition)
	case Basis:
		n, err = e.basis(t, cfg.M, ql, cfg.Partition)
	case Punctured:
		res.Dropped = ql[0]
		layout = ql[1:]
		n, err = e.punctured(s, t, cfg.M, layout, cfg.Partition)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "synthesize %s r=%d m=%d", cfg.Variant, cfg.R, cfg.M)
	}
	res.Circuit = n.circ
	res.Rows = n.rows
	res.Perm = n.p
	res.EntangledQubits = n.ent
	for _, row := range messageRows(cfg, s, t) {
		q, err := n.qubit(layout, row)
		if err != nil {
			return nil, err
		}
		res.Placement[row] = q
		res.MessageQubits = append(res.MessageQubits, q)
	}
	e.log.Debug("synthesized",
		zap.Stringer("variant", cfg.Variant),
		zap.Int("r", cfg.R), zap.Int("m", cfg.M),
		zap.Int("cnots", res.Circuit.CNOTCount()),
		zap.Int("hadamards", res.Circuit.HCount()))
	return res, nil
}

// messageRows lists the logical rows: degree in (s,t], without row 0 when punctured,
// where the all-ones word (row 0) comes last unless preparing a state.
func messageRows(cfg *Config, s, t int) []int {
	if cfg.Variant != Punctured {
		return rm.Monomials(s+1, t, cfg.M)
	}
	lo := s + 1
	if lo < 1 {
		lo = 1
	}
	rows := rm.Monomials(lo, t, cfg.M)
	if !cfg.StatePrep {
		rows = append(rows, 0)
	}
	return rows
}

type fanout struct {
	lead    int
	targets []int
}

// flat emits the canonical CSS encoder: a Hadamard on the leading qubit of every
// stabilizer row, then one fan-out CNOT per row ordered by descending leading index so
// that each control spreads before any lower row writes onto it.
func (e *engine) flat(res *Result, ql []int) error {
	cfg := e.cfg
	gperp, glogical, err := rm.QRMGenerator(cfg.R, cfg.M, cfg.R, cfg.M)
	if err != nil {
		return err
	}
	if cfg.TransformRows {
		if gperp, err = rm.Transform(gperp); err != nil {
			return err
		}
		if glogical, err = rm.Transform(glogical); err != nil {
			return err
		}
	}
	var b circuit.Builder
	fans := make([]fanout, 0, len(gperp)+len(glogical))
	add := func(row rm.Vector) (int, error) {
		idx := row.Indexes()
		if len(idx) == 0 {
			return 0, errors.WithStack(rm.ErrDegenerateRow)
		}
		targets := make([]int, 0, len(idx)-1)
		for _, j := range idx[1:] {
			targets = append(targets, ql[j])
		}
		fans = append(fans, fanout{lead: idx[0], targets: targets})
		res.Rows = append(res.Rows, idx[0])
		return idx[0], nil
	}
	for _, row := range gperp {
		lead, err := add(row)
		if err != nil {
			return err
		}
		res.EntangledQubits = append(res.EntangledQubits, ql[lead])
		if !cfg.OnlyCNOTs {
			b.H(ql[lead])
		}
	}
	for _, row := range glogical {
		lead, err := add(row)
		if err != nil {
			return err
		}
		res.MessageQubits = append(res.MessageQubits, ql[lead])
		res.Placement[lead] = ql[lead]
	}
	sort.SliceStable(fans, func(i, j int) bool { return fans[i].lead > fans[j].lead })
	for _, f := range fans {
		b.CNOT(ql[f.lead], f.targets...)
	}
	res.Circuit = b.Circuit()
	res.Perm = perm.New()
	for k, row := range res.Rows {
		if err := res.Perm.Set(ql[k], ql[row]); err != nil {
			return err
		}
	}
	if err := res.Perm.Fill(ql); err != nil {
		return err
	}
	e.trace(NodeFlat, cfg.M-cfg.R-1, cfg.R, cfg.M, res.Circuit)
	return nil
}
