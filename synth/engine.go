package synth

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/qrm-go/qrm/circuit"
	"github.com/qrm-go/qrm/partition"
	"github.com/qrm-go/qrm/perm"
	"github.com/qrm-go/qrm/rm"
)

// node is the encoder of one recursion level. Row rows[k] enters through slot label
// ql[k] of the level's label list and p sends slot labels to physical qubits.
type node struct {
	circ circuit.Circuit
	p    *perm.Permutation
	rows []int
	slot map[int]int
	ent  []int
}

func (n *node) label(ql []int, row int) (int, error) {
	k, ok := n.slot[row]
	if !ok {
		return 0, errors.Errorf("row %d not placed by child", row)
	}
	return ql[k], nil
}

// qubit is the physical qubit carrying row.
func (n *node) qubit(ql []int, row int) (int, error) {
	l, err := n.label(ql, row)
	if err != nil {
		return 0, err
	}
	return n.p.Apply(l)
}

func leaf(ql, rows []int) *node {
	n := &node{circ: circuit.New(), p: perm.Identity(ql), rows: rows, slot: make(map[int]int, len(rows))}
	for k, r := range rows {
		n.slot[r] = k
	}
	return n
}

// lift maps a monomial of the split level to the parent monomial with a zero at bit b.
func lift(u, b int) int {
	return (u>>b)<<(b+1) | u&(1<<b-1)
}

// level collects one entangling layer before it is conjugated into physical labels.
// h is written in this level's slot labels, cx in the children's slot labels.
type level struct {
	ql    []int
	rows  []int
	slot  map[int]int
	p     *perm.Permutation
	h     circuit.Builder
	hRows []int
	cx    circuit.Builder
}

func newLevel(ql []int, rows []int) (*level, error) {
	if len(rows) > len(ql) {
		return nil, errors.Errorf("%d rows for %d slots", len(rows), len(ql))
	}
	lv := &level{ql: ql, rows: rows, slot: make(map[int]int, len(rows)), p: perm.New()}
	for k, r := range rows {
		lv.slot[r] = k
	}
	return lv, nil
}

func (lv *level) place(row, childLabel int) error {
	k, ok := lv.slot[row]
	if !ok {
		return errors.Errorf("row %d has no slot at this level", row)
	}
	return lv.p.Set(lv.ql[k], childLabel)
}

type engine struct {
	cfg    *Config
	log    *zap.Logger
	tracer Tracer
}

func (e *engine) split(spec *partition.Spec, ql []int, m int, punctured bool) (*partition.Partition, int, error) {
	var (
		part *partition.Partition
		err  error
	)
	if punctured {
		part, err = partition.ApplyPunctured(spec, ql, m)
	} else {
		part, err = partition.Apply(spec, ql, m)
	}
	if err != nil {
		return nil, 0, err
	}
	idx := 0
	if spec != nil {
		idx = spec.Index
	}
	return part, m - 1 - idx, nil
}

// finish conjugates the layer into physical labels and prepends it to the children.
func (e *engine) finish(lv *level, n1, n2 *node, kind NodeKind, s, t, m int) (*node, error) {
	if err := lv.p.Fill(lv.ql); err != nil {
		return nil, errors.Wrap(err, "fill level permutation")
	}
	hc, err := lv.p.ConjugateCircuit(lv.h.Circuit())
	if err != nil {
		return nil, err
	}
	pp, err := perm.Union(n1.p, n2.p)
	if err != nil {
		return nil, errors.Wrap(err, "join child permutations")
	}
	layer, err := pp.ConjugateCircuit(circuit.Concat(hc, lv.cx.Circuit()))
	if err != nil {
		return nil, err
	}
	pf, err := perm.Compose(pp, lv.p)
	if err != nil {
		return nil, err
	}
	n := &node{
		circ: circuit.Concat(layer, n1.circ, n2.circ),
		p:    pf,
		rows: lv.rows,
		slot: lv.slot,
	}
	for _, r := range lv.hRows {
		q, err := n.qubit(lv.ql, r)
		if err != nil {
			return nil, err
		}
		n.ent = append(n.ent, q)
	}
	n.ent = append(append(n.ent, n1.ent...), n2.ent...)
	e.trace(kind, s, t, m, layer)
	return n, nil
}

func (e *engine) trace(kind NodeKind, s, t, m int, layer circuit.Circuit) {
	ev := NodeEvent{Variant: e.cfg.Variant, Kind: kind, S: s, T: t, M: m, CNOTs: layer.CNOTCount(), Hadamards: layer.HCount()}
	e.tracer.Node(ev)
	if ce := e.log.Check(zap.DebugLevel, "synth node"); ce != nil {
		ce.Write(
			zap.Stringer("variant", ev.Variant),
			zap.String("kind", string(kind)),
			zap.Int("s", s), zap.Int("t", t), zap.Int("m", m),
			zap.Int("cnots", ev.CNOTs), zap.Int("hadamards", ev.Hadamards),
		)
	}
}

// basis encodes every row of Grm(t,m) onto its own slot with CNOTs only.
func (e *engine) basis(t, m int, ql []int, spec *partition.Spec) (*node, error) {
	if t > m {
		t = m
	}
	if t < 0 || m == 0 {
		return leaf(ql, rm.Monomials(0, t, m)), nil
	}
	part, b, err := e.split(spec, ql, m, false)
	if err != nil {
		return nil, err
	}
	n1, err := e.basis(t, m-1, part.Q1, part.Sub1)
	if err != nil {
		return nil, err
	}
	n2, err := e.basis(t, m-1, part.Q2, part.Sub2)
	if err != nil {
		return nil, err
	}
	lv, err := newLevel(ql, rm.Monomials(0, t, m))
	if err != nil {
		return nil, err
	}
	for _, u := range rm.Monomials(0, t, m-1) {
		if err := e.link(lv, n1, n2, part, u, b); err != nil {
			return nil, err
		}
	}
	for _, v := range rm.Monomials(0, t-1, m-1) {
		if err := e.second(lv, n2, part, v, b); err != nil {
			return nil, err
		}
	}
	return e.finish(lv, n1, n2, NodeBasis, -1, t, m)
}

// link places row (u,u) on child 1's slot for u and copies it onto child 2's slot.
func (e *engine) link(lv *level, n1, n2 *node, part *partition.Partition, u, b int) error {
	c1, err := n1.label(part.Q1, u)
	if err != nil {
		return err
	}
	c2, err := n2.label(part.Q2, u)
	if err != nil {
		return err
	}
	if err := lv.place(lift(u, b), c1); err != nil {
		return err
	}
	lv.cx.CNOT(c1, c2)
	return nil
}

// second places row (0,v) on child 2's slot for v.
func (e *engine) second(lv *level, n2 *node, part *partition.Partition, v, b int) error {
	c2, err := n2.label(part.Q2, v)
	if err != nil {
		return err
	}
	return lv.place(lift(v, b)|1<<b, c2)
}

// quantum encodes the CSS state with X stabilizers of degree <= s and logical rows of
// degree in (s,t]. Rows of degree s entering at this level get a Hadamard.
func (e *engine) quantum(s, t, m int, ql []int, spec *partition.Spec) (*node, error) {
	if s < 0 {
		return e.basis(t, m, ql, spec)
	}
	if m == 0 {
		n := leaf(ql, []int{0})
		if !e.cfg.OnlyCNOTs {
			n.circ = circuit.New().H(ql[0])
		}
		n.ent = []int{ql[0]}
		e.trace(NodeLeaf, s, t, m, n.circ)
		return n, nil
	}
	part, b, err := e.split(spec, ql, m, false)
	if err != nil {
		return nil, err
	}
	n1, err := e.quantum(s-1, t, m-1, part.Q1, part.Sub1)
	if err != nil {
		return nil, err
	}
	n2, err := e.quantum(s-1, t, m-1, part.Q2, part.Sub2)
	if err != nil {
		return nil, err
	}
	stab := rm.Monomials(s, s, m-1)
	rows := rm.Monomials(s+1, t, m)
	for _, u := range stab {
		rows = append(rows, lift(u, b))
	}
	lv, err := newLevel(ql, rows)
	if err != nil {
		return nil, err
	}
	if err := e.entangle(lv, n1, n2, part, stab, s, t, m, b); err != nil {
		return nil, err
	}
	return e.finish(lv, n1, n2, NodeQuantum, s, t, m)
}

// entangle writes the Hadamards on the new stabilizer rows, the (u,u) CNOTs for the
// degree band [s,t] and the (0,v) placements for [s,t-1].
func (e *engine) entangle(lv *level, n1, n2 *node, part *partition.Partition, stab []int, s, t, m, b int) error {
	for _, u := range stab {
		row := lift(u, b)
		lv.hRows = append(lv.hRows, row)
		if !e.cfg.OnlyCNOTs {
			lv.h.H(lv.ql[lv.slot[row]])
		}
	}
	for _, u := range rm.Monomials(s, t, m-1) {
		if err := e.link(lv, n1, n2, part, u, b); err != nil {
			return err
		}
	}
	for _, v := range rm.Monomials(s, t-1, m-1) {
		if err := e.second(lv, n2, part, v, b); err != nil {
			return err
		}
	}
	return nil
}

// punctured is quantum with evaluation point 0 removed; ql holds 2^m-1 labels.
// Stabilizers are the rows of degree in [1,s]; the all-ones logical is tracked as
// row 0 unless the config asks for state preparation.
func (e *engine) punctured(s, t, m int, ql []int, spec *partition.Spec) (*node, error) {
	if s == 0 {
		return e.puncturedBase(t, m, ql, spec)
	}
	part, b, err := e.split(spec, ql, m, true)
	if err != nil {
		return nil, err
	}
	n1, err := e.punctured(s-1, t, m-1, part.Q1, part.Sub1)
	if err != nil {
		return nil, err
	}
	n2, err := e.quantum(s-1, t, m-1, part.Q2, part.Sub2)
	if err != nil {
		return nil, err
	}
	stab := rm.Monomials(s, s, m-1)
	rows := rm.Monomials(s+1, t, m)
	if !e.cfg.StatePrep {
		rows = append(rows, 0)
	}
	for _, u := range stab {
		rows = append(rows, lift(u, b))
	}
	lv, err := newLevel(ql, rows)
	if err != nil {
		return nil, err
	}
	if err := e.entangle(lv, n1, n2, part, stab, s, t, m, b); err != nil {
		return nil, err
	}
	if !e.cfg.StatePrep {
		// (1*,1) differs from (1*,0) by the stabilizer (0,1) held by child 2.
		c1, err := n1.label(part.Q1, 0)
		if err != nil {
			return nil, err
		}
		if err := lv.place(0, c1); err != nil {
			return nil, err
		}
	}
	return e.finish(lv, n1, n2, NodePunctured, s, t, m)
}

// puncturedBase handles s = 0: the code is spanned by the punctured rows of degree
// <= t plus the all-ones word. The latter enters on the slot of the top row and is
// fanned out to every other row before encoding.
func (e *engine) puncturedBase(t, m int, ql []int, spec *partition.Spec) (*node, error) {
	n, err := e.no1(m, ql, spec)
	if err != nil {
		return nil, err
	}
	if e.cfg.StatePrep || m == 0 {
		return n, nil
	}
	last := 1<<m - 1
	src, err := n.label(ql, last)
	if err != nil {
		return nil, err
	}
	var pre circuit.Builder
	targets := make([]int, 0, len(n.rows))
	for _, r := range n.rows {
		if r == last {
			continue
		}
		l, err := n.label(ql, r)
		if err != nil {
			return nil, err
		}
		targets = append(targets, l)
	}
	pre.CNOT(src, targets...)
	prelude, err := n.p.ConjugateCircuit(pre.Circuit())
	if err != nil {
		return nil, err
	}
	e.trace(NodePunctured, 0, t, m, prelude)
	n.circ = circuit.Concat(prelude, n.circ)
	n.slot[0] = n.slot[last]
	return n, nil
}

// no1 encodes every row except row 0 on the 2^m-1 labels of a punctured layout.
func (e *engine) no1(m int, ql []int, spec *partition.Spec) (*node, error) {
	if m == 0 {
		return leaf(ql, nil), nil
	}
	part, b, err := e.split(spec, ql, m, true)
	if err != nil {
		return nil, err
	}
	n1, err := e.no1(m-1, part.Q1, part.Sub1)
	if err != nil {
		return nil, err
	}
	n2, err := e.basis(m-1, m-1, part.Q2, part.Sub2)
	if err != nil {
		return nil, err
	}
	lv, err := newLevel(ql, rm.Monomials(1, m, m))
	if err != nil {
		return nil, err
	}
	for _, u := range rm.Monomials(1, m-1, m-1) {
		if err := e.link(lv, n1, n2, part, u, b); err != nil {
			return nil, err
		}
	}
	for _, v := range rm.Monomials(0, m-1, m-1) {
		if err := e.second(lv, n2, part, v, b); err != nil {
			return nil, err
		}
	}
	return e.finish(lv, n1, n2, NodeNo1, -1, m, m)
}
