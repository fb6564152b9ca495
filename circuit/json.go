package circuit

import (
	"github.com/francoispqt/gojay"
	"github.com/pkg/errors"
)

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	switch s {
	case KindH.String():
		return KindH, nil
	case KindCNOT.String(), "CX":
		return KindCNOT, nil
	}
	return 0, errors.Wrapf(ErrInvalidGate, "unknown gate %q", s)
}

type qubitList []int

func (l qubitList) MarshalJSONArray(enc *gojay.Encoder) {
	for _, q := range l {
		enc.Int(q)
	}
}

func (l qubitList) IsNil() bool { return l == nil }

func (l *qubitList) UnmarshalJSONArray(dec *gojay.Decoder) error {
	var q int
	if err := dec.Int(&q); err != nil {
		return err
	}
	*l = append(*l, q)
	return nil
}

// MarshalJSONObject implements gojay.MarshalerJSONObject.
func (g *Gate) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("op", g.Kind.String())
	if g.Kind == KindCNOT {
		enc.IntKey("control", g.Control)
	}
	enc.ArrayKey("targets", qubitList(g.Targets))
}

func (g *Gate) IsNil() bool { return g == nil }

// UnmarshalJSONObject implements gojay.UnmarshalerJSONObject.
func (g *Gate) UnmarshalJSONObject(dec *gojay.Decoder, key string) error {
	switch key {
	case "op":
		var s string
		if err := dec.String(&s); err != nil {
			return err
		}
		k, err := ParseKind(s)
		if err != nil {
			return err
		}
		g.Kind = k
	case "control":
		return dec.Int(&g.Control)
	case "targets":
		l := qubitList{}
		if err := dec.Array(&l); err != nil {
			return err
		}
		g.Targets = l
	}
	return nil
}

func (g *Gate) NKeys() int { return 3 }

type gateList []Gate

func (l gateList) MarshalJSONArray(enc *gojay.Encoder) {
	for i := range l {
		enc.Object(&l[i])
	}
}

func (l gateList) IsNil() bool { return l == nil }

func (l *gateList) UnmarshalJSONArray(dec *gojay.Decoder) error {
	var g Gate
	if err := dec.Object(&g); err != nil {
		return err
	}
	*l = append(*l, g)
	return nil
}

// MarshalJSONObject writes {"gates":[...],"cnots":n,"hadamards":n}; the counts are informative.
func (c *Circuit) MarshalJSONObject(enc *gojay.Encoder) {
	enc.ArrayKey("gates", gateList(c.gates))
	enc.IntKey("cnots", c.CNOTCount())
	enc.IntKey("hadamards", c.HCount())
}

func (c *Circuit) IsNil() bool { return c == nil }

// UnmarshalJSONObject reads the "gates" array and ignores the counts.
func (c *Circuit) UnmarshalJSONObject(dec *gojay.Decoder, key string) error {
	if key != "gates" {
		return nil
	}
	l := gateList{}
	if err := dec.Array(&l); err != nil {
		return err
	}
	c.gates = l
	return nil
}

func (c *Circuit) NKeys() int { return 0 }

// MarshalJSON encodes c with gojay.
func (c Circuit) MarshalJSON() ([]byte, error) {
	return gojay.MarshalJSONObject(&c)
}

// UnmarshalJSON decodes a circuit written by MarshalJSON and validates it.
func (c *Circuit) UnmarshalJSON(b []byte) error {
	var out Circuit
	if err := gojay.UnmarshalJSONObject(b, &out); err != nil {
		return errors.Wrap(err, "decode circuit")
	}
	if err := out.Validate(); err != nil {
		return err
	}
	*c = out
	return nil
}
