package wire

import (
	"github.com/pkg/errors"

	"github.com/qrm-go/qrm/synth"
)

// ErrBadFrame is returned for frames with a short or inconsistent header.
var ErrBadFrame = errors.New("wire: bad frame")

// NewHeader describes res as synthesized from cfg. Codec and PayloadLen are left for
// the writer.
func NewHeader(cfg *synth.Config, res *synth.Result) Header {
	h := Header{
		Version:     Version,
		Variant:     uint8(cfg.Variant),
		R:           int8(cfg.R),
		RIn:         int8(cfg.RIn),
		M:           uint8(cfg.M),
		Gates:       uint32(res.Circuit.Len()),
		Fingerprint: res.Circuit.Fingerprint(),
	}
	for _, q := range res.Qubits {
		if uint32(q)+1 > h.Qubits {
			h.Qubits = uint32(q) + 1
		}
	}
	if cfg.OnlyCNOTs {
		h.Flags |= FlagOnlyCNOTs
	}
	if cfg.StatePrep {
		h.Flags |= FlagStatePrep
	}
	if !cfg.TransformRows {
		h.Flags |= FlagRawRows
	}
	if res.Dropped >= 0 {
		h.Dropped = 1
	}
	return h
}

// Config rebuilds the synthesis parameters recorded in h, without qubit labels or
// partition overrides.
func (h *Header) Config() (*synth.Config, error) {
	var opts []synth.Option
	if h.Flags&FlagOnlyCNOTs != 0 {
		opts = append(opts, synth.WithOnlyCNOTs())
	}
	if h.Flags&FlagStatePrep != 0 {
		opts = append(opts, synth.WithStatePrep())
	}
	if h.Flags&FlagRawRows != 0 {
		opts = append(opts, synth.WithoutRowTransform())
	}
	opts = append(opts, synth.WithRIn(int(h.RIn)))
	return synth.NewConfig(synth.Variant(h.Variant), int(h.R), int(h.M), opts...)
}

// Marshal frames payload behind h, setting h.PayloadLen.
func Marshal(h Header, payload []byte) []byte {
	h.PayloadLen = uint32(len(payload))
	b := make([]byte, HeaderLen, HeaderLen+len(payload))
	h.MarshalBinary(b)
	return append(b, payload...)
}

// Split is the inverse of Marshal.
func Split(b []byte) (Header, []byte, error) {
	var h Header
	if !h.UnmarshalBinary(b) {
		return h, nil, errors.Wrapf(ErrBadFrame, "%d bytes, header needs %d", len(b), HeaderLen)
	}
	if h.Version != Version {
		return h, nil, errors.Wrapf(ErrBadFrame, "version %d", h.Version)
	}
	payload := b[HeaderLen:]
	if uint32(len(payload)) != h.PayloadLen {
		return h, nil, errors.Wrapf(ErrBadFrame, "payload %d bytes, header says %d", len(payload), h.PayloadLen)
	}
	return h, payload, nil
}
