package wire

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qrm-go/qrm/circuit"
	"github.com/qrm-go/qrm/synth"
)

func TestHeaderRoundTrip(t *testing.T) {
	h := Header{
		Version:     Version,
		Variant:     uint8(synth.Asymmetric),
		Flags:       FlagOnlyCNOTs | FlagStatePrep,
		Codec:       CodecLZ4,
		R:           -1,
		RIn:         3,
		M:           5,
		Dropped:     1,
		Qubits:      70000,
		Gates:       123,
		PayloadLen:  9,
		Fingerprint: 0xdeadbeefcafef00d,
	}
	b := h.MarshalBinary(nil)
	require.Len(t, b, HeaderLen)
	var got Header
	require.True(t, got.UnmarshalBinary(b))
	require.Equal(t, h, got)
	require.False(t, got.UnmarshalBinary(b[:HeaderLen-1]))
}

func TestGates(t *testing.T) {
	c := circuit.New().H(0, 300).CNOT(300, 1, 2, 1000).CNOT(2, 0)
	b := AppendGates(nil, c)
	got, err := ReadGates(b, c.Len())
	require.NoError(t, err)
	require.True(t, c.Equal(got))

	_, err = ReadGates(b[:len(b)-1], c.Len())
	require.ErrorIs(t, err, ErrTruncated)
	_, err = ReadGates(b, c.Len()-1)
	require.Error(t, err)
	_, err = ReadGates([]byte{7, 0}, 1)
	require.ErrorIs(t, err, circuit.ErrInvalidGate)
	_, err = ReadGates([]byte{uint8(circuit.KindCNOT), 1, 0}, 1)
	require.ErrorIs(t, err, circuit.ErrInvalidGate)
	huge := binary.AppendUvarint([]byte{uint8(circuit.KindCNOT), 1}, 1<<63)
	_, err = ReadGates(huge, 1)
	require.ErrorIs(t, err, ErrBadFrame)
	_, err = ReadGates(binary.AppendUvarint([]byte{uint8(circuit.KindH)}, math.MaxInt32+1), 1)
	require.ErrorIs(t, err, ErrBadFrame)
	// CNOT 1 -> 1 is rejected by validation.
	_, err = ReadGates([]byte{uint8(circuit.KindCNOT), 1, 1, 1}, 1)
	require.ErrorIs(t, err, circuit.ErrInvalidGate)
}

func TestFrame(t *testing.T) {
	cfg, err := synth.NewConfig(synth.Punctured, 1, 3, synth.WithStatePrep())
	require.NoError(t, err)
	res, err := synth.Synthesize(cfg)
	require.NoError(t, err)

	h := NewHeader(cfg, res)
	require.Equal(t, int8(1), h.Dropped)
	require.Equal(t, uint32(8), h.Qubits)
	b := Marshal(h, AppendGates(nil, res.Circuit))

	got, payload, err := Split(b)
	require.NoError(t, err)
	require.Equal(t, uint32(len(payload)), got.PayloadLen)
	c, err := ReadGates(payload, int(got.Gates))
	require.NoError(t, err)
	require.True(t, res.Circuit.Equal(c))
	require.Equal(t, got.Fingerprint, c.Fingerprint())

	back, err := got.Config()
	require.NoError(t, err)
	require.Equal(t, synth.Punctured, back.Variant)
	require.True(t, back.StatePrep)
	require.Equal(t, 1, back.R)

	_, _, err = Split(b[:HeaderLen+1])
	require.ErrorIs(t, err, ErrBadFrame)
	bad := append([]byte(nil), b...)
	bad[0] = 9
	_, _, err = Split(bad)
	require.ErrorIs(t, err, ErrBadFrame)
}
