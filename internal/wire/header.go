// Package wire is the binary framing of synthesized encoders: a fixed header followed
// by a varint gate stream.
package wire

import (
	"encoding/binary"
)

// Version of the framing written by MarshalBinary.
const Version uint8 = 1

// Header flags.
const (
	FlagOnlyCNOTs uint8 = 1 << iota
	FlagStatePrep
	FlagRawRows
)

// Codec identifiers for the payload that follows the header.
const (
	CodecNone uint8 = 0
	CodecZstd uint8 = 1
	CodecLZ4  uint8 = 2
)

type Header struct {
	Version     uint8
	Variant     uint8
	Flags       uint8
	Codec       uint8
	R           int8 // may be -1
	RIn         int8
	M           uint8
	Dropped     int8   // 1 when point 0 was punctured away, else 0
	Qubits      uint32 // qubit label bound
	Gates       uint32 // stored gates, a fan-out counts once
	PayloadLen  uint32 // bytes after the header, as stored
	Fingerprint uint64
}

const HeaderLen = 8 + 4 + 4 + 4 + 8

func (h *Header) MarshalBinary(b []byte) []byte {
	if len(b) < HeaderLen {
		b = make([]byte, HeaderLen)
	}
	b[0] = h.Version
	b[1] = h.Variant
	b[2] = h.Flags
	b[3] = h.Codec
	b[4] = uint8(h.R)
	b[5] = uint8(h.RIn)
	b[6] = h.M
	b[7] = uint8(h.Dropped)
	binary.LittleEndian.PutUint32(b[8:12], h.Qubits)
	binary.LittleEndian.PutUint32(b[12:16], h.Gates)
	binary.LittleEndian.PutUint32(b[16:20], h.PayloadLen)
	binary.LittleEndian.PutUint64(b[20:28], h.Fingerprint)
	return b[:HeaderLen]
}

func (h *Header) UnmarshalBinary(b []byte) bool {
	if len(b) < HeaderLen {
		return false
	}
	h.Version = b[0]
	h.Variant = b[1]
	h.Flags = b[2]
	h.Codec = b[3]
	h.R = int8(b[4])
	h.RIn = int8(b[5])
	h.M = b[6]
	h.Dropped = int8(b[7])
	h.Qubits = binary.LittleEndian.Uint32(b[8:12])
	h.Gates = binary.LittleEndian.Uint32(b[12:16])
	h.PayloadLen = binary.LittleEndian.Uint32(b[16:20])
	h.Fingerprint = binary.LittleEndian.Uint64(b[20:28])
	return true
}
