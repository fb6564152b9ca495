// Package artifact stores synthesized encoders as compressed binary files.
//
// A file is a wire frame. Its payload is the uvarint length of the raw stream followed
// by the (possibly compressed) raw stream: the message qubits as a uvarint list, then
// the gate stream.
package artifact

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/qrm-go/qrm/circuit"
	"github.com/qrm-go/qrm/internal/wire"
	"github.com/qrm-go/qrm/synth"
)

// Ext is the file extension written by Save.
const Ext = ".qrm"

// ErrCorrupt is returned when a decoded circuit does not match its header.
var ErrCorrupt = errors.New("artifact: corrupt")

// Artifact is one decoded encoder.
type Artifact struct {
	Header        wire.Header
	MessageQubits []int
	Circuit       circuit.Circuit
}

// Name is the file name for cfg, e.g. "recursive_r1_m3.qrm".
func Name(cfg *synth.Config) string {
	name := fmt.Sprintf("%s_r%d_m%d", cfg.Variant, cfg.R, cfg.M)
	if cfg.Variant == synth.Asymmetric {
		name += fmt.Sprintf("_rin%d", cfg.RIn)
	}
	if cfg.StatePrep && cfg.Variant == synth.Punctured {
		name += "_prep"
	}
	return strings.ToLower(name) + Ext
}

// Encode serializes res with codec.
func Encode(cfg *synth.Config, res *synth.Result, codec Codec) ([]byte, error) {
	raw := binary.AppendUvarint(nil, uint64(len(res.MessageQubits)))
	for _, q := range res.MessageQubits {
		raw = binary.AppendUvarint(raw, uint64(q))
	}
	raw = wire.AppendGates(raw, res.Circuit)

	h := wire.NewHeader(cfg, res)
	h.Codec = codec.ID()
	body, err := codec.Compress(raw)
	if err != nil {
		return nil, err
	}
	if body == nil {
		h.Codec = wire.CodecNone
		body = raw
	}
	payload := binary.AppendUvarint(nil, uint64(len(raw)))
	return wire.Marshal(h, append(payload, body...)), nil
}

// Decode parses a file produced by Encode and checks the circuit fingerprint.
func Decode(b []byte) (*Artifact, error) {
	h, payload, err := wire.Split(b)
	if err != nil {
		return nil, err
	}
	size, n := binary.Uvarint(payload)
	if n <= 0 || size > 1<<30 {
		return nil, errors.Wrap(ErrCorrupt, "raw length")
	}
	codec, err := codecByID(h.Codec)
	if err != nil {
		return nil, err
	}
	raw, err := codec.Decompress(payload[n:], int(size))
	if err != nil {
		return nil, err
	}
	if uint64(len(raw)) != size {
		return nil, errors.Wrapf(ErrCorrupt, "raw stream is %d bytes, want %d", len(raw), size)
	}
	a := &Artifact{Header: h}
	k, off := binary.Uvarint(raw)
	if off <= 0 || k > uint64(len(raw)) {
		return nil, errors.Wrap(ErrCorrupt, "message qubit count")
	}
	for i := uint64(0); i < k; i++ {
		q, n := binary.Uvarint(raw[off:])
		if n <= 0 || q > math.MaxInt32 {
			return nil, errors.Wrap(ErrCorrupt, "message qubit")
		}
		off += n
		a.MessageQubits = append(a.MessageQubits, int(q))
	}
	if a.Circuit, err = wire.ReadGates(raw[off:], int(h.Gates)); err != nil {
		return nil, err
	}
	if fp := a.Circuit.Fingerprint(); fp != h.Fingerprint {
		return nil, errors.Wrapf(ErrCorrupt, "fingerprint %016x, header says %016x", fp, h.Fingerprint)
	}
	return a, nil
}

// Save writes res under dir and returns the file path.
func Save(dir string, cfg *synth.Config, res *synth.Result, codec Codec) (string, error) {
	b, err := Encode(cfg, res, codec)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrapf(err, "mkdir %s", dir)
	}
	path := filepath.Join(dir, Name(cfg))
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return "", errors.Wrapf(err, "write %s", path)
	}
	return path, nil
}

// Load reads and decodes one file.
func Load(path string) (*Artifact, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	a, err := Decode(b)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	return a, nil
}
