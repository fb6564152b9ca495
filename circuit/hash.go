package circuit

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint hashes the expanded gate sequence, so two circuits that differ only in
// how CNOTs are grouped into fan-outs hash alike.
func (c Circuit) Fingerprint() uint64 {
	d := xxhash.New()
	buf := make([]byte, 0, 2*binary.MaxVarintLen64+1)
	for _, g := range c.Expand().gates {
		buf = append(buf[:0], byte(g.Kind))
		if g.Kind == KindCNOT {
			buf = binary.AppendUvarint(buf, uint64(g.Control))
		}
		buf = binary.AppendUvarint(buf, uint64(g.Targets[0]))
		_, _ = d.Write(buf)
	}
	return d.Sum64()
}
