package artifact

import (
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/pkg/errors"

	"github.com/qrm-go/qrm/internal/wire"
)

// Codec compresses gate streams. Implementations are safe for concurrent use.
type Codec interface {
	ID() uint8
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte, size int) ([]byte, error)
}

// ErrUnknownCodec is returned for codec names or ids with no implementation.
var ErrUnknownCodec = errors.New("artifact: unknown codec")

// CodecByName resolves "none", "zstd" or "lz4".
func CodecByName(name string) (Codec, error) {
	switch name {
	case "", "none":
		return noneCodec{}, nil
	case "zstd":
		return zstdCodec{}, nil
	case "lz4":
		return lz4Codec{}, nil
	}
	return nil, errors.Wrapf(ErrUnknownCodec, "%q", name)
}

func codecByID(id uint8) (Codec, error) {
	switch id {
	case wire.CodecNone:
		return noneCodec{}, nil
	case wire.CodecZstd:
		return zstdCodec{}, nil
	case wire.CodecLZ4:
		return lz4Codec{}, nil
	}
	return nil, errors.Wrapf(ErrUnknownCodec, "id %d", id)
}

type noneCodec struct{}

func (noneCodec) ID() uint8 { return wire.CodecNone }

func (noneCodec) Compress(data []byte) ([]byte, error) { return data, nil }

func (noneCodec) Decompress(data []byte, _ int) ([]byte, error) { return data, nil }

var zstdDecoderPool = sync.Pool{
	New: func() any {
		d, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
		if err != nil {
			panic(errors.Wrap(err, "create zstd decoder"))
		}
		return d
	},
}

var zstdEncoderPool = sync.Pool{
	New: func() any {
		e, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
		if err != nil {
			panic(errors.Wrap(err, "create zstd encoder"))
		}
		return e
	},
}

type zstdCodec struct{}

func (zstdCodec) ID() uint8 { return wire.CodecZstd }

func (zstdCodec) Compress(data []byte) ([]byte, error) {
	e := zstdEncoderPool.Get().(*zstd.Encoder)
	defer zstdEncoderPool.Put(e)
	return e.EncodeAll(data, nil), nil
}

func (zstdCodec) Decompress(data []byte, size int) ([]byte, error) {
	d := zstdDecoderPool.Get().(*zstd.Decoder)
	defer zstdDecoderPool.Put(d)
	out, err := d.DecodeAll(data, make([]byte, 0, size))
	if err != nil {
		return nil, errors.Wrap(err, "zstd decompress")
	}
	return out, nil
}

var lz4CompressorPool = sync.Pool{
	New: func() any { return &lz4.Compressor{} },
}

type lz4Codec struct{}

func (lz4Codec) ID() uint8 { return wire.CodecLZ4 }

// Compress returns nil when lz4 cannot shrink data; the writer then stores it raw.
func (lz4Codec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	dst := make([]byte, lz4.CompressBlockBound(len(data)))
	c := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(c)
	n, err := c.CompressBlock(data, dst)
	if err != nil {
		return nil, errors.Wrap(err, "lz4 compress")
	}
	if n == 0 || n >= len(data) {
		return nil, nil
	}
	return dst[:n], nil
}

func (lz4Codec) Decompress(data []byte, size int) ([]byte, error) {
	out := make([]byte, size)
	n, err := lz4.UncompressBlock(data, out)
	if err != nil {
		return nil, errors.Wrap(err, "lz4 decompress")
	}
	return out[:n], nil
}
