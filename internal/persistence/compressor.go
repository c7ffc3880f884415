package persistence

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"addrbook/internal/persistence/interfaces"
	"addrbook/internal/structures"
)

const (
	CompressionZstd = "zstd"
	CompressionGzip = "gzip"
	CompressionNone = "none"
)

var (
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	gzipMagic = []byte{0x1f, 0x8b}
)

type ZstdCompression struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

func (z *ZstdCompression) Name() string { return CompressionZstd }

func (z *ZstdCompression) Compress(val []byte) ([]byte, error) {
	return z.encoder.EncodeAll(val, make([]byte, 0, len(val)/2)), nil
}

func (z *ZstdCompression) Decompress(val []byte) ([]byte, error) {
	return z.decoder.DecodeAll(val, nil)
}

func (z *ZstdCompression) Close() {
	_ = z.encoder.Close()
	z.decoder.Close()
}

func NewZstdCompressor() (interfaces.CompressorInterface, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderCRC(true))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	return &ZstdCompression{encoder: encoder, decoder: decoder}, nil
}

type GzipCompression struct {
	level int
}

func (g *GzipCompression) Name() string { return CompressionGzip }

func (g *GzipCompression) Compress(val []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := gzip.NewWriterLevel(&buf, g.level)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(val); err != nil {
		_ = w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *GzipCompression) Decompress(val []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(val))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

func (g *GzipCompression) Close() {}

func NewGzipCompressor() interfaces.CompressorInterface {
	return &GzipCompression{level: gzip.DefaultCompression}
}

// plainCompression stores the JSON payload as is.
type plainCompression struct{}

func (plainCompression) Name() string                          { return CompressionNone }
func (plainCompression) Compress(val []byte) ([]byte, error)   { return val, nil }
func (plainCompression) Decompress(val []byte) ([]byte, error) { return val, nil }
func (plainCompression) Close()                                {}

// NewCompressor builds the compressor registered under name.
func NewCompressor(name string) (interfaces.CompressorInterface, error) {
	switch name {
	case CompressionZstd:
		return NewZstdCompressor()
	case CompressionGzip:
		return NewGzipCompressor(), nil
	case CompressionNone, "":
		return plainCompression{}, nil
	default:
		return nil, fmt.Errorf("unknown compression %q", name)
	}
}

// DetectCompression names the frame a snapshot was written with by its
// leading magic bytes. Anything unrecognised is treated as uncompressed.
func DetectCompression(data []byte) string {
	switch {
	case bytes.HasPrefix(data, zstdMagic):
		return CompressionZstd
	case bytes.HasPrefix(data, gzipMagic):
		return CompressionGzip
	default:
		return CompressionNone
	}
}

// NewCompressorProvider picks the codec new snapshots are written with.
func NewCompressorProvider(conf *structures.Config) (interfaces.CompressorInterface, error) {
	return NewCompressor(conf.Persistence.Compression)
}
