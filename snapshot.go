package dualmap

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/dualmap/codec"
	"github.com/hupe1980/dualmap/internal/checksum"
)

const (
	// snapshotMagic identifies dualmap snapshot streams (ASCII: "DKM1").
	snapshotMagic = 0x444B4D31
	// snapshotVersion is the current snapshot format version (v1.0.0).
	snapshotVersion = 0x00010000

	// blockHeaderSize covers [UncompressedSize uint32][CompressedSize uint32].
	blockHeaderSize = 8
)

// Compression selects the block compression applied to the snapshot payload.
type Compression uint8

const (
	// CompressionNone stores the payload uncompressed.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 block compression (fastest).
	CompressionLZ4 Compression = 1
	// CompressionZSTD uses zstd block compression (best ratio).
	CompressionZSTD Compression = 2
)

type saveOptions struct {
	codec       codec.Codec
	compression Compression
}

// SaveOption configures Save behavior.
type SaveOption func(*saveOptions)

// WithCodec configures the codec used to encode the snapshot payload.
// The codec name is recorded in the header; Load selects it by name.
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) SaveOption {
	return func(o *saveOptions) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithCompression configures the payload compression. The default is zstd.
func WithCompression(c Compression) SaveOption {
	return func(o *saveOptions) {
		o.compression = c
	}
}

// Save writes a binary snapshot of the map to w.
//
// Layout (little-endian):
//
//	[Magic: 4 bytes] [Version: 4 bytes]
//	[CodecNameLen: 1 byte] [CodecName]
//	[Compression: 1 byte]
//	[Count: 8 bytes]
//	[BlockLen: 8 bytes] [Block]
//	[CRC32: 4 bytes]
//
// The block is the codec-encoded list of (k1, k2, v) triples, wrapped in a
// compression block header. Only the primary table's contents are encoded;
// Load rebuilds the reverse index by replaying insertion. The trailing CRC32
// covers every preceding byte.
func (m *DualKeyMap[K1, K2, V]) Save(w io.Writer, opts ...SaveOption) error {
	o := saveOptions{
		codec:       codec.Default,
		compression: CompressionZSTD,
	}
	for _, opt := range opts {
		opt(&o)
	}

	items := make([]Item[K1, K2, V], 0, len(m.primary))
	for k1, e := range m.primary {
		items = append(items, Item[K1, K2, V]{Key: k1, Alt: e.alt, Value: e.val})
	}

	payload, err := o.codec.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode snapshot payload: %w", err)
	}

	block, err := compressBlock(payload, o.compression)
	if err != nil {
		return fmt.Errorf("compress snapshot payload: %w", err)
	}

	bw := bufio.NewWriter(w)
	cw := checksum.NewWriter(bw)

	name := o.codec.Name()
	if len(name) > 255 {
		return fmt.Errorf("codec name too long: %q", name)
	}

	if err := binary.Write(cw, binary.LittleEndian, uint32(snapshotMagic)); err != nil {
		return err
	}
	if err := binary.Write(cw, binary.LittleEndian, uint32(snapshotVersion)); err != nil {
		return err
	}
	if err := binary.Write(cw, binary.LittleEndian, uint8(len(name))); err != nil {
		return err
	}
	if _, err := cw.Write([]byte(name)); err != nil {
		return err
	}
	if err := binary.Write(cw, binary.LittleEndian, uint8(o.compression)); err != nil {
		return err
	}
	if err := binary.Write(cw, binary.LittleEndian, uint64(len(items))); err != nil {
		return err
	}
	if err := binary.Write(cw, binary.LittleEndian, uint64(len(block))); err != nil {
		return err
	}
	if _, err := cw.Write(block); err != nil {
		return err
	}

	// The trailing checksum bypasses the checksum writer.
	if err := binary.Write(bw, binary.LittleEndian, cw.Sum()); err != nil {
		return err
	}

	return bw.Flush()
}

// Load reads a snapshot written by Save and reconstructs the map, replaying
// every decoded triple through the normal insertion path so the reverse
// index is derived from the primary table. Malformed input returns a typed
// error (ErrInvalidMagic, ErrInvalidVersion, ErrUnknownCodec,
// ErrUnknownCompression or a *checksum.MismatchError) and never a partially
// built map.
func Load[K1 comparable, K2 comparable, V any](r io.Reader) (*DualKeyMap[K1, K2, V], error) {
	br := bufio.NewReader(r)
	cr := checksum.NewReader(br)

	var magic, version uint32
	if err := binary.Read(cr, binary.LittleEndian, &magic); err != nil {
		return nil, err
	}
	if magic != snapshotMagic {
		return nil, ErrInvalidMagic
	}
	if err := binary.Read(cr, binary.LittleEndian, &version); err != nil {
		return nil, err
	}
	if version != snapshotVersion {
		return nil, fmt.Errorf("%w: 0x%08x", ErrInvalidVersion, version)
	}

	var nameLen uint8
	if err := binary.Read(cr, binary.LittleEndian, &nameLen); err != nil {
		return nil, err
	}
	nameBytes := make([]byte, nameLen)
	if _, err := io.ReadFull(cr, nameBytes); err != nil {
		return nil, err
	}
	c, ok := codec.ByName(string(nameBytes))
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, string(nameBytes))
	}

	var compression uint8
	if err := binary.Read(cr, binary.LittleEndian, &compression); err != nil {
		return nil, err
	}
	switch Compression(compression) {
	case CompressionNone, CompressionLZ4, CompressionZSTD:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, compression)
	}

	var count, blockLen uint64
	if err := binary.Read(cr, binary.LittleEndian, &count); err != nil {
		return nil, err
	}
	if err := binary.Read(cr, binary.LittleEndian, &blockLen); err != nil {
		return nil, err
	}

	if blockLen > math.MaxInt64 {
		return nil, fmt.Errorf("snapshot block length out of range: %d", blockLen)
	}

	// The block length is untrusted until the checksum verifies, so the
	// buffer grows with bytes actually read instead of being allocated up
	// front from the header field.
	var blockBuf bytes.Buffer
	if _, err := io.CopyN(&blockBuf, cr, int64(blockLen)); err != nil {
		return nil, err
	}
	block := blockBuf.Bytes()

	// The trailing checksum is read from the raw stream, not through the
	// checksum reader.
	var sum uint32
	if err := binary.Read(br, binary.LittleEndian, &sum); err != nil {
		return nil, err
	}
	if err := cr.Verify(sum); err != nil {
		return nil, err
	}

	payload, err := decompressBlock(block, Compression(compression))
	if err != nil {
		return nil, fmt.Errorf("decompress snapshot payload: %w", err)
	}

	var items []Item[K1, K2, V]
	if err := c.Unmarshal(payload, &items); err != nil {
		return nil, fmt.Errorf("decode snapshot payload: %w", err)
	}
	if uint64(len(items)) != count {
		return nil, fmt.Errorf("snapshot element count mismatch: header %d, payload %d", count, len(items))
	}

	m := NewWithCapacity[K1, K2, V](int(count))
	for _, it := range items {
		m.Insert(it.Key, it.Alt, it.Value)
	}

	return m, nil
}

// compressBlock wraps payload in a block header and compresses it.
// Block format: [UncompressedSize uint32][CompressedSize uint32][Data].
// CompressedSize == 0 means the data is stored uncompressed, which is also
// the fallback when compression does not pay for itself.
func compressBlock(data []byte, compression Compression) ([]byte, error) {
	if err := checkBlockPayloadSize(int64(len(data))); err != nil {
		return nil, err
	}

	var compressed []byte
	var err error

	switch compression {
	case CompressionLZ4:
		compressed, err = compressBlockLZ4(data)
	case CompressionZSTD:
		compressed, err = compressBlockZSTD(data)
	}
	if err != nil {
		return nil, err
	}

	if len(compressed) == 0 || len(compressed) >= len(data) {
		block := make([]byte, blockHeaderSize+len(data))
		binary.LittleEndian.PutUint32(block[0:], uint32(len(data)))
		binary.LittleEndian.PutUint32(block[4:], 0) // stored uncompressed
		copy(block[blockHeaderSize:], data)
		return block, nil
	}

	block := make([]byte, blockHeaderSize+len(compressed))
	binary.LittleEndian.PutUint32(block[0:], uint32(len(data)))
	binary.LittleEndian.PutUint32(block[4:], uint32(len(compressed)))
	copy(block[blockHeaderSize:], compressed)
	return block, nil
}

// checkBlockPayloadSize rejects payloads whose length does not fit the
// uint32 block header fields.
func checkBlockPayloadSize(n int64) error {
	if n > math.MaxUint32 {
		return fmt.Errorf("payload too large for block header: %d bytes", n)
	}
	return nil
}

func compressBlockLZ4(data []byte) ([]byte, error) {
	compressed := make([]byte, lz4.CompressBlockBound(len(data)))
	n, err := lz4.CompressBlock(data, compressed, nil)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil // incompressible
	}
	return compressed[:n], nil
}

func compressBlockZSTD(data []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, err
	}
	defer enc.Close()

	return enc.EncodeAll(data, nil), nil
}

func decompressBlock(block []byte, compression Compression) ([]byte, error) {
	if len(block) < blockHeaderSize {
		return nil, errors.New("block too small for header")
	}

	uncompressedSize := binary.LittleEndian.Uint32(block[0:])
	compressedSize := binary.LittleEndian.Uint32(block[4:])

	if compressedSize == 0 {
		if uint64(len(block)) < blockHeaderSize+uint64(uncompressedSize) {
			return nil, errors.New("block data too small")
		}
		return block[blockHeaderSize : blockHeaderSize+uncompressedSize], nil
	}

	if uint64(len(block)) < blockHeaderSize+uint64(compressedSize) {
		return nil, errors.New("compressed block data too small")
	}
	data := block[blockHeaderSize : blockHeaderSize+compressedSize]

	switch compression {
	case CompressionLZ4:
		out := make([]byte, uncompressedSize)
		n, err := lz4.UncompressBlock(data, out)
		if err != nil {
			return nil, err
		}
		if uint32(n) != uncompressedSize {
			return nil, errors.New("decompressed size mismatch")
		}
		return out, nil

	case CompressionZSTD:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer dec.Close()

		out, err := dec.DecodeAll(data, make([]byte, 0, uncompressedSize))
		if err != nil {
			return nil, err
		}
		if uint32(len(out)) != uncompressedSize {
			return nil, errors.New("decompressed size mismatch")
		}
		return out, nil

	default:
		return nil, errors.New("compressed block with no compression type")
	}
}
