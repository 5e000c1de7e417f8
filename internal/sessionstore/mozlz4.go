package sessionstore

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/pierrec/lz4/v4"
)

// mozLz4Magic is the header Firefox writes in front of LZ4-block-compressed
// files (sessionstore.jsonlz4, recovery.jsonlz4, ...). The container is the
// magic, a little-endian uint32 with the decompressed size, then one raw
// LZ4 block.
var mozLz4Magic = []byte("mozLz40\x00")

// maxDecompressedSize caps the size field so a corrupt header cannot force
// a huge allocation. Real session stores are a few MiB.
const maxDecompressedSize = 512 << 20

var (
	// ErrBadMagic reports data that claims to be compressed but carries a bad header
	ErrBadMagic = errors.New("not a mozLz4 container")

	// ErrTruncated reports a mozLz4 container whose block does not match its size field
	ErrTruncated = errors.New("mozLz4 data truncated")
)

// IsCompressed reports whether data starts with the mozLz4 magic
func IsCompressed(data []byte) bool {
	return bytes.HasPrefix(data, mozLz4Magic)
}

// Decompress inflates a mozLz4 container. Data without the magic passes
// through untouched so plain .json files and .jsonlz4 files take the same
// path through the decoder.
func Decompress(data []byte) ([]byte, error) {
	if !IsCompressed(data) {
		return data, nil
	}

	body := data[len(mozLz4Magic):]
	if len(body) < 4 {
		return nil, ErrTruncated
	}

	size := binary.LittleEndian.Uint32(body[:4])
	block := body[4:]

	if size == 0 {
		if len(block) > 0 {
			return nil, ErrTruncated
		}
		return []byte{}, nil
	}
	if size > maxDecompressedSize {
		return nil, ErrTruncated
	}

	out := make([]byte, size)
	n, err := lz4.UncompressBlock(block, out)
	if err != nil {
		return nil, fmt.Errorf("lz4 block: %w", err)
	}
	if n != int(size) {
		return nil, ErrTruncated
	}

	return out[:n], nil
}

// Compress wraps data in a mozLz4 container, the inverse of Decompress.
// Used to build fixtures; the viewer itself never writes session stores.
func Compress(data []byte) ([]byte, error) {
	bound := lz4.CompressBlockBound(len(data))
	block := make([]byte, bound)

	n, err := lz4.CompressBlock(data, block, nil)
	if err != nil {
		return nil, fmt.Errorf("lz4 block: %w", err)
	}
	if n == 0 && len(data) > 0 {
		// CompressBlock reports incompressible data as n == 0; emit a
		// literal-only block so the container stays decodable.
		block = literalBlock(data)
		n = len(block)
	}

	out := make([]byte, 0, len(mozLz4Magic)+4+n)
	out = append(out, mozLz4Magic...)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(data)))
	out = append(out, block[:n]...)
	return out, nil
}

// literalBlock encodes src as a single LZ4 sequence of literals with no
// match, the representation the block format uses for data that does not
// compress.
func literalBlock(src []byte) []byte {
	out := make([]byte, 0, len(src)+len(src)/255+2)
	if n := len(src); n < 15 {
		out = append(out, byte(n)<<4)
	} else {
		out = append(out, 0xF0)
		for n -= 15; n >= 255; n -= 255 {
			out = append(out, 255)
		}
		out = append(out, byte(n))
	}
	return append(out, src...)
}
