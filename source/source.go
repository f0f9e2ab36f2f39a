// Package source supplies raw whisper file bytes to the decoder, transparently
// handling compressed inputs.
//
// Decoding operates on a fully-loaded buffer, so this package's job is a pure
// byte-stream pre-processing step: load the file, identify the container
// format from its magic bytes, and hand back the decompressed contents. The
// decoder itself never performs I/O.
//
// Supported containers:
//   - raw whisper files (passthrough)
//   - gzip (.wsp.gz)
//   - zstandard (.wsp.zst)
//   - lz4 frames (.wsp.lz4)
//   - s2/snappy streams (.wsp.sz)
//
// Detection is content-based; file extensions are never consulted.
package source

import (
	"fmt"
	"os"

	"github.com/arloliu/whisper/errs"
)

// Format identifies the container wrapping a whisper file on disk.
type Format uint8

const (
	FormatRaw  Format = iota // uncompressed whisper bytes
	FormatGzip               // gzip member stream
	FormatZstd               // zstandard frame
	FormatLZ4                // lz4 frame
	FormatS2                 // s2/snappy framed stream
)

func (f Format) String() string {
	switch f {
	case FormatRaw:
		return "raw"
	case FormatGzip:
		return "gzip"
	case FormatZstd:
		return "zstd"
	case FormatLZ4:
		return "lz4"
	case FormatS2:
		return "s2"
	default:
		return "unknown"
	}
}

// Decompressor decompresses one container format into raw whisper bytes.
//
// Implementations must be safe for concurrent use; the package-level codecs
// are shared. The returned slice is newly allocated and owned by the caller;
// the input slice is never modified.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

var codecs = map[Format]Decompressor{
	FormatGzip: GzipSource{},
	FormatZstd: ZstdSource{},
	FormatLZ4:  LZ4Source{},
	FormatS2:   S2Source{},
}

// Sniff identifies the container format from the leading magic bytes.
// Anything without a known compression magic is treated as raw whisper data;
// the decoder's own header validation catches true garbage.
func Sniff(data []byte) Format {
	if len(data) >= 2 && data[0] == 0x1F && data[1] == 0x8B {
		return FormatGzip
	}
	if len(data) >= 4 && data[0] == 0x28 && data[1] == 0xB5 && data[2] == 0x2F && data[3] == 0xFD {
		return FormatZstd
	}
	if len(data) >= 4 && data[0] == 0x04 && data[1] == 0x22 && data[2] == 0x4D && data[3] == 0x18 {
		return FormatLZ4
	}
	if len(data) >= 4 && data[0] == 0xFF && data[1] == 0x06 && data[2] == 0x00 && data[3] == 0x00 {
		return FormatS2
	}

	return FormatRaw
}

// Decode returns the raw whisper bytes behind data, decompressing if the
// content is wrapped in a known container.
func Decode(data []byte) ([]byte, error) {
	format := Sniff(data)
	if format == FormatRaw {
		return data, nil
	}

	codec, ok := codecs[format]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errs.ErrUnknownSourceFormat, format)
	}

	out, err := codec.Decompress(data)
	if err != nil {
		return nil, fmt.Errorf("decompress %s source: %w", format, err)
	}

	return out, nil
}

// ReadFile loads the whisper file at path and returns its raw bytes,
// transparently decompressing compressed files.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read whisper file: %w", err)
	}

	return Decode(data)
}
