// Package whisper provides a read-only decoder for Graphite whisper database
// files.
//
// A whisper file stores one time series in fixed-size circular archives at
// one or more resolutions. The decoder parses and cross-validates the header,
// reconstructs each circular buffer into a chronologically ordered point
// sequence, and reports structural irregularities without ever writing to the
// file.
//
// # Core Features
//
//   - Single-pass decoding of the big-endian on-disk format
//   - Circular buffers reconstructed into chronological, gap-aware sequences
//   - Fatal header corruption separated from per-archive advisory anomalies
//   - Transparent decompression of gzip, zstd, lz4 and s2 sources
//   - Concurrent directory scanning and Parquet export
//
// # Basic Usage
//
// Decoding a file:
//
//	import "github.com/arloliu/whisper"
//
//	file, err := whisper.Open("cpuUsage.wsp")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for ts, val := range file.Archives[0].All() {
//	    fmt.Printf("%d %f\n", ts, val)
//	}
//
// Decoding an in-memory buffer with a pinned clock:
//
//	file, err := whisper.Decode(data, wsp.WithNow(refTime))
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the wsp package,
// simplifying the most common use cases. For archive-level access and
// fine-grained control, use the wsp package directly; the scan and parquet
// packages cover bulk decoding and export.
package whisper

import (
	"github.com/arloliu/whisper/internal/hash"
	"github.com/arloliu/whisper/source"
	"github.com/arloliu/whisper/wsp"
)

// Decode decodes a whisper file held in memory.
//
// The buffer must contain raw whisper bytes; compressed buffers should go
// through source.Decode first (Open does both).
func Decode(data []byte, opts ...wsp.DecoderOption) (wsp.File, error) {
	return wsp.Decode(data, opts...)
}

// Open reads and decodes the whisper file at path, transparently
// decompressing gzip, zstd, lz4 and s2 sources.
func Open(path string, opts ...wsp.DecoderOption) (wsp.File, error) {
	data, err := source.ReadFile(path)
	if err != nil {
		return wsp.File{}, err
	}

	return wsp.Decode(data, opts...)
}

// SeriesID computes the stable 64-bit identifier (xxHash64) of a dotted
// series name.
func SeriesID(name string) uint64 {
	return hash.ID(name)
}

// SeriesName converts a file path relative to a storage root into the dotted
// graphite series name.
func SeriesName(relPath string) string {
	return hash.SeriesName(relPath)
}
