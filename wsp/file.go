// Package wsp decodes whisper database files into structured, strongly-typed
// in-memory values.
//
// A whisper file is a 16-byte metadata header, an archive descriptor table,
// and one fixed-capacity circular buffer of (timestamp, value) points per
// archive, all big-endian. The Decoder parses and cross-validates the header,
// then reconstructs each circular buffer into a chronologically ordered,
// gap-aware point sequence.
//
// Decoding is a single deterministic pass over an in-memory buffer: no I/O,
// no retries, no shared state. Decoding many files concurrently needs no
// coordination, and the resulting File values are immutable and safe to share.
//
//	data, _ := source.ReadFile("cpuUsage.wsp")
//	file, err := wsp.Decode(data)
//	if err != nil {
//	    return err
//	}
//	for ts, val := range file.Archives[0].All() {
//	    fmt.Printf("%d %f\n", ts, val)
//	}
package wsp

import (
	"iter"

	"github.com/arloliu/whisper/section"
)

// Point is one slot of a decoded archive, in chronological order.
//
// Written distinguishes real data from never-written slots inside the live
// window. For gap slots the Timestamp is the value the slot would hold,
// extrapolated from the anchor, and Value is NaN; consumers decide whether to
// render or drop gaps.
type Point struct {
	// Timestamp is unix seconds. Always non-zero: slots preceding the oldest
	// written point are omitted rather than given fabricated timestamps.
	Timestamp int64

	// Value is the stored 64-bit float, or NaN for gap slots.
	Value float64

	// Written reports whether the slot was ever written.
	Written bool
}

// Archive is one decoded circular buffer together with its descriptor.
// It is built once at decode time and never mutated afterwards.
type Archive struct {
	// Info is the descriptor the archive was decoded from.
	Info section.ArchiveInfo

	// Points is the chronologically ordered slot sequence, from the oldest
	// live slot to the most recently written one. Empty for an archive whose
	// buffer holds no written slot at all.
	Points []Point

	// Anomalies holds the advisory irregularities found while decoding this
	// archive. A non-empty slice does not invalidate Points.
	Anomalies []Anomaly
}

// Empty reports whether the archive holds no written point.
func (a Archive) Empty() bool {
	return len(a.Points) == 0
}

// All iterates over the written points in chronological order, skipping gap
// slots. The yielded pair is (unix seconds, value).
func (a Archive) All() iter.Seq2[int64, float64] {
	return func(yield func(int64, float64) bool) {
		for _, p := range a.Points {
			if !p.Written {
				continue
			}
			if !yield(p.Timestamp, p.Value) {
				return
			}
		}
	}
}

// WrittenCount returns the number of written (non-gap) points.
func (a Archive) WrittenCount() int {
	n := 0
	for _, p := range a.Points {
		if p.Written {
			n++
		}
	}

	return n
}

// File is the fully decoded whisper file. It has no behavior beyond exposing
// its contents and is safe to share across goroutines without synchronization.
type File struct {
	// Metadata is the decoded file header. Its MaxRetention field is the raw
	// on-disk value; see MaxRetention on File for the authoritative one.
	Metadata section.Metadata

	// Archives are the decoded archives in declared order, finest resolution
	// first.
	Archives []Archive

	// MaxRetention is the maximum retention in seconds, recomputed as the
	// maximum of seconds-per-point times points over all archives. The on-disk
	// value can be stale and is never trusted.
	MaxRetention int64
}

// Anomalies returns the advisory irregularities of all archives in archive
// order. An empty result means the file decoded cleanly.
func (f File) Anomalies() []Anomaly {
	var out []Anomaly
	for _, a := range f.Archives {
		out = append(out, a.Anomalies...)
	}

	return out
}

// ExpectedSize returns the byte length a well-formed file with this header
// must have: header plus every archive's point region. A mismatch with the
// actual size indicates corruption or truncation.
func (f File) ExpectedSize() int {
	size := section.HeaderSize(len(f.Archives))
	for _, a := range f.Archives {
		size += a.Info.Size()
	}

	return size
}
