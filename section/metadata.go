// Package section implements the fixed-layout binary sections of the whisper
// file format: the file metadata, the archive descriptor table, and the point
// records inside each archive's circular buffer.
//
// Each section type offers Parse (bytes to struct) and Bytes (struct to
// bytes). Parsing never trusts declared values beyond the section itself;
// cross-section validation belongs to the wsp package.
package section

import (
	"fmt"
	"math"

	"github.com/arloliu/whisper/endian"
	"github.com/arloliu/whisper/errs"
	"github.com/arloliu/whisper/format"
	"github.com/arloliu/whisper/internal/bufread"
)

// Metadata is the 16-byte file-level header at the start of a whisper file.
type Metadata struct {
	// Aggregation is the on-disk aggregation method code. Unrecognized codes
	// are preserved, not rejected.
	Aggregation format.AggregationMethod // byte offset 0-3

	// MaxRetention is the maximum retention in seconds as written on disk.
	// It can be redundant or stale; the decoder recomputes the authoritative
	// value from the archive table.
	MaxRetention uint32 // byte offset 4-7

	// XFilesFactor is the fraction of valid source points required for a value
	// to propagate to a coarser archive on write. Read-only context here.
	XFilesFactor float32 // byte offset 8-11

	// ArchiveCount is the number of archive descriptors following the metadata.
	ArchiveCount uint32 // byte offset 12-15
}

// Parse parses the metadata from the start of data.
//
// Parameters:
//   - data: byte slice starting at the file header (must hold at least 16 bytes)
//   - engine: endian engine for byte order (big-endian for on-disk data)
//
// Returns:
//   - error: ErrTruncatedData if data is shorter than 16 bytes, or
//     ErrInvalidHeader if the decoded values are nonsensical
func (m *Metadata) Parse(data []byte, engine endian.EndianEngine) error {
	offset := 0

	agg, offset, err := bufread.Uint32(data, offset, engine)
	if err != nil {
		return fmt.Errorf("metadata aggregation method: %w", err)
	}

	retention, offset, err := bufread.Uint32(data, offset, engine)
	if err != nil {
		return fmt.Errorf("metadata max retention: %w", err)
	}

	xff, offset, err := bufread.Float32(data, offset, engine)
	if err != nil {
		return fmt.Errorf("metadata x-files-factor: %w", err)
	}

	count, _, err := bufread.Uint32(data, offset, engine)
	if err != nil {
		return fmt.Errorf("metadata archive count: %w", err)
	}

	m.Aggregation = format.AggregationMethod(agg)
	m.MaxRetention = retention
	m.XFilesFactor = xff
	m.ArchiveCount = count

	return m.Validate()
}

// Validate checks the metadata for nonsensical values.
//
// The aggregation code is deliberately not validated: unknown codes decode to
// the unrecognized variant and must not fail the file.
func (m *Metadata) Validate() error {
	if m.ArchiveCount == 0 {
		return fmt.Errorf("%w: archive count is zero", errs.ErrInvalidHeader)
	}

	xff := float64(m.XFilesFactor)
	if math.IsNaN(xff) || xff < 0 || xff > 1 {
		return fmt.Errorf("%w: x-files-factor %v outside [0, 1]", errs.ErrInvalidHeader, m.XFilesFactor)
	}

	return nil
}

// Bytes serializes the metadata into a 16-byte slice.
func (m *Metadata) Bytes(engine endian.EndianEngine) []byte {
	b := make([]byte, MetadataSize)
	engine.PutUint32(b[0:4], uint32(m.Aggregation))
	engine.PutUint32(b[4:8], m.MaxRetention)
	engine.PutUint32(b[8:12], math.Float32bits(m.XFilesFactor))
	engine.PutUint32(b[12:16], m.ArchiveCount)

	return b
}

// ParseMetadata parses a Metadata from a byte slice.
//
// Returns:
//   - Metadata: parsed metadata struct
//   - error: ErrTruncatedData or ErrInvalidHeader
func ParseMetadata(data []byte, engine endian.EndianEngine) (Metadata, error) {
	m := Metadata{}
	if err := m.Parse(data, engine); err != nil {
		return Metadata{}, err
	}

	return m, nil
}
