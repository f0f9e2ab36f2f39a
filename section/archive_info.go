package section

import (
	"fmt"

	"github.com/arloliu/whisper/endian"
	"github.com/arloliu/whisper/errs"
	"github.com/arloliu/whisper/internal/bufread"
)

// ArchiveInfo is one 12-byte descriptor from the archive table that follows
// the file metadata. Descriptors appear in file order, which the format
// requires to be finest resolution first.
type ArchiveInfo struct {
	// Index is the 0-based position of the descriptor in the table. It is not
	// stored on disk; the parser assigns it.
	Index int

	// Offset is the byte offset into the file where the archive's point region
	// begins.
	Offset uint32 // byte offset 0-3

	// SecondsPerPoint is the time resolution of the archive in seconds.
	SecondsPerPoint uint32 // byte offset 4-7

	// Points is the fixed capacity of the archive's circular buffer.
	Points uint32 // byte offset 8-11
}

// Retention returns the total time span the archive can hold, in seconds.
func (a ArchiveInfo) Retention() int64 {
	return int64(a.SecondsPerPoint) * int64(a.Points)
}

// Size returns the byte length of the archive's point region.
func (a ArchiveInfo) Size() int {
	return int(a.Points) * PointSize
}

// End returns the byte offset one past the archive's point region.
func (a ArchiveInfo) End() int {
	return int(a.Offset) + a.Size()
}

// Parse parses the descriptor from the start of data and validates its
// self-contained invariants.
func (a *ArchiveInfo) Parse(data []byte, engine endian.EndianEngine) error {
	offset := 0

	off, offset, err := bufread.Uint32(data, offset, engine)
	if err != nil {
		return fmt.Errorf("archive descriptor offset: %w", err)
	}

	spp, offset, err := bufread.Uint32(data, offset, engine)
	if err != nil {
		return fmt.Errorf("archive descriptor seconds per point: %w", err)
	}

	points, _, err := bufread.Uint32(data, offset, engine)
	if err != nil {
		return fmt.Errorf("archive descriptor points: %w", err)
	}

	a.Offset = off
	a.SecondsPerPoint = spp
	a.Points = points

	return a.Validate()
}

// Validate checks the descriptor's self-contained invariants.
// Cross-archive invariants (ordering, overlap) are the caller's concern.
func (a *ArchiveInfo) Validate() error {
	if a.SecondsPerPoint == 0 {
		return fmt.Errorf("%w: archive %d has zero seconds per point", errs.ErrCorruptHeader, a.Index)
	}
	if a.Points == 0 {
		return fmt.Errorf("%w: archive %d has zero points", errs.ErrCorruptHeader, a.Index)
	}

	return nil
}

// Bytes serializes the descriptor into a 12-byte slice.
func (a *ArchiveInfo) Bytes(engine endian.EndianEngine) []byte {
	b := make([]byte, ArchiveInfoSize)
	engine.PutUint32(b[0:4], a.Offset)
	engine.PutUint32(b[4:8], a.SecondsPerPoint)
	engine.PutUint32(b[8:12], a.Points)

	return b
}

// ParseArchiveInfo parses one descriptor at the given table index.
func ParseArchiveInfo(data []byte, index int, engine endian.EndianEngine) (ArchiveInfo, error) {
	a := ArchiveInfo{Index: index}
	if err := a.Parse(data, engine); err != nil {
		return ArchiveInfo{}, err
	}

	return a, nil
}
