package section

import (
	"math"

	"github.com/arloliu/whisper/endian"
	"github.com/arloliu/whisper/internal/bufread"
)

// PointRecord is one 12-byte slot of an archive's circular buffer as stored
// on disk: a 4-byte timestamp followed by an 8-byte float value.
//
// A zero timestamp marks a slot that was never written. That is the format's
// documented convention; a real point cannot carry the epoch-zero timestamp.
type PointRecord struct {
	Timestamp uint32  // byte offset 0-3, unix seconds
	Value     float64 // byte offset 4-11
}

// Empty reports whether the slot was never written.
func (p PointRecord) Empty() bool {
	return p.Timestamp == 0
}

// Parse parses the record at offset inside data and returns the advanced
// offset.
func (p *PointRecord) Parse(data []byte, offset int, engine endian.EndianEngine) (int, error) {
	ts, offset, err := bufread.Uint32(data, offset, engine)
	if err != nil {
		return offset, err
	}

	val, offset, err := bufread.Float64(data, offset, engine)
	if err != nil {
		return offset, err
	}

	p.Timestamp = ts
	p.Value = val

	return offset, nil
}

// Bytes serializes the record into a 12-byte slice.
func (p *PointRecord) Bytes(engine endian.EndianEngine) []byte {
	b := make([]byte, PointSize)
	engine.PutUint32(b[0:4], p.Timestamp)
	engine.PutUint64(b[4:12], math.Float64bits(p.Value))

	return b
}
