package section

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/whisper/endian"
	"github.com/arloliu/whisper/errs"
	"github.com/arloliu/whisper/format"
)

var engine = endian.GetBigEndianEngine()

func TestMetadata_Parse(t *testing.T) {
	t.Run("Valid metadata", func(t *testing.T) {
		original := Metadata{
			Aggregation:  format.AggregationAverage,
			MaxRetention: 315360000,
			XFilesFactor: 0.5,
			ArchiveCount: 3,
		}

		data := original.Bytes(engine)
		require.Len(t, data, MetadataSize)

		parsed, err := ParseMetadata(data, engine)
		require.NoError(t, err)
		require.Equal(t, original, parsed)
	})

	t.Run("Unrecognized aggregation code survives", func(t *testing.T) {
		m := Metadata{
			Aggregation:  format.AggregationMethod(120),
			XFilesFactor: 0,
			ArchiveCount: 1,
		}

		parsed, err := ParseMetadata(m.Bytes(engine), engine)
		require.NoError(t, err)
		require.False(t, parsed.Aggregation.Known())
		require.Equal(t, "unrecognized(120)", parsed.Aggregation.String())
	})

	t.Run("Truncated", func(t *testing.T) {
		m := Metadata{Aggregation: format.AggregationSum, ArchiveCount: 1}
		data := m.Bytes(engine)

		for size := 0; size < MetadataSize; size++ {
			_, err := ParseMetadata(data[:size], engine)
			require.ErrorIs(t, err, errs.ErrTruncatedData, "size %d", size)
		}
	})

	t.Run("Zero archive count", func(t *testing.T) {
		m := Metadata{Aggregation: format.AggregationAverage, ArchiveCount: 0}

		_, err := ParseMetadata(m.Bytes(engine), engine)
		require.ErrorIs(t, err, errs.ErrInvalidHeader)
	})

	t.Run("X-files-factor out of range", func(t *testing.T) {
		for _, xff := range []float32{-0.1, 1.5, float32(math.NaN())} {
			m := Metadata{Aggregation: format.AggregationAverage, XFilesFactor: xff, ArchiveCount: 1}

			_, err := ParseMetadata(m.Bytes(engine), engine)
			require.ErrorIs(t, err, errs.ErrInvalidHeader, "xff %v", xff)
		}
	})
}

func TestMetadata_BigEndianLayout(t *testing.T) {
	// Byte-for-byte layout check against the documented format.
	m := Metadata{
		Aggregation:  format.AggregationLast, // 0x00000003
		MaxRetention: 0x01020304,
		XFilesFactor: 0.5, // 0x3F000000
		ArchiveCount: 2,
	}

	data := m.Bytes(engine)
	require.Equal(t, []byte{
		0x00, 0x00, 0x00, 0x03,
		0x01, 0x02, 0x03, 0x04,
		0x3F, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x02,
	}, data)
}

func TestArchiveInfo_Parse(t *testing.T) {
	t.Run("Round-trip", func(t *testing.T) {
		original := ArchiveInfo{
			Index:           1,
			Offset:          52,
			SecondsPerPoint: 60,
			Points:          1440,
		}

		parsed, err := ParseArchiveInfo(original.Bytes(engine), 1, engine)
		require.NoError(t, err)
		require.Equal(t, original, parsed)
		require.Equal(t, int64(86400), parsed.Retention())
		require.Equal(t, 1440*PointSize, parsed.Size())
		require.Equal(t, 52+1440*PointSize, parsed.End())
	})

	t.Run("Truncated", func(t *testing.T) {
		a := ArchiveInfo{Offset: 28, SecondsPerPoint: 10, Points: 100}

		_, err := ParseArchiveInfo(a.Bytes(engine)[:8], 0, engine)
		require.ErrorIs(t, err, errs.ErrTruncatedData)
	})

	t.Run("Zero seconds per point", func(t *testing.T) {
		a := ArchiveInfo{Offset: 28, SecondsPerPoint: 0, Points: 100}

		_, err := ParseArchiveInfo(a.Bytes(engine), 0, engine)
		require.ErrorIs(t, err, errs.ErrCorruptHeader)
	})

	t.Run("Zero points", func(t *testing.T) {
		a := ArchiveInfo{Offset: 28, SecondsPerPoint: 10, Points: 0}

		_, err := ParseArchiveInfo(a.Bytes(engine), 0, engine)
		require.ErrorIs(t, err, errs.ErrCorruptHeader)
	})
}

func TestPointRecord(t *testing.T) {
	t.Run("Round-trip", func(t *testing.T) {
		original := PointRecord{Timestamp: 1700000000, Value: 42.5}

		parsed := PointRecord{}
		next, err := parsed.Parse(original.Bytes(engine), 0, engine)
		require.NoError(t, err)
		require.Equal(t, PointSize, next)
		require.Equal(t, original, parsed)
		require.False(t, parsed.Empty())
	})

	t.Run("Empty slot", func(t *testing.T) {
		p := PointRecord{}
		require.True(t, p.Empty())
		require.Equal(t, make([]byte, PointSize), p.Bytes(engine))
	})

	t.Run("Truncated", func(t *testing.T) {
		p := PointRecord{}
		_, err := p.Parse(make([]byte, PointSize-1), 0, engine)
		require.ErrorIs(t, err, errs.ErrTruncatedData)
	})
}

func TestHeaderSize(t *testing.T) {
	require.Equal(t, 16, HeaderSize(0))
	require.Equal(t, 28, HeaderSize(1))
	require.Equal(t, 52, HeaderSize(3))
}
