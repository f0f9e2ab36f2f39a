package wsp

import (
	"testing"

	"github.com/arloliu/whisper/endian"
	"github.com/arloliu/whisper/format"
	"github.com/arloliu/whisper/section"
)

var engine = endian.GetBigEndianEngine()

// testArchive describes one archive for buildFile. Slots not covered by
// records stay zero (never written).
type testArchive struct {
	spp     uint32
	points  uint32
	records map[int]section.PointRecord // raw slot index -> record
}

// buildFile assembles a well-formed whisper file image the way the reference
// writer lays it out: metadata, descriptor table, then point regions in
// declared order.
func buildFile(t *testing.T, agg format.AggregationMethod, xff float32, archives ...testArchive) []byte {
	t.Helper()

	var maxRetention uint32
	for _, a := range archives {
		if r := a.spp * a.points; r > maxRetention {
			maxRetention = r
		}
	}

	meta := section.Metadata{
		Aggregation:  agg,
		MaxRetention: maxRetention,
		XFilesFactor: xff,
		ArchiveCount: uint32(len(archives)),
	}

	buf := meta.Bytes(engine)

	offset := uint32(section.HeaderSize(len(archives)))
	for i, a := range archives {
		info := section.ArchiveInfo{
			Index:           i,
			Offset:          offset,
			SecondsPerPoint: a.spp,
			Points:          a.points,
		}
		buf = append(buf, info.Bytes(engine)...)
		offset += uint32(info.Size())
	}

	for _, a := range archives {
		region := make([]byte, int(a.points)*section.PointSize)
		for slot, rec := range a.records {
			copy(region[slot*section.PointSize:], rec.Bytes(engine))
		}
		buf = append(buf, region...)
	}

	return buf
}

// writeSeries fills records the way the whisper writer does: a timestamp
// lands in slot (ts/spp) % points, truncated down to its step boundary.
func writeSeries(spp uint32, points uint32, startTs int64, values []float64) map[int]section.PointRecord {
	records := make(map[int]section.PointRecord, len(values))
	step := int64(spp)

	for i, v := range values {
		ts := startTs + int64(i)*step
		ts -= ts % step
		slot := int((ts / step) % int64(points))
		records[slot] = section.PointRecord{Timestamp: uint32(ts), Value: v}
	}

	return records
}
