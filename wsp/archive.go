package wsp

import (
	"fmt"
	"math"

	"github.com/arloliu/whisper/endian"
	"github.com/arloliu/whisper/internal/bufread"
	"github.com/arloliu/whisper/section"
)

// decodeArchive reconstructs one archive's circular buffer as a chronological
// point sequence.
//
// The on-disk buffer has no explicit head pointer. The slot holding the
// maximum non-zero timestamp is the most recently written one (the anchor);
// the slot after it, wrapping, holds the oldest live data. Reading the buffer
// from there back around to the anchor yields chronological order, with each
// slot one seconds-per-point step after the previous.
//
// now is consulted only for the advisory future-timestamp check; it never
// alters decoded values.
func decodeArchive(data []byte, info section.ArchiveInfo, engine endian.EndianEngine, now int64) (Archive, error) {
	if err := bufread.Span(data, int(info.Offset), info.Size()); err != nil {
		return Archive{}, fmt.Errorf("archive %d point region: %w", info.Index, err)
	}

	// Pass 1: decode all slots in raw on-disk order.
	raw := make([]section.PointRecord, info.Points)
	offset := int(info.Offset)
	for i := range raw {
		next, err := raw[i].Parse(data, offset, engine)
		if err != nil {
			return Archive{}, fmt.Errorf("archive %d slot %d: %w", info.Index, i, err)
		}
		offset = next
	}

	// Pass 2: locate the anchor slot.
	anchor := -1
	var anchorTs uint32
	for i, rec := range raw {
		if !rec.Empty() && rec.Timestamp > anchorTs {
			anchorTs = rec.Timestamp
			anchor = i
		}
	}

	// Every slot zero: the archive was never written. Valid, just empty.
	if anchor < 0 {
		return Archive{Info: info}, nil
	}

	// Pass 3: walk the buffer from the oldest live slot to the anchor,
	// emitting chronological points. Index arithmetic over the raw slice;
	// no pointer chasing.
	n := len(raw)
	step := int64(info.SecondsPerPoint)
	points := make([]Point, 0, n)

	var anomalies []Anomaly
	seenData := false

	for j := range n {
		slot := (anchor + 1 + j) % n
		rec := raw[slot]

		// The timestamp this slot would hold, extrapolated back from the
		// anchor one step per slot.
		slotTs := int64(anchorTs) - int64(n-1-j)*step

		if rec.Empty() {
			// Gaps before any written slot belong to the region that was
			// never reached by data; fabricating timestamps there would be
			// guesswork, so they are omitted.
			if !seenData {
				continue
			}

			points = append(points, Point{Timestamp: slotTs, Value: math.NaN()})

			continue
		}

		ts := int64(rec.Timestamp)

		// A slot whose timestamp sits on the grid but does not match its slot
		// time was last written in an earlier cycle of the buffer and never
		// overwritten since. Its data belongs to a lap the live window has
		// left behind; emitting it verbatim would break chronological order.
		if ts != slotTs && (int64(anchorTs)-ts)%step == 0 {
			anomalies = append(anomalies, Anomaly{
				Kind:         AnomalyStaleTimestamp,
				ArchiveIndex: info.Index,
				Slot:         slot,
				Timestamp:    ts,
				Detail: fmt.Sprintf("timestamp %d is from an earlier buffer cycle, slot time is %d",
					ts, slotTs),
			})

			if seenData {
				points = append(points, Point{Timestamp: slotTs, Value: math.NaN()})
			}

			continue
		}

		seenData = true

		if (int64(anchorTs)-ts)%step != 0 {
			anomalies = append(anomalies, Anomaly{
				Kind:         AnomalyMisalignedTimestamp,
				ArchiveIndex: info.Index,
				Slot:         slot,
				Timestamp:    ts,
				Detail: fmt.Sprintf("timestamp %d not a multiple of %ds from anchor %d",
					ts, step, anchorTs),
			})
		}

		// One step of slack absorbs clock skew between writer and reader.
		if ts > now+step {
			anomalies = append(anomalies, Anomaly{
				Kind:         AnomalyFutureTimestamp,
				ArchiveIndex: info.Index,
				Slot:         slot,
				Timestamp:    ts,
				Detail:       fmt.Sprintf("timestamp %d is %ds past decode time %d", ts, ts-now, now),
			})
		}

		points = append(points, Point{Timestamp: ts, Value: rec.Value, Written: true})
	}

	return Archive{Info: info, Points: points, Anomalies: anomalies}, nil
}
