package wsp

import (
	"fmt"

	"github.com/arloliu/whisper/errs"
)

// AnomalyKind classifies an advisory per-point irregularity.
type AnomalyKind int

const (
	// AnomalyMisalignedTimestamp marks a written slot whose timestamp is not
	// congruent to the archive's anchor modulo seconds-per-point.
	AnomalyMisalignedTimestamp AnomalyKind = iota + 1

	// AnomalyFutureTimestamp marks a written slot whose timestamp lies beyond
	// the decode-time clock by more than one resolution step.
	AnomalyFutureTimestamp

	// AnomalyStaleTimestamp marks a written slot left over from an earlier
	// cycle of the circular buffer: its timestamp is on the archive's grid but
	// lags the slot's live-window time by whole buffer laps. The slot is
	// reported as a gap rather than emitted out of order.
	AnomalyStaleTimestamp
)

func (k AnomalyKind) String() string {
	switch k {
	case AnomalyMisalignedTimestamp:
		return "misaligned timestamp"
	case AnomalyFutureTimestamp:
		return "future timestamp"
	case AnomalyStaleTimestamp:
		return "stale timestamp"
	default:
		return fmt.Sprintf("unknown anomaly(%d)", int(k))
	}
}

// Anomaly describes one advisory irregularity found while decoding an
// archive. Anomalies are collected and returned alongside an otherwise
// successful decode; they never abort it.
//
// Anomaly implements error and unwraps to errs.ErrCorruptArchive, so callers
// can treat collected anomalies uniformly with the fatal error kinds:
//
//	for _, a := range file.Anomalies() {
//	    // errors.Is(a, errs.ErrCorruptArchive) == true
//	}
type Anomaly struct {
	// Kind classifies the irregularity.
	Kind AnomalyKind

	// ArchiveIndex is the archive the irregularity was found in.
	ArchiveIndex int

	// Slot is the raw on-disk slot index inside the circular buffer.
	Slot int

	// Timestamp is the offending slot's timestamp in unix seconds.
	Timestamp int64

	// Detail is the human-readable diagnosis with expected vs. actual values.
	Detail string
}

func (a Anomaly) Error() string {
	return fmt.Sprintf("archive %d slot %d: %s: %s", a.ArchiveIndex, a.Slot, a.Kind, a.Detail)
}

func (a Anomaly) Unwrap() error {
	return errs.ErrCorruptArchive
}
