// Package errs defines the sentinel errors shared across the whisper decoding
// packages.
//
// All errors produced by the decoder wrap one of these sentinels, so callers
// can classify failures with errors.Is regardless of the contextual detail
// (offsets, expected vs. actual values) added at the failure site:
//
//	file, err := whisper.Open(path)
//	if errors.Is(err, errs.ErrTruncatedData) {
//	    // the file is shorter than its own header claims
//	}
package errs

import "errors"

var (
	// ErrTruncatedData indicates the buffer is shorter than a declared field or
	// region requires. Always fatal for the region being decoded.
	ErrTruncatedData = errors.New("buffer truncated")

	// ErrInvalidHeader indicates nonsensical file metadata, such as a zero or
	// absurdly large archive count, or an x-files-factor outside [0, 1].
	ErrInvalidHeader = errors.New("invalid whisper header")

	// ErrCorruptHeader indicates a cross-archive invariant violation in the
	// descriptor table, such as non-increasing resolution or overlapping
	// archive byte spans.
	ErrCorruptHeader = errors.New("corrupt archive table")

	// ErrCorruptArchive indicates an advisory per-point irregularity inside an
	// otherwise decodable archive, such as a timestamp that is not aligned to
	// the archive's resolution. Reported alongside a successful decode, never
	// fatal on its own.
	ErrCorruptArchive = errors.New("corrupt archive data")

	// ErrInvalidArchiveIndex indicates an archive index outside the range
	// declared by the file header.
	ErrInvalidArchiveIndex = errors.New("invalid archive index")

	// ErrUnknownSourceFormat indicates a compressed input whose container
	// format could not be identified from its magic bytes.
	ErrUnknownSourceFormat = errors.New("unknown source format")
)
