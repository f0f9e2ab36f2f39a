package wsp

import (
	"fmt"
	"time"

	"github.com/arloliu/whisper/endian"
	"github.com/arloliu/whisper/errs"
	"github.com/arloliu/whisper/internal/bufread"
	"github.com/arloliu/whisper/internal/options"
	"github.com/arloliu/whisper/section"
)

// MaxArchiveCount caps the archive count a header may declare. Real whisper
// files hold a handful of archives; anything near this limit is a garbage
// header, and the cap keeps a corrupt count from driving an unbounded
// descriptor read.
const MaxArchiveCount = 4096

// Decoder decodes a fully-loaded whisper file buffer.
//
// NewDecoder parses and cross-validates the header and descriptor table;
// Decode and DecodeArchive then reconstruct point sequences. The decoder
// performs no I/O and holds no mutable state after construction, so a single
// instance may serve concurrent DecodeArchive calls.
type Decoder struct {
	data    []byte
	engine  endian.EndianEngine
	meta    section.Metadata
	infos   []section.ArchiveInfo
	nowFunc func() time.Time
}

// NewDecoder creates a Decoder for the given buffer.
//
// The header and every archive descriptor are parsed and cross-validated
// immediately; point regions are not touched until Decode or DecodeArchive.
//
// Parameters:
//   - data: the complete raw file bytes (already decompressed if the file was
//     compressed on disk; see the source package)
//   - opts: optional configuration, e.g. WithNow for deterministic decoding
//
// Returns:
//   - *Decoder: decoder ready for Decode / DecodeArchive
//   - error: ErrTruncatedData, ErrInvalidHeader or ErrCorruptHeader
func NewDecoder(data []byte, opts ...DecoderOption) (*Decoder, error) {
	d := &Decoder{
		data:    data,
		engine:  endian.GetBigEndianEngine(),
		nowFunc: time.Now,
	}

	if err := options.Apply(d, opts...); err != nil {
		return nil, err
	}

	if err := d.parseHeader(); err != nil {
		return nil, err
	}

	if err := d.validateArchiveTable(); err != nil {
		return nil, err
	}

	return d, nil
}

// Metadata returns the decoded file metadata.
func (d *Decoder) Metadata() section.Metadata {
	return d.meta
}

// ArchiveInfos returns the archive descriptors in declared order.
func (d *Decoder) ArchiveInfos() []section.ArchiveInfo {
	return d.infos
}

// MaxRetention returns the authoritative max retention in seconds, recomputed
// from the archive table rather than read from the header.
func (d *Decoder) MaxRetention() int64 {
	var maxRetention int64
	for _, info := range d.infos {
		if r := info.Retention(); r > maxRetention {
			maxRetention = r
		}
	}

	return maxRetention
}

// Decode decodes every archive in declared order and assembles the File.
//
// The decode fails fast on the first structural error; no partial File is
// returned. Advisory anomalies do not fail the decode and are carried on the
// resulting archives.
//
// Returns:
//   - File: the immutable decoded file
//   - error: ErrTruncatedData if an archive's point region exceeds the buffer
func (d *Decoder) Decode() (File, error) {
	now := d.nowFunc().Unix()

	archives := make([]Archive, 0, len(d.infos))
	for _, info := range d.infos {
		archive, err := decodeArchive(d.data, info, d.engine, now)
		if err != nil {
			return File{}, err
		}

		archives = append(archives, archive)
	}

	return File{
		Metadata:     d.meta,
		Archives:     archives,
		MaxRetention: d.MaxRetention(),
	}, nil
}

// DecodeArchive decodes the single archive at the given 0-based index.
//
// Truncation failures are isolated per archive: a buffer cut mid-way through
// the last archive still decodes every earlier archive successfully.
//
// Returns:
//   - Archive: the decoded archive
//   - error: ErrInvalidArchiveIndex for an out-of-range index, or
//     ErrTruncatedData when the archive's byte span exceeds the buffer
func (d *Decoder) DecodeArchive(index int) (Archive, error) {
	if index < 0 || index >= len(d.infos) {
		return Archive{}, fmt.Errorf("%w: index %d, file has %d archives",
			errs.ErrInvalidArchiveIndex, index, len(d.infos))
	}

	return decodeArchive(d.data, d.infos[index], d.engine, d.nowFunc().Unix())
}

// parseHeader decodes the metadata and the archive descriptor table.
func (d *Decoder) parseHeader() error {
	meta, err := section.ParseMetadata(d.data, d.engine)
	if err != nil {
		return err
	}

	// Guard on the raw uint32 before converting: int(count) wraps negative on
	// 32-bit platforms for counts >= 2^31 and would slip past every check
	// below.
	if meta.ArchiveCount > MaxArchiveCount {
		return fmt.Errorf("%w: archive count %d exceeds limit %d",
			errs.ErrInvalidHeader, meta.ArchiveCount, MaxArchiveCount)
	}

	count := int(meta.ArchiveCount)
	remaining := len(d.data) - section.MetadataSize

	// A count beyond what the rest of the buffer could possibly describe is a
	// garbage header, not a short read.
	if count > remaining {
		return fmt.Errorf("%w: archive count %d implausible for %d remaining bytes",
			errs.ErrInvalidHeader, count, remaining)
	}

	if err := bufread.Span(d.data, section.ArchiveTableOffset, count*section.ArchiveInfoSize); err != nil {
		return fmt.Errorf("archive descriptor table: %w", err)
	}

	infos := make([]section.ArchiveInfo, 0, count)
	for i := range count {
		offset := section.ArchiveTableOffset + i*section.ArchiveInfoSize
		info, err := section.ParseArchiveInfo(d.data[offset:], i, d.engine)
		if err != nil {
			return err
		}

		infos = append(infos, info)
	}

	d.meta = meta
	d.infos = infos

	return nil
}

// validateArchiveTable enforces the cross-archive invariants of the format:
// strictly increasing resolution, non-decreasing retention, and strictly
// increasing, non-overlapping byte spans starting after the header.
func (d *Decoder) validateArchiveTable() error {
	prevEnd := section.HeaderSize(len(d.infos))

	for i, info := range d.infos {
		if int(info.Offset) < prevEnd {
			return fmt.Errorf("%w: archive %d starts at offset %d, before byte %d",
				errs.ErrCorruptHeader, i, info.Offset, prevEnd)
		}

		if i > 0 {
			prev := d.infos[i-1]
			if info.SecondsPerPoint <= prev.SecondsPerPoint {
				return fmt.Errorf("%w: archive %d resolution %ds not coarser than archive %d resolution %ds",
					errs.ErrCorruptHeader, i, info.SecondsPerPoint, i-1, prev.SecondsPerPoint)
			}
			if info.Retention() < prev.Retention() {
				return fmt.Errorf("%w: archive %d retention %ds shorter than archive %d retention %ds",
					errs.ErrCorruptHeader, i, info.Retention(), i-1, prev.Retention())
			}
		}

		prevEnd = info.End()
	}

	return nil
}

// Decode is a convenience wrapper that constructs a Decoder and decodes the
// whole file in one call.
func Decode(data []byte, opts ...DecoderOption) (File, error) {
	d, err := NewDecoder(data, opts...)
	if err != nil {
		return File{}, err
	}

	return d.Decode()
}
