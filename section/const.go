package section

// Fixed section sizes of the whisper on-disk layout, in bytes.
// The format is big-endian throughout.
const (
	MetadataSize    = 16 // aggregation(4) + max retention(4) + xff(4) + archive count(4)
	ArchiveInfoSize = 12 // offset(4) + seconds per point(4) + points(4)
	PointSize       = 12 // timestamp(4) + value(8)

	// ArchiveTableOffset is the byte offset where the archive descriptor table
	// starts, immediately after the file metadata.
	ArchiveTableOffset = MetadataSize
)

// HeaderSize returns the total byte length of the metadata plus a descriptor
// table of archiveCount entries.
func HeaderSize(archiveCount int) int {
	return MetadataSize + archiveCount*ArchiveInfoSize
}
