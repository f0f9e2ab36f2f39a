package source

// ZstdSource decompresses zstandard-wrapped whisper files.
//
// Two implementations exist behind build tags: a cgo-backed one using
// valyala/gozstd when cgo is available, and a pure-Go one using
// klauspost/compress/zstd otherwise. Both decode complete frames; the
// whisper reader never streams.
type ZstdSource struct{}

var _ Decompressor = (*ZstdSource)(nil)
