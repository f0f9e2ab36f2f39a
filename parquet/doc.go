// Package parquet exports decoded whisper archives to Parquet files.
//
// The package provides:
//   - PointWriter/PointReader for flattened archive points
//   - ArchiveWriter for per-archive summaries
//   - FileRows/FileArchiveRows to convert a decoded file into Parquet rows
//   - Export as a one-shot decode-to-file convenience
//   - Support for multiple compression algorithms (snappy, zstd, lz4, gzip)
package parquet
