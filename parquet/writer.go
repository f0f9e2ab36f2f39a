package parquet

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress"

	"github.com/arloliu/whisper/wsp"
)

// Options configures the Parquet writer.
type Options struct {
	// Compression algorithm
	Compression CompressionType

	// CompressionLevel for algorithms that support it (zstd: 1-22)
	CompressionLevel int

	// RowGroupSize is the target number of rows per row group
	RowGroupSize int

	// PageSize is the target page size in bytes
	PageSize int
}

// CompressionType represents a Parquet compression algorithm.
type CompressionType int

const (
	CompressionNone CompressionType = iota
	CompressionSnappy
	CompressionZstd
	CompressionLZ4
	CompressionGzip
)

// DefaultOptions returns default Parquet options.
func DefaultOptions() Options {
	return Options{
		Compression:      CompressionZstd,
		CompressionLevel: 3,
		RowGroupSize:     100000,
		PageSize:         1024 * 1024, // 1MB
	}
}

// ParseCompressionType parses a compression type string.
func ParseCompressionType(s string) CompressionType {
	switch s {
	case "snappy":
		return CompressionSnappy
	case "zstd":
		return CompressionZstd
	case "lz4":
		return CompressionLZ4
	case "gzip":
		return CompressionGzip
	case "none", "":
		return CompressionNone
	default:
		return CompressionZstd
	}
}

// getCompression returns the parquet-go compression codec.
func getCompression(ct CompressionType) compress.Codec {
	switch ct {
	case CompressionSnappy:
		return &parquet.Snappy
	case CompressionZstd:
		return &parquet.Zstd
	case CompressionLZ4:
		return &parquet.Lz4Raw
	case CompressionGzip:
		return &parquet.Gzip
	default:
		return &parquet.Uncompressed
	}
}

// PointRow represents one written archive point in Parquet format.
type PointRow struct {
	Series       string  `parquet:"series,zstd"`
	SeriesID     uint64  `parquet:"series_id"`
	ArchiveIndex int32   `parquet:"archive_index"`
	StepSeconds  int32   `parquet:"step_seconds"`
	Timestamp    int64   `parquet:"timestamp"`
	Value        float64 `parquet:"value"`
}

// FileRows flattens a decoded whisper file into Parquet rows, one row per
// written point across all archives. Never-written slots are skipped; the
// archive index and step columns keep points from different resolutions
// distinguishable after the flatten.
func FileRows(series string, seriesID uint64, f *wsp.File) []PointRow {
	total := 0
	for i := range f.Archives {
		total += f.Archives[i].WrittenCount()
	}

	rows := make([]PointRow, 0, total)
	for i := range f.Archives {
		archive := &f.Archives[i]
		step := int32(archive.Info.SecondsPerPoint)
		for _, p := range archive.Points {
			if !p.Written {
				continue
			}

			rows = append(rows, PointRow{
				Series:       series,
				SeriesID:     seriesID,
				ArchiveIndex: int32(archive.Info.Index),
				StepSeconds:  step,
				Timestamp:    p.Timestamp,
				Value:        p.Value,
			})
		}
	}

	return rows
}

// PointWriter writes archive points to a Parquet file.
type PointWriter struct {
	mu       sync.Mutex
	path     string
	file     *os.File
	writer   *parquet.GenericWriter[PointRow]
	rowCount int64
	closed   bool
}

// NewPointWriter creates a new point Parquet writer.
func NewPointWriter(path string, opts Options) (*PointWriter, error) {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create file: %w", err)
	}

	writerOpts := []parquet.WriterOption{
		parquet.Compression(getCompression(opts.Compression)),
	}

	writer := parquet.NewGenericWriter[PointRow](f, writerOpts...)

	return &PointWriter{
		path:   path,
		file:   f,
		writer: writer,
	}, nil
}

// Write writes rows to the Parquet file.
func (w *PointWriter) Write(rows []PointRow) error {
	if len(rows) == 0 {
		return nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWriterClosed
	}

	n, err := w.writer.Write(rows)
	if err != nil {
		return fmt.Errorf("write rows: %w", err)
	}

	w.rowCount += int64(n)
	return nil
}

// WriteFile flattens a decoded whisper file and writes its points.
func (w *PointWriter) WriteFile(series string, seriesID uint64, f *wsp.File) error {
	return w.Write(FileRows(series, seriesID, f))
}

// Close closes the writer.
func (w *PointWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	if err := w.writer.Close(); err != nil {
		w.file.Close()
		return fmt.Errorf("close writer: %w", err)
	}

	return w.file.Close()
}

// RowCount returns the number of rows written.
func (w *PointWriter) RowCount() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.rowCount
}

// Path returns the file path.
func (w *PointWriter) Path() string {
	return w.path
}

// Export decodes nothing itself; it writes an already-decoded whisper file
// to path as a single Parquet file and returns the row count.
func Export(path, series string, seriesID uint64, f *wsp.File, opts Options) (int64, error) {
	w, err := NewPointWriter(path, opts)
	if err != nil {
		return 0, err
	}

	if err := w.WriteFile(series, seriesID, f); err != nil {
		w.Close()
		return 0, err
	}

	if err := w.Close(); err != nil {
		return 0, err
	}

	return w.RowCount(), nil
}

// ErrWriterClosed is returned when writing to a closed writer.
var ErrWriterClosed = fmt.Errorf("parquet writer is closed")
