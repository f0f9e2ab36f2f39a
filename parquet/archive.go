package parquet

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/parquet-go/parquet-go"

	"github.com/arloliu/whisper/wsp"
)

// ArchiveRow represents a per-archive summary in Parquet format. One row is
// emitted per archive of a decoded file, regardless of how many points the
// archive holds.
type ArchiveRow struct {
	Series           string `parquet:"series,zstd"`
	SeriesID         uint64 `parquet:"series_id"`
	ArchiveIndex     int32  `parquet:"archive_index"`
	StepSeconds      int32  `parquet:"step_seconds"`
	Points           int64  `parquet:"points"`
	WrittenPoints    int64  `parquet:"written_points"`
	RetentionSeconds int64  `parquet:"retention_seconds"`
	OldestTimestamp  int64  `parquet:"oldest_timestamp,optional"`
	NewestTimestamp  int64  `parquet:"newest_timestamp,optional"`
	Anomalies        int32  `parquet:"anomalies"`
}

// FileArchiveRows summarizes a decoded whisper file into one row per archive.
// Timestamp columns are zero for archives with no written point.
func FileArchiveRows(series string, seriesID uint64, f *wsp.File) []ArchiveRow {
	rows := make([]ArchiveRow, len(f.Archives))
	for i := range f.Archives {
		archive := &f.Archives[i]

		row := ArchiveRow{
			Series:           series,
			SeriesID:         seriesID,
			ArchiveIndex:     int32(archive.Info.Index),
			StepSeconds:      int32(archive.Info.SecondsPerPoint),
			Points:           int64(archive.Info.Points),
			WrittenPoints:    int64(archive.WrittenCount()),
			RetentionSeconds: archive.Info.Retention(),
			Anomalies:        int32(len(archive.Anomalies)),
		}

		for _, p := range archive.Points {
			if !p.Written {
				continue
			}
			if row.OldestTimestamp == 0 {
				row.OldestTimestamp = p.Timestamp
			}
			row.NewestTimestamp = p.Timestamp
		}

		rows[i] = row
	}

	return rows
}

// ArchiveWriter writes archive summaries to a Parquet file.
type ArchiveWriter struct {
	mu       sync.Mutex
	path     string
	file     *os.File
	writer   *parquet.GenericWriter[ArchiveRow]
	rowCount int64
	closed   bool
}

// NewArchiveWriter creates a new archive summary Parquet writer.
func NewArchiveWriter(path string, opts Options) (*ArchiveWriter, error) {
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

	writer := parquet.NewGenericWriter[ArchiveRow](f, writerOpts...)

	return &ArchiveWriter{
		path:   path,
		file:   f,
		writer: writer,
	}, nil
}

// Write writes rows to the Parquet file.
func (w *ArchiveWriter) Write(rows []ArchiveRow) error {
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

// WriteFile summarizes a decoded whisper file and writes its archive rows.
func (w *ArchiveWriter) WriteFile(series string, seriesID uint64, f *wsp.File) error {
	return w.Write(FileArchiveRows(series, seriesID, f))
}

// Close closes the writer.
func (w *ArchiveWriter) Close() error {
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
func (w *ArchiveWriter) RowCount() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.rowCount
}

// Path returns the file path.
func (w *ArchiveWriter) Path() string {
	return w.path
}
