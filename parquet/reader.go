package parquet

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"
)

// PointReader reads archive points from a Parquet file.
type PointReader struct {
	file   *os.File
	reader *parquet.GenericReader[PointRow]
	path   string
}

// NewPointReader creates a new point Parquet reader.
func NewPointReader(path string) (*PointReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}

	reader := parquet.NewGenericReader[PointRow](f)

	return &PointReader{
		file:   f,
		reader: reader,
		path:   path,
	}, nil
}

// Read reads up to n rows from the file.
func (r *PointReader) Read(n int) ([]PointRow, error) {
	rows := make([]PointRow, n)
	count, err := r.reader.Read(rows)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	return rows[:count], nil
}

// ReadAll reads all rows from the file.
func (r *PointReader) ReadAll() ([]PointRow, error) {
	numRows := r.reader.NumRows()
	rows := make([]PointRow, numRows)

	n, err := r.reader.Read(rows)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	return rows[:n], nil
}

// NumRows returns the total number of rows in the file.
func (r *PointReader) NumRows() int64 {
	return r.reader.NumRows()
}

// Close closes the reader.
func (r *PointReader) Close() error {
	if err := r.reader.Close(); err != nil {
		r.file.Close()
		return err
	}
	return r.file.Close()
}

// Path returns the file path.
func (r *PointReader) Path() string {
	return r.path
}
