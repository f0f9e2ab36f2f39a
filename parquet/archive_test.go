package parquet

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/whisper/internal/hash"
)

func TestFileArchiveRows(t *testing.T) {
	name := "servers.web01.cpu"
	id := hash.ID(name)

	rows := FileArchiveRows(name, id, testFile())
	require.Len(t, rows, 2)

	require.Equal(t, ArchiveRow{
		Series:           name,
		SeriesID:         id,
		ArchiveIndex:     0,
		StepSeconds:      10,
		Points:           4,
		WrittenPoints:    2,
		RetentionSeconds: 40,
		OldestTimestamp:  1000,
		NewestTimestamp:  1020,
	}, rows[0])

	require.Equal(t, int64(960), rows[1].OldestTimestamp)
	require.Equal(t, int64(960), rows[1].NewestTimestamp)
	require.Equal(t, int64(1), rows[1].WrittenPoints)
}

func TestArchiveWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archives.parquet")

	name := "servers.web01.cpu"
	id := hash.ID(name)

	w, err := NewArchiveWriter(path, DefaultOptions())
	require.NoError(t, err)
	require.NoError(t, w.WriteFile(name, id, testFile()))
	require.Equal(t, int64(2), w.RowCount())
	require.NoError(t, w.Close())

	err = w.Write([]ArchiveRow{{Series: "x"}})
	require.ErrorIs(t, err, ErrWriterClosed)
}
