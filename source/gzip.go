package source

import (
	"bytes"

	"github.com/klauspost/compress/gzip"

	"github.com/arloliu/whisper/internal/pool"
)

// GzipSource decompresses gzip-wrapped whisper files, the container carbon
// deployments most commonly archive cold series into.
type GzipSource struct{}

var _ Decompressor = (*GzipSource)(nil)

// Decompress decompresses a gzip member stream.
//
// A pooled buffer absorbs the stream; the returned slice is an independent
// copy owned by the caller.
func (s GzipSource) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	buf := pool.GetFileBuffer()
	defer pool.PutFileBuffer(buf)

	if _, err := buf.ReadFrom(zr); err != nil {
		return nil, err
	}

	return buf.CopyBytes(), nil
}
