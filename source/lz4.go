package source

import (
	"bytes"

	"github.com/pierrec/lz4/v4"

	"github.com/arloliu/whisper/internal/pool"
)

// LZ4Source decompresses lz4-frame-wrapped whisper files.
type LZ4Source struct{}

var _ Decompressor = (*LZ4Source)(nil)

// Decompress decompresses an lz4 frame stream.
func (s LZ4Source) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	zr := lz4.NewReader(bytes.NewReader(data))

	buf := pool.GetFileBuffer()
	defer pool.PutFileBuffer(buf)

	if _, err := buf.ReadFrom(zr); err != nil {
		return nil, err
	}

	return buf.CopyBytes(), nil
}
