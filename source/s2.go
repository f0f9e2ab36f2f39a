package source

import (
	"bytes"

	"github.com/klauspost/compress/s2"

	"github.com/arloliu/whisper/internal/pool"
)

// S2Source decompresses s2/snappy-framed whisper files. The s2 reader also
// accepts plain snappy streams, so both variants share one codec.
type S2Source struct{}

var _ Decompressor = (*S2Source)(nil)

// Decompress decompresses an s2 framed stream.
func (s S2Source) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	zr := s2.NewReader(bytes.NewReader(data))

	buf := pool.GetFileBuffer()
	defer pool.PutFileBuffer(buf)

	if _, err := buf.ReadFrom(zr); err != nil {
		return nil, err
	}

	return buf.CopyBytes(), nil
}
