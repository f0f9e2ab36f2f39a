//go:build cgo

package source

import (
	"github.com/valyala/gozstd"
)

// Decompress decompresses a zstandard frame using the cgo-backed decoder.
func (s ZstdSource) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.Decompress(nil, data)
}
