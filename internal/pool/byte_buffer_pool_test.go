package pool

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteBuffer_Write(t *testing.T) {
	bb := NewByteBuffer(8)

	n, err := bb.Write([]byte("hello "))
	require.NoError(t, err)
	require.Equal(t, 6, n)

	n, err = bb.Write([]byte("world"))
	require.NoError(t, err)
	require.Equal(t, 5, n)

	require.Equal(t, "hello world", string(bb.Bytes()))
	require.Equal(t, 11, bb.Len())
}

func TestByteBuffer_Reset(t *testing.T) {
	bb := NewByteBuffer(16)
	_, _ = bb.Write([]byte("some data"))

	capBefore := bb.Cap()
	bb.Reset()

	require.Equal(t, 0, bb.Len())
	require.Equal(t, capBefore, bb.Cap(), "Reset must retain capacity")
}

func TestByteBuffer_Grow(t *testing.T) {
	bb := NewByteBuffer(4)
	_, _ = bb.Write([]byte("abcd"))

	bb.Grow(1024)
	require.GreaterOrEqual(t, bb.Cap()-bb.Len(), 1024)
	require.Equal(t, "abcd", string(bb.Bytes()), "Grow must preserve contents")
}

func TestByteBuffer_ReadFrom(t *testing.T) {
	t.Run("Small reader", func(t *testing.T) {
		bb := NewByteBuffer(8)

		n, err := bb.ReadFrom(strings.NewReader("payload"))
		require.NoError(t, err)
		require.Equal(t, int64(7), n)
		require.Equal(t, "payload", string(bb.Bytes()))
	})

	t.Run("Reader larger than default chunk", func(t *testing.T) {
		want := bytes.Repeat([]byte{0xAB}, FileBufferDefaultSize*3)
		bb := NewByteBuffer(16)

		n, err := bb.ReadFrom(bytes.NewReader(want))
		require.NoError(t, err)
		require.Equal(t, int64(len(want)), n)
		require.Equal(t, want, bb.Bytes())
	})
}

func TestByteBuffer_CopyBytes(t *testing.T) {
	bb := NewByteBuffer(8)
	_, _ = bb.Write([]byte("data"))

	out := bb.CopyBytes()
	bb.Reset()
	_, _ = bb.Write([]byte("XXXX"))

	require.Equal(t, "data", string(out), "copy must be independent of the buffer")
}

func TestByteBufferPool(t *testing.T) {
	t.Run("Get and Put round-trip", func(t *testing.T) {
		p := NewByteBufferPool(32, 1024)

		bb := p.Get()
		require.NotNil(t, bb)
		_, _ = bb.Write([]byte("scratch"))
		p.Put(bb)

		reused := p.Get()
		require.Equal(t, 0, reused.Len(), "pooled buffer must come back reset")
	})

	t.Run("Oversized buffers are discarded", func(t *testing.T) {
		p := NewByteBufferPool(32, 64)

		bb := p.Get()
		bb.Grow(1024)
		p.Put(bb) // should be dropped, not panic
	})

	t.Run("Put nil is a no-op", func(t *testing.T) {
		p := NewByteBufferPool(32, 64)
		p.Put(nil)
	})
}

func TestDefaultFilePool(t *testing.T) {
	bb := GetFileBuffer()
	require.NotNil(t, bb)
	require.Equal(t, 0, bb.Len())

	_, _ = bb.Write([]byte("file contents"))
	PutFileBuffer(bb)
}
