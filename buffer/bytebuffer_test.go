package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByteBufferAppendAndBounds(t *testing.T) {
	b := newByteBuffer()
	require.Equal(t, 0, b.Len())
	require.Equal(t, DefaultHeadroom, b.Headroom())

	require.NoError(t, b.Append([]byte{1, 2, 3}))
	assert.Equal(t, []byte{1, 2, 3}, b.Bytes())
	assert.Equal(t, 3, b.Len())

	tooBig := make([]byte, b.Tailroom()+1)
	assert.ErrorIs(t, b.Append(tooBig), ErrOverflow)
}

func TestByteBufferPrependReserve(t *testing.T) {
	b := newByteBuffer()
	require.NoError(t, b.Append([]byte{0xAA, 0xBB}))

	hdr, err := b.PrependReserve(2)
	require.NoError(t, err)
	hdr[0] = 0x01
	hdr[1] = 0x02

	assert.Equal(t, []byte{0x01, 0x02, 0xAA, 0xBB}, b.Bytes())

	_, err = b.PrependReserve(DefaultHeadroom)
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestByteBufferSkipHead(t *testing.T) {
	b := newByteBuffer()
	require.NoError(t, b.Append([]byte{1, 2, 3, 4}))
	require.NoError(t, b.SkipHead(2))
	assert.Equal(t, []byte{3, 4}, b.Bytes())
	assert.ErrorIs(t, b.SkipHead(10), ErrOverflow)
}

func TestByteBufferResetRestoresHeadroom(t *testing.T) {
	b := newByteBuffer()
	_, _ = b.PrependReserve(5)
	require.NoError(t, b.Append([]byte{9}))
	b.Reset()
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, DefaultHeadroom, b.Headroom())
}
