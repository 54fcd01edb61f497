package per

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterPackUnpackRoundTrip(t *testing.T) {
	w := NewWriter(make([]byte, 0, 8))
	require.NoError(t, w.Pack(0b101, 3))
	require.NoError(t, w.Pack(0xFF, 8))
	require.NoError(t, w.AlignToByte())

	r := NewReader(w.Bytes())
	v, err := r.Unpack(3)
	require.NoError(t, err)
	assert.Equal(t, uint64(0b101), v)

	v, err = r.Unpack(8)
	require.NoError(t, err)
	assert.Equal(t, uint64(0xFF), v)
}

func TestWriterPackPastEndFails(t *testing.T) {
	w := NewWriter(make([]byte, 0, 1))
	require.NoError(t, w.Pack(0, 8))
	err := w.Pack(1, 1)
	assert.ErrorIs(t, err, ErrEncodeFail)
}

func TestReaderUnpackPastEndFails(t *testing.T) {
	r := NewReader([]byte{0xFF})
	_, err := r.Unpack(8)
	require.NoError(t, err)
	_, err = r.Unpack(1)
	assert.ErrorIs(t, err, ErrDecodeFail)
}

func TestReaderSubReaderBounds(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02, 0x03})
	sub, err := r.SubReader(2)
	require.NoError(t, err)
	v, err := sub.Unpack(16)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x0102), v)

	_, err = sub.Unpack(1)
	assert.ErrorIs(t, err, ErrDecodeFail)
}

func TestWriterPackBytesRequiresAlignment(t *testing.T) {
	w := NewWriter(make([]byte, 0, 4))
	require.NoError(t, w.Pack(1, 1))
	err := w.PackBytes([]byte{0xAA})
	assert.ErrorIs(t, err, ErrEncodeFail)
}
