package resp

import (
	"bufio"
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"redis-lite/rerr"
)

func encodeToBytes(t *testing.T, f Frame) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	require.NoError(t, Encode(f, w))
	require.NoError(t, w.Flush())
	return buf.Bytes()
}

func checkAndParse(t *testing.T, wire []byte) (Frame, error) {
	t.Helper()
	c := NewCursor(wire)
	if err := Check(c); err != nil {
		return nil, err
	}
	c2 := NewCursor(wire)
	return Parse(c2)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []Frame{
		SimpleString{Value: "PONG"},
		SimpleError{Value: "ERR boom"},
		Integer{Value: 42},
		Integer{Value: -7},
		BulkString{Value: []byte("hello")},
		BulkString{Value: []byte{}},
		NullBulkString{},
		NullArray{},
		Null{},
		Array{Items: []Frame{
			BulkString{Value: []byte("set")},
			BulkString{Value: []byte("key")},
			BulkString{Value: []byte("value")},
		}},
	}

	for _, f := range cases {
		wire := encodeToBytes(t, f)
		got, err := checkAndParse(t, wire)
		require.NoError(t, err)
		switch f.(type) {
		case Null:
			// Null collapses to NullBulkString's wire form.
			assert.Equal(t, NullBulkString{}, got)
		default:
			assert.Equal(t, f, got)
		}
	}
}

func TestCheckIncompleteFrame(t *testing.T) {
	full := encodeToBytes(t, BulkString{Value: []byte("hello world")})
	for n := 0; n < len(full); n++ {
		c := NewCursor(full[:n])
		err := Check(c)
		assert.ErrorIs(t, err, rerr.ErrIncompleteFrame, "prefix length %d should be incomplete", n)
	}
	c := NewCursor(full)
	assert.NoError(t, Check(c))
}

func TestCheckThenParseAcrossMultipleReads(t *testing.T) {
	full := encodeToBytes(t, Array{Items: []Frame{
		BulkString{Value: []byte("get")},
		BulkString{Value: []byte("key")},
	}})

	var buf []byte
	for i, b := range full {
		buf = append(buf, b)
		c := NewCursor(buf)
		err := Check(c)
		if i < len(full)-1 {
			require.ErrorIs(t, err, rerr.ErrIncompleteFrame)
			continue
		}
		require.NoError(t, err)
		c2 := NewCursor(buf)
		frame, err := Parse(c2)
		require.NoError(t, err)
		assert.Equal(t, Array{Items: []Frame{
			BulkString{Value: []byte("get")},
			BulkString{Value: []byte("key")},
		}}, frame)
	}
}

func TestParseRejectsMalformedFrame(t *testing.T) {
	_, err := checkAndParse(t, []byte("X garbage\r\n"))
	assert.ErrorIs(t, err, rerr.ErrProtocol)
}

func TestParseRejectsNegativeBulkLengthOtherThanMinusOne(t *testing.T) {
	_, err := checkAndParse(t, []byte("$-2\r\n"))
	assert.ErrorIs(t, err, rerr.ErrProtocol)
}

func TestParseNullFrameRejectsTrailingGarbage(t *testing.T) {
	_, err := checkAndParse(t, []byte("_oops\r\n"))
	assert.True(t, errors.Is(err, rerr.ErrProtocol))
}

func TestEncodeArrayOneLevelDeep(t *testing.T) {
	f := Array{Items: []Frame{
		Integer{Value: 1},
		BulkString{Value: []byte("two")},
		NullBulkString{},
	}}
	wire := encodeToBytes(t, f)
	assert.Equal(t, "*3\r\n:1\r\n$3\r\ntwo\r\n$-1\r\n", string(wire))
}
