package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeCursor(t *testing.T) {
	assert.Equal(t, "1", EncodeCursor(1))
	assert.Equal(t, "9223372036854775807", EncodeCursor(1<<63-1))
}

func TestDecodeCursor_RoundTrip(t *testing.T) {
	for _, id := range []int64{1, 42, 1 << 40} {
		decoded, ok := DecodeCursor(EncodeCursor(id))
		assert.True(t, ok)
		assert.Equal(t, id, decoded)
	}
}

func TestDecodeCursor_Malformed(t *testing.T) {
	cases := []string{"", "abc", "12.3", "0x10", " 1", "1 "}
	for _, c := range cases {
		_, ok := DecodeCursor(c)
		assert.False(t, ok, "cursor %q should not decode", c)
	}
}

func TestDecodeCursor_NonPositive(t *testing.T) {
	for _, c := range []string{"0", "-1", "-42"} {
		_, ok := DecodeCursor(c)
		assert.False(t, ok, "cursor %q should not decode", c)
	}
}
