package checksum

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestXOR64(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want uint64
	}{
		{"nil", nil, 0},
		{"empty", []byte{}, 0},
		{"one byte", []byte{0xab}, 0xab},
		{"tail only", []byte{1, 2, 3}, 0x030201},
		{"one word", []byte{0, 1, 2, 3, 4, 5, 6, 7}, 0x0706050403020100},
		{
			"word and tail",
			[]byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
			0x0706050403020100 ^ (8 | 9<<8),
		},
		{
			"equal words cancel",
			[]byte{1, 2, 3, 4, 5, 6, 7, 8, 1, 2, 3, 4, 5, 6, 7, 8},
			0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := XOR64(tt.data)
			if got != tt.want {
				t.Errorf("XOR64 = %#x, want %#x", got, tt.want)
			}
		})
	}
}

func TestXOR64WordOrderInsensitive(t *testing.T) {
	a := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	b := append(append([]byte{}, a[8:]...), a[:8]...)

	assert.Equal(t, XOR64(a), XOR64(b))
}

func TestXOR64ByteOrderSensitive(t *testing.T) {
	a := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	b := []byte{2, 1, 3, 4, 5, 6, 7, 8}

	assert.NotEqual(t, XOR64(a), XOR64(b))
}
