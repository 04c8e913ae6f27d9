// Package checksum computes the cheap integrity signal reported by the raw
// byte round-trip benchmark. It is not a cryptographic digest: swapping two
// aligned 8-byte words leaves the result unchanged.
package checksum

import "encoding/binary"

// XOR64 folds data into a 64-bit accumulator by XOR-ing consecutive
// little-endian 8-byte words. A trailing partial word is zero-padded on the
// high end before it is folded in. XOR64(nil) is 0.
func XOR64(data []byte) uint64 {
	var sum uint64

	i := 0
	for ; i+8 <= len(data); i += 8 {
		sum ^= binary.LittleEndian.Uint64(data[i:])
	}

	var tail uint64
	for k, b := range data[i:] {
		tail |= uint64(b) << (8 * k)
	}

	return sum ^ tail
}
