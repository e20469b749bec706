package base62

import (
	"math/rand"
	"strings"
)

const (
	base62Chars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	length      = uint64(len(base62Chars))

	// IDLength is the width of ids produced by NewID; 62^11 > 2^64.
	IDLength = 11
)

// Encode returns the base62 encoding of number, most significant digit first.
func Encode(number uint64) string {
	if number == 0 {
		return base62Chars[:1]
	}

	var buf [IDLength]byte
	i := len(buf)
	for ; number > 0; number = number / length {
		i--
		buf[i] = base62Chars[number%length]
	}

	return string(buf[i:])
}

// NewID returns a random fixed-width base62 token.
func NewID() string {
	encoded := Encode(rand.Uint64())
	return strings.Repeat(base62Chars[:1], IDLength-len(encoded)) + encoded
}
