// Package id generates record ids for question files that do not number
// their records.
package id

import "crypto/rand"

const (
	alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	Length   = 16
)

// New returns a random Length-character lowercase alphanumeric id.
func New() string {
	// Bytes at or above limit are rejected so every symbol is equally likely.
	const limit = 256 - 256%len(alphabet)

	out := make([]byte, 0, Length)
	buf := make([]byte, Length)
	for len(out) < Length {
		if _, err := rand.Read(buf); err != nil {
			panic("crypto/rand failed: " + err.Error())
		}
		for _, b := range buf {
			if int(b) < limit && len(out) < Length {
				out = append(out, alphabet[int(b)%len(alphabet)])
			}
		}
	}
	return string(out)
}
