package service

import "math/rand/v2"

// codeAlphabet is the 62-symbol short code alphabet.
const codeAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

const (
	minCodeLength = 6
	maxCodeLength = 8
)

// GenerateCode returns a random code of the given length, each character
// drawn uniformly and independently from the alphabet. Collision resistance,
// not secrecy, is the concern, so math/rand is sufficient.
func GenerateCode(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = codeAlphabet[rand.IntN(len(codeAlphabet))]
	}
	return string(b)
}

func randomCodeLength() int {
	return minCodeLength + rand.IntN(maxCodeLength-minCodeLength+1)
}
