package models

import (
	"crypto/rand"
	"math/big"
)

const (
	digitChars = "0123456789"
	alnumChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

func randomString(charset string, n int) string {
	b := make([]byte, n)
	max := big.NewInt(int64(len(charset)))
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails if the OS entropy source is broken
			panic(err)
		}
		b[i] = charset[idx.Int64()]
	}
	return string(b)
}

func randomDigits(n int) string { return randomString(digitChars, n) }

func randomAlphanumeric(n int) string { return randomString(alnumChars, n) }
