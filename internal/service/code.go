package service

import (
	"crypto/rand"
	"math/big"
)

// codeAlphabet is the 62-symbol set codes are drawn from. At 7 symbols the
// keyspace is about 3.5e12, so collisions are rare in practice.
const codeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

const codeLength = 7

func generateCode() (string, error) {
	alphabetSize := big.NewInt(int64(len(codeAlphabet)))
	buf := make([]byte, codeLength)
	for i := range buf {
		j, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", err
		}
		buf[i] = codeAlphabet[j.Int64()]
	}
	return string(buf), nil
}
