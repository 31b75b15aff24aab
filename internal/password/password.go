package password

import (
	"crypto/rand"
	"math/big"
)

// Alphabet is the pool passwords are drawn from: letters, digits and the
// symbols Discourse accepts without escaping headaches.
const Alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*"

// DefaultLength is used when a row leaves the password cell blank.
const DefaultLength = 20

// Generate returns a password of the given length, each character drawn
// independently and uniformly from Alphabet using crypto/rand.
func Generate(length int) (string, error) {
	out := make([]byte, length)
	pool := big.NewInt(int64(len(Alphabet)))
	for i := range out {
		n, err := rand.Int(rand.Reader, pool)
		if err != nil {
			return "", err
		}
		out[i] = Alphabet[n.Int64()]
	}
	return string(out), nil
}
