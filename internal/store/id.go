package store

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	idLength   = 4
	idMaxTries = 64
)

// GenerateID produces a short random id with the given prefix, retrying until
// exists reports the candidate as free.
func GenerateID(prefix string, exists func(id string) (bool, error)) (string, error) {
	for range idMaxTries {
		suffix, err := randomBase36(idLength)
		if err != nil {
			return "", fmt.Errorf("generate id: %w", err)
		}
		id := prefix + "-" + suffix
		taken, err := exists(id)
		if err != nil {
			return "", err
		}
		if !taken {
			return id, nil
		}
	}
	return "", fmt.Errorf("generate id: exhausted %d attempts for prefix %q", idMaxTries, prefix)
}

func randomBase36(n int) (string, error) {
	max := big.NewInt(int64(len(idAlphabet)))
	buf := make([]byte, n)
	for i := range buf {
		v, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = idAlphabet[v.Int64()]
	}
	return string(buf), nil
}
