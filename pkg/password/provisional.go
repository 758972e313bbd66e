package password

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	provisionalLength = 12

	upperSet   = "ABCDEFGHJKLMNPQRSTUVWXYZ"
	lowerSet   = "abcdefghijkmnpqrstuvwxyz"
	digitSet   = "23456789"
	specialSet = "!@#$%&*?"
)

// GenerateProvisional gera uma senha provisória que já satisfaz Validate.
// Caracteres ambíguos (0/O, 1/l/I) ficam de fora porque a senha é ditada
// ao profissional.
func GenerateProvisional() (string, error) {
	all := upperSet + lowerSet + digitSet + specialSet
	out := make([]byte, 0, provisionalLength)
	for _, set := range []string{upperSet, lowerSet, digitSet, specialSet} {
		b, err := pick(set)
		if err != nil {
			return "", err
		}
		out = append(out, b)
	}
	for len(out) < provisionalLength {
		b, err := pick(all)
		if err != nil {
			return "", err
		}
		out = append(out, b)
	}
	// Fisher-Yates para não deixar as classes sempre nas mesmas posições.
	for i := len(out) - 1; i > 0; i-- {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return "", fmt.Errorf("senha provisória: %w", err)
		}
		j := int(n.Int64())
		out[i], out[j] = out[j], out[i]
	}
	return string(out), nil
}

func pick(set string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(set))))
	if err != nil {
		return 0, fmt.Errorf("senha provisória: %w", err)
	}
	return set[n.Int64()], nil
}
