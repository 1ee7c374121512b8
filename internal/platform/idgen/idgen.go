package idgen

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
)

// Entity prefixes for the human-readable identifiers (AU427, MB19, LN88).
const (
	PrefixAuthor = "AU"
	PrefixBook   = "BK"
	PrefixMember = "MB"
	PrefixLoan   = "LN"
)

const (
	numericSpace = 1_000_000
	maxAttempts  = 5
)

// ErrExhausted means maxAttempts consecutive candidates collided, which at
// the current numeric space only happens when the table is nearly full.
var ErrExhausted = errors.New("idgen: could not allocate a unique id")

// ExistsFunc reports whether an id is already taken.
type ExistsFunc func(ctx context.Context, id string) (bool, error)

type Generator struct {
	space *big.Int
}

func New() *Generator {
	return &Generator{space: big.NewInt(numericSpace)}
}

func (g *Generator) candidate(prefix string) (string, error) {
	n, err := rand.Int(rand.Reader, g.space)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%d", prefix, n), nil
}

// Next draws random candidates and checks each against the store until one
// is free. Uniqueness is enforced here, not hoped for.
func (g *Generator) Next(ctx context.Context, prefix string, exists ExistsFunc) (string, error) {
	for i := 0; i < maxAttempts; i++ {
		id, err := g.candidate(prefix)
		if err != nil {
			return "", err
		}
		taken, err := exists(ctx, id)
		if err != nil {
			return "", err
		}
		if !taken {
			return id, nil
		}
	}
	return "", ErrExhausted
}
