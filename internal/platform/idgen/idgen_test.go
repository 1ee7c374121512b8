package idgen

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNext_Format(t *testing.T) {
	g := New()
	never := func(context.Context, string) (bool, error) { return false, nil }

	for _, prefix := range []string{PrefixAuthor, PrefixBook, PrefixMember, PrefixLoan} {
		id, err := g.Next(context.Background(), prefix, never)
		require.NoError(t, err)
		assert.Regexp(t, `^`+prefix+`\d+$`, id)
	}
}

func TestNext_RetriesOnCollision(t *testing.T) {
	g := New()
	calls := 0
	exists := func(context.Context, string) (bool, error) {
		calls++
		return calls <= 2, nil // first two candidates are taken
	}

	id, err := g.Next(context.Background(), PrefixLoan, exists)
	require.NoError(t, err)
	assert.Regexp(t, `^LN\d+$`, id)
	assert.Equal(t, 3, calls)
}

func TestNext_Exhausted(t *testing.T) {
	g := New()
	always := func(context.Context, string) (bool, error) { return true, nil }

	_, err := g.Next(context.Background(), PrefixMember, always)
	assert.ErrorIs(t, err, ErrExhausted)
}
