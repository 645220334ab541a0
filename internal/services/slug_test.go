package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSlugChecker struct {
	exists []bool
	calls  int
}

func (s *stubSlugChecker) SlugExists(ctx context.Context, slug string) (bool, error) {
	if s.calls >= len(s.exists) {
		return false, nil
	}
	result := s.exists[s.calls]
	s.calls++
	return result, nil
}

func TestGenerateSlug_Length(t *testing.T) {
	slug8, err := GenerateSlug(8)
	require.NoError(t, err)
	slug10, err := GenerateSlug(10)
	require.NoError(t, err)

	assert.Len(t, slug8, 8)
	assert.Len(t, slug10, 10)
}

func TestGenerateSlug_Alphabet(t *testing.T) {
	for i := 0; i < 50; i++ {
		slug, err := GenerateSlug(DefaultSlugLength)
		require.NoError(t, err)
		for _, r := range slug {
			assert.True(t, strings.ContainsRune(slugAlphabet, r), "unexpected character %q in slug %q", r, slug)
		}
	}
}

func TestGenerateUniqueSlug_FirstTry(t *testing.T) {
	checker := &stubSlugChecker{exists: []bool{false}}

	slug, err := GenerateUniqueSlug(context.Background(), checker, 3)

	require.NoError(t, err)
	assert.Len(t, slug, 8)
}

func TestGenerateUniqueSlug_RetriesLongerOnCollision(t *testing.T) {
	checker := &stubSlugChecker{exists: []bool{true, false}}

	slug, err := GenerateUniqueSlug(context.Background(), checker, 3)

	require.NoError(t, err)
	assert.Len(t, slug, 10)
}

func TestGenerateUniqueSlug_Exhaustion(t *testing.T) {
	checker := &stubSlugChecker{exists: []bool{true, true, true, true, true, true}}

	_, err := GenerateUniqueSlug(context.Background(), checker, 3)

	assert.True(t, errors.Is(err, ErrSlugExhausted))
}

func TestHashIP(t *testing.T) {
	hash1 := HashIP("192.168.1.1")
	hash2 := HashIP("192.168.1.2")

	assert.NotEqual(t, hash1, hash2)
	assert.Len(t, hash1, 64)
	assert.Equal(t, hash1, HashIP("192.168.1.1"))
}
