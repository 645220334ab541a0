package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
)

// Same 64-symbol alphabet nanoid uses: letters, digits, hyphen, underscore.
const slugAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

const DefaultSlugLength = 8

// SlugChecker is the slice of the wish store the generator needs.
type SlugChecker interface {
	SlugExists(ctx context.Context, slug string) (bool, error)
}

// GenerateSlug returns a securely generated random slug of length n.
func GenerateSlug(n int) (string, error) {
	out := make([]byte, n)
	max := big.NewInt(int64(len(slugAlphabet)))
	for i := 0; i < n; i++ {
		num, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = slugAlphabet[num.Int64()]
	}
	return string(out), nil
}

// GenerateUniqueSlug generates a slug not present in the store. The first
// collision at length 8 is retried once at length 10; after maxAttempts
// rounds it fails with ErrSlugExhausted. Collisions at length 8 are already
// astronomically unlikely, so repeated failure points at the store, not luck.
func GenerateUniqueSlug(ctx context.Context, store SlugChecker, maxAttempts int) (string, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		slug, err := GenerateSlug(DefaultSlugLength)
		if err != nil {
			return "", err
		}
		exists, err := store.SlugExists(ctx, slug)
		if err != nil {
			return "", fmt.Errorf("failed to check slug: %v", err)
		}
		if !exists {
			return slug, nil
		}

		if attempt == 0 {
			slug, err = GenerateSlug(10)
			if err != nil {
				return "", err
			}
			exists, err = store.SlugExists(ctx, slug)
			if err != nil {
				return "", fmt.Errorf("failed to check slug: %v", err)
			}
			if !exists {
				return slug, nil
			}
		}
	}

	return "", ErrSlugExhausted
}

// HashIP hashes a client IP for use as a rate-limit key, so raw addresses
// are never stored.
func HashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip))
	return hex.EncodeToString(sum[:])
}
