package utils

import (
	"crypto/rand"
)

const base62Chars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// bytes at or above this value are rejected so every character is equally likely
const maxUnbiased = 256 - 256%len(base62Chars)

// GenerateKey returns prefix followed by n random base62 characters.
func GenerateKey(prefix string, n int) (string, error) {
	out := make([]byte, len(prefix), len(prefix)+n)
	copy(out, prefix)

	buf := make([]byte, n+n/4+1)
	for len(out) < cap(out) {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			if int(b) >= maxUnbiased {
				continue
			}
			out = append(out, base62Chars[int(b)%len(base62Chars)])
			if len(out) == cap(out) {
				break
			}
		}
	}
	return string(out), nil
}
