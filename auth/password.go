package auth

import (
	"crypto/hmac"
	"crypto/sha512"
	"fmt"
	"io"
)

const (
	// SaltSize matches the default key size of HMAC-SHA512
	SaltSize = 128
)

// HashPassword generates a new salt using rnd and returns the keyed hash
// of password under it.
func HashPassword(rnd io.Reader, password string) (hash, salt []byte, err error) {
	salt = make([]byte, SaltSize)
	_, err = io.ReadFull(rnd, salt)
	if err != nil {
		return nil, nil, fmt.Errorf("auth: unable to generate salt, cause %w", err)
	}
	return computeHash(salt, password), salt, nil
}

// VerifyPassword reports if password hashes to hash under salt
func VerifyPassword(password string, hash, salt []byte) bool {
	return hmac.Equal(computeHash(salt, password), hash)
}

func computeHash(salt []byte, password string) []byte {
	mac := hmac.New(sha512.New, salt)
	io.WriteString(mac, password)
	return mac.Sum(nil)
}
