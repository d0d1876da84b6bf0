package util

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"
)

const (
	passwordSaltBytes = 16
	passwordHashIter  = 4096
	passwordHashLen   = 32
)

// HashPassword derives a pbkdf2 hash with a fresh random salt. Both values
// are hex encoded for storage next to the user row.
func HashPassword(password string) (hash string, salt string, err error) {
	saltBytes := make([]byte, passwordSaltBytes)
	if _, err = rand.Read(saltBytes); err != nil {
		return "", "", err
	}

	hashBytes := pbkdf2.Key([]byte(password), saltBytes, passwordHashIter, passwordHashLen, sha256.New)
	return hex.EncodeToString(hashBytes), hex.EncodeToString(saltBytes), nil
}

func VerifyPassword(password string, hash string, salt string) bool {
	saltBytes, err := hex.DecodeString(salt)
	if err != nil {
		return false
	}
	hashBytes, err := hex.DecodeString(hash)
	if err != nil {
		return false
	}

	candidate := pbkdf2.Key([]byte(password), saltBytes, passwordHashIter, passwordHashLen, sha256.New)
	return subtle.ConstantTimeCompare(candidate, hashBytes) == 1
}
