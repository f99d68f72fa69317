// Package crypto is the credential service: one-way salted password
// hashing and verification.
package crypto

import "golang.org/x/crypto/bcrypt"

// hashCost matches the work factor the original deployment used, so
// hashes already in the database keep verifying.
const hashCost = 10

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	return string(bytes), err
}

// CheckPasswordHash reports whether password matches hash. The bcrypt
// compare is constant-time on the hash content.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
