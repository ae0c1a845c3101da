package service

import "golang.org/x/crypto/bcrypt"

// hashPassword applies the salted one-way transform. Two calls with the same
// input produce different hashes because the salt is random.
func hashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// verifyPassword recomputes with the salt embedded in hash and compares in
// constant time. A mismatch or malformed hash is false, never an error.
func verifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
