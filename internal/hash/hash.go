package hash

import "golang.org/x/crypto/bcrypt"

// Cost 12 keeps offline brute force expensive; it also sets the floor for how
// long a login attempt takes, known email or not.
const bcryptCost = 12

func HashPassword(password string) (string, error) {
	hashBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashBytes), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
