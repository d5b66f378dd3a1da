package auth

import "golang.org/x/crypto/bcrypt"

// PasswordCost is the bcrypt work factor for stored passwords.
const PasswordCost = 12

// bcrypt only reads the first 72 bytes of its input.
const maxPasswordBytes = 72

// HashPassword returns a salted bcrypt hash of plain. Two calls with the same
// input yield different hashes. Only the first 72 bytes of plain are hashed.
func HashPassword(plain string) (string, error) {
	return hashPasswordCost(plain, PasswordCost)
}

func hashPasswordCost(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword(passwordBytes(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether plain matches hash. A malformed hash simply
// does not match.
func VerifyPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), passwordBytes(plain)) == nil
}

func passwordBytes(plain string) []byte {
	b := []byte(plain)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}
