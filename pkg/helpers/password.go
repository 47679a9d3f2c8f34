package helpers

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes the plain text credential using bcrypt. The
// cleartext is never retained past this call.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword reports whether the bcrypt hash verifies against the
// supplied credential.
func CheckPassword(hash string, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
