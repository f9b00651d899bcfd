package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword derives a salted bcrypt digest from plaintext. The salt is
// randomized per call, so two digests of the same plaintext differ while both
// verify. Cost outside bcrypt's valid range falls back to the default.
func HashPassword(plaintext string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether plaintext matches the stored digest. The
// comparison runs inside bcrypt; stored values are never compared with ==.
func VerifyPassword(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
