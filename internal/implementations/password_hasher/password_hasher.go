package passwordhasher

import (
	"crypto/sha256"
	"encoding/base64"
	"resetme/internal/core/domain/user"

	"golang.org/x/crypto/bcrypt"
)

type Bcrypt struct {
	secret string
	cost   int
}

func NewBcrypt(secret string, cost int) *Bcrypt {
	return &Bcrypt{secret: secret, cost: cost}
}

func (h *Bcrypt) HashPassword(password user.RawPassword) (hash user.PasswordHash, err error) {
	bcryptHash, err := bcrypt.GenerateFromPassword(h.prehash(password), h.cost)
	if err != nil {
		return hash, err
	}
	return user.PasswordHash(bcryptHash), nil
}

func (h *Bcrypt) ValidatePassword(password user.RawPassword, hash user.PasswordHash) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), h.prehash(password))
	return err == nil
}

// prehash folds the password and the secret into a fixed-size digest so
// that bcrypt's 72-byte input limit never truncates long passwords.
func (h *Bcrypt) prehash(password user.RawPassword) []byte {
	sum := sha256.Sum256([]byte(string(password) + h.secret))
	return []byte(base64.RawStdEncoding.EncodeToString(sum[:]))
}
