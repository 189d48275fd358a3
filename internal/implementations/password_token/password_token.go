package passwordtoken

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"io"
	"math/rand"
	"resetme/internal/core/domain/resettoken"
	"resetme/internal/core/domain/user"
	"strconv"
	"strings"
	"time"
)

var saltChars = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")

// HMAC issues self-contained reset tokens of the form
// base64url(userID-timestamp-salt-mac). The MAC covers the user's current
// password hash, so a token also stops verifying once the password changes.
type HMAC struct {
	secretKey     []byte
	validDuration time.Duration
	now           func() time.Time
}

func NewHMAC(secretKey string, validDuration time.Duration, now func() time.Time) *HMAC {
	return &HMAC{
		secretKey:     []byte(secretKey),
		validDuration: validDuration,
		now:           now,
	}
}

func (h *HMAC) Issue(u user.User) resettoken.Token {
	nowTs := h.now().Unix()
	salt := h.getRandomSalt()
	mac := h.getMac(u.ID, string(u.PasswordHash), nowTs, salt)
	b64 := base64.RawURLEncoding.EncodeToString([]byte(fmt.Sprintf("%d-%d-%s-%s", u.ID, nowTs, salt, mac)))
	return resettoken.Token(b64)
}

// IssueDecoy produces a token that is structurally identical to a real one
// but is bound to no account: the MAC is computed over a random filler, so
// Verify can never succeed for any user.
func (h *HMAC) IssueDecoy() resettoken.Token {
	nowTs := h.now().Unix()
	salt := h.getRandomSalt()
	fakeUserID := user.ID(rand.Int63n(1_000_000) + 1)
	mac := h.getMac(fakeUserID, h.getRandomSalt(), nowTs, salt)
	b64 := base64.RawURLEncoding.EncodeToString([]byte(fmt.Sprintf("%d-%d-%s-%s", fakeUserID, nowTs, salt, mac)))
	return resettoken.Token(b64)
}

func (h *HMAC) Verify(u user.User, token resettoken.Token) bool {
	parts, ok := decode(token)
	if !ok {
		return false
	}
	ts, err := strconv.Atoi(parts[1])
	if err != nil {
		return false
	}
	actualDuration := time.Duration(h.now().Unix()-int64(ts)) * time.Second
	if actualDuration > h.validDuration {
		return false
	}
	salt := parts[2]
	mac := parts[3]
	expectedMac := h.getMac(u.ID, string(u.PasswordHash), int64(ts), salt)
	return subtle.ConstantTimeCompare([]byte(mac), []byte(expectedMac)) == 1
}

func (h *HMAC) UserID(token resettoken.Token) (userID user.ID, ok bool) {
	parts, ok := decode(token)
	if !ok {
		return userID, false
	}
	rawUserID, err := strconv.Atoi(parts[0])
	if err != nil {
		return userID, false
	}
	return user.ID(rawUserID), true
}

func (h *HMAC) ExpiresAt(token resettoken.Token) (expiresAt time.Time, ok bool) {
	parts, ok := decode(token)
	if !ok {
		return expiresAt, false
	}
	ts, err := strconv.Atoi(parts[1])
	if err != nil {
		return expiresAt, false
	}
	return time.Unix(int64(ts), 0).UTC().Add(h.validDuration), true
}

func decode(token resettoken.Token) (parts []string, ok bool) {
	decodedToken, err := base64.RawURLEncoding.DecodeString(string(token))
	if err != nil {
		return nil, false
	}
	parts = strings.SplitN(string(decodedToken), "-", 4)
	if len(parts) != 4 {
		return nil, false
	}
	return parts, true
}

func (h *HMAC) getMac(userID user.ID, passwordHash string, ts int64, salt string) string {
	hasher := hmac.New(sha256.New, h.secretKey)
	io.WriteString(hasher, fmt.Sprintf("%d-%d-%s-%s", userID, ts, salt, passwordHash))
	return fmt.Sprintf("%x", hasher.Sum(nil))
}

func (h *HMAC) getRandomSalt() string {
	b := make([]rune, 5)
	for i := range b {
		b[i] = saltChars[rand.Intn(len(saltChars))]
	}
	return string(b)
}
