// Package token issues and validates the bearer tokens the shrdlite HTTP
// API uses for operator authentication, and hashes operator passwords. It
// is grounded on the teacher's server/token.go (JWT signing/validation)
// and server/tunas/auth.go (bcrypt password hashing), merged into one
// package since this API has no separate "tunas"-style service layer for
// login bookkeeping beyond what server/service already does.
package token

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/dekarrin/shrdlite/server/dao"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const issuer = "shrdlited"

// HashPassword bcrypt-hashes plaintext for storage in dao.User.Password.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(hash), nil
}

// CheckPassword reports whether plaintext matches the bcrypt hash stored in
// u.Password.
func CheckPassword(u dao.User, plaintext string) error {
	hash, err := base64.StdEncoding.DecodeString(u.Password)
	if err != nil {
		return fmt.Errorf("token: stored password hash is corrupt: %w", err)
	}
	return bcrypt.CompareHashAndPassword(hash, []byte(plaintext))
}

// signingKey folds the server-wide secret together with the user's
// password hash and TokenEpoch, so that changing the password or bumping
// TokenEpoch invalidates every token issued under the old key.
func signingKey(secret []byte, u dao.User) []byte {
	key := append([]byte(nil), secret...)
	key = append(key, []byte(u.Password)...)
	key = append(key, []byte(fmt.Sprintf("%d", u.TokenEpoch.Unix()))...)
	return key
}

// Generate returns a signed bearer token identifying u, valid for ttl.
func Generate(secret []byte, u dao.User, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"iss": issuer,
		"sub": u.ID.String(),
		"exp": time.Now().Add(ttl).Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	return tok.SignedString(signingKey(secret, u))
}

// Validate parses and verifies tokStr, looking up the subject user via
// users to compute the expected signing key. It returns the validated
// user on success.
func Validate(ctx context.Context, tokStr string, secret []byte, users dao.UserRepository) (dao.User, error) {
	var user dao.User

	_, err := jwt.Parse(tokStr, func(t *jwt.Token) (interface{}, error) {
		subj, err := t.Claims.GetSubject()
		if err != nil {
			return nil, fmt.Errorf("cannot get subject: %w", err)
		}
		id, err := uuid.Parse(subj)
		if err != nil {
			return nil, fmt.Errorf("cannot parse subject UUID: %w", err)
		}
		user, err = users.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("subject does not exist")
		}
		return signingKey(secret, user), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}), jwt.WithIssuer(issuer), jwt.WithLeeway(time.Minute))

	if err != nil {
		return dao.User{}, err
	}
	return user, nil
}

// FromAuthHeader extracts the bearer token from an Authorization header
// value, e.g. "Bearer abc.def.ghi".
func FromAuthHeader(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", fmt.Errorf("no Authorization header present")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(strings.TrimSpace(parts[0]), "bearer") {
		return "", fmt.Errorf("Authorization header is not in Bearer format")
	}
	return strings.TrimSpace(parts[1]), nil
}
