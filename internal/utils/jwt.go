package utils // package utils provides helpers for issuing admin access tokens

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessToken pairs a signed JWT with its expiration so handlers can return
// both to the client.
type AccessToken struct {
	Token   string
	Expires time.Time
}

// NewAdminToken issues an HS256 access token for an authenticated admin.
// The subject is the admin id; the username travels as a custom claim for
// display purposes only.
func NewAdminToken(secret string, adminID uint64, username string, ttlMin int) (AccessToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub":      adminID,
		"username": username,
		"iat":      now.Unix(),
		"exp":      exp.Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Expires: exp}, nil
}
