// Package token issues and verifies the signed identity tokens used for
// authentication. Tokens are stateless HS256 JWTs; there is no server-side
// session table and therefore no revocation. A client "logs out" by losing
// the token.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the authenticated principal a verified token carries.
type Identity struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
}

type claims struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewService(secret []byte, ttl time.Duration) *Service {
	return &Service{secret: secret, ttl: ttl, now: time.Now}
}

// Issue signs a token for the given user, valid for the service TTL from now.
func (s *Service) Issue(userID int, username string) (string, error) {
	now := s.now()
	c := claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
}

// Verify parses and validates a token. Malformed, badly signed and expired
// tokens all come back as ok=false; callers never learn which it was.
func (s *Service) Verify(raw string) (Identity, bool) {
	c := &claims{}
	parsed, err := jwt.ParseWithClaims(raw, c, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return Identity{}, false
	}
	return Identity{UserID: c.UserID, Username: c.Username}, true
}
