package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"solarne-backend/internal/config"
)

// ErrInvalidToken covers every verification failure: bad signature,
// wrong algorithm, expiry, malformed input. Callers get no more detail
// than that.
var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	jwt.RegisteredClaims
}

// TokenService mints and verifies the bearer tokens. It holds the
// signing secret and TTL fixed for the process lifetime; the clock is a
// field so tests can move time.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(cfg config.Config) *TokenService {
	return &TokenService{
		secret: []byte(cfg.JWTSecret),
		ttl:    time.Duration(cfg.TokenTTLMinutes) * time.Minute,
		now:    time.Now,
	}
}

// Generate signs an HS256 token for the subject email. The jti claim is
// a fresh UUID; nothing consumes it yet but it keeps tokens traceable.
func (s *TokenService) Generate(subjectEmail string) (string, error) {
	now := s.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectEmail,
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Parse verifies signature and expiry and returns the claims. Only
// HS256 is accepted; a token whose header names any other algorithm is
// rejected outright. Parse never touches storage, tokens are
// self-contained.
func (s *TokenService) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
