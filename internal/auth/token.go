package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taskvault/taskvault/internal/model"
)

// Token validation errors.
var (
	// ErrInvalidToken indicates the token failed signature or claim checks.
	ErrInvalidToken = errors.New("invalid token")
	// ErrInvalidSubject indicates the subject claim is missing or not a user id.
	ErrInvalidSubject = errors.New("invalid subject claim")
)

// Claims carries the identity embedded in an issued token.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenConfig is the immutable signing configuration injected at startup.
type TokenConfig struct {
	Secret   []byte
	Issuer   string
	Audience string
	TTL      time.Duration
}

// TokenIssuer builds, signs and validates bearer tokens with a symmetric
// HMAC-SHA-256 key. Issuer and audience are stamped on outgoing tokens but
// not enforced on incoming ones, matching the deployed validation policy.
type TokenIssuer struct {
	cfg TokenConfig
}

// NewTokenIssuer creates a TokenIssuer. The signing secret must be non-empty;
// config loading enforces that before this is reached.
func NewTokenIssuer(cfg TokenConfig) *TokenIssuer {
	if cfg.TTL <= 0 {
		cfg.TTL = 7 * 24 * time.Hour
	}
	return &TokenIssuer{cfg: cfg}
}

// Issue produces a signed token for the user. The subject claim carries the
// user id; the username travels in a private claim.
func (t *TokenIssuer) Issue(user *model.User) (string, error) {
	now := time.Now()
	claims := Claims{
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(user.ID),
			Issuer:    t.cfg.Issuer,
			Audience:  jwt.ClaimStrings{t.cfg.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.cfg.TTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.cfg.Secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate parses and verifies a token string, returning the caller identity.
// Only HS256 is accepted. Fails closed on any parse, signature, expiry or
// subject problem.
func (t *TokenIssuer) Validate(tokenString string) (*Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return t.cfg.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	userID, err := strconv.Atoi(claims.Subject)
	if err != nil {
		return nil, ErrInvalidSubject
	}

	return &Identity{UserID: userID, Username: claims.Username}, nil
}
