package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/andrebq/bookshelf/shelf"
	"github.com/golang-jwt/jwt/v5"
)

type (
	TokenConfig struct {
		Key      []byte
		Issuer   string
		Audience string
		Expires  time.Duration
	}

	Claims struct {
		Name string `json:"name"`
		jwt.RegisteredClaims
	}

	// Tokens issues and verifies bearer tokens
	Tokens struct {
		cfg TokenConfig
		now func() time.Time
	}
)

const (
	// MinKeySize is the smallest key accepted for HS256 signatures
	MinKeySize = 32

	DefaultExpires = time.Hour
)

var (
	ErrInvalidToken = errors.New("auth: invalid token")
	ErrShortKey     = fmt.Errorf("auth: signing key must have at least %v bytes", MinKeySize)
)

func NewTokens(cfg TokenConfig) (*Tokens, error) {
	if len(cfg.Key) < MinKeySize {
		return nil, ErrShortKey
	}
	if cfg.Expires <= 0 {
		cfg.Expires = DefaultExpires
	}
	return &Tokens{cfg: cfg, now: time.Now}, nil
}

// Issue mints a signed token for u
func (t *Tokens) Issue(u shelf.User) (string, error) {
	now := t.now()
	claims := Claims{
		Name: u.UserName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(u.ID, 10),
			Issuer:    t.cfg.Issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(t.cfg.Expires)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	if t.cfg.Audience != "" {
		claims.Audience = jwt.ClaimStrings{t.cfg.Audience}
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.cfg.Key)
	if err != nil {
		return "", fmt.Errorf("auth: unable to sign token for %v, cause %w", u.UserName, err)
	}
	return signed, nil
}

// Parse verifies the signature, issuer, audience and expiry of token
// and returns its claims.
func (t *Tokens) Parse(token string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	}
	if t.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(t.cfg.Issuer))
	}
	if t.cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(t.cfg.Audience))
	}
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return t.cfg.Key, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w, cause %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Verify parses token and returns the id of the user it was issued to
// along with its expiry. Tokens whose subject is not a user id are
// rejected as invalid.
func (t *Tokens) Verify(token string) (int64, time.Time, error) {
	claims, err := t.Parse(token)
	if err != nil {
		return 0, time.Time{}, err
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("%w, subject %q is not a user id", ErrInvalidToken, claims.Subject)
	}
	return id, claims.ExpiresAt.Time, nil
}

// Now returns the current time as seen by the token clock
func (t *Tokens) Now() time.Time {
	return t.now()
}
