package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophershop/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Codec signs and verifies compact JWS bearer tokens with an HMAC key.
// It holds no mutable state and is safe for concurrent use.
type Codec struct {
	secret []byte
	method jwt.SigningMethod
	now    func() time.Time
}

// NewCodec returns a Codec for one of HS256, HS384 or HS512.
// An empty secret is rejected.
func NewCodec(secret []byte, algorithm string) (*Codec, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("%w: empty signing secret", common.ErrMisconfigured)
	}

	var method jwt.SigningMethod
	switch algorithm {
	case jwt.SigningMethodHS256.Alg():
		method = jwt.SigningMethodHS256
	case jwt.SigningMethodHS384.Alg():
		method = jwt.SigningMethodHS384
	case jwt.SigningMethodHS512.Alg():
		method = jwt.SigningMethodHS512
	default:
		return nil, fmt.Errorf("%w: unsupported signing algorithm %q", common.ErrMisconfigured, algorithm)
	}

	return &Codec{secret: secret, method: method, now: time.Now}, nil
}

// Encode signs claims together with an "exp" claim set to expiresAt.
// The signature covers every claim, expiry included. claims must not carry
// "exp" itself. Values are carried as JSON, so Decode returns their JSON
// form: strings and bools unchanged, numbers as json.Number.
func (c *Codec) Encode(claims map[string]any, expiresAt time.Time) (string, error) {
	if _, ok := claims[common.ExpiryClaim]; ok {
		return "", fmt.Errorf("claim %q is reserved", common.ExpiryClaim)
	}

	mc := make(jwt.MapClaims, len(claims)+1)
	for k, v := range claims {
		mc[k] = v
	}
	mc[common.ExpiryClaim] = jwt.NewNumericDate(expiresAt)

	return jwt.NewWithClaims(c.method, mc).SignedString(c.secret)
}

// Decode verifies the signature and then the expiry, and returns the claims
// without "exp". Numeric claims come back as json.Number. Every failure
// wraps common.ErrInvalidToken; an expired token additionally matches
// common.ErrTokenExpired.
func (c *Codec) Decode(token string) (map[string]any, error) {
	mc := jwt.MapClaims{}

	_, err := jwt.ParseWithClaims(token, mc, c.key,
		jwt.WithValidMethods([]string{c.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithJSONNumber(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %w", common.ErrInvalidToken, common.ErrTokenExpired)
		}
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	delete(mc, common.ExpiryClaim)
	return mc, nil
}

func (c *Codec) key(_ *jwt.Token) (any, error) {
	return c.secret, nil
}
