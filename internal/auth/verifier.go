// Package auth verifies caller identity tokens and answers plan entitlement
// questions. It stands in for the external identity and subscription services
// behind narrow interfaces so handlers never parse tokens themselves.
package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/rotisserie/eris"
)

// minTokenLength rejects obviously malformed tokens before any parsing. A
// compact JWS with empty payloads is already longer than this.
const minTokenLength = 20

// Identity is the verified caller.
type Identity struct {
	UserID string
	Plan   Plan
}

// Claims carried by the HS256 identity tokens this service accepts.
type Claims struct {
	jwt.RegisteredClaims
	Plan string `json:"plan,omitempty"`
}

// Verifier validates HS256 identity tokens.
type Verifier struct {
	signingKey []byte
	issuer     string
}

// NewVerifier creates a Verifier for the given HMAC signing key. The issuer
// claim is enforced only when non-empty.
func NewVerifier(signingKey []byte, issuer string) *Verifier {
	return &Verifier{signingKey: signingKey, issuer: issuer}
}

// Verify parses and validates the token and returns the caller identity.
// Any failure here maps to an authentication error at the HTTP layer.
func (v *Verifier) Verify(tokenStr string) (*Identity, error) {
	if len(tokenStr) < minTokenLength {
		return nil, eris.New("auth: token too short")
	}

	claims := &Claims{}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{"HS256"}),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return v.signingKey, nil
	}, opts...)
	if err != nil {
		return nil, eris.Wrap(err, "auth: parse token")
	}
	if !token.Valid || claims.Subject == "" {
		return nil, eris.New("auth: invalid token")
	}

	plan := Plan(claims.Plan)
	if !plan.Valid() {
		plan = PlanFree
	}
	return &Identity{UserID: claims.Subject, Plan: plan}, nil
}
