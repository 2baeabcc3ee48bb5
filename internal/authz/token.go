package authz

import (
	"errors"
	"fmt"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"

	"github.com/dropDatabas3/hancock/internal/observability/logger"
)

// Issuer identifies this system in the "iss" and "aud" claims.
const Issuer = "tag:hancock,2026,authorization"

// signingMethod is the single accepted algorithm. Tokens signed with
// anything else are rejected as malformed.
var signingMethod = jwtv5.SigningMethodHS512

// AccessToken is the opaque signed encoding of a security context. Nothing
// outside this package inspects its structure.
type AccessToken string

// ErrMalformedToken covers every validation failure: bad structure, bad or
// absent signature, wrong algorithm, missing claims. Callers deliberately
// cannot tell these apart, so a failed token reveals nothing about why.
var ErrMalformedToken = errors.New("malformed access token")

// TokenService signs security contexts into access tokens and back.
// The secret is immutable after construction; instances are safe for
// concurrent use.
type TokenService struct {
	secret []byte
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret)}
}

// GenerateAccessToken signs the security context into its compact token
// form. Signing with a valid secret cannot fail; if it does, the service is
// misconfigured beyond recovery and we panic rather than hand out an
// unsigned credential.
func (s *TokenService) GenerateAccessToken(sc SecurityContext) AccessToken {
	claims := jwtv5.MapClaims{
		"iss": Issuer,
		"aud": Issuer,
		"sub": sc.Principal.subject(),
		"iat": sc.Issued.Unix(),
		"nbf": sc.Issued.Unix(),
		"exp": sc.Expires.Unix(),
		"jti": sc.ID,
	}

	signed, err := jwtv5.NewWithClaims(signingMethod, claims).SignedString(s.secret)
	if err != nil {
		panic(fmt.Sprintf("authz: failed to sign access token: %v", err))
	}
	return AccessToken(signed)
}

// ValidateAccessToken verifies the token's signature and reconstructs the
// security context it encodes.
//
// It checks authenticity only: expiry is not enforced here. The caller reads
// Expires from the result and decides whether the context is still current.
func (s *TokenService) ValidateAccessToken(token AccessToken) (SecurityContext, error) {
	parser := jwtv5.NewParser(
		jwtv5.WithValidMethods([]string{signingMethod.Alg()}),
		jwtv5.WithoutClaimsValidation(),
	)

	parsed, err := parser.Parse(string(token), func(*jwtv5.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		logger.L().Warn("failed to decode access token", logger.Err(err))
		return SecurityContext{}, ErrMalformedToken
	}

	claims, ok := parsed.Claims.(jwtv5.MapClaims)
	if !ok {
		return SecurityContext{}, ErrMalformedToken
	}

	jti, jtiOK := stringClaim(claims, "jti")
	sub, subOK := stringClaim(claims, "sub")
	nbf, nbfOK := timeClaim(claims, "nbf")
	exp, expOK := timeClaim(claims, "exp")
	if !jtiOK || !subOK || !nbfOK || !expOK {
		logger.L().Warn("decoded access token was missing required claims")
		return SecurityContext{}, ErrMalformedToken
	}

	return SecurityContext{
		ID:        jti,
		Principal: User{UserID: sub},
		Issued:    nbf,
		Expires:   exp,
	}, nil
}

func stringClaim(m jwtv5.MapClaims, key string) (string, bool) {
	v, ok := m[key].(string)
	return v, ok && v != ""
}

func timeClaim(m jwtv5.MapClaims, key string) (time.Time, bool) {
	// Numeric JSON claims decode as float64.
	v, ok := m[key].(float64)
	if !ok {
		return time.Time{}, false
	}
	return time.Unix(int64(v), 0).UTC(), true
}
