package jwt

import (
	"crypto"
	"crypto/ed25519"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrInvalidKey   = errors.New("unsupported API key secret")
)

const (
	apiKeyIssuer  = "cdp"
	defaultExpiry = 2 * time.Minute
)

// Claims binds a token to a single request. Subject is the API key name,
// URIs holds "METHOD host/path" of the request the token was minted for.
type Claims struct {
	URIs []string `json:"uris"`
	jwt.RegisteredClaims
}

// APIKeySigner mints request-scoped bearer tokens from a CDP API key.
// EC keys (PEM) sign with ES256, Ed25519 keys (base64) with EdDSA.
type APIKeySigner struct {
	keyName    string
	method     jwt.SigningMethod
	privateKey crypto.PrivateKey
	publicKey  crypto.PublicKey
	expiry     time.Duration
}

var signJWTToken = func(token *jwt.Token, key crypto.PrivateKey) (string, error) {
	return token.SignedString(key)
}

// NewAPIKeySigner parses secret and creates a signer for keyName
func NewAPIKeySigner(keyName, secret string, expiry time.Duration) (*APIKeySigner, error) {
	if keyName == "" || strings.TrimSpace(secret) == "" {
		return nil, ErrInvalidKey
	}
	if expiry == 0 {
		expiry = defaultExpiry
	}

	s := &APIKeySigner{keyName: keyName, expiry: expiry}

	secret = strings.ReplaceAll(strings.TrimSpace(secret), `\n`, "\n")
	if strings.HasPrefix(secret, "-----BEGIN") {
		key, err := jwt.ParseECPrivateKeyFromPEM([]byte(secret))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
		}
		s.method = jwt.SigningMethodES256
		s.privateKey = key
		s.publicKey = &key.PublicKey
		return s, nil
	}

	raw, err := base64.StdEncoding.DecodeString(secret)
	if err != nil || len(raw) != ed25519.PrivateKeySize {
		return nil, ErrInvalidKey
	}
	key := ed25519.PrivateKey(raw)
	s.method = jwt.SigningMethodEdDSA
	s.privateKey = key
	s.publicKey = key.Public()
	return s, nil
}

// Algorithm reports the JWS algorithm used by Sign
func (s *APIKeySigner) Algorithm() string {
	return s.method.Alg()
}

// Sign mints a token valid only for method on host+path
func (s *APIKeySigner) Sign(method, host, path string) (string, error) {
	now := time.Now()
	claims := &Claims{
		URIs: []string{fmt.Sprintf("%s %s%s", method, host, path)},
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    apiKeyIssuer,
			Subject:   s.keyName,
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}

	token := jwt.NewWithClaims(s.method, claims)
	token.Header["kid"] = s.keyName
	token.Header["nonce"] = strings.ReplaceAll(uuid.NewString(), "-", "")
	return signJWTToken(token, s.privateKey)
}

// Validate validates a token minted by Sign and returns the claims
func (s *APIKeySigner) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != s.method.Alg() {
			return nil, ErrInvalidToken
		}
		return s.publicKey, nil
	}, jwt.WithIssuer(apiKeyIssuer), jwt.WithSubject(s.keyName))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
