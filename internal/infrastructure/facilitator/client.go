package facilitator

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	x402 "github.com/coinbase/x402/go"
	x402http "github.com/coinbase/x402/go/http"
	"waitlist.backend/internal/config"
	"waitlist.backend/pkg/jwt"
)

const (
	// DefaultURL is the public x402 facilitator
	DefaultURL = x402http.DefaultFacilitatorURL

	headerAuthorization = "Authorization"

	pathVerify    = "/verify"
	pathSettle    = "/settle"
	pathSupported = "/supported"
)

// Client is the part of the x402 facilitator client the settler calls
type Client interface {
	Verify(ctx context.Context, payloadBytes, requirementsBytes []byte) (*x402.VerifyResponse, error)
	Settle(ctx context.Context, payloadBytes, requirementsBytes []byte) (*x402.SettleResponse, error)
}

// RequestSigner mints a bearer token bound to one facilitator request
type RequestSigner interface {
	Sign(method, host, path string) (string, error)
}

// NewClient builds the x402 HTTP facilitator client. A secret alone is sent
// as a static bearer key; a secret with a key id signs a fresh token per
// request. Without a secret calls are unauthenticated.
func NewClient(cfg config.FacilitatorConfig) (*x402http.HTTPFacilitatorClient, error) {
	baseURL := strings.TrimRight(cfg.URL, "/")
	if baseURL == "" {
		baseURL = DefaultURL
	}

	auth, err := newAuthProvider(baseURL, cfg)
	if err != nil {
		return nil, err
	}

	return x402http.NewHTTPFacilitatorClient(&x402http.FacilitatorConfig{
		URL:          baseURL,
		Timeout:      cfg.Timeout,
		AuthProvider: auth,
	}), nil
}

func newAuthProvider(baseURL string, cfg config.FacilitatorConfig) (x402http.AuthProvider, error) {
	if cfg.SecretKey == "" {
		return nil, nil
	}
	if cfg.APIKeyID == "" {
		return staticAuth{key: cfg.SecretKey}, nil
	}

	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("invalid facilitator url %q", baseURL)
	}
	signer, err := jwt.NewAPIKeySigner(cfg.APIKeyID, cfg.SecretKey, 0)
	if err != nil {
		return nil, fmt.Errorf("facilitator api key: %w", err)
	}
	return &signedAuth{signer: signer, host: u.Host, basePath: strings.TrimRight(u.Path, "/")}, nil
}

// staticAuth sends the same bearer key to every endpoint
type staticAuth struct {
	key string
}

func (a staticAuth) GetAuthHeaders(context.Context) (x402http.AuthHeaders, error) {
	h := map[string]string{headerAuthorization: "Bearer " + a.key}
	return x402http.AuthHeaders{Verify: h, Settle: h, Supported: h}, nil
}

// signedAuth mints a token per endpoint, bound to its method and path
type signedAuth struct {
	signer   RequestSigner
	host     string
	basePath string
}

func (a *signedAuth) GetAuthHeaders(context.Context) (x402http.AuthHeaders, error) {
	verify, err := a.bearer(http.MethodPost, pathVerify)
	if err != nil {
		return x402http.AuthHeaders{}, err
	}
	settle, err := a.bearer(http.MethodPost, pathSettle)
	if err != nil {
		return x402http.AuthHeaders{}, err
	}
	supported, err := a.bearer(http.MethodGet, pathSupported)
	if err != nil {
		return x402http.AuthHeaders{}, err
	}
	return x402http.AuthHeaders{Verify: verify, Settle: settle, Supported: supported}, nil
}

func (a *signedAuth) bearer(method, path string) (map[string]string, error) {
	token, err := a.signer.Sign(method, a.host, a.basePath+path)
	if err != nil {
		return nil, fmt.Errorf("failed to sign %s token: %w", path, err)
	}
	return map[string]string{headerAuthorization: "Bearer " + token}, nil
}
