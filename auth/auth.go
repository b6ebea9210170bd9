// Package auth verifies bearer access tokens issued by an external
// key-issuing service. Signatures are checked against the issuer's JWKS
// (JSON Web Key Set), cached in memory and refreshed on key rotation.
package auth

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const jwksCacheTTL = time.Hour

// ErrUpstream marks failures reaching the JWKS endpoint, as opposed to an
// invalid token. Handlers answer 503 for the former and 401 for the latter.
var ErrUpstream = errors.New("auth service unavailable")

// Verifier checks RS256 bearer tokens against a JWKS endpoint.
type Verifier struct {
	jwksURL  string
	audience string
	client   *http.Client

	mu      sync.Mutex
	keys    map[string]*rsa.PublicKey
	expires time.Time
}

func NewVerifier(apiBase, clientID string) *Verifier {
	return &Verifier{
		jwksURL:  fmt.Sprintf("%s/sso/jwks/%s", strings.TrimRight(apiBase, "/"), clientID),
		audience: clientID,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Verify parses and validates the token, returning its claims. An unknown
// key id forces one JWKS refresh in case keys were rotated.
func (v *Verifier) Verify(ctx context.Context, token string) (jwt.MapClaims, error) {
	claims, err := v.verifyOnce(ctx, token, false)
	if err != nil && errors.Is(err, errUnknownKey) {
		claims, err = v.verifyOnce(ctx, token, true)
	}
	return claims, err
}

var errUnknownKey = errors.New("unable to find signing key")

func (v *Verifier) verifyOnce(ctx context.Context, token string, forceRefresh bool) (jwt.MapClaims, error) {
	keys, err := v.signingKeys(ctx, forceRefresh)
	if err != nil {
		return nil, err
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{"RS256"})}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		kid, _ := t.Header["kid"].(string)
		key, ok := keys[kid]
		if !ok {
			return nil, errUnknownKey
		}
		return key, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, errUnknownKey) {
			return nil, errUnknownKey
		}
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	return claims, nil
}

func (v *Verifier) signingKeys(ctx context.Context, forceRefresh bool) (map[string]*rsa.PublicKey, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !forceRefresh && v.keys != nil && time.Now().Before(v.expires) {
		return v.keys, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.jwksURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: jwks endpoint returned %d", ErrUpstream, resp.StatusCode)
	}

	var doc struct {
		Keys []jwk `json:"keys"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	keys := make(map[string]*rsa.PublicKey, len(doc.Keys))
	for _, k := range doc.Keys {
		if k.Kid == "" || k.Kty != "RSA" {
			continue
		}
		pub, err := k.publicKey()
		if err != nil {
			continue
		}
		keys[k.Kid] = pub
	}

	v.keys = keys
	v.expires = time.Now().Add(jwksCacheTTL)
	return keys, nil
}

type jwk struct {
	Kid string `json:"kid"`
	Kty string `json:"kty"`
	N   string `json:"n"`
	E   string `json:"e"`
}

func (k jwk) publicKey() (*rsa.PublicKey, error) {
	nb, err := base64.RawURLEncoding.DecodeString(k.N)
	if err != nil {
		return nil, err
	}
	eb, err := base64.RawURLEncoding.DecodeString(k.E)
	if err != nil {
		return nil, err
	}
	e := 0
	for _, b := range eb {
		e = e<<8 | int(b)
	}
	if e <= 0 {
		return nil, errors.New("jwk: bad exponent")
	}
	return &rsa.PublicKey{N: new(big.Int).SetBytes(nb), E: e}, nil
}
