package auth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jwksDoc(kid string, pub *rsa.PublicKey) map[string]any {
	return map[string]any{
		"keys": []map[string]string{{
			"kid": kid,
			"kty": "RSA",
			"n":   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
			"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes()),
		}},
	}
}

func signToken(t *testing.T, key *rsa.PrivateKey, kid, audience string, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
		"sub": "user_123",
		"aud": audience,
		"exp": exp.Unix(),
	})
	tok.Header["kid"] = kid
	signed, err := tok.SignedString(key)
	require.NoError(t, err)
	return signed
}

func newVerifierFor(t *testing.T, doc func() map[string]any) (*Verifier, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(doc())
	}))
	return NewVerifier(srv.URL, "client_abc"), srv
}

func TestVerifyValidToken(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	v, srv := newVerifierFor(t, func() map[string]any { return jwksDoc("key-1", &key.PublicKey) })
	defer srv.Close()

	token := signToken(t, key, "key-1", "client_abc", time.Now().Add(time.Hour))
	claims, err := v.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "user_123", claims["sub"])
}

func TestVerifyExpiredToken(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	v, srv := newVerifierFor(t, func() map[string]any { return jwksDoc("key-1", &key.PublicKey) })
	defer srv.Close()

	token := signToken(t, key, "key-1", "client_abc", time.Now().Add(-time.Hour))
	_, err = v.Verify(context.Background(), token)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrUpstream)
}

func TestVerifyWrongAudience(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	v, srv := newVerifierFor(t, func() map[string]any { return jwksDoc("key-1", &key.PublicKey) })
	defer srv.Close()

	token := signToken(t, key, "key-1", "someone_else", time.Now().Add(time.Hour))
	_, err = v.Verify(context.Background(), token)
	assert.Error(t, err)
}

func TestVerifyRefreshesOnRotatedKey(t *testing.T) {
	oldKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	newKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	current := jwksDoc("key-old", &oldKey.PublicKey)
	v, srv := newVerifierFor(t, func() map[string]any { return current })
	defer srv.Close()

	// warm the cache with the old key set
	oldToken := signToken(t, oldKey, "key-old", "client_abc", time.Now().Add(time.Hour))
	_, err = v.Verify(context.Background(), oldToken)
	require.NoError(t, err)

	// rotate upstream; the cached set doesn't know key-new yet
	current = jwksDoc("key-new", &newKey.PublicKey)

	newToken := signToken(t, newKey, "key-new", "client_abc", time.Now().Add(time.Hour))
	claims, err := v.Verify(context.Background(), newToken)
	require.NoError(t, err)
	assert.Equal(t, "user_123", claims["sub"])
}

func TestVerifyJWKSUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	v := NewVerifier(srv.URL, "client_abc")
	_, err := v.Verify(context.Background(), "whatever")
	assert.ErrorIs(t, err, ErrUpstream)
}
