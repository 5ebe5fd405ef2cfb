// Package identity verifies bearer tokens against the Firebase secure
// token endpoint for a single project. Keys are fetched through OIDC
// discovery and cached; verification is RS256 only.
package identity

import (
	"context"
	"crypto"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"strings"
	"sync"
	"time"

	"server/internal/domain"
)

// ErrUnavailable is returned when no project id was configured; in that
// state every verification fails until the process is restarted with
// credentials.
var ErrUnavailable = errors.New("identity provider not configured")

const keyTTL = time.Hour

// Principal is the verified identity attached to a request.
type Principal struct {
	Email string
	Name  string
}

// Verifier checks ID tokens issued for one project.
type Verifier struct {
	issuer     string
	audience   string
	httpClient *http.Client

	mu      sync.RWMutex
	keys    map[string]*rsa.PublicKey
	fetched time.Time
}

// NewVerifier builds a verifier for projectID. An empty projectID yields
// a verifier that rejects everything with ErrUnavailable.
func NewVerifier(issuerBase, projectID string) *Verifier {
	v := &Verifier{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		keys:       make(map[string]*rsa.PublicKey),
	}
	if projectID != "" {
		v.issuer = strings.TrimRight(issuerBase, "/") + "/" + projectID
		v.audience = projectID
	}
	return v
}

// SetHTTPClient replaces the HTTP client used for discovery and key
// fetches. Intended for tests.
func (v *Verifier) SetHTTPClient(c *http.Client) {
	if c != nil {
		v.httpClient = c
	}
}

// Verify validates the raw token and returns the principal it names.
func (v *Verifier) Verify(ctx context.Context, token string) (*Principal, error) {
	if v.issuer == "" {
		return nil, ErrUnavailable
	}
	header, payload, signature, signingInput, err := splitToken(token)
	if err != nil {
		return nil, err
	}
	if alg, _ := header["alg"].(string); alg != "RS256" {
		return nil, errors.New("unexpected algorithm")
	}
	kid, _ := header["kid"].(string)
	key, err := v.keyForKid(ctx, kid)
	if err != nil {
		return nil, err
	}
	hashed := sha256.Sum256([]byte(signingInput))
	if err := rsa.VerifyPKCS1v15(key, crypto.SHA256, hashed[:], signature); err != nil {
		return nil, errors.New("invalid signature")
	}
	if iss, _ := payload["iss"].(string); iss != v.issuer {
		return nil, errors.New("invalid issuer")
	}
	if aud, _ := payload["aud"].(string); aud != v.audience {
		return nil, errors.New("invalid audience")
	}
	exp, ok := payload["exp"].(float64)
	if !ok {
		return nil, errors.New("token has no expiry claim")
	}
	if time.Now().Unix() > int64(exp) {
		return nil, errors.New("token expired")
	}
	email, _ := payload["email"].(string)
	if email == "" {
		return nil, errors.New("token has no email claim")
	}
	name, _ := payload["name"].(string)
	return &Principal{Email: strings.ToLower(email), Name: name}, nil
}

func (v *Verifier) keyForKid(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	if err := v.ensureKeys(ctx); err != nil {
		return nil, err
	}
	if key, ok := v.cached(kid); ok {
		return key, nil
	}
	// Key rotation: retry once with a fresh set.
	if err := v.refresh(ctx); err != nil {
		return nil, err
	}
	if key, ok := v.cached(kid); ok {
		return key, nil
	}
	return nil, errors.New("unknown key id")
}

func (v *Verifier) ensureKeys(ctx context.Context) error {
	v.mu.RLock()
	fresh := time.Since(v.fetched) < keyTTL && len(v.keys) > 0
	v.mu.RUnlock()
	if fresh {
		return nil
	}
	return v.refresh(ctx)
}

func (v *Verifier) cached(kid string) (*rsa.PublicKey, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	key, ok := v.keys[kid]
	return key, ok
}

func (v *Verifier) refresh(ctx context.Context) error {
	jwksURI, err := v.discoverJWKS(ctx)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, jwksURI, nil)
	if err != nil {
		return err
	}
	resp, err := v.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	var set struct {
		Keys []struct {
			Kid string `json:"kid"`
			Kty string `json:"kty"`
			N   string `json:"n"`
			E   string `json:"e"`
		} `json:"keys"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&set); err != nil {
		return err
	}
	keys := make(map[string]*rsa.PublicKey, len(set.Keys))
	for _, k := range set.Keys {
		if k.Kty != "RSA" {
			continue
		}
		pub, err := rsaKey(k.N, k.E)
		if err != nil {
			continue
		}
		keys[k.Kid] = pub
	}
	if len(keys) == 0 {
		return errors.New("no signing keys fetched")
	}
	v.mu.Lock()
	v.keys = keys
	v.fetched = time.Now()
	v.mu.Unlock()
	return nil
}

func (v *Verifier) discoverJWKS(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.issuer+"/.well-known/openid-configuration", nil)
	if err != nil {
		return "", err
	}
	resp, err := v.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	var cfg struct {
		JWKSURI string `json:"jwks_uri"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&cfg); err != nil {
		return "", err
	}
	if cfg.JWKSURI == "" {
		return "", errors.New("discovery document has no jwks_uri")
	}
	return cfg.JWKSURI, nil
}

func rsaKey(n, e string) (*rsa.PublicKey, error) {
	nBytes, err := base64.RawURLEncoding.DecodeString(n)
	if err != nil {
		return nil, err
	}
	eBytes, err := base64.RawURLEncoding.DecodeString(e)
	if err != nil {
		return nil, err
	}
	exp := 0
	for _, b := range eBytes {
		exp = exp<<8 + int(b)
	}
	if exp == 0 {
		return nil, errors.New("invalid exponent")
	}
	return &rsa.PublicKey{N: new(big.Int).SetBytes(nBytes), E: exp}, nil
}

func splitToken(token string) (header, payload map[string]any, signature []byte, signingInput string, err error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, nil, nil, "", domain.ErrInvalidToken
	}
	headerJSON, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, nil, nil, "", domain.ErrInvalidToken
	}
	payloadJSON, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, nil, nil, "", domain.ErrInvalidToken
	}
	signature, err = base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		return nil, nil, nil, "", domain.ErrInvalidToken
	}
	if err := json.Unmarshal(headerJSON, &header); err != nil {
		return nil, nil, nil, "", domain.ErrInvalidToken
	}
	if err := json.Unmarshal(payloadJSON, &payload); err != nil {
		return nil, nil, nil, "", domain.ErrInvalidToken
	}
	return header, payload, signature, parts[0] + "." + parts[1], nil
}
