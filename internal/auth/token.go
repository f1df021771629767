package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ajadmin/ajadmin/internal/config"
)

// Kind tells staff users and storefront customers apart.
type Kind string

const (
	// KindUser is a staff user of the admin panel.
	KindUser Kind = "user"
	// KindCustomer is a storefront customer.
	KindCustomer Kind = "customer"
)

// Claims carried by a bearer token. The subject is the account email.
type Claims struct {
	ID   uint64 `json:"id"`
	Kind Kind   `json:"kind"`
	jwt.RegisteredClaims
}

// Tokens signs and verifies RS256 bearer tokens.
type Tokens struct {
	private  *rsa.PrivateKey
	public   *rsa.PublicKey
	issuer   string
	audience string
	ttl      time.Duration
	now      func() time.Time
}

// NewTokens loads the key pair named in cfg. The private key is optional;
// without it tokens can be verified but not issued.
func NewTokens(cfg config.JWT) (*Tokens, error) {
	raw, err := os.ReadFile(cfg.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read jwt public key: %w", err)
	}

	public, err := jwt.ParseRSAPublicKeyFromPEM(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse jwt public key: %w", err)
	}

	var private *rsa.PrivateKey

	if cfg.PrivateKey != "" {
		if raw, err = os.ReadFile(cfg.PrivateKey); err != nil {
			return nil, fmt.Errorf("failed to read jwt private key: %w", err)
		}

		if private, err = jwt.ParseRSAPrivateKeyFromPEM(raw); err != nil {
			return nil, fmt.Errorf("failed to parse jwt private key: %w", err)
		}
	}

	return NewTokensFromKeys(private, public, cfg.Issuer, cfg.Audience, cfg.TTL.Duration), nil
}

// NewTokensFromKeys creates Tokens from parsed keys.
func NewTokensFromKeys(private *rsa.PrivateKey, public *rsa.PublicKey, issuer, audience string, ttl time.Duration) *Tokens {
	return &Tokens{
		private:  private,
		public:   public,
		issuer:   issuer,
		audience: audience,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Sign issues a token for the account id with email as subject.
func (t *Tokens) Sign(id uint64, email string, kind Kind) (string, error) {
	if t.private == nil {
		return "", ErrNoSigningKey
	}

	now := t.now()

	claims := Claims{
		ID:   id,
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			Subject:   email,
			Audience:  jwt.ClaimStrings{t.audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(t.private)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Verify checks signature, algorithm, expiry, audience and issuer of raw.
func (t *Tokens) Verify(raw string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithAudience(t.audience),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(t.now),
	}

	if t.issuer != "" {
		opts = append(opts, jwt.WithIssuer(t.issuer))
	}

	claims := new(Claims)

	_, err := jwt.ParseWithClaims(raw, claims, func(_ *jwt.Token) (any, error) {
		return t.public, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	return claims, nil
}

// GenerateKeyPair returns a new PEM encoded RSA key pair.
func GenerateKeyPair(bits int) (privatePEM, publicPEM []byte, err error) {
	key, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate rsa key: %w", err)
	}

	pub, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal public key: %w", err)
	}

	privatePEM = pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
	publicPEM = pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pub})

	return privatePEM, publicPEM, nil
}
