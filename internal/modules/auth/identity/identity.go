// Package identity derives zkLogin style nonces and addresses and issues the
// simulated provider tokens.
package identity

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/blake2b"
)

const (
	nonceLength     = 27
	randomnessBytes = 16
	addressFlag     = 0x05
)

// NewEphemeralKey returns a fresh ed25519 key encoded for session storage.
func NewEphemeralKey() (encoded string, pub ed25519.PublicKey, err error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return "", nil, err
	}
	return base64.StdEncoding.EncodeToString(priv), pub, nil
}

// PublicKey decodes a key produced by NewEphemeralKey.
func PublicKey(encoded string) (ed25519.PublicKey, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode ephemeral key: %w", err)
	}
	if len(raw) != ed25519.PrivateKeySize {
		return nil, errors.New("ephemeral key has wrong size")
	}
	return ed25519.PrivateKey(raw).Public().(ed25519.PublicKey), nil
}

// NewRandomness returns 128 random bits as a decimal string.
func NewRandomness() (string, error) {
	buf := make([]byte, randomnessBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return new(big.Int).SetBytes(buf).String(), nil
}

// Nonce commits to the ephemeral key, its expiry epoch and the randomness.
func Nonce(pub ed25519.PublicKey, maxEpoch uint64, randomness string) (string, error) {
	r, ok := new(big.Int).SetString(randomness, 10)
	if !ok || r.Sign() < 0 || r.BitLen() > randomnessBytes*8 {
		return "", errors.New("randomness must be a 128-bit decimal integer")
	}

	h, _ := blake2b.New256(nil)
	h.Write(pub)
	var epoch [8]byte
	binary.BigEndian.PutUint64(epoch[:], maxEpoch)
	h.Write(epoch[:])
	h.Write(r.FillBytes(make([]byte, randomnessBytes)))

	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))[:nonceLength], nil
}

// Address derives the account address for an issuer, subject and salt.
func Address(iss, sub, salt string) string {
	h, _ := blake2b.New256(nil)
	h.Write([]byte{addressFlag})
	h.Write([]byte(iss))
	h.Write([]byte(salt))
	h.Write([]byte(sub))
	return "0x" + hex.EncodeToString(h.Sum(nil))
}

var addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{1,64}$`)

// NormalizeAddress validates a 0x-prefixed hex address and returns it
// lowercased and left-padded to the full 32 bytes the node reports, so 0x2
// and 0x000...002 compare equal.
func NormalizeAddress(address string) (string, bool) {
	address = strings.TrimSpace(address)
	if !addressPattern.MatchString(address) {
		return "", false
	}
	digits := strings.ToLower(address[2:])
	return "0x" + strings.Repeat("0", 64-len(digits)) + digits, true
}

// Claims is the token body handed out by the simulated prover.
type Claims struct {
	Nonce string `json:"nonce,omitempty"`
	jwt.RegisteredClaims
}

// Prover stands in for a real identity provider plus salt service. Any
// non-empty code yields a signed token; nothing about the code is verified.
type Prover struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewProver(secret string, ttl time.Duration) *Prover {
	return &Prover{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Exchange returns a token whose subject and salt are deterministic in code
// and issuer.
func (p *Prover) Exchange(code, issuer, audience, nonce string) (token, salt string, err error) {
	if code == "" {
		return "", "", errors.New("authorization code is required")
	}

	codeHash := blake2b.Sum256([]byte(code))
	sub := hex.EncodeToString(codeHash[:16])

	now := p.now()
	claims := Claims{
		Nonce: nonce,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   sub,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.ttl)),
		},
	}
	if audience != "" {
		claims.Audience = jwt.ClaimStrings{audience}
	}

	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
	if err != nil {
		return "", "", err
	}
	return token, p.salt(issuer, sub), nil
}

func (p *Prover) salt(issuer, sub string) string {
	h, _ := blake2b.New256(nil)
	h.Write(p.secret)
	h.Write([]byte(issuer))
	h.Write([]byte(sub))
	return new(big.Int).SetBytes(h.Sum(nil)[:16]).String()
}

// Parse checks the signature and expiry of a token issued by Exchange.
func (p *Prover) Parse(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return p.secret, nil
	}, jwt.WithTimeFunc(p.now))
	if err != nil {
		return nil, err
	}
	if !parsed.Valid || claims.Issuer == "" || claims.Subject == "" {
		return nil, errors.New("token is missing issuer or subject")
	}
	return claims, nil
}
