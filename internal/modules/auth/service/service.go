package service

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/facebook"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/twitch"

	"github.com/Goodnessmbakara/skillsverse/internal/modules/auth/dto"
	"github.com/Goodnessmbakara/skillsverse/internal/modules/auth/identity"
	"github.com/Goodnessmbakara/skillsverse/internal/modules/auth/session"
	"github.com/Goodnessmbakara/skillsverse/pkg/apperror"
)

const (
	maxEpochOffset  = 10
	DefaultRedirect = "/dashboard"
)

// EpochSource reports the chain's current epoch.
type EpochSource interface {
	LatestEpoch(ctx context.Context) (uint64, error)
}

type Provider struct {
	Name     string
	ClientID string
	Issuer   string
	Endpoint oauth2.Endpoint
}

// DefaultProviders returns google, facebook and twitch with the given client
// ids.
func DefaultProviders(googleClientID, facebookClientID, twitchClientID string) map[string]Provider {
	return map[string]Provider{
		"google":   {Name: "google", ClientID: googleClientID, Issuer: "https://accounts.google.com", Endpoint: google.Endpoint},
		"facebook": {Name: "facebook", ClientID: facebookClientID, Issuer: "https://www.facebook.com", Endpoint: facebook.Endpoint},
		"twitch":   {Name: "twitch", ClientID: twitchClientID, Issuer: "https://id.twitch.tv/oauth2", Endpoint: twitch.Endpoint},
	}
}

type AuthService interface {
	InitiateProviderLogin(ctx context.Context, sess *session.Session, provider, redirect string) (string, error)
	ExchangeCode(code, provider, nonce string) (*dto.TokenResponse, error)
	CompleteProviderLogin(ctx context.Context, sess *session.Session, token, salt string) error
	HandleProviderReturn(ctx context.Context, sess *session.Session, provider, code, state string) (string, error)
	WalletLogin(ctx context.Context, sess *session.Session, address string) error
	Logout(ctx context.Context, sess *session.Session) error
}

type Options struct {
	Store     session.Store
	Epochs    EpochSource
	Prover    *identity.Prover
	Providers map[string]Provider
	// RedirectBase is the public URL of the /auth group; provider redirects
	// land on <RedirectBase>/<provider>/return.
	RedirectBase string
}

type authService struct {
	opts Options
}

func NewAuthService(opts Options) AuthService {
	return &authService{opts: opts}
}

func (s *authService) provider(name string) (Provider, error) {
	p, ok := s.opts.Providers[name]
	if !ok {
		return Provider{}, apperror.Invalid(fmt.Sprintf("unsupported login provider %q", name))
	}
	return p, nil
}

func (s *authService) oauthConfig(p Provider) *oauth2.Config {
	return &oauth2.Config{
		ClientID:    p.ClientID,
		Endpoint:    p.Endpoint,
		RedirectURL: s.opts.RedirectBase + "/" + p.Name + "/return",
		Scopes:      []string{"openid", "email"},
	}
}

// InitiateProviderLogin persists a pending flow and returns the provider URL
// to send the browser to. It fails closed when the epoch is unavailable.
func (s *authService) InitiateProviderLogin(ctx context.Context, sess *session.Session, provider, redirect string) (string, error) {
	p, err := s.provider(provider)
	if err != nil {
		return "", err
	}

	epoch, err := s.opts.Epochs.LatestEpoch(ctx)
	if err != nil {
		log.Printf("Failed to fetch chain epoch: %v", err)
		return "", apperror.New(http.StatusBadGateway, "Could not connect to Sui network", err)
	}

	key, pub, err := identity.NewEphemeralKey()
	if err != nil {
		return "", fmt.Errorf("failed to generate ephemeral key: %w", err)
	}
	randomness, err := identity.NewRandomness()
	if err != nil {
		return "", fmt.Errorf("failed to generate randomness: %w", err)
	}
	maxEpoch := epoch + maxEpochOffset
	nonce, err := identity.Nonce(pub, maxEpoch, randomness)
	if err != nil {
		return "", err
	}

	sess.Reset()
	sess.LoginType = session.LoginProvider
	sess.Provider = p.Name
	sess.EphemeralKey = key
	sess.Randomness = randomness
	sess.MaxEpoch = maxEpoch
	sess.RedirectAfterLogin = safeRedirect(redirect)
	sess.State = uuid.NewString()

	if err := s.opts.Store.Save(ctx, sess); err != nil {
		return "", fmt.Errorf("failed to persist login flow: %w", err)
	}

	return s.oauthConfig(p).AuthCodeURL(sess.State, oauth2.SetAuthURLParam("nonce", nonce)), nil
}

func (s *authService) ExchangeCode(code, provider, nonce string) (*dto.TokenResponse, error) {
	p, err := s.provider(provider)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(code) == "" {
		return nil, apperror.Invalid("code is required")
	}

	token, salt, err := s.opts.Prover.Exchange(code, p.Issuer, p.ClientID, nonce)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &dto.TokenResponse{Token: token, Salt: salt}, nil
}

// CompleteProviderLogin derives the address from token and salt and stores
// the logged-in state. The ephemeral key is kept for signing.
func (s *authService) CompleteProviderLogin(ctx context.Context, sess *session.Session, token, salt string) error {
	claims, err := s.opts.Prover.Parse(token)
	if err != nil {
		return apperror.New(http.StatusUnauthorized, "Invalid login token", apperror.ErrUnauthorized)
	}
	if salt == "" {
		return apperror.Invalid("salt is required")
	}

	sess.LoginType = session.LoginProvider
	sess.Token = token
	sess.Salt = salt
	sess.Address = identity.Address(claims.Issuer, claims.Subject, salt)
	sess.Randomness = ""
	sess.RedirectAfterLogin = ""
	sess.MaxEpoch = 0
	sess.State = ""

	if err := s.opts.Store.Save(ctx, sess); err != nil {
		return fmt.Errorf("failed to persist login: %w", err)
	}
	return nil
}

// HandleProviderReturn finishes the flow started by InitiateProviderLogin and
// returns the path to send the browser to.
func (s *authService) HandleProviderReturn(ctx context.Context, sess *session.Session, provider, code, state string) (string, error) {
	if sess.LoginType != session.LoginProvider || sess.Provider != provider || sess.EphemeralKey == "" {
		return "", apperror.Invalid("no login in progress")
	}
	if sess.State != "" && state != sess.State {
		return "", apperror.Invalid("login state mismatch")
	}

	pub, err := identity.PublicKey(sess.EphemeralKey)
	if err != nil {
		return "", err
	}
	nonce, err := identity.Nonce(pub, sess.MaxEpoch, sess.Randomness)
	if err != nil {
		return "", err
	}

	tokens, err := s.ExchangeCode(code, provider, nonce)
	if err != nil {
		return "", err
	}

	redirect := sess.RedirectAfterLogin
	if redirect == "" {
		redirect = DefaultRedirect
	}
	if err := s.CompleteProviderLogin(ctx, sess, tokens.Token, tokens.Salt); err != nil {
		return "", err
	}
	return redirect, nil
}

func (s *authService) WalletLogin(ctx context.Context, sess *session.Session, address string) error {
	normalized, ok := identity.NormalizeAddress(address)
	if !ok {
		return apperror.Invalid("address must be a 0x-prefixed hex string")
	}

	sess.Reset()
	sess.LoginType = session.LoginWallet
	sess.Address = normalized

	if err := s.opts.Store.Save(ctx, sess); err != nil {
		return fmt.Errorf("failed to persist login: %w", err)
	}
	return nil
}

// Logout resets the session even when the store delete fails.
func (s *authService) Logout(ctx context.Context, sess *session.Session) error {
	sess.Reset()
	if err := s.opts.Store.Clear(ctx, sess.ID); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// safeRedirect only allows same-site absolute paths.
func safeRedirect(r string) string {
	if !strings.HasPrefix(r, "/") || strings.HasPrefix(r, "//") || strings.Contains(r, `\`) {
		return DefaultRedirect
	}
	return r
}

