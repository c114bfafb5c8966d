// Package service composes the challenge store, verifiers, identity
// repository and tokenizer into the wallet login flow.
package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/chainpost/vouch/core"
	"github.com/chainpost/vouch/ports"
)

const (
	// DefaultChallengeTTL is how long an issued challenge stays valid
	DefaultChallengeTTL = 15 * time.Minute

	nonceBytes = 32
)

// LoginResult carries everything the login handler returns to the client
type LoginResult struct {
	Token     string
	Identity  *core.Identity
	IsNewUser bool
}

// AuthService handles authentication business logic
type AuthService struct {
	challenges ports.ChallengeStore
	identities ports.IdentityRepository
	tokenizer  ports.Tokenizer
	verifiers  map[core.Chain]ports.Verifier
	events     ports.EventPublisher

	challengeTTL time.Duration
}

// Option configures an AuthService
type Option func(*AuthService)

// WithChallengeTTL overrides the default challenge lifetime
func WithChallengeTTL(ttl time.Duration) Option {
	return func(s *AuthService) {
		s.challengeTTL = ttl
	}
}

// NewAuthService creates a new authentication service
func NewAuthService(
	challenges ports.ChallengeStore,
	identities ports.IdentityRepository,
	tokenizer ports.Tokenizer,
	verifiers map[core.Chain]ports.Verifier,
	events ports.EventPublisher,
	opts ...Option,
) *AuthService {
	s := &AuthService{
		challenges:   challenges,
		identities:   identities,
		tokenizer:    tokenizer,
		verifiers:    verifiers,
		events:       events,
		challengeTTL: DefaultChallengeTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateChallenge issues a new single-use challenge for (address, chain).
// The chain must have a registered verifier before any state is written.
func (s *AuthService) CreateChallenge(ctx context.Context, address string, chain core.Chain) (*core.Challenge, error) {
	if _, ok := s.verifiers[chain]; !ok {
		return nil, core.ErrUnsupportedChain
	}

	buf := make([]byte, nonceBytes)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	now := time.Now()
	challenge := &core.Challenge{
		ID:        uuid.NewString(),
		Address:   address,
		Chain:     chain,
		Nonce:     hex.EncodeToString(buf),
		IssuedAt:  now,
		ExpiresAt: now.Add(s.challengeTTL),
	}

	if err := s.challenges.Create(ctx, challenge); err != nil {
		return nil, fmt.Errorf("failed to store challenge: %w", err)
	}

	return challenge, nil
}

// Login authenticates a wallet by verifying its signature over the message
// derived from a previously issued challenge.
//
// The challenge is consumed up front, so a failed attempt can never be
// retried with the same challenge id. Every client-caused failure surfaces
// as core.ErrAuthentication without detail.
func (s *AuthService) Login(ctx context.Context, address string, chain core.Chain, challengeID, signature string) (*LoginResult, error) {
	verifier, ok := s.verifiers[chain]
	if !ok {
		return nil, core.ErrUnsupportedChain
	}

	challenge, err := s.challenges.Consume(ctx, challengeID)
	if err != nil {
		if isAuthFailure(err) {
			log.Debug().Str("challenge_id", challengeID).Err(err).Msg("login rejected: challenge unusable")
			return nil, core.ErrAuthentication
		}
		return nil, fmt.Errorf("failed to consume challenge: %w", err)
	}

	if challenge.Expired(time.Now()) {
		log.Debug().Str("challenge_id", challengeID).Msg("login rejected: challenge expired")
		return nil, core.ErrAuthentication
	}

	// The challenge must have been issued for exactly this wallet. This
	// stops a client from presenting someone else's valid challenge.
	if challenge.Chain != chain || !strings.EqualFold(challenge.Address, address) {
		log.Debug().Str("challenge_id", challengeID).Msg("login rejected: wallet mismatch")
		return nil, core.ErrAuthentication
	}

	if !verifier.Verify([]byte(challenge.Message()), signature, address) {
		log.Debug().Str("challenge_id", challengeID).Msg("login rejected: signature verification failed")
		return nil, core.ErrAuthentication
	}

	identity, created, err := s.identities.FindOrCreate(ctx, address, chain)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve identity: %w", err)
	}

	token, err := s.tokenizer.Issue(identity)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	if s.events != nil {
		if err := s.events.PublishLogin(ctx, identity.ID, identity.WalletAddress, identity.Chain); err != nil {
			// The session is already issued; a missed event is not worth
			// failing the login over.
			log.Warn().Err(err).Msg("failed to publish login event")
		}
	}

	return &LoginResult{
		Token:     token,
		Identity:  identity,
		IsNewUser: created,
	}, nil
}

// ValidateToken validates a session token and returns its credential
func (s *AuthService) ValidateToken(token string) (*core.Credential, error) {
	return s.tokenizer.Validate(token)
}

func isAuthFailure(err error) bool {
	return errors.Is(err, core.ErrChallengeNotFound) ||
		errors.Is(err, core.ErrChallengeExpired) ||
		errors.Is(err, core.ErrInvalidSignature)
}
