package ports

import (
	"context"

	"github.com/chainpost/vouch/core"
)

// ChallengeStore persists login challenges between issuance and verification
type ChallengeStore interface {
	// Create persists a new challenge for the duration of its TTL
	Create(ctx context.Context, challenge *core.Challenge) error

	// Consume atomically fetches and invalidates a challenge so it can
	// never be presented twice. Returns core.ErrChallengeNotFound when the
	// id is unknown, already consumed, or expired out of the store.
	Consume(ctx context.Context, id string) (*core.Challenge, error)
}

// IdentityRepository maps verified wallets to durable identities
type IdentityRepository interface {
	// FindOrCreate returns the identity for (address, chain), creating it
	// on first sight. The returned bool is true when a new identity was
	// created. Concurrent first logins must resolve to a single identity.
	FindOrCreate(ctx context.Context, address string, chain core.Chain) (*core.Identity, bool, error)

	// FindByID returns the identity with the given id, or core.ErrIdentityNotFound
	FindByID(ctx context.Context, id string) (*core.Identity, error)
}
