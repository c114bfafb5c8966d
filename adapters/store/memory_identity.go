package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/chainpost/vouch/core"
	"github.com/chainpost/vouch/ports"
)

// MemoryIdentityRepository is an in-memory identity repository for tests.
// The mutex plays the role of the database uniqueness constraint: lookup
// and insert happen under one critical section.
type MemoryIdentityRepository struct {
	byWallet map[walletKey]*core.Identity
	byID     map[string]*core.Identity
	mu       sync.Mutex
}

type walletKey struct {
	address string
	chain   core.Chain
}

// NewMemoryIdentityRepository creates a new in-memory identity repository
func NewMemoryIdentityRepository() *MemoryIdentityRepository {
	return &MemoryIdentityRepository{
		byWallet: make(map[walletKey]*core.Identity),
		byID:     make(map[string]*core.Identity),
	}
}

// FindOrCreate returns the identity for (address, chain), creating it on first sight
func (r *MemoryIdentityRepository) FindOrCreate(ctx context.Context, address string, chain core.Chain) (*core.Identity, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := walletKey{address: address, chain: chain}
	if identity, ok := r.byWallet[key]; ok {
		c := *identity
		return &c, false, nil
	}

	now := time.Now().UTC()
	identity := &core.Identity{
		ID:            uuid.NewString(),
		WalletAddress: address,
		Chain:         chain,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	r.byWallet[key] = identity
	r.byID[identity.ID] = identity

	c := *identity
	return &c, true, nil
}

// FindByID returns the identity with the given id
func (r *MemoryIdentityRepository) FindByID(ctx context.Context, id string) (*core.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	identity, ok := r.byID[id]
	if !ok {
		return nil, core.ErrIdentityNotFound
	}
	c := *identity
	return &c, nil
}

// Count returns the number of stored identities, for test assertions
func (r *MemoryIdentityRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byWallet)
}

var _ ports.IdentityRepository = (*MemoryIdentityRepository)(nil)
