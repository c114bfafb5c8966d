package store_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chainpost/vouch/adapters/store"
	"github.com/chainpost/vouch/core"
)

const testAddress = "0xAb5801a7D398351b8bE11C439e05C5B3259aeC9B"

func TestMemoryIdentityRepositoryIdempotence(t *testing.T) {
	ctx := context.Background()
	r := store.NewMemoryIdentityRepository()

	first, created, err := r.FindOrCreate(ctx, testAddress, core.ChainEthereum)
	require.NoError(t, err)
	require.True(t, created)
	require.NotEmpty(t, first.ID)
	require.Equal(t, testAddress, first.WalletAddress)
	require.Equal(t, core.ChainEthereum, first.Chain)

	second, created, err := r.FindOrCreate(ctx, testAddress, core.ChainEthereum)
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, 1, r.Count())
}

func TestMemoryIdentityRepositoryOnePerChain(t *testing.T) {
	ctx := context.Background()
	r := store.NewMemoryIdentityRepository()

	eth, _, err := r.FindOrCreate(ctx, testAddress, core.ChainEthereum)
	require.NoError(t, err)
	sol, _, err := r.FindOrCreate(ctx, testAddress, core.ChainSolana)
	require.NoError(t, err)

	require.NotEqual(t, eth.ID, sol.ID)
	require.Equal(t, 2, r.Count())
}

func TestMemoryIdentityRepositoryFindByID(t *testing.T) {
	ctx := context.Background()
	r := store.NewMemoryIdentityRepository()

	identity, _, err := r.FindOrCreate(ctx, testAddress, core.ChainEthereum)
	require.NoError(t, err)

	got, err := r.FindByID(ctx, identity.ID)
	require.NoError(t, err)
	require.Equal(t, identity.WalletAddress, got.WalletAddress)

	_, err = r.FindByID(ctx, "missing")
	require.ErrorIs(t, err, core.ErrIdentityNotFound)
}

func TestMemoryIdentityRepositoryConcurrentFirstLogin(t *testing.T) {
	ctx := context.Background()
	r := store.NewMemoryIdentityRepository()

	const attempts = 16
	var wg sync.WaitGroup
	ids := make(chan string, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			identity, _, err := r.FindOrCreate(ctx, testAddress, core.ChainEthereum)
			require.NoError(t, err)
			ids <- identity.ID
		}()
	}
	wg.Wait()
	close(ids)

	var unique []string
	seen := map[string]bool{}
	for id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	require.Len(t, unique, 1)
	require.Equal(t, 1, r.Count())
}
