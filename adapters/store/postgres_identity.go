package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/chainpost/vouch/core"
	"github.com/chainpost/vouch/ports"
)

// PostgresIdentityRepository stores identities in PostgreSQL. The unique
// constraint on (wallet_address, wallet_chain) is what makes concurrent
// first logins safe; no in-process locking is involved.
type PostgresIdentityRepository struct {
	db *sqlx.DB
}

type identityRow struct {
	ID            string    `db:"id"`
	WalletAddress string    `db:"wallet_address"`
	WalletChain   string    `db:"wallet_chain"`
	DisplayName   string    `db:"display_name"`
	AvatarCID     string    `db:"avatar_cid"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func (r identityRow) toIdentity() *core.Identity {
	return &core.Identity{
		ID:            r.ID,
		WalletAddress: r.WalletAddress,
		Chain:         core.Chain(r.WalletChain),
		DisplayName:   r.DisplayName,
		AvatarCID:     r.AvatarCID,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// NewPostgresIdentityRepository creates a PostgreSQL-backed identity repository
func NewPostgresIdentityRepository(db *sqlx.DB) ports.IdentityRepository {
	return &PostgresIdentityRepository{db: db}
}

// FindOrCreate looks up the identity for (address, chain) and inserts one on
// first sight. A concurrent insert losing the race on the unique constraint
// falls through ON CONFLICT DO NOTHING and re-reads the winner's row.
func (r *PostgresIdentityRepository) FindOrCreate(ctx context.Context, address string, chain core.Chain) (*core.Identity, bool, error) {
	identity, err := r.findByWallet(ctx, address, chain)
	if err == nil {
		return identity, false, nil
	}
	if !errors.Is(err, core.ErrIdentityNotFound) {
		return nil, false, err
	}

	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO identities (id, wallet_address, wallet_chain, display_name, avatar_cid, created_at, updated_at)
		VALUES ($1, $2, $3, '', '', $4, $4)
		ON CONFLICT (wallet_address, wallet_chain) DO NOTHING
	`, uuid.NewString(), address, chain.String(), now)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create identity: %w", err)
	}

	created := false
	if rows, err := res.RowsAffected(); err == nil && rows > 0 {
		created = true
	}

	identity, err = r.findByWallet(ctx, address, chain)
	if err != nil {
		return nil, false, err
	}
	return identity, created, nil
}

// FindByID returns the identity with the given id
func (r *PostgresIdentityRepository) FindByID(ctx context.Context, id string) (*core.Identity, error) {
	var row identityRow
	err := r.db.GetContext(ctx, &row, `
		SELECT id, wallet_address, wallet_chain, display_name, avatar_cid, created_at, updated_at
		FROM identities
		WHERE id = $1
	`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrIdentityNotFound
		}
		return nil, fmt.Errorf("failed to find identity: %w", err)
	}
	return row.toIdentity(), nil
}

func (r *PostgresIdentityRepository) findByWallet(ctx context.Context, address string, chain core.Chain) (*core.Identity, error) {
	var row identityRow
	err := r.db.GetContext(ctx, &row, `
		SELECT id, wallet_address, wallet_chain, display_name, avatar_cid, created_at, updated_at
		FROM identities
		WHERE wallet_address = $1 AND wallet_chain = $2
	`, address, chain.String())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrIdentityNotFound
		}
		return nil, fmt.Errorf("failed to find identity: %w", err)
	}
	return row.toIdentity(), nil
}
