package tokenizer_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/chainpost/vouch/adapters/tokenizer"
	"github.com/chainpost/vouch/core"
)

var testSecret = []byte("test-signing-secret")

func testIdentity() *core.Identity {
	return &core.Identity{
		ID:            uuid.NewString(),
		WalletAddress: "0xAb5801a7D398351b8bE11C439e05C5B3259aeC9B",
		Chain:         core.ChainEthereum,
	}
}

func TestJWTTokenizerRoundTrip(t *testing.T) {
	tk := tokenizer.NewJWTTokenizer(testSecret, 24*time.Hour)
	identity := testIdentity()

	token, err := tk.Issue(identity)
	require.NoError(t, err)

	credential, err := tk.Validate(token)
	require.NoError(t, err)
	require.Equal(t, identity.ID, credential.IdentityID)
	require.Equal(t, identity.WalletAddress, credential.WalletAddress)
	require.Equal(t, identity.Chain, credential.Chain)

	now := time.Now()
	require.False(t, credential.IssuedAt.After(now))
	require.True(t, credential.ExpiresAt.After(now))
}

func TestJWTTokenizerExpired(t *testing.T) {
	tk := tokenizer.NewJWTTokenizer(testSecret, -time.Minute)

	token, err := tk.Issue(testIdentity())
	require.NoError(t, err)

	_, err = tk.Validate(token)
	require.ErrorIs(t, err, core.ErrTokenExpired)
}

func TestJWTTokenizerRejectsTampering(t *testing.T) {
	tk := tokenizer.NewJWTTokenizer(testSecret, time.Hour)

	token, err := tk.Issue(testIdentity())
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = tk.Validate(tampered)
	require.ErrorIs(t, err, core.ErrInvalidToken)
}

func TestJWTTokenizerRejectsOtherSecret(t *testing.T) {
	tk := tokenizer.NewJWTTokenizer(testSecret, time.Hour)
	other := tokenizer.NewJWTTokenizer([]byte("rotated-secret"), time.Hour)

	token, err := other.Issue(testIdentity())
	require.NoError(t, err)

	_, err = tk.Validate(token)
	require.ErrorIs(t, err, core.ErrInvalidToken)
}

func TestJWTTokenizerRejectsGarbage(t *testing.T) {
	tk := tokenizer.NewJWTTokenizer(testSecret, time.Hour)

	_, err := tk.Validate("not.a.jwt")
	require.ErrorIs(t, err, core.ErrInvalidToken)

	_, err = tk.Validate("")
	require.ErrorIs(t, err, core.ErrInvalidToken)
}
