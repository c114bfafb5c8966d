package ports

import (
	"context"

	"github.com/chainpost/vouch/core"
)

// EventPublisher notifies other services about auth events
type EventPublisher interface {
	// PublishLogin announces a successful wallet login
	PublishLogin(ctx context.Context, identityID, address string, chain core.Chain) error
}
