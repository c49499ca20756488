package port

import (
	"context"

	"staking_resolver/internal/domain"
)

// StakingQueryClient reads staking pallet storage for a single account.
type StakingQueryClient interface {
	QueryPayee(ctx context.Context, account domain.AccountAddress) (domain.RewardDestination, error)
	// QueryBonded returns the controller of a stash, or "" when not bonded.
	QueryBonded(ctx context.Context, account domain.AccountAddress) (domain.AccountAddress, error)
}

type RewardDestinationResolver interface {
	Resolve(ctx context.Context, account domain.AccountAddress, event domain.EventHandle) (domain.RewardDestination, error)
}

type ControllerResolver interface {
	Resolve(ctx context.Context, account domain.AccountAddress, event domain.EventHandle) (domain.AccountAddress, error)
}
