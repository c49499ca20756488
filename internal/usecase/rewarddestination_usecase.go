package usecase

import (
	"context"

	"staking_resolver/internal/domain"
	apierr "staking_resolver/internal/errors"
	"staking_resolver/internal/metrics"
	"staking_resolver/internal/port"
)

// RewardDestinationUseCase resolves the payee of a stash, batching the
// lookups of every same-kind event in the block into one cache rebuild.
// Calls must not run concurrently.
type RewardDestinationUseCase struct {
	resolver blockResolver[domain.RewardDestination]
}

func NewRewardDestinationUseCase(
	client port.StakingQueryClient,
	cache port.BlockCache[domain.RewardDestination],
	m *metrics.ResolverMetrics,
) *RewardDestinationUseCase {
	return &RewardDestinationUseCase{
		resolver: blockResolver[domain.RewardDestination]{
			name:    "reward_destination",
			query:   "payee",
			cache:   cache,
			fetch:   client.QueryPayee,
			metrics: m,
		},
	}
}

// Resolve returns the reward destination of account. The zero
// RewardDestination is returned when the block is cached and account was not
// part of its batch.
func (uc *RewardDestinationUseCase) Resolve(
	ctx context.Context,
	account domain.AccountAddress,
	event domain.EventHandle,
) (domain.RewardDestination, error) {
	if event.Block == nil {
		return domain.RewardDestination{}, apierr.ErrInvalidEvent
	}
	block := event.BlockID()

	if v, ok, err := uc.resolver.cached(ctx, block, account); ok {
		return v, err
	}

	uc.resolver.cache.Reset()
	batch, err := batchAccounts(event)
	if err != nil {
		return domain.RewardDestination{}, err
	}
	return uc.resolver.rebuild(ctx, block, account, batch)
}
