package usecase

import (
	"context"

	"go.uber.org/zap"

	"staking_resolver/internal/domain"
	apierr "staking_resolver/internal/errors"
	"staking_resolver/internal/metrics"
	"staking_resolver/internal/port"
)

// ControllerUseCase resolves the controller bonded to a stash. Only batch
// accounts paying out to their controller are looked up. Calls must not run
// concurrently.
type ControllerUseCase struct {
	rewards  port.RewardDestinationResolver
	resolver blockResolver[domain.AccountAddress]
}

func NewControllerUseCase(
	client port.StakingQueryClient,
	rewards port.RewardDestinationResolver,
	cache port.BlockCache[domain.AccountAddress],
	m *metrics.ResolverMetrics,
) *ControllerUseCase {
	return &ControllerUseCase{
		rewards: rewards,
		resolver: blockResolver[domain.AccountAddress]{
			name:    "controller",
			query:   "bonded",
			cache:   cache,
			fetch:   client.QueryBonded,
			metrics: m,
		},
	}
}

// Resolve returns the controller of account, "" when it has none or when the
// block is cached and account was not part of its batch.
func (uc *ControllerUseCase) Resolve(
	ctx context.Context,
	account domain.AccountAddress,
	event domain.EventHandle,
) (domain.AccountAddress, error) {
	if event.Block == nil {
		return "", apierr.ErrInvalidEvent
	}
	block := event.BlockID()

	if v, ok, err := uc.resolver.cached(ctx, block, account); ok {
		return v, err
	}

	uc.resolver.cache.Reset()
	batch, err := batchAccounts(event)
	if err != nil {
		return "", err
	}

	needController := make([]domain.AccountAddress, 0, len(batch))
	for _, stash := range batch {
		dest, err := uc.rewards.Resolve(ctx, stash, event)
		if err != nil {
			return "", err
		}
		if dest.IsController() {
			needController = append(needController, stash)
		}
	}
	zap.L().Debug("controller batch filtered",
		zap.Uint64("block", block),
		zap.Int("accounts", len(batch)),
		zap.Int("controller_payees", len(needController)),
	)

	return uc.resolver.rebuild(ctx, block, account, needController)
}
