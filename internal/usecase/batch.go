package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"staking_resolver/internal/domain"
	apierr "staking_resolver/internal/errors"
	"staking_resolver/internal/metrics"
	"staking_resolver/internal/port"
	"staking_resolver/pkg/ss58"
)

type queryFunc[V any] func(ctx context.Context, account domain.AccountAddress) (V, error)

// blockResolver is the per-block memoization shared by both resolvers: a
// cache scoped to one block, rebuilt from a batch of same-kind event accounts
// on the first miss of a new block.
type blockResolver[V any] struct {
	name    string
	query   string
	cache   port.BlockCache[V]
	fetch   queryFunc[V]
	metrics *metrics.ResolverMetrics
}

// cached answers from the resident block. The bool is false when the block
// has to be rebuilt.
func (r *blockResolver[V]) cached(
	ctx context.Context,
	block domain.BlockID,
	account domain.AccountAddress,
) (V, bool, error) {
	var zero V
	if !r.cache.Has(block) {
		r.metrics.Miss(r.name)
		return zero, false, nil
	}
	r.metrics.Hit(r.name)
	if v, ok := r.cache.Get(block, account); ok {
		return v, true, nil
	}
	if r.cache.Len(block) > 0 {
		// not part of this block's batch
		return zero, true, nil
	}
	// The block had no batch; these lookups are never memoized.
	v, err := r.direct(ctx, account)
	return v, true, err
}

// rebuild queries every batch account in order and caches the result for
// block, falling back to a single direct query for account when the batch is
// empty or came back short.
func (r *blockResolver[V]) rebuild(
	ctx context.Context,
	block domain.BlockID,
	account domain.AccountAddress,
	batch []domain.AccountAddress,
) (V, error) {
	var zero V
	log := zap.L().With(zap.String("resolver", r.name), zap.Uint64("block", block), zap.String("account", account))

	if len(batch) == 0 {
		log.Debug("empty batch, querying account directly")
		r.metrics.Fallback(r.name, metrics.ReasonEmptyBatch)
		r.cache.ReplaceBlock(block, nil)
		return r.direct(ctx, account)
	}

	results := make([]V, 0, len(batch))
	for _, member := range batch {
		v, err := r.fetch(ctx, member)
		r.metrics.Query(r.query, err)
		if err != nil {
			log.Warn("dropping batch member", zap.String("member", member), zap.Error(err))
			continue
		}
		results = append(results, v)
	}

	byAccount, err := ZipByIndex(batch, results)
	if err != nil {
		log.Warn("batch incomplete, querying account directly", zap.Error(err))
		r.metrics.Fallback(r.name, metrics.ReasonPartialBatch)
		v, err := r.direct(ctx, account)
		if err != nil {
			return zero, err
		}
		r.cache.ReplaceBlock(block, map[domain.AccountAddress]V{account: v})
		return v, nil
	}

	log.Debug("block cache rebuilt", zap.Int("accounts", len(byAccount)))
	r.cache.ReplaceBlock(block, byAccount)
	return byAccount[account], nil
}

func (r *blockResolver[V]) direct(ctx context.Context, account domain.AccountAddress) (V, error) {
	v, err := r.fetch(ctx, account)
	r.metrics.Query(r.query, err)
	return v, err
}

// batchAccounts returns the first data field of every event in the block
// sharing the (method, section) of the triggering event.
func batchAccounts(event domain.EventHandle) ([]domain.AccountAddress, error) {
	if event.Block == nil {
		return nil, apierr.ErrInvalidEvent
	}
	same := event.SameKindEvents()
	accounts := make([]domain.AccountAddress, 0, len(same))
	for _, e := range same {
		if len(e.Data) == 0 || !ss58.Valid(e.Data[0]) {
			return nil, fmt.Errorf("%w: %s.%s in block %d", apierr.ErrDataShapeMismatch, e.Section, e.Method, event.BlockID())
		}
		accounts = append(accounts, e.Data[0])
	}
	return accounts, nil
}
