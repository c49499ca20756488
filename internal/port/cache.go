package port

import "staking_resolver/internal/domain"

// BlockCache holds per-account values for at most one block at a time.
// ReplaceBlock discards whatever block was resident before, Reset empties it.
type BlockCache[V any] interface {
	Has(block domain.BlockID) bool
	Get(block domain.BlockID, account domain.AccountAddress) (V, bool)
	Len(block domain.BlockID) int
	ReplaceBlock(block domain.BlockID, values map[domain.AccountAddress]V)
	Reset()
}
