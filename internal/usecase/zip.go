package usecase

import (
	"errors"
	"fmt"

	"staking_resolver/internal/domain"
)

// ErrLengthMismatch marks a batch whose results do not line up with its
// accounts, i.e. some member query was dropped.
var ErrLengthMismatch = errors.New("batch result count mismatch")

// ZipByIndex pairs accounts[i] with results[i].
func ZipByIndex[V any](accounts []domain.AccountAddress, results []V) (map[domain.AccountAddress]V, error) {
	if len(accounts) != len(results) {
		return nil, fmt.Errorf("%w: %d accounts, %d results", ErrLengthMismatch, len(accounts), len(results))
	}
	out := make(map[domain.AccountAddress]V, len(accounts))
	for i, account := range accounts {
		out[account] = results[i]
	}
	return out, nil
}
