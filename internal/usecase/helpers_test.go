package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"staking_resolver/internal/adapter/blockcache"
	"staking_resolver/internal/domain"
	"staking_resolver/pkg/ss58"
)

func addr(t *testing.T, seed byte) domain.AccountAddress {
	t.Helper()
	a, err := ss58.Encode(42, bytes.Repeat([]byte{seed}, ss58.AccountIDLen))
	if err != nil {
		t.Fatalf("encode address: %v", err)
	}
	return a
}

func rewarded(account domain.AccountAddress) domain.Event {
	return domain.Event{Section: "staking", Method: "Rewarded", Data: []string{account, "1000"}}
}

func slashed(account domain.AccountAddress) domain.Event {
	return domain.Event{Section: "staking", Method: "Slashed", Data: []string{account, "10"}}
}

func handle(t *testing.T, number uint64, index int, events ...domain.Event) domain.EventHandle {
	t.Helper()
	h, err := domain.NewEventHandle(&domain.Block{Number: number, Events: events}, index)
	if err != nil {
		t.Fatalf("event handle: %v", err)
	}
	return h
}

type dummyClient struct {
	payees      map[string]domain.RewardDestination
	bonded      map[string]string
	fail        map[string]bool
	payeeCalls  []string
	bondedCalls []string
}

func newDummyClient() *dummyClient {
	return &dummyClient{
		payees: make(map[string]domain.RewardDestination),
		bonded: make(map[string]string),
		fail:   make(map[string]bool),
	}
}

func (c *dummyClient) QueryPayee(ctx context.Context, account domain.AccountAddress) (domain.RewardDestination, error) {
	c.payeeCalls = append(c.payeeCalls, account)
	if c.fail[account] {
		return domain.RewardDestination{}, errors.New("payee query failed")
	}
	return c.payees[account], nil
}

func (c *dummyClient) QueryBonded(ctx context.Context, account domain.AccountAddress) (domain.AccountAddress, error) {
	c.bondedCalls = append(c.bondedCalls, account)
	if c.fail[account] {
		return "", errors.New("bonded query failed")
	}
	return c.bonded[account], nil
}

func newRewardCache(t *testing.T) *blockcache.BlockCache[domain.RewardDestination] {
	t.Helper()
	c, err := blockcache.NewBlockCache[domain.RewardDestination]()
	if err != nil {
		t.Fatalf("new cache: %v", err)
	}
	return c
}

func newControllerCache(t *testing.T) *blockcache.BlockCache[domain.AccountAddress] {
	t.Helper()
	c, err := blockcache.NewBlockCache[domain.AccountAddress]()
	if err != nil {
		t.Fatalf("new cache: %v", err)
	}
	return c
}

var (
	controller = domain.RewardDestination{Kind: domain.PayeeController}
	stash      = domain.RewardDestination{Kind: domain.PayeeStash}
	staked     = domain.RewardDestination{Kind: domain.PayeeStaked}
)
