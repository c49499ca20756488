package domain

// AccountAddress is an SS58 encoded chain account.
type AccountAddress = string

// BlockID scopes the resolver caches. Two events share a BlockID iff they
// belong to the same block.
type BlockID = uint64

type PayeeKind string

// Variants of the staking pallet RewardDestination enum, in SCALE index order.
const (
	PayeeStaked     PayeeKind = "Staked"
	PayeeStash      PayeeKind = "Stash"
	PayeeController PayeeKind = "Controller"
	PayeeAccount    PayeeKind = "Account"
	PayeeNone       PayeeKind = "None"
)

// RewardDestination is the configured payout target of a stash. The zero
// value means the address was not part of the cached batch.
type RewardDestination struct {
	Kind    PayeeKind      `json:"kind"`
	Account AccountAddress `json:"account,omitempty"`
}

func (d RewardDestination) IsController() bool { return d.Kind == PayeeController }

func (d RewardDestination) IsZero() bool { return d.Kind == "" }

func (d RewardDestination) String() string {
	if d.Kind == PayeeAccount {
		return string(d.Kind) + "(" + d.Account + ")"
	}
	return string(d.Kind)
}
