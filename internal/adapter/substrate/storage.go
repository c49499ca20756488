package substrate

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"

	"staking_resolver/internal/domain"
	"staking_resolver/pkg/ss58"
)

const (
	payeeItem  = "Payee"
	bondedItem = "Bonded"
)

// twox hashes data with len/8 seeded xxhash64 rounds, little endian.
func twox(data []byte, size int) []byte {
	out := make([]byte, 0, size)
	for seed := uint64(0); len(out) < size; seed++ {
		d := xxhash.NewWithSeed(seed)
		_, _ = d.Write(data)
		out = binary.LittleEndian.AppendUint64(out, d.Sum64())
	}
	return out
}

func Twox128(data []byte) []byte { return twox(data, 16) }

// Twox64Concat is the storage map hasher used by Staking.Payee and Staking.Bonded.
func Twox64Concat(data []byte) []byte {
	return append(twox(data, 8), data...)
}

// StorageKey is the key of a Twox64Concat storage map entry.
func StorageKey(pallet, item string, key []byte) []byte {
	out := make([]byte, 0, 32+8+len(key))
	out = append(out, Twox128([]byte(pallet))...)
	out = append(out, Twox128([]byte(item))...)
	return append(out, Twox64Concat(key)...)
}

var payeeKinds = []domain.PayeeKind{
	domain.PayeeStaked,
	domain.PayeeStash,
	domain.PayeeController,
	domain.PayeeAccount,
	domain.PayeeNone,
}

// DecodeRewardDestination decodes a SCALE encoded RewardDestination. The
// Account variant is rendered under the given SS58 prefix.
func DecodeRewardDestination(raw []byte, prefix uint16) (domain.RewardDestination, error) {
	if len(raw) == 0 {
		return domain.RewardDestination{}, fmt.Errorf("reward destination: empty value")
	}
	if int(raw[0]) >= len(payeeKinds) {
		return domain.RewardDestination{}, fmt.Errorf("reward destination: unknown variant %d", raw[0])
	}
	dest := domain.RewardDestination{Kind: payeeKinds[raw[0]]}
	if dest.Kind != domain.PayeeAccount {
		if len(raw) != 1 {
			return domain.RewardDestination{}, fmt.Errorf("reward destination: %d trailing bytes", len(raw)-1)
		}
		return dest, nil
	}
	if len(raw) != 1+ss58.AccountIDLen {
		return domain.RewardDestination{}, fmt.Errorf("reward destination: account variant has %d bytes", len(raw)-1)
	}
	account, err := ss58.Encode(prefix, raw[1:])
	if err != nil {
		return domain.RewardDestination{}, err
	}
	dest.Account = account
	return dest, nil
}
