package substrate

import (
    "context"
    stderrors "errors"
    "fmt"
    "time"

    "github.com/ethereum/go-ethereum/common/hexutil"
    "github.com/ethereum/go-ethereum/rpc"
    "go.uber.org/zap"

    "staking_resolver/internal/domain"
    apierr "staking_resolver/internal/errors"
    "staking_resolver/internal/port"
    "staking_resolver/internal/retry"
    "staking_resolver/pkg/ss58"
)

const getStorageMethod = "state_getStorage"

// StakingClient reads staking pallet storage from a Substrate node over
// JSON-RPC.
type StakingClient struct {
    rpcClient  *rpc.Client
    pallet     string
    ss58Prefix uint16
    timeout    time.Duration
    maxRetries int
    backoff    time.Duration
}

func NewStakingClient(
    rpcClient *rpc.Client,
    pallet string,
    ss58Prefix uint16,
    requestTimeout time.Duration,
    maxRetries int,
    backoff time.Duration,
) (port.StakingQueryClient, error) {
    if rpcClient == nil {
        return nil, fmt.Errorf("staking client: nil rpc client")
    }
    if pallet == "" {
        return nil, fmt.Errorf("staking client: empty pallet name")
    }
    return &StakingClient{
        rpcClient:  rpcClient,
        pallet:     pallet,
        ss58Prefix: ss58Prefix,
        timeout:    requestTimeout,
        maxRetries: maxRetries,
        backoff:    backoff,
    }, nil
}

// QueryPayee reads Staking.Payee. A missing entry is the pallet default, Staked.
func (sc *StakingClient) QueryPayee(ctx context.Context, account domain.AccountAddress) (domain.RewardDestination, error) {
    raw, err := sc.getStorage(ctx, payeeItem, account)
    if err != nil {
        return domain.RewardDestination{}, err
    }
    if raw == nil {
        return domain.RewardDestination{Kind: domain.PayeeStaked}, nil
    }
    dest, err := DecodeRewardDestination(*raw, sc.ss58Prefix)
    if err != nil {
        zap.L().Error("decoding payee failed", zap.String("account", account), zap.Error(err))
        return domain.RewardDestination{}, fmt.Errorf("%w: %w", apierr.ErrRemoteQuery, err)
    }
    return dest, nil
}

// QueryBonded reads Staking.Bonded, "" when the stash is not bonded.
func (sc *StakingClient) QueryBonded(ctx context.Context, account domain.AccountAddress) (domain.AccountAddress, error) {
    raw, err := sc.getStorage(ctx, bondedItem, account)
    if err != nil {
        return "", err
    }
    if raw == nil {
        return "", nil
    }
    if len(*raw) != ss58.AccountIDLen {
        zap.L().Error("unexpected bonded value", zap.String("account", account), zap.Int("len", len(*raw)))
        return "", fmt.Errorf("%w: bonded value has %d bytes", apierr.ErrRemoteQuery, len(*raw))
    }
    return ss58.Encode(sc.ss58Prefix, *raw)
}

// getStorage returns nil when the node has no value under the key.
func (sc *StakingClient) getStorage(ctx context.Context, item string, account domain.AccountAddress) (*hexutil.Bytes, error) {
    _, accountID, err := ss58.Decode(account)
    if err != nil {
        return nil, fmt.Errorf("%w: %w", apierr.ErrInvalidAccount, err)
    }
    key := hexutil.Encode(StorageKey(sc.pallet, item, accountID))

    var out *hexutil.Bytes
    err = retry.Do(ctx, sc.maxRetries, sc.backoff, func() error {
        callCtx, cancel := ctx, context.CancelFunc(func() {})
        if sc.timeout > 0 {
            callCtx, cancel = context.WithTimeout(ctx, sc.timeout)
        }
        defer cancel()
        out = nil
        return sc.rpcClient.CallContext(callCtx, &out, getStorageMethod, key)
    })
    if err != nil {
        if stderrors.Is(err, context.DeadlineExceeded) {
            zap.L().Warn("storage request timed out", zap.String("item", item), zap.String("account", account))
            return nil, apierr.ErrRequestTimeout
        }
        zap.L().Error("storage request failed", zap.String("item", item), zap.String("account", account), zap.Error(err))
        return nil, fmt.Errorf("%w: %s.%s: %w", apierr.ErrRemoteQuery, sc.pallet, item, err)
    }
    return out, nil
}
