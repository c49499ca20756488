package main

import (
    stdhttp "net/http"
    "os"
    "os/signal"
    "syscall"
    "time"
    "context"
    "fmt"

    "go.uber.org/zap"
    "github.com/ethereum/go-ethereum/rpc"

    "staking_resolver/internal/adapter/blockcache"
    "staking_resolver/internal/adapter/substrate"
    "staking_resolver/internal/domain"
    "staking_resolver/internal/handler"
    "staking_resolver/internal/metrics"
    "staking_resolver/internal/usecase"
    httpPkg "staking_resolver/pkg/http"
    "staking_resolver/pkg/config"
    "staking_resolver/pkg/logger"
)

func main() {

    cfg, err := config.Load(os.Args[1:])
    if err != nil {
        fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
        os.Exit(1)
    }

    log, err := logger.Init(cfg.Log.Level)
    if err != nil {
        panic(err)
    }
    defer func() {
        if err := log.Sync(); err != nil {
            fmt.Fprintf(os.Stderr, "error syncing logger: %v\n", err)
        }
    }()
    zap.ReplaceGlobals(log)

    dialCtx, cancelDial := context.WithTimeout(context.Background(), cfg.Retry.Timeout)
    rpcClient, err := rpc.DialContext(dialCtx, cfg.Substrate.RPCHTTP)
    cancelDial()
    if err != nil {
        zap.L().Fatal("dial substrate rpc", zap.Error(err))
    }
    defer rpcClient.Close()

    stakingClient, err := substrate.NewStakingClient(
        rpcClient,
        cfg.Substrate.StakingPallet,
        cfg.Substrate.SS58Prefix,
        cfg.Retry.Timeout,
        cfg.Retry.MaxRetries,
        cfg.Retry.Backoff,
    )
    if err != nil {
        zap.L().Fatal("init staking client", zap.Error(err))
    }

    // Both caches live for the whole process and hold one block each.
    payeeCache, err := blockcache.NewBlockCache[domain.RewardDestination]()
    if err != nil {
        zap.L().Fatal("init reward destination cache", zap.Error(err))
    }
    controllerCache, err := blockcache.NewBlockCache[domain.AccountAddress]()
    if err != nil {
        zap.L().Fatal("init controller cache", zap.Error(err))
    }

    m := metrics.NewResolverMetrics()
    rewardsUC := usecase.NewRewardDestinationUseCase(stakingClient, payeeCache, m)
    controllersUC := usecase.NewControllerUseCase(stakingClient, rewardsUC, controllerCache, m)

    r := httpPkg.NewRouter(handler.NewHandler(rewardsUC, controllersUC), m)

    srv := &stdhttp.Server{
        Addr:    cfg.Server.Address,
        Handler: r,
    }
    go func() {
        zap.L().Info("starting server",
            zap.String("address", cfg.Server.Address),
            zap.String("node", cfg.Substrate.RPCHTTP),
        )
        if err := srv.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
            zap.L().Fatal("listen error", zap.Error(err))
        }
    }()

    stop := make(chan os.Signal, 1)
    signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
    <-stop

    zap.L().Info("shutting down…")
    ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()
    if err := srv.Shutdown(ctx); err != nil {
        zap.L().Error("shutdown error", zap.Error(err))
    }
    zap.L().Info("server stopped")
}
