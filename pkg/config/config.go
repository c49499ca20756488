package config

import (
    "errors"
    "fmt"
    "io/fs"
    "time"

    "github.com/spf13/pflag"
    "github.com/spf13/viper"
)

type Config struct {
    Server struct {
        Address string
    }
    Log struct {
        Level string `mapstructure:"LOG_LEVEL"`
    }
    Substrate struct {
        RPCHTTP       string `mapstructure:"SUBSTRATE_RPC_HTTP"`
        SS58Prefix    uint16 `mapstructure:"SS58_PREFIX"`
        StakingPallet string `mapstructure:"STAKING_PALLET"`
    }
    Retry struct {
        Timeout    time.Duration `mapstructure:"RPC_TIMEOUT"`
        MaxRetries int           `mapstructure:"RPC_MAX_RETRIES"`
        Backoff    time.Duration `mapstructure:"RPC_BACKOFF"`
    }
}

// Load reads defaults, then the optional config file (--config, default
// config.json), then the environment. args are the command line flags.
func Load(args []string) (*Config, error) {
    flags := pflag.NewFlagSet("staking-resolver", pflag.ContinueOnError)
    configFile := flags.String("config", "config.json", "path to the JSON config file")
    if err := flags.Parse(args); err != nil {
        return nil, err
    }

    v := viper.New()
    v.SetConfigFile(*configFile)
    v.AutomaticEnv()

    v.SetDefault("SERVER_ADDRESS", ":8080")
    v.SetDefault("LOG_LEVEL", "info")
    v.SetDefault("SUBSTRATE_RPC_HTTP", "")
    v.SetDefault("SS58_PREFIX", 0)
    v.SetDefault("STAKING_PALLET", "Staking")
    v.SetDefault("RPC_TIMEOUT", "10s")
    v.SetDefault("RPC_MAX_RETRIES", 1)
    v.SetDefault("RPC_BACKOFF", "100ms")

    if err := v.ReadInConfig(); err != nil {
        if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !isNotExist(err) {
            return nil, err
        }
    }

    cfg := &Config{}
    cfg.Server.Address = v.GetString("SERVER_ADDRESS")
    cfg.Log.Level = v.GetString("LOG_LEVEL")

    cfg.Substrate.RPCHTTP = v.GetString("SUBSTRATE_RPC_HTTP")
    prefix := v.GetInt("SS58_PREFIX")
    cfg.Substrate.StakingPallet = v.GetString("STAKING_PALLET")

    cfg.Retry.Timeout = v.GetDuration("RPC_TIMEOUT")
    cfg.Retry.MaxRetries = v.GetInt("RPC_MAX_RETRIES")
    cfg.Retry.Backoff = v.GetDuration("RPC_BACKOFF")

    if cfg.Server.Address == "" {
        return nil, fmt.Errorf("SERVER_ADDRESS must not be empty")
    }
    if cfg.Substrate.RPCHTTP == "" {
        return nil, fmt.Errorf("SUBSTRATE_RPC_HTTP must not be empty")
    }
    if prefix < 0 || prefix > 16383 {
        return nil, fmt.Errorf("SS58_PREFIX must be in [0, 16383]")
    }
    cfg.Substrate.SS58Prefix = uint16(prefix)
    if cfg.Substrate.StakingPallet == "" {
        return nil, fmt.Errorf("STAKING_PALLET must not be empty")
    }
    if cfg.Retry.Timeout <= 0 {
        return nil, fmt.Errorf("RPC_TIMEOUT must be > 0")
    }
    if cfg.Retry.MaxRetries < 1 {
        return nil, fmt.Errorf("RPC_MAX_RETRIES must be ≥ 1")
    }

    return cfg, nil
}

func isNotExist(err error) bool {
    return errors.Is(err, fs.ErrNotExist)
}
