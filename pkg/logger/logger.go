package logger

import (
    "go.uber.org/zap"
    "go.uber.org/zap/zapcore"
)

// Init builds the production logger at the given level ("info" when empty).
func Init(level string) (*zap.Logger, error) {
    cfg := zap.NewProductionConfig()
    if level != "" {
        lvl, err := zapcore.ParseLevel(level)
        if err != nil {
            return nil, err
        }
        cfg.Level = zap.NewAtomicLevelAt(lvl)
    }
    return cfg.Build()
}
