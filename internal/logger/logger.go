package logger

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/recall-bot/internal/config"
)

// New builds a production logger in production and a development logger
// elsewhere. cfg.LogLevel overrides the default level when set.
func New(cfg *config.Config) (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	if cfg.Env == "production" {
		zcfg = zap.NewProductionConfig()
	}

	if cfg.LogLevel != "" {
		level, err := zap.ParseAtomicLevel(cfg.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		zcfg.Level = level
	}

	return zcfg.Build()
}
