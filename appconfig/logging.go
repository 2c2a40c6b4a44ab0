package appconfig

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/gocrud/hellocore/config"
	"github.com/gocrud/hellocore/logging"
)

// NewLoggerFactory 按配置构建日志工厂。返回的 sync 用于退出前刷新 zap 缓冲。
func NewLoggerFactory(s config.LogSettings) (logging.LoggerFactory, func() error, error) {
	level, err := logging.ParseLevel(s.Level)
	if err != nil {
		return nil, nil, err
	}

	builder := logging.NewLoggingBuilder().SetMinimumLevel(level)
	sync := func() error { return nil }

	switch s.Format {
	case "", "console":
		builder.AddConsole()
	case "zap":
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		z, err := cfg.Build()
		if err != nil {
			return nil, nil, fmt.Errorf("appconfig: build zap logger: %w", err)
		}
		provider := logging.NewZapLoggerProvider(z)
		builder.AddProvider(provider)
		sync = provider.Sync
	default:
		return nil, nil, fmt.Errorf("appconfig: unknown log format %q", s.Format)
	}

	return builder.Build(), sync, nil
}
