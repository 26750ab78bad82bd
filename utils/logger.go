package utils

import (
	"log"
	"sync"

	"slotbook/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Global logger instance
var (
	Logger     *zap.Logger
	loggerOnce sync.Once
)

// NewLogger builds the logger for an environment. Production logs JSON at
// info unless level parses to something else; every other environment logs
// colored console output at debug.
func NewLogger(env, level string) (*zap.Logger, error) {
	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
		if lvl, err := zapcore.ParseLevel(level); level != "" && err == nil {
			cfg.Level = zap.NewAtomicLevelAt(lvl)
		}
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return cfg.Build(zap.Fields(zap.String("service", "slotbook")))
}

// InitializeLogger sets up the global logger from AppConfig.
func InitializeLogger() {
	l, err := NewLogger(config.GetEnv(), config.AppConfig.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	Logger = l
	zap.ReplaceGlobals(Logger)
}

// GetLogger retrieves the global logger
func GetLogger() *zap.Logger {
	loggerOnce.Do(func() {
		if Logger == nil {
			InitializeLogger()
		}
	})
	return Logger
}
