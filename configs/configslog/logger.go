package configslog

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the structured logger shared by the whole application.
// SLog is its sugared counterpart for printf-style messages.
var (
	Log  *zap.Logger
	SLog *zap.SugaredLogger
)

// InitLogger configures the global loggers. APP_ENV=production switches to
// JSON output; anything else uses the development console encoder.
func InitLogger() {
	var cfg zap.Config
	if os.Getenv("APP_ENV") == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	logger, err := cfg.Build(zap.AddCallerSkip(0))
	if err != nil {
		panic("logger could not be initialized: " + err.Error())
	}

	Log = logger
	SLog = logger.Sugar()
}

// SyncLogger flushes buffered entries. Meant to be deferred from main.
func SyncLogger() {
	if Log != nil {
		_ = Log.Sync()
	}
}
