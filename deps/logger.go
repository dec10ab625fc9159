package deps

import (
	"fmt"

	"github.com/blendle/zapdriver"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/harshit2704/capture-sync/env"
)

func NewZapLogger() (*zap.SugaredLogger, error) {
	config := zapdriver.NewProductionConfig()

	// colored console output by default; LOG_JSON=true for log collectors
	if env.GetOptional(env.LogJSON, "false") != "true" {
		config.Encoding = "console"
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("zap.Build() failed: %v", err)
	}

	return logger.Sugar(), nil
}
