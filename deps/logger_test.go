package deps

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/harshit2704/capture-sync/env"
)

func TestNewZapLogger(t *testing.T) {
	logger, err := NewZapLogger()
	require.NoError(t, err)
	require.NotNil(t, logger)
}

func TestNewZapLoggerJSON(t *testing.T) {
	_ = os.Setenv(env.LogJSON, "true")
	defer func() {
		_ = os.Unsetenv(env.LogJSON)
	}()

	logger, err := NewZapLogger()
	require.NoError(t, err)
	require.NotNil(t, logger)
}
