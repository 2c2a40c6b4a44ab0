package appconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocrud/hellocore/config"
)

func TestNewLoggerFactory(t *testing.T) {
	for _, format := range []string{"console", "zap"} {
		t.Run(format, func(t *testing.T) {
			factory, sync, err := NewLoggerFactory(config.LogSettings{Level: "debug", Format: format})
			require.NoError(t, err)
			require.NotNil(t, sync)
			assert.NotNil(t, factory.CreateLogger("test"))
		})
	}
}

func TestNewLoggerFactoryRejectsUnknown(t *testing.T) {
	_, _, err := NewLoggerFactory(config.LogSettings{Level: "loud", Format: "console"})
	assert.Error(t, err)

	_, _, err = NewLoggerFactory(config.LogSettings{Level: "info", Format: "json"})
	assert.Error(t, err)
}
