package config

import (
	"testing"
	"time"

	"chrono/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var cfg core.Config
	require.Nil(t, Load("", &cfg))

	assert.Equal(t, "UTC", cfg.App.Location)
	assert.Equal(t, 100*time.Millisecond, cfg.App.Interval)
	assert.Equal(t, core.DefaultTokens().Tags(), cfg.Tokens.Tags())
	assert.Equal(t, core.DefaultProtocolParameters(), cfg.Params)
}
