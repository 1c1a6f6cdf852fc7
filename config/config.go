package config

import (
	"time"

	"chrono/core"

	configUtil "github.com/fox-one/pkg/config"
)

// Load load config file, an empty file name loads the defaults and the environment only
func Load(configFile string, config *core.Config) error {
	configUtil.AutomaticLoadEnv("CHRONO")

	// file values override field by field
	config.Params = core.DefaultProtocolParameters()
	if configFile != "" {
		if err := configUtil.LoadYaml(configFile, config); err != nil {
			return err
		}
	}

	defaults(config)
	return config.Params.Validate()
}

func defaults(config *core.Config) {
	if config.App.Location == "" {
		config.App.Location = "UTC"
	}

	if config.App.Interval <= 0 {
		config.App.Interval = 100 * time.Millisecond
	}

	if len(config.Tokens) == 0 {
		config.Tokens = core.DefaultTokens()
	}

	if config.Log.MaxSizeMB <= 0 {
		config.Log.MaxSizeMB = 100
	}

	if config.Report.Schedule == "" {
		config.Report.Schedule = "@every 1m"
	}
}
