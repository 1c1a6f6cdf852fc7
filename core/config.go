package core

import (
	"time"

	"github.com/fox-one/mixin-sdk-go"
	"github.com/fox-one/pkg/store/db"
)

// Config chrono config
type Config struct {
	App         App                `json:"app"`
	DB          db.Config          `json:"db"`
	Log         Log                `json:"log"`
	Wallet      MainWallet         `json:"wallet"`
	PriceOracle PriceOracle        `json:"price_oracle"`
	Tokens      Tokens             `json:"tokens"`
	Report      Report             `json:"report"`
	Params      ProtocolParameters `json:"params"`
}

// App app config
type App struct {
	Location string `json:"location"`
	// worker loop interval of the payee and cashier
	Interval time.Duration `json:"interval"`
}

// Log log output
type Log struct {
	// empty means stderr
	File       string `json:"file"`
	MaxSizeMB  int    `json:"max_size_mb"`
	MaxBackups int    `json:"max_backups"`
}

// MainWallet mixin dapp config
type MainWallet struct {
	mixin.Keystore
	ClientSecret string `json:"client_secret"`
	Pin          string `json:"pin"`
}

// PriceOracle price oracle config
type PriceOracle struct {
	EndPoint string `json:"end_point"`
}

// Report snapshot export config
type Report struct {
	Output string `json:"output"`
	// cron schedule
	Schedule string `json:"schedule"`
}
