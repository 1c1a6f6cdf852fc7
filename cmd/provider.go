package cmd

import (
	"time"

	"chrono/core"
	"chrono/service/oracle"
	"chrono/service/params"
	"chrono/service/report"
	"chrono/service/wallet"
	"chrono/store/ledger"

	"github.com/fox-one/mixin-sdk-go"
	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	propertystore "github.com/fox-one/pkg/store/property"
)

func provideDatabase() *db.DB {
	return db.MustOpen(cfg.DB)
}

func provideDApp() *core.Wallet {
	c, err := mixin.NewFromKeystore(&cfg.Wallet.Keystore)
	if err != nil {
		panic(err)
	}

	return &core.Wallet{
		Client: c,
		Pin:    cfg.Wallet.Pin,
	}
}

// ---------------store-----------------------------------------

func provideLedger(db *db.DB) core.ILedger {
	return ledger.New(db)
}

func providePropertyStore(db *db.DB) property.Store {
	return propertystore.New(db)
}

func provideParameterStore(props property.Store) core.IParameterStore {
	return params.Cache(params.New(props, cfg.Params), time.Minute)
}

// ------------------service------------------------------------

func provideWalletService(dapp *core.Wallet) core.IWalletService {
	return wallet.New(dapp)
}

func providePriceService() core.IPriceOracleService {
	return oracle.New(cfg.PriceOracle)
}

func provideReportService(ledger core.ILedger, params core.ProtocolParameters) core.IReportService {
	return report.New(ledger, params, cfg.Tokens)
}
