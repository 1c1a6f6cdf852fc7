package oracle

import (
	"context"
	"fmt"
	"strings"

	"chrono/core"
	"chrono/pkg/resthttp"

	"github.com/fox-one/pkg/logger"
)

// PriceService pull usd tickers from the configured endpoint
type PriceService struct {
	endpoint string
}

// New new oracle price service
func New(cfg core.PriceOracle) core.IPriceOracleService {
	return &PriceService{
		endpoint: strings.TrimSuffix(cfg.EndPoint, "/"),
	}
}

// PullPriceTicker pull price ticker of the token symbol
func (s *PriceService) PullPriceTicker(ctx context.Context, token *core.Token) (*core.PriceTicker, error) {
	url := fmt.Sprintf("%s/api/v2/tickers/%s", s.endpoint, token.Symbol)
	logger.FromContext(ctx).Debugln("pull price:", url)

	resp, err := resthttp.Request(ctx).Get(url)
	if err != nil {
		return nil, err
	}

	var ticker core.PriceTicker
	if err := resthttp.ParseResponse(resp, &ticker); err != nil {
		return nil, fmt.Errorf("pull ticker %s: %w", token.Symbol, err)
	}

	if ticker.Symbol == "" {
		ticker.Symbol = token.Symbol
	}

	return &ticker, nil
}
