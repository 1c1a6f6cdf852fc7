package vault

import (
	"context"

	"chrono/core"
)

// Service vault rollup reconciliation
type Service struct {
	ledger core.ILedger
	tokens core.Tokens
}

// New new vault service
func New(ledger core.ILedger, tokens core.Tokens) *Service {
	return &Service{
		ledger: ledger,
		tokens: tokens,
	}
}

// Recompute rebuild every token rollup from the active positions.
// Reserves and the interest pool are not derivable and are copied from the stored rollup.
func (s *Service) Recompute(ctx context.Context) ([]*core.VaultAggregate, error) {
	var out []*core.VaultAggregate
	err := s.ledger.Tx(ctx, func(tx core.ILedger) error {
		vaults := make(map[core.TokenTag]*core.VaultAggregate, len(s.tokens))
		for _, token := range s.tokens {
			stored, err := tx.Vaults().Find(ctx, token.Tag)
			if err != nil {
				return err
			}

			v := core.NewVault(token.Tag)
			v.ID = stored.ID
			v.Version = stored.Version
			v.Reserves = stored.Reserves
			v.InterestPool = stored.InterestPool
			vaults[token.Tag] = v
			out = append(out, v)
		}

		lendings, err := tx.Lendings().ListActive(ctx)
		if err != nil {
			return err
		}

		for _, p := range lendings {
			if v, ok := vaults[p.TokenType]; ok {
				v.TotalDeposited = v.TotalDeposited.Add(p.Amount)
				v.ActiveLendCount++
			}
		}

		borrowings, err := tx.Borrowings().ListActive(ctx)
		if err != nil {
			return err
		}

		for _, p := range borrowings {
			if v, ok := vaults[p.BorrowTokenType]; ok {
				v.TotalBorrowed = v.TotalBorrowed.Add(p.BorrowAmount)
				v.ActiveBorrowCount++
			}

			if v, ok := vaults[p.CollateralType]; ok {
				v.TotalCollateral = v.TotalCollateral.Add(p.CollateralAmount)
			}
		}

		return nil
	})

	return out, err
}

// Drift stored rollup that disagrees with its positions
type Drift struct {
	Stored     *core.VaultAggregate `json:"stored"`
	Recomputed *core.VaultAggregate `json:"recomputed"`
}

// Reconcile compare the stored rollups with the recomputed ones
func (s *Service) Reconcile(ctx context.Context) ([]*Drift, error) {
	recomputed, err := s.Recompute(ctx)
	if err != nil {
		return nil, err
	}

	var drifts []*Drift
	for _, v := range recomputed {
		stored, err := s.ledger.Vaults().Find(ctx, v.TokenType)
		if err != nil {
			return nil, err
		}

		if !stored.Equal(v) {
			drifts = append(drifts, &Drift{Stored: stored, Recomputed: v})
		}
	}

	return drifts, nil
}
