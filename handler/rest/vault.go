package rest

import (
	"context"
	"net/http"

	"chrono/core"
	"chrono/handler/render"
	"chrono/handler/views"
	"chrono/internal/curve"

	"github.com/go-chi/chi"
)

func (h *handler) vaultViews(ctx context.Context) ([]*views.Vault, error) {
	params, err := h.protocol(ctx)
	if err != nil {
		return nil, err
	}

	reports, err := h.reports(ctx)
	if err != nil {
		return nil, err
	}

	snapshot, err := reports.Snapshot(ctx, h.now())
	if err != nil {
		return nil, err
	}

	engine := curve.New(params)
	out := make([]*views.Vault, 0, len(snapshot.Vaults))
	for _, info := range snapshot.Vaults {
		out = append(out, &views.Vault{
			VaultInfo: info,
			BorrowAPY: engine.BorrowAPY(info.UtilizationRate),
			SupplyAPY: engine.SupplyAPY(info.UtilizationRate),
		})
	}

	return out, nil
}

func (h *handler) vaultsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vaults, err := h.vaultViews(r.Context())
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, vaults)
	}
}

func (h *handler) vaultHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := h.tokens.Find(core.TokenTag(chi.URLParam(r, "token")))
		if !ok {
			render.Error(w, core.ErrUnsupportedToken)
			return
		}

		vaults, err := h.vaultViews(r.Context())
		if err != nil {
			render.Error(w, err)
			return
		}

		for _, v := range vaults {
			if v.TokenType == token.Tag {
				render.JSON(w, v)
				return
			}
		}

		render.Error(w, core.ErrNotFound)
	}
}
