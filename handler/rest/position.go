package rest

import (
	"net/http"

	"chrono/core"
	"chrono/handler/param"
	"chrono/handler/render"
	"chrono/handler/views"
	"chrono/internal/curve"
	"chrono/internal/interest"

	"github.com/shopspring/decimal"
)

type ownerQuery struct {
	Owner string `json:"owner" valid:"required"`
}

func (h *handler) lendingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var query ownerQuery
		if err := param.Binding(r, &query); err != nil {
			render.Error(w, err)
			return
		}

		m, err := h.manager(ctx)
		if err != nil {
			render.Error(w, err)
			return
		}

		positions, err := m.LendingsOf(ctx, query.Owner)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, positions)
	}
}

func (h *handler) lendingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := param.ID(r, "id")
		if err != nil {
			render.Error(w, err)
			return
		}

		m, err := h.manager(ctx)
		if err != nil {
			render.Error(w, err)
			return
		}

		p, found, err := m.LendingPosition(ctx, id)
		if err != nil {
			render.Error(w, err)
			return
		}

		if !found {
			render.Error(w, core.ErrNotFound)
			return
		}

		view := views.Lending{LendingPosition: p, AccruedYield: decimal.Zero}
		if p.IsActive {
			vault, err := m.Vault(ctx, p.TokenType)
			if err != nil {
				render.Error(w, err)
				return
			}

			yield := interest.NewYieldService(curve.New(m.Params()))
			if view.AccruedYield, err = yield.Yield(ctx, p, vault, h.now()); err != nil {
				render.Error(w, err)
				return
			}
		}

		render.JSON(w, view)
	}
}

func (h *handler) borrowingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var query ownerQuery
		if err := param.Binding(r, &query); err != nil {
			render.Error(w, err)
			return
		}

		m, err := h.manager(ctx)
		if err != nil {
			render.Error(w, err)
			return
		}

		positions, err := m.BorrowingsOf(ctx, query.Owner)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, positions)
	}
}

func (h *handler) borrowingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := param.ID(r, "id")
		if err != nil {
			render.Error(w, err)
			return
		}

		m, err := h.manager(ctx)
		if err != nil {
			render.Error(w, err)
			return
		}

		p, found, err := m.BorrowingPosition(ctx, id)
		if err != nil {
			render.Error(w, err)
			return
		}

		if !found {
			render.Error(w, core.ErrNotFound)
			return
		}

		reports, err := h.reports(ctx)
		if err != nil {
			render.Error(w, err)
			return
		}

		detail, err := reports.BorrowingDetail(ctx, p, h.now())
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, detail)
	}
}
