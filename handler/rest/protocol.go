package rest

import (
	"net/http"

	"chrono/core"
	"chrono/handler/param"
	"chrono/handler/render"
	"chrono/handler/views"
	"chrono/internal/curve"

	"github.com/shopspring/decimal"
	"github.com/twitchtv/twirp"
)

func (h *handler) paramsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := h.protocol(r.Context())
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, params)
	}
}

func (h *handler) tokensHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, h.tokens)
	}
}

func (h *handler) snapshotHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		reports, err := h.reports(ctx)
		if err != nil {
			render.Error(w, err)
			return
		}

		snapshot, err := reports.Snapshot(ctx, h.now())
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, snapshot)
	}
}

func (h *handler) curvesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var query struct {
			Duration    *uint64 `json:"duration"`
			Utilization string  `json:"utilization"`
		}
		if err := param.Binding(r, &query); err != nil {
			render.Error(w, err)
			return
		}

		params, err := h.protocol(r.Context())
		if err != nil {
			render.Error(w, err)
			return
		}

		engine := curve.New(params)
		view := views.Curves{}

		if query.Duration != nil {
			if !params.DurationAllowed(*query.Duration) {
				render.Error(w, core.ErrMaxDurationExceeded)
				return
			}

			view.Points = append(view.Points, &views.CurvePoint{
				DurationMinutes:      *query.Duration,
				LTV:                  engine.LTV(*query.Duration),
				LiquidationThreshold: engine.LT(*query.Duration),
			})
		} else {
			for _, p := range engine.Points() {
				view.Points = append(view.Points, &views.CurvePoint{
					DurationMinutes:      p.Minutes,
					LTV:                  p.LTV,
					LiquidationThreshold: p.LT,
				})
			}
		}

		if query.Utilization != "" {
			u, err := decimal.NewFromString(query.Utilization)
			if err != nil {
				render.Error(w, twirp.InvalidArgumentError("utilization", err.Error()))
				return
			}

			view.Rates = &views.Rates{
				Utilization: u,
				BorrowAPY:   engine.BorrowAPY(u),
				SupplyAPY:   engine.SupplyAPY(u),
			}
		}

		render.JSON(w, view)
	}
}
