package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"chrono/core"
	"chrono/handler/render"
	"chrono/service/position"
	"chrono/service/report"

	"github.com/go-chi/chi"
)

// Handle handle rest api request
func Handle(ledger core.ILedger, params core.IParameterStore, tokens core.Tokens) http.Handler {
	h := &handler{
		ledger: ledger,
		params: params,
		tokens: tokens,
		now:    time.Now,
	}

	router := chi.NewRouter()
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFoundRequest(w, errors.New("not found"))
	})

	router.Get("/params", h.paramsHandler())
	router.Get("/tokens", h.tokensHandler())
	router.Get("/snapshot", h.snapshotHandler())
	router.Get("/curves", h.curvesHandler())
	router.Post("/memos", h.memoHandler())

	router.Route("/vaults", func(r chi.Router) {
		r.Get("/", h.vaultsHandler())
		r.Get("/{token}", h.vaultHandler())
	})

	router.Route("/lendings", func(r chi.Router) {
		r.Get("/", h.lendingsHandler())
		r.Get("/{id}", h.lendingHandler())
	})

	router.Route("/borrowings", func(r chi.Router) {
		r.Get("/", h.borrowingsHandler())
		r.Get("/{id}", h.borrowingHandler())
	})

	return router
}

type handler struct {
	ledger core.ILedger
	params core.IParameterStore
	tokens core.Tokens
	now    func() time.Time
}

// protocol parameters are read per request, amendments show up without a restart
func (h *handler) protocol(ctx context.Context) (core.ProtocolParameters, error) {
	params, err := h.params.Get(ctx)
	if err != nil {
		return core.ProtocolParameters{}, err
	}

	return *params, nil
}

func (h *handler) manager(ctx context.Context) (*position.Manager, error) {
	params, err := h.protocol(ctx)
	if err != nil {
		return nil, err
	}

	return position.New(h.ledger, params, h.tokens), nil
}

func (h *handler) reports(ctx context.Context) (*report.Service, error) {
	params, err := h.protocol(ctx)
	if err != nil {
		return nil, err
	}

	return report.New(h.ledger, params, h.tokens), nil
}
