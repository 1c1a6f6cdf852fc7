package handler

import (
	"errors"
	"net/http"

	"chrono/core"
	"chrono/handler/hc"
	"chrono/handler/render"
	"chrono/handler/rest"

	"github.com/fox-one/pkg/logger"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

// Server server
type Server struct {
	ledger  core.ILedger
	params  core.IParameterStore
	tokens  core.Tokens
	version string
}

// New new server function
func New(
	ledger core.ILedger,
	params core.IParameterStore,
	tokens core.Tokens,
	version string,
) Server {
	return Server{
		ledger:  ledger,
		params:  params,
		tokens:  tokens,
		version: version,
	}
}

// Handler http handler of the read api
func (s Server) Handler() http.Handler {
	mux := chi.NewMux()
	mux.Use(middleware.Recoverer)
	mux.Use(middleware.StripSlashes)
	mux.Use(cors.AllowAll().Handler)
	mux.Use(logger.WithRequestID)
	mux.Use(middleware.Logger)

	mux.Mount("/hc", hc.Handle(s.version))
	mux.Mount("/metrics", promhttp.Handler())
	mux.Mount("/api", s.HandleRestAPI())

	return mux
}

// HandleRestAPI handle restful apis
func (s Server) HandleRestAPI() http.Handler {
	r := chi.NewRouter()
	r.Use(render.WrapResponse(true))
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFoundRequest(w, errors.New("not found"))
	})

	r.Mount("/", rest.Handle(s.ledger, s.params, s.tokens))
	return r
}
