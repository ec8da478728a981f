package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jaminalder/codex-hex/internal/app"
)

// NewServer wires the read-only spectator routes and returns an http.Handler.
// It also installs the board fragment as the service's broadcast payload.
func NewServer(s *app.Service) http.Handler {
	r := chi.NewRouter()
	h := &handlers{svc: s, tpl: loadTemplates()}
	s.SetRenderer(h.renderBoard)
	r.Get("/", h.index)
	r.Route("/game/{id}", func(r chi.Router) {
		r.Get("/", h.view)
		r.Get("/board", h.board)
		r.Get("/events", h.events)
	})
	return r
}
