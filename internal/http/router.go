package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"salesdrive/internal/http/handlers"
	middlewarex "salesdrive/internal/http/middleware"
)

// RouterDependencies holds all dependencies for the HTTP router
type RouterDependencies struct {
	WebhookToken string
	Receiver     handlers.Receiver
	Events       handlers.EventLister
	Replay       handlers.Replayer
	Logger       zerolog.Logger
}

// NewRouter creates the webhook receiver router
func NewRouter(deps RouterDependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middlewarex.RequestLogger(deps.Logger))
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/webhooks", func(r chi.Router) {
		r.Use(middlewarex.TokenAuth(deps.WebhookToken))
		r.Post("/salesdrive", handlers.SalesDriveWebhook(deps.Receiver))
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(middlewarex.TokenAuth(deps.WebhookToken))
		r.Get("/events", handlers.ListEvents(deps.Events))
		r.Post("/events/replay", handlers.ReplayEvents(deps.Replay))
	})

	return r
}
