package http

import (
	"net/http"

	"github.com/go-chi/cors"
	"github.com/mauv0809/crispy-paddle/internal/auth"
	"github.com/mauv0809/crispy-paddle/internal/config"
	"github.com/mauv0809/crispy-paddle/internal/league"
	"github.com/mauv0809/crispy-paddle/internal/metrics"
	"github.com/mauv0809/crispy-paddle/internal/pubsub"
)

func NewServer(leagueSvc league.Service, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, authorizer *auth.Authorizer, pubsubClient pubsub.PubSubClient) *Server {
	server := &Server{
		League:         leagueSvc,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Authorizer:     authorizer,
		Pubsub:         pubsubClient,
		Router:         http.NewServeMux(),
	}

	server.routes()

	// CORS wraps the whole router so preflight requests are answered
	// before method-specific patterns get a chance to 405 them.
	server.handler = cors.AllowAll().Handler(server.Router)
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// Admin-only routes additionally go through the identity and admin
	// middlewares.
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(s.HealthCheckHandler(), paramsMiddleware))

	s.Router.Handle("GET /api/players", Chain(s.ListPlayersHandler(), paramsMiddleware))
	s.Router.Handle("POST /api/players", Chain(s.CreatePlayerHandler(), paramsMiddleware))
	s.Router.Handle("GET /api/players/{id}", Chain(s.GetPlayerHandler(), paramsMiddleware))

	s.Router.Handle("GET /api/sites", Chain(s.ListSitesHandler(), paramsMiddleware))
	s.Router.Handle("POST /api/sites", Chain(s.CreateSiteHandler(), paramsMiddleware, identityMiddleware, s.adminOnly))

	s.Router.Handle("GET /api/games", Chain(s.ListGamesHandler(), paramsMiddleware))
	s.Router.Handle("POST /api/games", Chain(s.RecordGameHandler(), paramsMiddleware))

	s.Router.Handle("GET /api/tournaments", Chain(s.ListTournamentsHandler(), paramsMiddleware))
	s.Router.Handle("POST /api/tournaments", Chain(s.CreateTournamentHandler(), paramsMiddleware, identityMiddleware, s.adminOnly))

	s.Router.Handle("POST /pubsub/games", Chain(s.GameReportsPushHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}
