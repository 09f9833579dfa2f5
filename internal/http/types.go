package http

import (
	"net/http"

	"github.com/mauv0809/crispy-paddle/internal/auth"
	"github.com/mauv0809/crispy-paddle/internal/config"
	"github.com/mauv0809/crispy-paddle/internal/league"
	"github.com/mauv0809/crispy-paddle/internal/metrics"
	"github.com/mauv0809/crispy-paddle/internal/pubsub"
)

type Server struct {
	League         league.Service
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Authorizer     *auth.Authorizer
	Pubsub         pubsub.PubSubClient
	Router         *http.ServeMux

	handler http.Handler
}
