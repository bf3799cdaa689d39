package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/strideapp/stride/backend/internal/handler/breathing"
	exercisehandler "github.com/strideapp/stride/backend/internal/handler/exercise"
	journalhandler "github.com/strideapp/stride/backend/internal/handler/journal"
	resourcehandler "github.com/strideapp/stride/backend/internal/handler/resource"
	sessionhandler "github.com/strideapp/stride/backend/internal/handler/session"
	triagehandler "github.com/strideapp/stride/backend/internal/handler/triage"
	middlewarePkg "github.com/strideapp/stride/backend/internal/middleware"
	exmodel "github.com/strideapp/stride/backend/internal/model/exercise"
	resourcemodel "github.com/strideapp/stride/backend/internal/model/resource"
	exerciseservice "github.com/strideapp/stride/backend/internal/service/exercise"
	journalservice "github.com/strideapp/stride/backend/internal/service/journal"
	sessionservice "github.com/strideapp/stride/backend/internal/service/session"
	triageservice "github.com/strideapp/stride/backend/internal/service/triage"
)

// Deps collects the services the router wires into handlers.
type Deps struct {
	Sessions  *sessionservice.Service
	Triage    *triageservice.Service
	Exercises *exerciseservice.Service
	Journal   *journalservice.Service
	Catalog   exmodel.Store
	Resources resourcemodel.Store
}

// NewRouter wires HTTP routes to core services.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	sessionHandler := sessionhandler.New(deps.Sessions)
	triageHandler := triagehandler.New(deps.Sessions, deps.Triage)
	exerciseHandler := exercisehandler.New(deps.Catalog, deps.Exercises)
	journalHandler := journalhandler.New(deps.Journal, deps.Catalog)
	resourceHandler := resourcehandler.New(deps.Resources)
	breathingHandler := breathing.New(deps.Journal)

	r.Route("/api", func(api chi.Router) {
		sessionHandler.RegisterRoutes(api)
		triageHandler.RegisterRoutes(api)
		exerciseHandler.RegisterRoutes(api)
		journalHandler.RegisterRoutes(api)
		resourceHandler.RegisterRoutes(api)
		breathingHandler.RegisterRoutes(api)
	})

	return r
}
