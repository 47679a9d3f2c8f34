package router

import (
	"github.com/homecove/homecove/internal/application"
	"github.com/homecove/homecove/internal/container"
	"github.com/homecove/homecove/internal/infrastructure/memory"
	pginfra "github.com/homecove/homecove/internal/infrastructure/postgres"
	handlers "github.com/homecove/homecove/internal/interface/http"
	"github.com/homecove/homecove/internal/router/modules"
	"github.com/homecove/homecove/pkg/helpers"
)

// buildFacade assembles the orchestrator over whichever backend is
// configured: Postgres when a pool exists, in-memory otherwise. Every
// optional side channel comes from the container and may be nil.
func buildFacade() *application.Facade {
	cfg := container.GetConfig()

	stores := memory.NewStores()
	if pool := container.GetPGPool(); pool != nil {
		stores = pginfra.NewStores(pool)
	}

	f := application.NewFacade(stores, container.GetJWT(), container.GetLogger())
	f.Redis = container.GetRedis()
	f.ES = container.GetES()
	f.ESIndex = cfg.ESPlacesIndex
	f.GCS = container.GetGCS()
	f.GCSBucket = cfg.GCSBucket
	f.Pub = container.GetRabbitPub()
	f.AppName = cfg.AppName
	f.MailSend = cfg.MailSendEnabled
	return f
}

// InitModules wires every feature module into the registry. Called once
// during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	facade := buildFacade()
	container.SetFacade(facade)

	cookies := helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure)

	authH := handlers.NewAuthHandler(facade, logger, cookies)
	accountH := handlers.NewAccountHandler(facade, logger)
	placeH := handlers.NewListingHandler(facade, logger)
	amenityH := handlers.NewAmenityHandler(facade, logger)
	reviewH := handlers.NewReviewHandler(facade, logger)

	r.Add(modules.NewAuthModule(authH))
	r.Add(modules.NewAccountModule(accountH))
	r.Add(modules.NewPlaceModule(placeH, reviewH))
	r.Add(modules.NewAmenityModule(amenityH))
	r.Add(modules.NewReviewModule(reviewH))
}
