package bootstrap

import (
	"github.com/agrinethra/plant-health-relay/config"
	httpapi "github.com/agrinethra/plant-health-relay/internal/api/http"
	"github.com/agrinethra/plant-health-relay/internal/api/http/middleware"
	phhttp "github.com/agrinethra/plant-health-relay/internal/plant_health/http"
	"github.com/agrinethra/plant-health-relay/internal/plant_health/service"
	"github.com/gin-gonic/gin"
)

// BuildRouter wires the relay and liveness routes. APP_ENV=production puts
// gin in release mode before the engine is created.
func BuildRouter(cfg *config.Config) *gin.Engine {
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(CORS(cfg.CORS))

	client := service.NewKindwiseClient(cfg.Kindwise.BaseURL, cfg.Kindwise.APIKey, cfg.Kindwise.Timeout)
	relay := service.NewRelayService(client, cfg.Kindwise.MaxInFlight, nil)

	healthHandler := httpapi.NewHealthHandler(cfg.App.ServiceName, cfg.App.Version, cfg.Kindwise.APIKey != "", relay.Metrics())
	healthHandler.RegisterRoutes(r)

	phhttp.NewHandler(relay).Register(r)

	return r
}
