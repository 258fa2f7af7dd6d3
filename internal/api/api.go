package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/ougirez/eracalc/internal/api/controller"
	"github.com/ougirez/eracalc/internal/pkg/constants"
	"github.com/ougirez/eracalc/internal/pkg/logger"
	"github.com/ougirez/eracalc/internal/pkg/store"
	"github.com/ougirez/eracalc/internal/service/auth"
	"github.com/ougirez/eracalc/internal/service/caravan"
	"github.com/ougirez/eracalc/internal/service/catalog"
	"github.com/ougirez/eracalc/internal/service/production"
	"github.com/ougirez/eracalc/internal/service/results"
	"github.com/ougirez/eracalc/internal/service/turnover"
	"github.com/spf13/viper"
)

// Backend is the part of the game backend the board screens need.
type Backend interface {
	turnover.Backend
	results.Backend
}

type Dependencies struct {
	Registry *catalog.Registry
	// Journal is optional; without it caravans are calculated but not recorded.
	Journal store.CaravanStore
	// Backend is optional; without it the turnover and results routes are absent.
	Backend Backend
}

type APIService struct {
	router            *echo.Echo
	authService       *auth.Service
	caravanService    *caravan.Service
	productionService *production.Service
	turnoverService   *turnover.Service
	resultsService    *results.Service
}

func (svc *APIService) Serve(addr string) {
	if err := svc.router.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal(context.Background(), err)
	}
}

func (svc *APIService) Shutdown(ctx context.Context) error {
	return svc.router.Shutdown(ctx)
}

// ServeHTTP lets the service be mounted elsewhere or driven by httptest.
func (svc *APIService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	svc.router.ServeHTTP(w, r)
}

func gommonLevel(level string) log.Lvl {
	switch level {
	case "debug":
		return log.DEBUG
	case "warn":
		return log.WARN
	case "error":
		return log.ERROR
	default:
		return log.INFO
	}
}

func NewAPIService(deps Dependencies) (*APIService, error) {
	if deps.Registry == nil {
		return nil, errors.New("api: registry is required")
	}

	svc := &APIService{router: echo.New()}

	svc.router.HideBanner = true
	svc.router.Logger.SetLevel(gommonLevel(viper.GetString(constants.ViperLogLevel)))
	svc.router.Validator = NewValidator()
	svc.router.Binder = NewBinder()
	svc.router.JSONSerializer = NewJSONSerializer()
	svc.router.HTTPErrorHandler = httpErrorHandler

	svc.router.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator:        uuid.NewString,
		RequestIDHandler: requestIDHandler,
	}))
	svc.router.Use(middleware.Logger())
	svc.router.Use(middleware.Recover())
	svc.router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     viper.GetStringSlice(constants.ViperHTTPCorsOrigins),
		AllowMethods:     []string{echo.GET, echo.PUT, echo.PATCH, echo.POST, echo.DELETE},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	svc.authService = auth.NewAuthService(viper.GetString(constants.ViperSecretKey))
	svc.caravanService = caravan.NewCaravanService(deps.Registry, deps.Journal)
	svc.productionService = production.NewProductionService(deps.Registry)
	if deps.Backend != nil {
		svc.turnoverService = turnover.NewTurnoverService(deps.Backend)
		svc.resultsService = results.NewResultsService(deps.Backend)
	}

	api := svc.router.Group("/api/v1")
	cntrl := controller.NewController(controller.Services{
		Registry:   deps.Registry,
		Caravan:    svc.caravanService,
		Production: svc.productionService,
		Turnover:   svc.turnoverService,
		Results:    svc.resultsService,
	})

	caravans := api.Group("/caravans")
	caravans.POST("/calculate", cntrl.CalculateCaravan)
	caravans.POST("/eligible", cntrl.EligibleResources)
	caravans.POST("", cntrl.SendCaravan, svc.AdminMiddleware)
	caravans.GET("", cntrl.ListCaravans, svc.AdminMiddleware)
	caravans.GET("/:id", cntrl.GetCaravan, svc.AdminMiddleware)

	plants := api.Group("/plants")
	plants.GET("", cntrl.ListPlants)
	plants.GET("/types", cntrl.GetPlantTypes)
	plants.POST("/:id/convert", cntrl.ConvertResources)

	countries := api.Group("/countries")
	countries.GET("", cntrl.ListCountries)
	countries.GET("/:id", cntrl.GetCountry)

	catalogGroup := api.Group("/catalog")
	catalogGroup.GET("/status", cntrl.CatalogStatus)
	catalogGroup.POST("/refresh", cntrl.RefreshCatalog, svc.AdminMiddleware)

	if deps.Backend != nil {
		api.GET("/trade-turnovers", cntrl.ListTradeTurnovers)

		board := api.Group("/results")
		board.GET("/board", cntrl.GetResultsBoard)
		board.PATCH("/display", cntrl.ChangeResultsDisplay, svc.AdminMiddleware)
	}

	return svc, nil
}
