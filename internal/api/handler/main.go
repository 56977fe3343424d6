package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo-contrib/pprof"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/do"

	"starbyte/internal/pkg/validation"
	"starbyte/internal/services"
)

type Config struct {
	Container *do.Injector
	Mode      string
	Origins   []string
}

func New(cfg *Config) (http.Handler, error) {
	r := echo.New()
	r.Pre(middleware.RemoveTrailingSlash())
	if cfg.Mode == "debug" {
		r.Debug = true
		pprof.Register(r)
	}

	r.JSONSerializer = httpx.SegmentJSONSerializer{}
	r.Validator = &requestValidator{validation.New()}
	r.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	r.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339}\t${id}\t${method}\t${uri}\t${status}\t${latency_human}\n",
	}))
	r.Use(middleware.Recover())

	// one registry per router so several routers can live in one process
	registry := prometheus.NewRegistry()
	metrics, err := echoprometheus.MiddlewareConfig{
		Subsystem:  "starbyte",
		Registerer: registry,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}.ToMiddleware()
	if err != nil {
		return nil, err
	}
	r.Use(metrics)
	r.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{registry, prometheus.DefaultGatherer},
	}))

	r.GET("", func(c echo.Context) error {
		return c.String(http.StatusOK, "✨")
	})

	routesAPIv1 := r.Group("/api/v1")
	{
		authentication, err := do.Invoke[*services.Authentication](cfg.Container)
		if err != nil {
			return nil, err
		}
		cors := middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     cfg.Origins,
			AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
			AllowCredentials: true,
			MaxAge:           60 * 60,
		})

		routesAPIv1.Use(cors)
		routesAPIv1.Use(Authn(authentication)) // Authn will NOT terminate unauthenticated request.
		routesAPIv1.GET("", Hello)

		rw := groupReward{cfg.Container}
		routesAPIv1.GET("/rewards", rw.GetRewards)
		routesAPIv1.GET("/reward/:id", rw.GetReward)
		routesAPIv1.POST("/reward/:id/purchase", rw.Purchase)
		routesAPIv1.POST("/rewards/resolve", rw.Resolve)

		rc := groupReceipt{cfg.Container}
		routesAPIv1.GET("/receipts/:id/delivery", rc.GetDelivery)

		s := groupStar{cfg.Container}
		routesAPIv1.GET("/star/me", s.Me)
		routesAPIv1.GET("/star/me/transactions", s.GetTransactions)

		l := groupLeaderboard{cfg.Container}
		routesAPIv1.GET("/leaderboard/stardust", l.GetStardustLeaderboard)
	}

	return r, nil
}

func Hello(c echo.Context) error {
	return httpx.RestAbort(c, "hello world", nil)
}
