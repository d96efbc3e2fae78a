package main

import (
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/medsys/hospital/internal/config"
	"github.com/medsys/hospital/internal/domain/clinical"
	"github.com/medsys/hospital/internal/domain/facility"
	"github.com/medsys/hospital/internal/domain/patient"
	"github.com/medsys/hospital/internal/domain/reference"
	"github.com/medsys/hospital/internal/domain/staff"
	"github.com/medsys/hospital/internal/domain/warehouse"
	"github.com/medsys/hospital/internal/platform/apierr"
	"github.com/medsys/hospital/internal/platform/auth"
	"github.com/medsys/hospital/internal/platform/db"
	"github.com/medsys/hospital/internal/platform/middleware"
	"github.com/medsys/hospital/pkg/pagination"
)

const version = "0.1.0"

// routeRegistrar is implemented by every domain handler.
type routeRegistrar interface {
	RegisterRoutes(api *echo.Group)
}

// newServer assembles the middleware chain and the domain routes. The pool
// is only dereferenced by request handlers.
func newServer(cfg *config.Config, pool *pgxpool.Pool, logger zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = apierr.ErrorHandler(logger)

	pagination.SetMaxLimit(cfg.MaxPageSize)

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.BodyLimit(cfg.BodyLimit))
	e.Use(middleware.RequestTimeout(cfg.RequestTimeout))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType, echo.HeaderXRequestID},
	}))

	// Auth middleware
	jwtCfg := auth.JWTConfig{
		SigningKey: []byte(cfg.AuthSigningKey),
		Issuer:     cfg.AuthIssuer,
		Audience:   cfg.AuthAudience,
		Skipper:    auth.AuthSkipper,
	}
	if cfg.ResolvedAuthMode() == config.AuthModeDevelopment {
		e.Use(auth.DevAuthMiddleware(jwtCfg))
	} else {
		e.Use(auth.JWTMiddleware(jwtCfg))
	}

	e.Use(middleware.Audit(logger))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": version,
		})
	})
	e.GET("/health/db", db.HealthHandler(pool))

	apiV1 := e.Group("/api/v1")
	if cfg.RateLimitRPS > 0 {
		burst := cfg.RateLimitBurst
		if burst <= 0 {
			burst = int(cfg.RateLimitRPS)
		}
		apiV1.Use(echomw.RateLimiterWithConfig(echomw.RateLimiterConfig{
			Store: echomw.NewRateLimiterMemoryStoreWithConfig(echomw.RateLimiterMemoryStoreConfig{
				Rate:  rate.Limit(cfg.RateLimitRPS),
				Burst: burst,
			}),
			IdentifierExtractor: func(c echo.Context) (string, error) {
				return c.RealIP(), nil
			},
		}))
	}
	apiV1.Use(db.ConnMiddleware(pool))

	for _, h := range domainHandlers(pool) {
		h.RegisterRoutes(apiV1)
	}
	return e
}

// domainHandlers builds every service in dependency order.
func domainHandlers(pool *pgxpool.Pool) []routeRegistrar {
	tx := db.PoolTxRunner{Pool: pool}

	facilitySvc := facility.NewService(facility.NewStores(pool))
	staffSvc := staff.NewService(staff.NewStores(pool), facilitySvc)
	referenceSvc := reference.NewService(reference.NewStores(pool), staffSvc.Specializations())
	patientSvc := patient.NewService(patient.NewStores(pool), tx, referenceSvc, staffSvc.Members())
	warehouseSvc := warehouse.NewService(warehouse.NewStores(pool), tx, facilitySvc, staffSvc.Members())
	clinicalSvc := clinical.NewService(clinical.NewStores(pool), staffSvc.Members(), patientSvc.Patients(), warehouseSvc.MedicalItems())

	return []routeRegistrar{
		facility.NewHandler(facilitySvc),
		staff.NewHandler(staffSvc),
		reference.NewHandler(referenceSvc),
		patient.NewHandler(patientSvc),
		warehouse.NewHandler(warehouseSvc),
		clinical.NewHandler(clinicalSvc),
	}
}
