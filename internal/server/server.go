// Package server exposes the rating engine over a thin JSON API: trigger
// a run, read stored statements, inspect tariffs and charge maps.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	chargemapdomain "github.com/meterworks/metrobill/internal/chargemap/domain"
	"github.com/meterworks/metrobill/internal/clock"
	"github.com/meterworks/metrobill/internal/config"
	ratingdomain "github.com/meterworks/metrobill/internal/rating/domain"
	statementdomain "github.com/meterworks/metrobill/internal/statement/domain"
	tariffdomain "github.com/meterworks/metrobill/internal/tariff/domain"
)

type Server struct {
	log *zap.Logger
	cfg *config.Config
	db  *gorm.DB
	clk clock.Clock

	ratingSvc     ratingdomain.Service
	statementSvc  statementdomain.Service
	statementRepo statementdomain.Repository
	tariffRepo    tariffdomain.Repository
	chargeMapRepo chargemapdomain.Repository
	registry      *prometheus.Registry

	engine *gin.Engine
}

type ServerParam struct {
	fx.In

	Log           *zap.Logger
	Cfg           *config.Config
	DB            *gorm.DB
	Clock         clock.Clock
	RatingSvc     ratingdomain.Service
	StatementSvc  statementdomain.Service
	StatementRepo statementdomain.Repository
	TariffRepo    tariffdomain.Repository
	ChargeMapRepo chargemapdomain.Repository
	Registry      *prometheus.Registry
	Engine        *gin.Engine
}

func NewEngine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	return engine
}

func NewServer(p ServerParam) *Server {
	return &Server{
		log: p.Log.Named("server"),
		cfg: p.Cfg,
		db:  p.DB,
		clk: p.Clock,

		ratingSvc:     p.RatingSvc,
		statementSvc:  p.StatementSvc,
		statementRepo: p.StatementRepo,
		tariffRepo:    p.TariffRepo,
		chargeMapRepo: p.ChargeMapRepo,
		registry:      p.Registry,

		engine: p.Engine,
	}
}

func (s *Server) RegisterAPIRoutes() {
	s.engine.GET("/healthz", s.Healthz)
	s.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))

	api := s.engine.Group("/api")
	{
		api.POST("/billing/runs", s.RunBilling)
		api.GET("/statements", s.GetTenantStatement)
		api.GET("/statements/meters", s.ListMeterStatements)
		api.GET("/tariffs", s.ListTariffs)
		api.GET("/meters/:id/charges", s.ListMeterCharges)
	}
}

func (s *Server) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func RunHTTP(lc fx.Lifecycle, s *Server, log *zap.Logger) {
	srv := &http.Server{
		Addr:         s.cfg.HTTP.Addr,
		Handler:      s.engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server starting", zap.String("addr", s.cfg.HTTP.Addr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}
