package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/codiolabs/marketplace-registration/internal/config"
	"github.com/codiolabs/marketplace-registration/internal/directory"
	"github.com/codiolabs/marketplace-registration/internal/metering"
	meteringdomain "github.com/codiolabs/marketplace-registration/internal/metering/domain"
	"github.com/codiolabs/marketplace-registration/internal/observability"
	obsmiddleware "github.com/codiolabs/marketplace-registration/internal/observability/logger"
	obsmetrics "github.com/codiolabs/marketplace-registration/internal/observability/metrics"
	obstracing "github.com/codiolabs/marketplace-registration/internal/observability/tracing"
	"github.com/codiolabs/marketplace-registration/internal/ratelimit"
	"github.com/codiolabs/marketplace-registration/internal/registration"
	registrationdomain "github.com/codiolabs/marketplace-registration/internal/registration/domain"
	"github.com/codiolabs/marketplace-registration/internal/subscriber"
	subscriberdomain "github.com/codiolabs/marketplace-registration/internal/subscriber/domain"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	directory.Module,
	subscriber.Module,
	metering.Module,
	registration.Module,
	ratelimit.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug: obsCfg.Debug(),
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine          *gin.Engine
	cfg             config.Config
	db              *gorm.DB
	registrationSvc registrationdomain.Service
	subscriberSvc   subscriberdomain.Service
	meteringSvc     meteringdomain.Service
	limiter         *ratelimit.RegistrationLimiter
	obsMetrics      *obsmetrics.Metrics
}

type ServerParams struct {
	fx.In

	Gin             *gin.Engine
	Cfg             config.Config
	DB              *gorm.DB
	RegistrationSvc registrationdomain.Service
	SubscriberSvc   subscriberdomain.Service
	MeteringSvc     meteringdomain.Service
	Limiter         *ratelimit.RegistrationLimiter `optional:"true"`
	ObsMetrics      *obsmetrics.Metrics            `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:          p.Gin,
		cfg:             p.Cfg,
		db:              p.DB,
		registrationSvc: p.RegistrationSvc,
		subscriberSvc:   p.SubscriberSvc,
		meteringSvc:     p.MeteringSvc,
		limiter:         p.Limiter,
		obsMetrics:      p.ObsMetrics,
	}

	svc.registerPublicRoutes()
	svc.registerAdminRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerPublicRoutes() {
	public := s.engine.Group("/", corsMiddleware())

	public.POST("/subscriber", s.Register)
	public.OPTIONS("/subscriber", s.RegisterPreflight)
}

func (s *Server) registerAdminRoutes() {
	admin := s.engine.Group("/admin/v1", s.AdminAuthRequired())

	admin.GET("/subscribers", s.ListSubscribers)
	admin.GET("/subscribers/:customer_identifier", s.GetSubscriber)
	admin.GET("/metering-records", s.ListMeteringRecords)
}
