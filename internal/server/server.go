package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	capacitydomain "github.com/idiarso/parkingLot-sub000/internal/capacity/domain"
	"github.com/idiarso/parkingLot-sub000/internal/config"
	memberdomain "github.com/idiarso/parkingLot-sub000/internal/member/domain"
	notificationservice "github.com/idiarso/parkingLot-sub000/internal/notification/service"
	"github.com/idiarso/parkingLot-sub000/internal/observability"
	ratedomain "github.com/idiarso/parkingLot-sub000/internal/rate/domain"
	sessiondomain "github.com/idiarso/parkingLot-sub000/internal/session/domain"
	"github.com/idiarso/parkingLot-sub000/internal/settings"
	specialratedomain "github.com/idiarso/parkingLot-sub000/internal/specialrate/domain"
	tariffdomain "github.com/idiarso/parkingLot-sub000/internal/tariff/domain"
)

type Server struct {
	log     *zap.Logger
	cfg     *config.Config
	db      *gorm.DB
	engine  *gin.Engine
	metrics *observability.Metrics

	sessionSvc  sessiondomain.Service
	rateSvc     ratedomain.Service
	specialSvc  specialratedomain.Service
	memberSvc   memberdomain.Service
	capacity    capacitydomain.Monitor
	notifySvc   *notificationservice.Service
	settingsSvc *settings.Service
	tariff      tariffdomain.Resolver
}

type ServerParam struct {
	fx.In

	Log     *zap.Logger
	Cfg     *config.Config
	DB      *gorm.DB
	Engine  *gin.Engine
	Metrics *observability.Metrics

	SessionSvc  sessiondomain.Service
	RateSvc     ratedomain.Service
	SpecialSvc  specialratedomain.Service
	MemberSvc   memberdomain.Service
	Capacity    capacitydomain.Monitor
	NotifySvc   *notificationservice.Service
	SettingsSvc *settings.Service
	Tariff      tariffdomain.Resolver
}

func NewEngine(cfg *config.Config) *gin.Engine {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	return engine
}

func NewServer(p ServerParam) *Server {
	return &Server{
		log:         p.Log.Named("server"),
		cfg:         p.Cfg,
		db:          p.DB,
		engine:      p.Engine,
		metrics:     p.Metrics,
		sessionSvc:  p.SessionSvc,
		rateSvc:     p.RateSvc,
		specialSvc:  p.SpecialSvc,
		memberSvc:   p.MemberSvc,
		capacity:    p.Capacity,
		notifySvc:   p.NotifySvc,
		settingsSvc: p.SettingsSvc,
		tariff:      p.Tariff,
	}
}

func (s *Server) RegisterRoutes() {
	s.engine.GET("/healthz", s.Healthz)
	s.engine.GET("/readyz", s.Readyz)
	s.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{})))

	api := s.engine.Group("/api")

	api.POST("/gates/entry", s.GateEntry)
	api.POST("/gates/exit", s.GateExit)
	api.POST("/gates/lost-ticket", s.GateLostTicket)
	api.GET("/gates/tickets/:id", s.LookupTicket)
	api.GET("/gates/tickets/:id/fee-quote", s.FeeQuote)

	api.GET("/sessions/open", s.ListOpenSessions)
	api.GET("/sessions/duplicates", s.ListDuplicatePlates)

	api.GET("/rates", s.ListRates)
	api.POST("/rates", s.CreateRate)
	api.PUT("/rates/:id", s.UpdateRate)

	api.GET("/special-rates", s.ListSpecialRates)
	api.POST("/special-rates", s.CreateSpecialRate)
	api.PUT("/special-rates/:id", s.UpdateSpecialRate)

	api.GET("/members", s.ListMembers)
	api.POST("/members", s.CreateMember)

	api.GET("/capacity", s.CapacitySnapshots)
	api.GET("/notifications", s.ListNotifications)

	api.GET("/settings", s.ListSettings)
	api.PUT("/settings/:key", s.PutSetting)
}

func RunHTTP(lc fx.Lifecycle, s *Server) {
	srv := &http.Server{
		Addr:    s.cfg.HTTPAddr,
		Handler: s.engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				s.log.Info("http server listening", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					s.log.Error("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}
