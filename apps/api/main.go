package main

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/idiarso/parkingLot-sub000/internal/capacity"
	"github.com/idiarso/parkingLot-sub000/internal/clock"
	"github.com/idiarso/parkingLot-sub000/internal/config"
	"github.com/idiarso/parkingLot-sub000/internal/member"
	"github.com/idiarso/parkingLot-sub000/internal/migration"
	"github.com/idiarso/parkingLot-sub000/internal/notification"
	"github.com/idiarso/parkingLot-sub000/internal/notifier"
	"github.com/idiarso/parkingLot-sub000/internal/observability"
	"github.com/idiarso/parkingLot-sub000/internal/rate"
	"github.com/idiarso/parkingLot-sub000/internal/scheduler"
	"github.com/idiarso/parkingLot-sub000/internal/server"
	"github.com/idiarso/parkingLot-sub000/internal/session"
	"github.com/idiarso/parkingLot-sub000/internal/settings"
	"github.com/idiarso/parkingLot-sub000/internal/specialrate"
	"github.com/idiarso/parkingLot-sub000/internal/tariff"
	"github.com/idiarso/parkingLot-sub000/pkg/db"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,
		clock.Module,

		settings.Module,
		rate.Module,
		specialrate.Module,
		tariff.Module,
		member.Module,
		session.Module,
		capacity.Module,
		notifier.Module,
		notification.Module,
		scheduler.Module,

		fx.Provide(server.NewEngine),
		fx.Provide(server.NewServer),
		fx.Invoke(func(s *server.Server) {
			s.RegisterRoutes()
		}),
		fx.Invoke(server.RunHTTP),
		fx.Invoke(StartScheduler),
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}

func StartScheduler(lc fx.Lifecycle, s *scheduler.Scheduler) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go s.RunForever(context.Background())
			return nil
		},
	})
}
