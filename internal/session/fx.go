package session

import (
	"go.uber.org/fx"

	"github.com/idiarso/parkingLot-sub000/internal/session/repository"
	"github.com/idiarso/parkingLot-sub000/internal/session/service"
)

var Module = fx.Module("session",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
