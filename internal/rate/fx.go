package rate

import (
	"go.uber.org/fx"

	"github.com/idiarso/parkingLot-sub000/internal/rate/repository"
	"github.com/idiarso/parkingLot-sub000/internal/rate/service"
)

var Module = fx.Module("rate",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
