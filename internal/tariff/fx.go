package tariff

import (
	"go.uber.org/fx"

	"github.com/idiarso/parkingLot-sub000/internal/tariff/service"
)

var Module = fx.Module("tariff",
	fx.Provide(service.NewService),
)
