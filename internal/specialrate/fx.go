package specialrate

import (
	"go.uber.org/fx"

	"github.com/idiarso/parkingLot-sub000/internal/specialrate/repository"
	"github.com/idiarso/parkingLot-sub000/internal/specialrate/service"
)

var Module = fx.Module("specialrate",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
