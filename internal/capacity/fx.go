package capacity

import (
	"go.uber.org/fx"

	"github.com/idiarso/parkingLot-sub000/internal/capacity/service"
)

var Module = fx.Module("capacity",
	fx.Provide(service.NewService),
)
