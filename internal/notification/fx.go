package notification

import (
	"go.uber.org/fx"

	"github.com/idiarso/parkingLot-sub000/internal/notification/service"
)

var Module = fx.Module("notification",
	fx.Provide(service.NewService),
)
