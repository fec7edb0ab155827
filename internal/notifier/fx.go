package notifier

import (
	"go.uber.org/fx"

	"github.com/idiarso/parkingLot-sub000/internal/notifier/service"
)

var Module = fx.Module("notifier",
	fx.Provide(service.NewDispatcher),
)
