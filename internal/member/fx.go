package member

import (
	"go.uber.org/fx"

	"github.com/idiarso/parkingLot-sub000/internal/member/repository"
	"github.com/idiarso/parkingLot-sub000/internal/member/service"
)

var Module = fx.Module("member",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
	fx.Provide(service.NewFeePolicy),
)
