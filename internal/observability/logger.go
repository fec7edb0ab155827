package observability

import (
	"go.uber.org/zap"

	"github.com/idiarso/parkingLot-sub000/internal/config"
)

func NewLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
