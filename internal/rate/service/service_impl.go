package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	ratedomain "github.com/idiarso/parkingLot-sub000/internal/rate/domain"
	"github.com/idiarso/parkingLot-sub000/internal/rate/repository"
)

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  ratedomain.Repository
}

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
}

func NewService(p ServiceParam) ratedomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("rate.service"),
		genID: p.GenID,
		repo:  repository.Provide(),
	}
}

func (s *Service) Create(ctx context.Context, req ratedomain.CreateRequest) (*ratedomain.RateRule, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	rule := &ratedomain.RateRule{
		ID:                s.genID.Generate(),
		VehicleType:       strings.ToLower(strings.TrimSpace(req.VehicleType)),
		HourlyRate:        req.HourlyRate,
		NextHourRate:      req.NextHourRate,
		FlatRate:          req.FlatRate,
		LostTicketPenalty: req.LostTicketPenalty,
		Active:            active,
	}
	if err := s.repo.Insert(ctx, s.db, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

func (s *Service) Update(ctx context.Context, id snowflake.ID, req ratedomain.CreateRequest) (*ratedomain.RateRule, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	rule, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, ratedomain.ErrRateNotFound
	}

	rule.VehicleType = strings.ToLower(strings.TrimSpace(req.VehicleType))
	rule.HourlyRate = req.HourlyRate
	rule.NextHourRate = req.NextHourRate
	rule.FlatRate = req.FlatRate
	rule.LostTicketPenalty = req.LostTicketPenalty
	if req.Active != nil {
		rule.Active = *req.Active
	}

	if err := s.repo.Update(ctx, s.db, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

func (s *Service) List(ctx context.Context) ([]ratedomain.RateRule, error) {
	return s.repo.List(ctx, s.db)
}

func validate(req ratedomain.CreateRequest) error {
	if strings.TrimSpace(req.VehicleType) == "" {
		return ratedomain.ErrInvalidRate
	}
	if req.HourlyRate < 0 || req.FlatRate < 0 || req.LostTicketPenalty < 0 {
		return ratedomain.ErrInvalidRate
	}
	if req.NextHourRate != nil && *req.NextHourRate < 0 {
		return ratedomain.ErrInvalidRate
	}
	return nil
}
