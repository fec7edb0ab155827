package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	specialratedomain "github.com/idiarso/parkingLot-sub000/internal/specialrate/domain"
	"github.com/idiarso/parkingLot-sub000/internal/specialrate/repository"
)

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  specialratedomain.Repository
}

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
}

func NewService(p ServiceParam) specialratedomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("specialrate.service"),
		genID: p.GenID,
		repo:  repository.Provide(),
	}
}

func (s *Service) Create(ctx context.Context, req specialratedomain.CreateRequest) (*specialratedomain.SpecialRateRule, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	rule := &specialratedomain.SpecialRateRule{
		ID:          s.genID.Generate(),
		VehicleType: strings.ToLower(strings.TrimSpace(req.VehicleType)),
		Category:    strings.TrimSpace(req.Category),
		Description: req.Description,
		StartTime:   strings.TrimSpace(req.StartTime),
		EndTime:     strings.TrimSpace(req.EndTime),
		Days:        specialratedomain.FormatDays(req.Days),
		FlatRate:    req.FlatRate,
		Active:      active,
	}
	if err := s.repo.Insert(ctx, s.db, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

func (s *Service) Update(ctx context.Context, id snowflake.ID, req specialratedomain.CreateRequest) (*specialratedomain.SpecialRateRule, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	rule, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, specialratedomain.ErrSpecialRateNotFound
	}

	rule.VehicleType = strings.ToLower(strings.TrimSpace(req.VehicleType))
	rule.Category = strings.TrimSpace(req.Category)
	rule.Description = req.Description
	rule.StartTime = strings.TrimSpace(req.StartTime)
	rule.EndTime = strings.TrimSpace(req.EndTime)
	rule.Days = specialratedomain.FormatDays(req.Days)
	rule.FlatRate = req.FlatRate
	if req.Active != nil {
		rule.Active = *req.Active
	}

	if err := s.repo.Update(ctx, s.db, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

func (s *Service) List(ctx context.Context) ([]specialratedomain.SpecialRateRule, error) {
	return s.repo.List(ctx, s.db)
}

func validate(req specialratedomain.CreateRequest) error {
	if strings.TrimSpace(req.VehicleType) == "" || req.FlatRate < 0 {
		return specialratedomain.ErrInvalidSpecialRate
	}
	if !specialratedomain.ValidDays(req.Days) {
		return specialratedomain.ErrInvalidSpecialRate
	}
	if _, err := specialratedomain.ParseClock(req.StartTime); err != nil {
		return specialratedomain.ErrInvalidSpecialRate
	}
	if _, err := specialratedomain.ParseClock(req.EndTime); err != nil {
		return specialratedomain.ErrInvalidSpecialRate
	}
	return nil
}
