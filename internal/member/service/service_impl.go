package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	memberdomain "github.com/idiarso/parkingLot-sub000/internal/member/domain"
	"github.com/idiarso/parkingLot-sub000/internal/member/repository"
	sessiondomain "github.com/idiarso/parkingLot-sub000/internal/session/domain"
)

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  memberdomain.Repository
}

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
}

func NewService(p ServiceParam) memberdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("member.service"),
		genID: p.GenID,
		repo:  repository.Provide(),
	}
}

func (s *Service) Create(ctx context.Context, req memberdomain.CreateRequest) (*memberdomain.Member, error) {
	code := strings.TrimSpace(req.Code)
	name := strings.TrimSpace(req.Name)
	if code == "" || name == "" {
		return nil, memberdomain.ErrInvalidMember
	}

	m := &memberdomain.Member{
		ID:          s.genID.Generate(),
		Code:        code,
		Name:        name,
		PlateNumber: strings.ToUpper(strings.TrimSpace(req.PlateNumber)),
		VehicleType: strings.ToLower(strings.TrimSpace(req.VehicleType)),
		Phone:       req.Phone,
		Active:      true,
		ActiveUntil: req.ActiveUntil,
	}
	if err := s.repo.Insert(ctx, s.db, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) List(ctx context.Context) ([]memberdomain.Member, error) {
	return s.repo.List(ctx, s.db)
}

func (s *Service) FindByCode(ctx context.Context, code string) (*memberdomain.Member, error) {
	m, err := s.repo.FindByCode(ctx, s.db, code)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, memberdomain.ErrMemberNotFound
	}
	return m, nil
}

// FeePolicy waives the fee while a membership is active. Unknown codes and
// lookup failures charge the normal tariff; the gate should never stall on
// the membership table.
type FeePolicy struct {
	db   *gorm.DB
	log  *zap.Logger
	repo memberdomain.Repository
}

func NewFeePolicy(db *gorm.DB, log *zap.Logger) sessiondomain.FeePolicy {
	return &FeePolicy{
		db:   db,
		log:  log.Named("member.policy"),
		repo: repository.Provide(),
	}
}

func (p *FeePolicy) Complimentary(ctx context.Context, memberCode string, at time.Time) bool {
	m, err := p.repo.FindByCode(ctx, p.db, memberCode)
	if err != nil {
		p.log.Warn("member lookup failed, charging normal tariff",
			zap.String("member_code", memberCode), zap.Error(err))
		return false
	}
	if m == nil {
		return false
	}
	return m.Active && at.Before(m.ActiveUntil)
}
