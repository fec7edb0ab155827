package service

import (
	"context"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	ratedomain "github.com/idiarso/parkingLot-sub000/internal/rate/domain"
	specialratedomain "github.com/idiarso/parkingLot-sub000/internal/specialrate/domain"
	tariffdomain "github.com/idiarso/parkingLot-sub000/internal/tariff/domain"
)

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	rateRepo    ratedomain.Repository
	specialRepo specialratedomain.Repository
}

type ServiceParam struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	RateRepo    ratedomain.Repository
	SpecialRepo specialratedomain.Repository
}

func NewService(p ServiceParam) tariffdomain.Resolver {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("tariff.service"),
		rateRepo:    p.RateRepo,
		specialRepo: p.SpecialRepo,
	}
}

// ResolveFee applies the rules in priority order: lost-ticket penalty,
// special day/time window, flat override on the standard rule, and finally
// the per-hour formula with its one-hour minimum.
func (s *Service) ResolveFee(ctx context.Context, in tariffdomain.ResolveInput) (tariffdomain.Fee, error) {
	if in.TicketLost {
		rule, err := s.rateRepo.FindActiveByVehicleType(ctx, s.db, in.VehicleType)
		if err != nil {
			return tariffdomain.Fee{}, err
		}
		if rule == nil {
			return tariffdomain.Fee{}, ratedomain.ErrRateNotFound
		}
		return tariffdomain.Fee{
			Amount: rule.LostTicketPenalty,
			Source: tariffdomain.SourceLostTicket,
			RuleID: rule.ID,
		}, nil
	}

	if in.ExitTime.Before(in.EntryTime) {
		return tariffdomain.Fee{}, tariffdomain.ErrInvalidInterval
	}

	specials, err := s.specialRepo.ListActiveByVehicleType(ctx, s.db, in.VehicleType)
	if err != nil {
		return tariffdomain.Fee{}, err
	}

	var matched []specialratedomain.SpecialRateRule
	for _, r := range specials {
		if r.MatchesAt(in.EntryTime) {
			matched = append(matched, r)
		}
	}
	if best := specialratedomain.SelectBest(matched); best != nil {
		return tariffdomain.Fee{
			Amount:   best.FlatRate,
			Source:   tariffdomain.SourceSpecial,
			RuleID:   best.ID,
			Category: best.Category,
		}, nil
	}

	rule, err := s.rateRepo.FindActiveByVehicleType(ctx, s.db, in.VehicleType)
	if err != nil {
		return tariffdomain.Fee{}, err
	}
	if rule == nil {
		return tariffdomain.Fee{}, ratedomain.ErrRateNotFound
	}

	if rule.FlatRate > 0 {
		return tariffdomain.Fee{
			Amount: rule.FlatRate,
			Source: tariffdomain.SourceFlat,
			RuleID: rule.ID,
		}, nil
	}

	hours := billedHours(in.EntryTime, in.ExitTime)
	amount := rule.HourlyRate + rule.PerExtraHour()*int64(hours-1)
	return tariffdomain.Fee{
		Amount:      amount,
		Source:      tariffdomain.SourceHourly,
		RuleID:      rule.ID,
		BilledHours: hours,
	}, nil
}

// billedHours rounds elapsed whole minutes up to the next hour, never below
// one: a zero-minute stay still pays the first hour.
func billedHours(entry, exit time.Time) int {
	minutes := int(exit.Sub(entry).Minutes())
	if minutes <= 60 {
		return 1
	}
	hours := minutes / 60
	if minutes%60 != 0 {
		hours++
	}
	return hours
}
