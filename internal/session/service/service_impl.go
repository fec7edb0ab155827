package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/idiarso/parkingLot-sub000/internal/clock"
	"github.com/idiarso/parkingLot-sub000/internal/observability"
	sessiondomain "github.com/idiarso/parkingLot-sub000/internal/session/domain"
	"github.com/idiarso/parkingLot-sub000/internal/session/repository"
	tariffdomain "github.com/idiarso/parkingLot-sub000/internal/tariff/domain"
)

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	clock   clock.Clock
	genID   *snowflake.Node
	repo    sessiondomain.Repository
	tariff  tariffdomain.Resolver
	policy  sessiondomain.FeePolicy
	metrics *observability.Metrics
}

type ServiceParam struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Clock   clock.Clock
	GenID   *snowflake.Node
	Tariff  tariffdomain.Resolver
	Policy  sessiondomain.FeePolicy `optional:"true"`
	Metrics *observability.Metrics  `optional:"true"`
}

func NewService(p ServiceParam) sessiondomain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("session.service"),
		clock:   p.Clock,
		genID:   p.GenID,
		repo:    repository.Provide(),
		tariff:  p.Tariff,
		policy:  p.Policy,
		metrics: p.Metrics,
	}
}

// Open records a vehicle at the entry gate. A plate may hold several open
// sessions at once; the duplicate query exists for operations to spot that.
func (s *Service) Open(ctx context.Context, req sessiondomain.OpenRequest) (*sessiondomain.ParkingSession, error) {
	plate := strings.ToUpper(strings.TrimSpace(req.PlateNumber))
	vehicleType := strings.ToLower(strings.TrimSpace(req.VehicleType))
	if plate == "" || vehicleType == "" {
		return nil, sessiondomain.ErrInvalidSession
	}

	sess := &sessiondomain.ParkingSession{
		ID:          s.genID.Generate(),
		PlateNumber: plate,
		VehicleType: vehicleType,
		MemberCode:  req.MemberCode,
		EntryTime:   s.clock.Now(ctx),
		Status:      sessiondomain.StatusOpen,
	}
	if err := s.repo.Insert(ctx, s.db, sess); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.SessionsOpened.Inc()
	}
	s.log.Info("session opened",
		zap.String("ticket", sess.ID.String()),
		zap.String("plate", plate),
		zap.String("vehicle_type", vehicleType))
	return sess, nil
}

func (s *Service) Close(ctx context.Context, id snowflake.ID) (*sessiondomain.ParkingSession, error) {
	return s.close(ctx, id, false)
}

func (s *Service) CloseLostTicket(ctx context.Context, id snowflake.ID) (*sessiondomain.ParkingSession, error) {
	return s.close(ctx, id, true)
}

func (s *Service) close(ctx context.Context, id snowflake.ID, ticketLost bool) (*sessiondomain.ParkingSession, error) {
	sess, err := s.repo.FindOpenByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, sessiondomain.ErrSessionNotFound
	}

	exit := s.clock.Now(ctx)
	fee, err := s.resolveFee(ctx, sess, exit, ticketLost)
	if err != nil {
		return nil, err
	}

	status := sessiondomain.StatusClosed
	if ticketLost {
		status = sessiondomain.StatusLostTicket
	}

	closed, err := s.repo.Close(ctx, s.db, id, exit, fee.Amount, fee.Source, status)
	if err != nil {
		return nil, err
	}
	if !closed {
		// Someone else closed it between the read and the update.
		return nil, sessiondomain.ErrSessionNotFound
	}

	sess.ExitTime = &exit
	sess.Fee = &fee.Amount
	sess.FeeSource = fee.Source
	sess.Status = status

	if s.metrics != nil {
		s.metrics.SessionsClosed.WithLabelValues(string(status)).Inc()
	}
	s.log.Info("session closed",
		zap.String("ticket", sess.ID.String()),
		zap.String("plate", sess.PlateNumber),
		zap.Int64("fee", fee.Amount),
		zap.String("fee_source", string(fee.Source)),
		zap.String("status", string(status)))
	return sess, nil
}

// resolveFee consults the membership policy first; a complimentary member
// pays nothing on a normal exit but still owes the lost-ticket penalty.
func (s *Service) resolveFee(ctx context.Context, sess *sessiondomain.ParkingSession, exit time.Time, ticketLost bool) (tariffdomain.Fee, error) {
	if !ticketLost && sess.MemberCode != nil && s.policy != nil {
		if s.policy.Complimentary(ctx, *sess.MemberCode, exit) {
			return tariffdomain.Fee{Amount: 0, Source: tariffdomain.SourceMember}, nil
		}
	}

	return s.tariff.ResolveFee(ctx, tariffdomain.ResolveInput{
		VehicleType: sess.VehicleType,
		EntryTime:   sess.EntryTime,
		ExitTime:    exit,
		TicketLost:  ticketLost,
	})
}

func (s *Service) FindOpenByTicket(ctx context.Context, id snowflake.ID) (*sessiondomain.ParkingSession, error) {
	return s.repo.FindOpenByID(ctx, s.db, id)
}

func (s *Service) ListOpen(ctx context.Context) ([]sessiondomain.ParkingSession, error) {
	return s.repo.ListOpen(ctx, s.db)
}

func (s *Service) ListDuplicateOpenPlates(ctx context.Context) ([]sessiondomain.DuplicatePlate, error) {
	return s.repo.ListDuplicateOpenPlates(ctx, s.db)
}
