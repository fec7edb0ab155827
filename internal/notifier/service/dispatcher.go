package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/idiarso/parkingLot-sub000/internal/config"
	notifierdomain "github.com/idiarso/parkingLot-sub000/internal/notifier/domain"
	"github.com/idiarso/parkingLot-sub000/internal/notifier/provider/email"
	"github.com/idiarso/parkingLot-sub000/internal/notifier/provider/sms"
)

// Dispatcher fans an alert out to delivery channels without blocking the
// caller. Failures are logged and dropped: a dead SMTP server must never
// stall or fail the evaluation loop, and there are no retries.
type Dispatcher struct {
	log       *zap.Logger
	timeout   time.Duration
	providers map[string]notifierdomain.Provider

	wg sync.WaitGroup
}

type DispatcherParam struct {
	fx.In

	Cfg *config.Config
	Log *zap.Logger
}

func NewDispatcher(p DispatcherParam) *Dispatcher {
	return &Dispatcher{
		log:     p.Log.Named("notifier.dispatcher"),
		timeout: p.Cfg.DispatchTimeout,
		providers: map[string]notifierdomain.Provider{
			"email": email.NewProvider(p.Cfg),
			"sms":   sms.NewProvider(p.Cfg),
		},
	}
}

// Dispatch sends msg through the named channel in the background. The send
// runs under its own deadline detached from the caller's context so a
// finished evaluation cycle does not cancel an in-flight delivery.
func (d *Dispatcher) Dispatch(channel string, msg notifierdomain.Message) {
	provider, ok := d.providers[channel]
	if !ok {
		d.log.Warn("unknown notification channel", zap.String("channel", channel))
		return
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		if err := provider.Send(ctx, msg); err != nil {
			d.log.Warn("notification delivery failed",
				zap.String("channel", provider.Name()),
				zap.String("subject", msg.Subject),
				zap.Error(err))
			return
		}
		d.log.Debug("notification delivered",
			zap.String("channel", provider.Name()),
			zap.String("subject", msg.Subject))
	}()
}

// Wait blocks until in-flight deliveries settle. Tests use it; shutdown can
// too, though every send is already bounded by the dispatch timeout.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
