package email

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"

	"github.com/idiarso/parkingLot-sub000/internal/config"
	notifierdomain "github.com/idiarso/parkingLot-sub000/internal/notifier/domain"
)

type Provider struct {
	host     string
	port     int
	user     string
	password string
	from     string
}

func NewProvider(cfg *config.Config) *Provider {
	return &Provider{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		from:     cfg.SMTPFrom,
	}
}

func (p *Provider) Name() string { return "email" }

func (p *Provider) Send(ctx context.Context, msg notifierdomain.Message) error {
	if p.host == "" {
		return fmt.Errorf("smtp host not configured")
	}
	if msg.Recipient == "" {
		return fmt.Errorf("missing recipient address")
	}

	addr := net.JoinHostPort(p.host, strconv.Itoa(p.port))
	body := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		p.from, msg.Recipient, msg.Subject, msg.Body)

	var auth smtp.Auth
	if p.user != "" {
		auth = smtp.PlainAuth("", p.user, p.password, p.host)
	}

	// net/smtp has no context hook; run the send in a goroutine and let the
	// dispatcher's deadline abandon a stuck connection.
	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(addr, auth, p.from, []string{msg.Recipient}, []byte(body))
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
