package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/idiarso/parkingLot-sub000/internal/config"
	notifierdomain "github.com/idiarso/parkingLot-sub000/internal/notifier/domain"
)

type Provider struct {
	client     *http.Client
	gatewayURL string
	apiKey     string
}

func NewProvider(cfg *config.Config) *Provider {
	return &Provider{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		gatewayURL: cfg.SMSGatewayURL,
		apiKey:     cfg.SMSGatewayKey,
	}
}

func (p *Provider) Name() string { return "sms" }

func (p *Provider) Send(ctx context.Context, msg notifierdomain.Message) error {
	if p.gatewayURL == "" {
		return fmt.Errorf("sms gateway not configured")
	}
	if msg.Recipient == "" {
		return fmt.Errorf("missing recipient number")
	}

	payload := map[string]any{
		"to":      msg.Recipient,
		"message": msg.Subject + ": " + msg.Body,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.gatewayURL, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("sms_gateway_error: status=%d", resp.StatusCode)
	}
	return nil
}
