// Package domain defines the fee-resolution contract: given a vehicle type
// and an entry/exit interval, produce the amount to charge.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

var ErrInvalidInterval = errors.New("exit time precedes entry time")

// FeeSource names which rule produced the amount.
type FeeSource string

const (
	SourceLostTicket FeeSource = "lost_ticket"
	SourceSpecial    FeeSource = "special"
	SourceFlat       FeeSource = "flat"
	SourceHourly     FeeSource = "hourly"
	SourceMember     FeeSource = "member"
)

// Fee is a resolved charge in the smallest currency unit.
type Fee struct {
	Amount      int64        `json:"amount"`
	Source      FeeSource    `json:"source"`
	RuleID      snowflake.ID `json:"rule_id,omitempty"`
	Category    string       `json:"category,omitempty"`
	BilledHours int          `json:"billed_hours,omitempty"`
}

type ResolveInput struct {
	VehicleType string
	EntryTime   time.Time
	ExitTime    time.Time
	TicketLost  bool
}

type Resolver interface {
	ResolveFee(ctx context.Context, in ResolveInput) (Fee, error)
}
