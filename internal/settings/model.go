package settings

import (
	"errors"
	"time"
)

var ErrInvalidThresholds = errors.New("warning threshold must be lower than critical threshold")

// Setting is one persisted operational key/value pair. The admin UI edits
// these at runtime; process-level config (DSN, ports) stays in env.
type Setting struct {
	Key       string    `json:"key" gorm:"primaryKey;type:text"`
	Value     string    `json:"value" gorm:"type:text;not null"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Setting) TableName() string { return "settings" }

// Keys understood by the engine. Barrier and delivery-credential keys are
// stored and served but only consumed by external collaborators.
const (
	KeyLongParkingThreshold = "long_parking_threshold" // minutes
	KeyWarningCapacity      = "warning_capacity"       // percent
	KeyCriticalCapacity     = "critical_capacity"      // percent
	KeyTotalCapacity        = "total_parking_capacity"
	KeyMotorCapacity        = "motor_capacity"
	KeyCarCapacity          = "car_capacity"

	KeyEmailEnabled = "email_notification_enabled"
	KeyAdminEmail   = "admin_email"
	KeySMSEnabled   = "sms_notification_enabled"
	KeyAdminPhone   = "admin_phone"

	KeyEntryPort       = "entry_port"
	KeyExitPort        = "exit_port"
	KeyBarrierAutoMode = "barrier_auto_mode"
)

const (
	DefaultLongParkingMinutes = 120
	DefaultWarningPercent     = 75
	DefaultCriticalPercent    = 90
	DefaultMotorCapacity      = 100
	DefaultCarCapacity        = 50
)

// Snapshot is the settings view read once at the start of an evaluation
// cycle, so a mid-cycle edit cannot produce inconsistent decisions.
type Snapshot struct {
	LongParkingThreshold time.Duration
	WarningPercent       int
	CriticalPercent      int
	MotorCapacity        int
	CarCapacity          int

	EmailEnabled bool
	AdminEmail   string
	SMSEnabled   bool
	AdminPhone   string
}
