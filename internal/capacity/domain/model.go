// Package domain classifies occupancy per coarse vehicle class against
// configured capacity thresholds.
package domain

import (
	"context"
	"strings"
)

// Class is the coarse capacity grouping. The facility tracks two: motorcycles
// and cars.
type Class string

const (
	ClassMotor Class = "motor"
	ClassCar   Class = "car"
)

// Classes lists every class the monitor reports on.
var Classes = []Class{ClassMotor, ClassCar}

// Level is the threshold classification of a snapshot.
type Level string

const (
	LevelAvailable Level = "AVAILABLE"
	LevelWarning   Level = "WARNING"
	LevelCritical  Level = "CRITICAL"
)

// Classify maps a raw vehicle type onto a capacity class by keyword. Types
// matching neither keyword count as cars; callers should log when the
// fallback fires since an unexpected type silently joining the car count is
// suspect behavior kept for compatibility.
func Classify(vehicleType string) (Class, bool) {
	v := strings.ToLower(vehicleType)
	switch {
	case strings.Contains(v, "motor"):
		return ClassMotor, false
	case strings.Contains(v, "mobil"), strings.Contains(v, "car"):
		return ClassCar, false
	default:
		return ClassCar, true
	}
}

// ClassifyLevel buckets a percentage against the warning/critical thresholds.
func ClassifyLevel(percent, warning, critical int) Level {
	switch {
	case percent >= critical:
		return LevelCritical
	case percent >= warning:
		return LevelWarning
	default:
		return LevelAvailable
	}
}

// Snapshot is a derived, never persisted occupancy reading.
type Snapshot struct {
	Class       Class `json:"class"`
	Capacity    int   `json:"capacity"`
	Occupied    int   `json:"occupied"`
	PercentFull int   `json:"percent_full"`
	Level       Level `json:"level"`
}

type Monitor interface {
	Snapshot(ctx context.Context, class Class) (Snapshot, error)
	SnapshotAll(ctx context.Context) ([]Snapshot, error)
}
