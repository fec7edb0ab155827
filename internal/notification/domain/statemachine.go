package domain

import (
	"context"

	"github.com/looplab/fsm"

	capacitydomain "github.com/idiarso/parkingLot-sub000/internal/capacity/domain"
)

const (
	stateAvailable = "available"
	stateWarning   = "warning"
	stateCritical  = "critical"

	eventToAvailable = "to_available"
	eventToWarning   = "to_warning"
	eventToCritical  = "to_critical"
)

// CapacityMachine tracks one class's occupancy level so the evaluator emits
// on transitions rather than on every tick in the same state. Escalation may
// jump straight from available to critical when a burst of entries lands
// between ticks.
type CapacityMachine struct {
	fsm *fsm.FSM
}

func NewCapacityMachine() *CapacityMachine {
	return &CapacityMachine{
		fsm: fsm.NewFSM(
			stateAvailable,
			fsm.Events{
				{Name: eventToWarning, Src: []string{stateAvailable, stateCritical}, Dst: stateWarning},
				{Name: eventToCritical, Src: []string{stateAvailable, stateWarning}, Dst: stateCritical},
				{Name: eventToAvailable, Src: []string{stateWarning, stateCritical}, Dst: stateAvailable},
			},
			fsm.Callbacks{},
		),
	}
}

// Apply moves the machine to the given level and reports whether anything
// changed and whether the move was an escalation.
func (m *CapacityMachine) Apply(level capacitydomain.Level) (changed, escalated bool) {
	from := m.fsm.Current()
	to := stateFor(level)
	if from == to {
		return false, false
	}

	_ = m.fsm.Event(context.Background(), eventFor(level))
	return true, rank(to) > rank(from)
}

// Level reports the machine's current level.
func (m *CapacityMachine) Level() capacitydomain.Level {
	switch m.fsm.Current() {
	case stateCritical:
		return capacitydomain.LevelCritical
	case stateWarning:
		return capacitydomain.LevelWarning
	default:
		return capacitydomain.LevelAvailable
	}
}

func stateFor(level capacitydomain.Level) string {
	switch level {
	case capacitydomain.LevelCritical:
		return stateCritical
	case capacitydomain.LevelWarning:
		return stateWarning
	default:
		return stateAvailable
	}
}

func eventFor(level capacitydomain.Level) string {
	switch level {
	case capacitydomain.LevelCritical:
		return eventToCritical
	case capacitydomain.LevelWarning:
		return eventToWarning
	default:
		return eventToAvailable
	}
}

func rank(state string) int {
	switch state {
	case stateCritical:
		return 2
	case stateWarning:
		return 1
	default:
		return 0
	}
}
