package game

import (
	"fmt"
	"strings"
)

// TrackingStatus mirrors the pose status reported by the marker tracker.
type TrackingStatus int

const (
	StatusNoPose TrackingStatus = iota
	StatusLimited
	StatusTracked
	StatusExtendedTracked
)

var statusNames = map[TrackingStatus]string{
	StatusNoPose:          "NO_POSE",
	StatusLimited:         "LIMITED",
	StatusTracked:         "TRACKED",
	StatusExtendedTracked: "EXTENDED_TRACKED",
}

func (s TrackingStatus) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("TrackingStatus(%d)", int(s))
}

// Active reports whether the marker counts as visible for spawning.
func (s TrackingStatus) Active() bool {
	return s == StatusTracked || s == StatusExtendedTracked
}

// ParseTrackingStatus accepts the wire names used by tracker clients, case-insensitively.
func ParseTrackingStatus(name string) (TrackingStatus, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for status, n := range statusNames {
		if n == upper {
			return status, nil
		}
	}
	return StatusNoPose, fmt.Errorf("unknown tracking status %q", name)
}

// TrackingGate remembers the last status the tracker reported.
// The zero value is closed (NO_POSE).
type TrackingGate struct {
	status TrackingStatus
}

// Set records a status report and reports whether it differs from the previous one.
func (g *TrackingGate) Set(status TrackingStatus) bool {
	changed := g.status != status
	g.status = status
	return changed
}

// Status returns the last reported status.
func (g *TrackingGate) Status() TrackingStatus {
	return g.status
}

// Active reports whether spawning is currently permitted by the tracker.
func (g *TrackingGate) Active() bool {
	return g.status.Active()
}
