package game

import "testing"

func TestTrackingStatusActive(t *testing.T) {
	tests := []struct {
		status TrackingStatus
		want   bool
	}{
		{StatusNoPose, false},
		{StatusLimited, false},
		{StatusTracked, true},
		{StatusExtendedTracked, true},
	}
	for _, tt := range tests {
		if got := tt.status.Active(); got != tt.want {
			t.Errorf("%v.Active() = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestParseTrackingStatus(t *testing.T) {
	got, err := ParseTrackingStatus(" extended_tracked ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != StatusExtendedTracked {
		t.Fatalf("got %v, want EXTENDED_TRACKED", got)
	}

	if _, err := ParseTrackingStatus("lost"); err == nil {
		t.Fatalf("expected error for unknown status")
	}
}

func TestTrackingGateReportsChanges(t *testing.T) {
	var g TrackingGate
	if g.Active() {
		t.Fatalf("zero gate should be closed")
	}
	if !g.Set(StatusTracked) {
		t.Fatalf("NO_POSE -> TRACKED should be a change")
	}
	if g.Set(StatusTracked) {
		t.Fatalf("TRACKED -> TRACKED should not be a change")
	}
	if !g.Active() {
		t.Fatalf("gate should be open while tracked")
	}
	g.Set(StatusLimited)
	if g.Active() {
		t.Fatalf("gate should close on LIMITED")
	}
	if g.Status() != StatusLimited {
		t.Fatalf("Status() = %v, want LIMITED", g.Status())
	}
}
