package models

import (
	"testing"
	"time"
)

func TestCanTransition(t *testing.T) {
	allowed := map[InspectionStatus][]InspectionStatus{
		InspectionStatusPending:    {InspectionStatusInProgress, InspectionStatusCancelled},
		InspectionStatusInProgress: {InspectionStatusApproved, InspectionStatusRejected, InspectionStatusCancelled},
		InspectionStatusApproved:   {InspectionStatusCancelled},
		InspectionStatusRejected:   {InspectionStatusCancelled},
		InspectionStatusCancelled:  {},
	}

	// Exhaustive check of every (from, to) pair, including self-transitions:
	// only pairs in the table may pass.
	for _, from := range InspectionStatuses {
		for _, to := range InspectionStatuses {
			want := false
			for _, s := range allowed[from] {
				if s == to {
					want = true
				}
			}
			if got := CanTransition(from, to); got != want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestCanTransitionUnknownStatus(t *testing.T) {
	if CanTransition("UNKNOWN", InspectionStatusCancelled) {
		t.Error("transition from unknown status should be denied")
	}
}

func TestEvaluateChecklist(t *testing.T) {
	tests := []struct {
		name  string
		items []ChecklistItem
		want  InspectionStatus
	}{
		{
			name: "single rejected item fails",
			items: []ChecklistItem{
				{Key: "brakes", Result: ChecklistResultRejected},
				{Key: "tires", Result: ChecklistResultApproved},
			},
			want: InspectionStatusRejected,
		},
		{
			name: "all approved passes",
			items: []ChecklistItem{
				{Key: "brakes", Result: ChecklistResultApproved},
				{Key: "lights", Result: ChecklistResultApproved},
			},
			want: InspectionStatusApproved,
		},
		{
			name: "not applicable never blocks",
			items: []ChecklistItem{
				{Key: "trailer_hitch", Result: ChecklistResultNotApplicable},
				{Key: "brakes", Result: ChecklistResultApproved},
			},
			want: InspectionStatusApproved,
		},
		{
			name: "all not applicable passes",
			items: []ChecklistItem{
				{Key: "trailer_hitch", Result: ChecklistResultNotApplicable},
			},
			want: InspectionStatusApproved,
		},
		{
			// Deliberate default: an empty checklist records no blocker.
			name:  "empty checklist passes",
			items: nil,
			want:  InspectionStatusApproved,
		},
		{
			name: "rejected among not applicable fails",
			items: []ChecklistItem{
				{Key: "trailer_hitch", Result: ChecklistResultNotApplicable},
				{Key: "suspension", Result: ChecklistResultRejected},
			},
			want: InspectionStatusRejected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EvaluateChecklist(tt.items); got != tt.want {
				t.Errorf("EvaluateChecklist() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestElapsedMinutesAt(t *testing.T) {
	start := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"exact hour", start.Add(60 * time.Minute), 60},
		{"rounds down", start.Add(45*time.Minute + 20*time.Second), 45},
		{"rounds up", start.Add(45*time.Minute + 40*time.Second), 46},
		{"half minute rounds up", start.Add(30 * time.Second), 1},
		{"zero duration", start, 0},
		{"clock skew clamps to zero", start.Add(-5 * time.Minute), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			insp := &Inspection{StartedAt: start}
			if got := insp.ElapsedMinutesAt(tt.now); got != tt.want {
				t.Errorf("ElapsedMinutesAt() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestClose(t *testing.T) {
	start := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Minute)

	insp := &Inspection{Status: InspectionStatusInProgress, StartedAt: start}
	if insp.EndedAt != nil || insp.ElapsedMinutes != nil {
		t.Fatal("end timestamp and elapsed minutes must be unset before close")
	}

	insp.Close(InspectionStatusRejected, end)

	if insp.Status != InspectionStatusRejected {
		t.Errorf("status = %s, want %s", insp.Status, InspectionStatusRejected)
	}
	if insp.EndedAt == nil || !insp.EndedAt.Equal(end) {
		t.Errorf("ended_at = %v, want %v", insp.EndedAt, end)
	}
	if insp.ElapsedMinutes == nil || *insp.ElapsedMinutes != 90 {
		t.Errorf("elapsed_minutes = %v, want 90", insp.ElapsedMinutes)
	}
}

func TestDeletable(t *testing.T) {
	deletable := map[InspectionStatus]bool{
		InspectionStatusPending:    true,
		InspectionStatusInProgress: false,
		InspectionStatusApproved:   false,
		InspectionStatusRejected:   false,
		InspectionStatusCancelled:  true,
	}

	for status, want := range deletable {
		insp := &Inspection{Status: status}
		if got := insp.Deletable(); got != want {
			t.Errorf("Deletable() with status %s = %v, want %v", status, got, want)
		}
	}
}

func TestHasElapsed(t *testing.T) {
	zero := 0
	thirty := 30

	tests := []struct {
		name    string
		elapsed *int
		want    bool
	}{
		{"nil elapsed", nil, false},
		{"zero elapsed", &zero, false},
		{"positive elapsed", &thirty, true},
	}

	for _, tt := range tests {
		insp := &Inspection{ElapsedMinutes: tt.elapsed}
		if got := insp.HasElapsed(); got != tt.want {
			t.Errorf("%s: HasElapsed() = %v, want %v", tt.name, got, tt.want)
		}
	}
}
