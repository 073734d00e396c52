package models

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type InspectionStatus string
type ChecklistResult string

const (
	InspectionStatusPending    InspectionStatus = "PENDING"
	InspectionStatusInProgress InspectionStatus = "IN_PROGRESS"
	InspectionStatusApproved   InspectionStatus = "APPROVED"
	InspectionStatusRejected   InspectionStatus = "REJECTED"
	InspectionStatusCancelled  InspectionStatus = "CANCELLED"

	ChecklistResultApproved      ChecklistResult = "APPROVED"
	ChecklistResultRejected      ChecklistResult = "REJECTED"
	ChecklistResultNotApplicable ChecklistResult = "NOT_APPLICABLE"
)

// InspectionStatuses lists every status, in lifecycle order.
var InspectionStatuses = []InspectionStatus{
	InspectionStatusPending,
	InspectionStatusInProgress,
	InspectionStatusApproved,
	InspectionStatusRejected,
	InspectionStatusCancelled,
}

// allowedTransitions is the inspection state machine, configured as data.
// CANCELLED overrides any state, including terminal outcomes; nothing leaves
// CANCELLED.
var allowedTransitions = map[InspectionStatus][]InspectionStatus{
	InspectionStatusPending:    {InspectionStatusInProgress, InspectionStatusCancelled},
	InspectionStatusInProgress: {InspectionStatusApproved, InspectionStatusRejected, InspectionStatusCancelled},
	InspectionStatusApproved:   {InspectionStatusCancelled},
	InspectionStatusRejected:   {InspectionStatusCancelled},
	InspectionStatusCancelled:  {},
}

// CanTransition reports whether from -> to is an allowed status change.
func CanTransition(from, to InspectionStatus) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminalOutcome reports whether a status carries a pass/fail verdict.
func IsTerminalOutcome(s InspectionStatus) bool {
	return s == InspectionStatusApproved || s == InspectionStatusRejected
}

type ChecklistItem struct {
	Key     string          `json:"key" bson:"key"`
	Result  ChecklistResult `json:"result" bson:"result"`
	Comment string          `json:"comment,omitempty" bson:"comment,omitempty"`
}

// EvaluateChecklist derives the terminal outcome from a checklist snapshot.
// A single REJECTED item fails the inspection; NOT_APPLICABLE items are
// ignored. An empty checklist approves: no blocker was recorded.
func EvaluateChecklist(items []ChecklistItem) InspectionStatus {
	for _, item := range items {
		if item.Result == ChecklistResultRejected {
			return InspectionStatusRejected
		}
	}
	return InspectionStatusApproved
}

// Inspection is the aggregate root of the vistoria workflow. Checklist items
// are embedded so that item replacement and status stamping commit as one
// document write.
type Inspection struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title          string             `json:"title" bson:"title"`
	Description    string             `json:"description,omitempty" bson:"description,omitempty"`
	Status         InspectionStatus   `json:"status" bson:"status"`
	VehicleID      primitive.ObjectID `json:"vehicle_id" bson:"vehicle_id"`
	InspectorID    primitive.ObjectID `json:"inspector_id" bson:"inspector_id"`
	StartedAt      time.Time          `json:"started_at" bson:"started_at"`
	EndedAt        *time.Time         `json:"ended_at,omitempty" bson:"ended_at,omitempty"`
	ElapsedMinutes *int               `json:"elapsed_minutes,omitempty" bson:"elapsed_minutes,omitempty"`
	Remarks        string             `json:"remarks,omitempty" bson:"remarks,omitempty"`
	ChecklistItems []ChecklistItem    `json:"checklist_items" bson:"checklist_items"`
	CreatedAt      time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at" bson:"updated_at"`
}

// ElapsedMinutesAt computes the minutes between the start timestamp and now,
// rounded to the nearest minute, never negative.
func (i *Inspection) ElapsedMinutesAt(now time.Time) int {
	minutes := int(math.Round(now.Sub(i.StartedAt).Minutes()))
	if minutes < 0 {
		minutes = 0
	}
	return minutes
}

// Close stamps a terminal outcome: status, end timestamp and elapsed minutes
// are always set together.
func (i *Inspection) Close(outcome InspectionStatus, now time.Time) {
	elapsed := i.ElapsedMinutesAt(now)
	i.Status = outcome
	i.EndedAt = &now
	i.ElapsedMinutes = &elapsed
}

// Deletable reports whether the inspection may be removed. Only inspections
// that never ran, or were cancelled, can go.
func (i *Inspection) Deletable() bool {
	return i.Status == InspectionStatusPending || i.Status == InspectionStatusCancelled
}

// HasElapsed reports whether the inspection carries a usable elapsed time.
// Records without one are excluded from mean calculations, not counted as
// zero.
func (i *Inspection) HasElapsed() bool {
	return i.ElapsedMinutes != nil && *i.ElapsedMinutes > 0
}

// InspectionDetail is the full inspection snapshot returned by the API,
// including the vehicle and inspector relations.
type InspectionDetail struct {
	Inspection
	Vehicle   *Vehicle     `json:"vehicle,omitempty"`
	Inspector *UserSummary `json:"inspector,omitempty"`
}

// InspectionFilter narrows inspection queries. A nil time bound or empty
// field is ignored. VehicleIDs is resolved from free-text vehicle search
// before the query runs.
type InspectionFilter struct {
	Status      InspectionStatus
	InspectorID primitive.ObjectID
	VehicleIDs  []primitive.ObjectID
	From        *time.Time
	To          *time.Time
}
