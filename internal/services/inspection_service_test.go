package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"vistoria/internal/models"
	"vistoria/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type inspectionFixture struct {
	service   InspectionService
	users     *fakeUserRepo
	vehicles  *fakeVehicleRepo
	repo      *fakeInspectionRepo
	cache     *fakeCache
	inspector *models.User
	vehicle   *models.Vehicle
}

func newInspectionFixture() *inspectionFixture {
	users := newFakeUserRepo()
	vehicles := newFakeVehicleRepo()
	repo := newFakeInspectionRepo()
	cache := newFakeCache()

	return &inspectionFixture{
		service:   NewInspectionService(repo, vehicles, users, cache, newTestLogger()),
		users:     users,
		vehicles:  vehicles,
		repo:      repo,
		cache:     cache,
		inspector: users.add("Carlos Mendes", "carlos@vistoria.dev", models.RoleInspector),
		vehicle:   vehicles.add("Fleet Car 1", "ABC-1234", "Toyota", "Corolla"),
	}
}

func (f *inspectionFixture) seed(status models.InspectionStatus, startedAt time.Time) *models.Inspection {
	return f.repo.add(&models.Inspection{
		Title:       "Annual check",
		Status:      status,
		VehicleID:   f.vehicle.ID,
		InspectorID: f.inspector.ID,
		StartedAt:   startedAt,
	})
}

func TestInspectionCreate(t *testing.T) {
	f := newInspectionFixture()
	ctx := context.Background()

	detail, err := f.service.Create(ctx, &CreateInspectionInput{
		Title:       "Entry inspection",
		VehicleID:   f.vehicle.ID,
		InspectorID: f.inspector.ID,
		Items: []models.ChecklistItem{
			{Key: "brakes", Result: models.ChecklistResultRejected, Comment: "worn pads"},
		},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if detail.Status != models.InspectionStatusPending {
		t.Errorf("status = %s, want PENDING", detail.Status)
	}
	if detail.StartedAt.IsZero() {
		t.Error("start timestamp not set")
	}
	if detail.EndedAt != nil || detail.ElapsedMinutes != nil {
		t.Error("terminal fields must stay unset at creation")
	}
	// A failing item must not close the inspection at creation time.
	if got := detail.ChecklistItems[0].Result; got != models.ChecklistResultRejected {
		t.Errorf("item result = %s, want REJECTED recorded verbatim", got)
	}
	if detail.Vehicle == nil || detail.Vehicle.ID != f.vehicle.ID {
		t.Error("vehicle relation missing")
	}
	if detail.Inspector == nil || detail.Inspector.ID != f.inspector.ID {
		t.Error("inspector relation missing")
	}
}

func TestInspectionCreateRejectsUnknownVehicle(t *testing.T) {
	f := newInspectionFixture()

	_, err := f.service.Create(context.Background(), &CreateInspectionInput{
		Title:       "Entry inspection",
		VehicleID:   primitive.NewObjectID(),
		InspectorID: f.inspector.ID,
	})
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestInspectionCreateRejectsNonInspector(t *testing.T) {
	f := newInspectionFixture()
	plain := f.users.add("Ana Lima", "ana@vistoria.dev", models.RoleUser)

	_, err := f.service.Create(context.Background(), &CreateInspectionInput{
		Title:       "Entry inspection",
		VehicleID:   f.vehicle.ID,
		InspectorID: plain.ID,
	})
	if !errors.Is(err, models.ErrInvalidState) {
		t.Errorf("error = %v, want ErrInvalidState", err)
	}
}

func TestInspectionCompleteDerivesOutcome(t *testing.T) {
	tests := []struct {
		name  string
		items []models.ChecklistItem
		want  models.InspectionStatus
	}{
		{
			name: "rejected item fails",
			items: []models.ChecklistItem{
				{Key: "lights", Result: models.ChecklistResultApproved},
				{Key: "brakes", Result: models.ChecklistResultRejected},
			},
			want: models.InspectionStatusRejected,
		},
		{
			name: "all passing approves",
			items: []models.ChecklistItem{
				{Key: "lights", Result: models.ChecklistResultApproved},
				{Key: "tires", Result: models.ChecklistResultNotApplicable},
			},
			want: models.InspectionStatusApproved,
		},
		{
			name:  "empty checklist approves",
			items: nil,
			want:  models.InspectionStatusApproved,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newInspectionFixture()
			inspection := f.seed(models.InspectionStatusInProgress, time.Now().Add(-90*time.Minute))
			inspection.ChecklistItems = tt.items

			detail, err := f.service.Complete(context.Background(), inspection.ID, "done")
			if err != nil {
				t.Fatalf("Complete() error = %v", err)
			}
			if detail.Status != tt.want {
				t.Errorf("status = %s, want %s", detail.Status, tt.want)
			}
			if detail.EndedAt == nil || detail.ElapsedMinutes == nil {
				t.Fatal("terminal fields must be stamped together")
			}
			if *detail.ElapsedMinutes != 90 {
				t.Errorf("elapsed = %d, want 90", *detail.ElapsedMinutes)
			}
			if detail.Remarks != "done" {
				t.Errorf("remarks = %q, want %q", detail.Remarks, "done")
			}
		})
	}
}

func TestInspectionCompleteRequiresInProgress(t *testing.T) {
	for _, status := range []models.InspectionStatus{
		models.InspectionStatusPending,
		models.InspectionStatusApproved,
		models.InspectionStatusRejected,
		models.InspectionStatusCancelled,
	} {
		t.Run(string(status), func(t *testing.T) {
			f := newInspectionFixture()
			inspection := f.seed(status, time.Now())

			_, err := f.service.Complete(context.Background(), inspection.ID, "")
			if !errors.Is(err, models.ErrInvalidState) {
				t.Errorf("error = %v, want ErrInvalidState", err)
			}
		})
	}
}

func TestInspectionUpdateStatus(t *testing.T) {
	tests := []struct {
		name    string
		from    models.InspectionStatus
		to      models.InspectionStatus
		wantErr bool
	}{
		{name: "start", from: models.InspectionStatusPending, to: models.InspectionStatusInProgress},
		{name: "cancel pending", from: models.InspectionStatusPending, to: models.InspectionStatusCancelled},
		{name: "cancel in progress", from: models.InspectionStatusInProgress, to: models.InspectionStatusCancelled},
		{name: "cancel approved", from: models.InspectionStatusApproved, to: models.InspectionStatusCancelled},
		{name: "cancel rejected", from: models.InspectionStatusRejected, to: models.InspectionStatusCancelled},
		{name: "manual approve", from: models.InspectionStatusInProgress, to: models.InspectionStatusApproved},
		{name: "manual reject", from: models.InspectionStatusInProgress, to: models.InspectionStatusRejected},
		{name: "skip in progress", from: models.InspectionStatusPending, to: models.InspectionStatusApproved, wantErr: true},
		{name: "reopen approved", from: models.InspectionStatusApproved, to: models.InspectionStatusInProgress, wantErr: true},
		{name: "revive cancelled", from: models.InspectionStatusCancelled, to: models.InspectionStatusPending, wantErr: true},
		{name: "flip verdict", from: models.InspectionStatusApproved, to: models.InspectionStatusRejected, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newInspectionFixture()
			inspection := f.seed(tt.from, time.Now().Add(-30*time.Minute))

			detail, err := f.service.UpdateStatus(context.Background(), inspection.ID, tt.to)
			if tt.wantErr {
				if !errors.Is(err, models.ErrInvalidTransition) {
					t.Errorf("error = %v, want ErrInvalidTransition", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("UpdateStatus() error = %v", err)
			}
			if detail.Status != tt.to {
				t.Errorf("status = %s, want %s", detail.Status, tt.to)
			}
			if models.IsTerminalOutcome(tt.to) {
				if detail.EndedAt == nil || detail.ElapsedMinutes == nil {
					t.Error("terminal override must stamp timing fields")
				}
			} else if detail.EndedAt != nil {
				t.Error("non-terminal transition must not stamp timing fields")
			}
		})
	}
}

func TestInspectionManualOverrideIgnoresChecklist(t *testing.T) {
	f := newInspectionFixture()
	inspection := f.seed(models.InspectionStatusInProgress, time.Now())
	inspection.ChecklistItems = []models.ChecklistItem{
		{Key: "brakes", Result: models.ChecklistResultRejected},
	}

	// The manual path takes the caller's verdict even when the checklist
	// would fail the inspection.
	detail, err := f.service.UpdateStatus(context.Background(), inspection.ID, models.InspectionStatusApproved)
	if err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}
	if detail.Status != models.InspectionStatusApproved {
		t.Errorf("status = %s, want APPROVED", detail.Status)
	}
}

func TestInspectionUpdateReplacesChecklist(t *testing.T) {
	f := newInspectionFixture()
	inspection := f.seed(models.InspectionStatusInProgress, time.Now())
	inspection.ChecklistItems = []models.ChecklistItem{
		{Key: "lights", Result: models.ChecklistResultApproved},
		{Key: "brakes", Result: models.ChecklistResultApproved},
	}

	items := []models.ChecklistItem{
		{Key: "tires", Result: models.ChecklistResultRejected, Comment: "bald"},
	}
	detail, err := f.service.Update(context.Background(), inspection.ID, &UpdateInspectionInput{
		Items: &items,
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if len(detail.ChecklistItems) != 1 || detail.ChecklistItems[0].Key != "tires" {
		t.Errorf("checklist = %+v, want full replacement with tires", detail.ChecklistItems)
	}
	if detail.Status != models.InspectionStatusInProgress {
		t.Errorf("status = %s, item updates must not change status", detail.Status)
	}
}

func TestInspectionUpdateNilItemsKeepsChecklist(t *testing.T) {
	f := newInspectionFixture()
	inspection := f.seed(models.InspectionStatusPending, time.Now())
	inspection.ChecklistItems = []models.ChecklistItem{
		{Key: "lights", Result: models.ChecklistResultApproved},
	}

	title := "Renamed"
	detail, err := f.service.Update(context.Background(), inspection.ID, &UpdateInspectionInput{
		Title: &title,
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if detail.Title != "Renamed" {
		t.Errorf("title = %q, want Renamed", detail.Title)
	}
	if len(detail.ChecklistItems) != 1 {
		t.Error("absent items field must leave the checklist untouched")
	}
}

func TestInspectionDelete(t *testing.T) {
	tests := []struct {
		status  models.InspectionStatus
		wantErr bool
	}{
		{status: models.InspectionStatusPending},
		{status: models.InspectionStatusCancelled},
		{status: models.InspectionStatusInProgress, wantErr: true},
		{status: models.InspectionStatusApproved, wantErr: true},
		{status: models.InspectionStatusRejected, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			f := newInspectionFixture()
			inspection := f.seed(tt.status, time.Now())

			err := f.service.Delete(context.Background(), inspection.ID)
			if tt.wantErr {
				if !errors.Is(err, models.ErrInvalidState) {
					t.Errorf("error = %v, want ErrInvalidState", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Delete() error = %v", err)
			}
			if _, err := f.repo.GetByID(context.Background(), inspection.ID); !errors.Is(err, models.ErrNotFound) {
				t.Error("inspection still present after delete")
			}
		})
	}
}

func TestInspectionListFiltersBySearch(t *testing.T) {
	f := newInspectionFixture()
	other := f.vehicles.add("Fleet Van", "XYZ-9876", "Fiat", "Ducato")

	f.seed(models.InspectionStatusPending, time.Now())
	f.repo.add(&models.Inspection{
		Title:       "Van check",
		Status:      models.InspectionStatusPending,
		VehicleID:   other.ID,
		InspectorID: f.inspector.ID,
		StartedAt:   time.Now(),
	})

	params := &utils.PaginationParams{Page: 1, PageSize: 10}
	details, total, err := f.service.List(context.Background(), &InspectionQuery{Search: "ducato"}, params)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if total != 1 || len(details) != 1 {
		t.Fatalf("total = %d, len = %d, want 1/1", total, len(details))
	}
	if details[0].Vehicle.ID != other.ID {
		t.Error("search returned the wrong vehicle's inspection")
	}

	details, total, err = f.service.List(context.Background(), &InspectionQuery{Search: "no-such-vehicle"}, params)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if total != 0 || len(details) != 0 {
		t.Errorf("total = %d, len = %d, want empty result for unmatched search", total, len(details))
	}
}

func TestInspectionListFiltersByStatus(t *testing.T) {
	f := newInspectionFixture()
	f.seed(models.InspectionStatusPending, time.Now())
	f.seed(models.InspectionStatusApproved, time.Now())
	f.seed(models.InspectionStatusApproved, time.Now())

	details, total, err := f.service.List(context.Background(),
		&InspectionQuery{Status: models.InspectionStatusApproved},
		&utils.PaginationParams{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if total != 2 || len(details) != 2 {
		t.Errorf("total = %d, len = %d, want 2/2", total, len(details))
	}
}

func TestInspectionMutationsInvalidateReportCache(t *testing.T) {
	f := newInspectionFixture()
	f.cache.entries[cacheKeyOverviewReport] = []byte(`{}`)

	_, err := f.service.Create(context.Background(), &CreateInspectionInput{
		Title:       "Entry inspection",
		VehicleID:   f.vehicle.ID,
		InspectorID: f.inspector.ID,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, ok := f.cache.entries[cacheKeyOverviewReport]; ok {
		t.Error("report cache not invalidated on create")
	}
}
