package validators

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestValidateLicensePlate(t *testing.T) {
	type plateRequest struct {
		Plate string `validate:"license_plate"`
	}

	tests := []struct {
		plate string
		valid bool
	}{
		{"ABC-1234", true},
		{"ABC1234", true},
		{"abc-1234", true},  // normalized before matching
		{"ABC-1D23", true},  // Mercosul format
		{"ABC1D23", true},
		{"AB-1234", false},  // too few letters
		{"ABCD-1234", false},
		{"ABC-12345", false},
		{"1234-ABC", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.plate, func(t *testing.T) {
			errs := ValidateStruct(&plateRequest{Plate: tt.plate})
			if got := len(errs) == 0; got != tt.valid {
				t.Errorf("plate %q valid = %v, want %v", tt.plate, got, tt.valid)
			}
		})
	}
}

func TestValidateObjectID(t *testing.T) {
	type idRequest struct {
		ID string `validate:"object_id"`
	}

	if errs := ValidateStruct(&idRequest{ID: primitive.NewObjectID().Hex()}); len(errs) != 0 {
		t.Errorf("valid hex ID rejected: %v", errs)
	}
	if errs := ValidateStruct(&idRequest{ID: "not-an-id"}); len(errs) == 0 {
		t.Error("malformed ID accepted")
	}
}

func TestValidateRegister(t *testing.T) {
	valid := &RegisterRequest{
		Name:     "Carlos Mendes",
		Email:    "carlos@vistoria.dev",
		Password: "123456",
		Role:     "INSPECTOR",
	}
	if errs := ValidateRegister(valid); len(errs) != 0 {
		t.Errorf("valid request rejected: %v", errs)
	}

	invalid := &RegisterRequest{
		Name:     "C",
		Email:    "not-an-email",
		Password: "123",
		Role:     "SUPERVISOR",
	}
	errs := ValidateRegister(invalid)
	if len(errs) != 4 {
		t.Errorf("errors = %d, want 4: %v", len(errs), errs)
	}
}

func TestValidateInspectionCreate(t *testing.T) {
	valid := &InspectionCreateRequest{
		Title:       "Entry inspection",
		VehicleID:   primitive.NewObjectID().Hex(),
		InspectorID: primitive.NewObjectID().Hex(),
		Items: []ChecklistItemRequest{
			{Key: "brakes", Result: "REJECTED", Comment: "worn pads"},
			{Key: "lights", Result: "APPROVED"},
		},
	}
	if errs := ValidateInspectionCreate(valid); len(errs) != 0 {
		t.Errorf("valid request rejected: %v", errs)
	}

	badResult := &InspectionCreateRequest{
		Title:       "Entry inspection",
		VehicleID:   primitive.NewObjectID().Hex(),
		InspectorID: primitive.NewObjectID().Hex(),
		Items: []ChecklistItemRequest{
			{Key: "brakes", Result: "MAYBE"},
		},
	}
	if errs := ValidateInspectionCreate(badResult); len(errs) == 0 {
		t.Error("unknown checklist result accepted")
	}
}

func TestValidateInspectionStatus(t *testing.T) {
	if errs := ValidateInspectionStatus(&InspectionStatusRequest{Status: "IN_PROGRESS"}); len(errs) != 0 {
		t.Errorf("valid status rejected: %v", errs)
	}
	if errs := ValidateInspectionStatus(&InspectionStatusRequest{Status: "DONE"}); len(errs) == 0 {
		t.Error("unknown status accepted")
	}
}

func TestValidateReportQuery(t *testing.T) {
	if errs := ValidateReportQuery(&ReportQueryRequest{From: "2026-08-01", To: "2026-08-29"}); len(errs) != 0 {
		t.Errorf("valid range rejected: %v", errs)
	}
	if errs := ValidateReportQuery(&ReportQueryRequest{}); len(errs) != 0 {
		t.Errorf("empty range rejected: %v", errs)
	}
	if errs := ValidateReportQuery(&ReportQueryRequest{From: "01/08/2026"}); len(errs) == 0 {
		t.Error("malformed date accepted")
	}
}
