package validators

type ChecklistItemRequest struct {
	Key     string `json:"key" binding:"required" validate:"required,min=2,max=100"`
	Result  string `json:"result" binding:"required" validate:"required,oneof=APPROVED REJECTED NOT_APPLICABLE"`
	Comment string `json:"comment" validate:"omitempty,max=500"`
}

type InspectionCreateRequest struct {
	Title       string                 `json:"title" binding:"required" validate:"required,min=3,max=200"`
	Description string                 `json:"description" validate:"omitempty,max=1000"`
	VehicleID   string                 `json:"vehicle_id" binding:"required" validate:"required,object_id"`
	InspectorID string                 `json:"inspector_id" binding:"required" validate:"required,object_id"`
	Items       []ChecklistItemRequest `json:"items" validate:"omitempty,dive"`
}

// InspectionUpdateRequest patches scalar fields. A non-nil Items replaces the
// whole checklist; an absent field leaves it untouched.
type InspectionUpdateRequest struct {
	Title       *string                 `json:"title" validate:"omitempty,min=3,max=200"`
	Description *string                 `json:"description" validate:"omitempty,max=1000"`
	Remarks     *string                 `json:"remarks" validate:"omitempty,max=1000"`
	Items       *[]ChecklistItemRequest `json:"items" validate:"omitempty,dive"`
}

type InspectionCompleteRequest struct {
	Remarks string `json:"remarks" validate:"omitempty,max=1000"`
}

type InspectionStatusRequest struct {
	Status string `json:"status" binding:"required" validate:"required,oneof=PENDING IN_PROGRESS APPROVED REJECTED CANCELLED"`
}

type ReportQueryRequest struct {
	From string `form:"from" validate:"omitempty,report_date"`
	To   string `form:"to" validate:"omitempty,report_date"`
}

func ValidateInspectionCreate(req *InspectionCreateRequest) ValidationErrors {
	return ValidateStruct(req)
}

func ValidateInspectionUpdate(req *InspectionUpdateRequest) ValidationErrors {
	return ValidateStruct(req)
}

func ValidateInspectionComplete(req *InspectionCompleteRequest) ValidationErrors {
	return ValidateStruct(req)
}

func ValidateInspectionStatus(req *InspectionStatusRequest) ValidationErrors {
	return ValidateStruct(req)
}

func ValidateReportQuery(req *ReportQueryRequest) ValidationErrors {
	return ValidateStruct(req)
}
