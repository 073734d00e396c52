package models

// ReportWindow is the resolved [from, to] date range of a report, formatted
// as yyyy-mm-dd.
type ReportWindow struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type OverviewReport struct {
	Total              int          `json:"total"`
	Approved           int          `json:"approved"`
	Rejected           int          `json:"rejected"`
	MeanElapsedMinutes int          `json:"mean_elapsed_minutes"`
	Window             ReportWindow `json:"window"`
}

type InspectorMetrics struct {
	InspectorID        string                   `json:"inspector_id"`
	InspectorName      string                   `json:"inspector_name"`
	InspectorEmail     string                   `json:"inspector_email"`
	Total              int                      `json:"total"`
	Approved           int                      `json:"approved"`
	Rejected           int                      `json:"rejected"`
	MeanElapsedMinutes int                      `json:"mean_elapsed_minutes"`
	ApprovalRate       int                      `json:"approval_rate"`
	ByStatus           map[InspectionStatus]int `json:"by_status"`
}

type BrandMetrics struct {
	Brand              string `json:"brand"`
	Total              int    `json:"total"`
	Approved           int    `json:"approved"`
	Rejected           int    `json:"rejected"`
	ApprovalRate       int    `json:"approval_rate"`
	MeanElapsedMinutes int    `json:"mean_elapsed_minutes"`
}

// BrandsReport lists per-brand metrics; Total is the number of brands.
type BrandsReport struct {
	Total  int             `json:"total"`
	Brands []*BrandMetrics `json:"brands"`
}

type ProblemExample struct {
	InspectionID string `json:"inspection_id"`
	Vehicle      string `json:"vehicle"`
	Plate        string `json:"plate"`
	Comment      string `json:"comment,omitempty"`
}

type ProblemMetrics struct {
	Item           string           `json:"item"`
	Rejections     int              `json:"rejections"`
	Percentage     float64          `json:"percentage"`
	AffectedBrands []string         `json:"affected_brands"`
	Examples       []ProblemExample `json:"examples"`
}

// ProblemsReport lists per-item rejection metrics; Total is the number of
// distinct problem keys.
type ProblemsReport struct {
	Total    int               `json:"total"`
	Problems []*ProblemMetrics `json:"problems"`
}

// ChecklistTotals summarizes a checklist by result for export rows.
type ChecklistTotals struct {
	Total         int `json:"total"`
	Approved      int `json:"approved"`
	Rejected      int `json:"rejected"`
	NotApplicable int `json:"not_applicable"`
}

type VehicleExport struct {
	Name  string `json:"name"`
	Plate string `json:"plate"`
	Brand string `json:"brand"`
	Model string `json:"model"`
	Year  int    `json:"year"`
	Owner string `json:"owner"`
}

type InspectorExport struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// InspectionExportRow is one inspection flattened for CSV/JSON export.
// Column order of the CSV rendering is a compatibility surface.
type InspectionExportRow struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	Status         string          `json:"status"`
	StartDate      string          `json:"start_date"`
	EndDate        string          `json:"end_date,omitempty"`
	ElapsedMinutes int             `json:"elapsed_minutes"`
	Remarks        string          `json:"remarks,omitempty"`
	Vehicle        VehicleExport   `json:"vehicle"`
	Inspector      InspectorExport `json:"inspector"`
	Checklist      ChecklistTotals `json:"checklist"`
}

type InspectionsReport struct {
	Window      ReportWindow           `json:"window"`
	Total       int                    `json:"total"`
	Inspections []*InspectionExportRow `json:"inspections"`
}

// InspectorExportRow is one inspector's aggregate line for CSV/JSON export.
type InspectorExportRow struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Email              string `json:"email"`
	Total              int    `json:"total"`
	Approved           int    `json:"approved"`
	Rejected           int    `json:"rejected"`
	Pending            int    `json:"pending"`
	InProgress         int    `json:"in_progress"`
	Cancelled          int    `json:"cancelled"`
	MeanElapsedMinutes int    `json:"mean_elapsed_minutes"`
	ApprovalRate       int    `json:"approval_rate"`
}

type InspectorsReport struct {
	Total      int                   `json:"total"`
	Inspectors []*InspectorExportRow `json:"inspectors"`
}
