package services

import (
	"context"
	"math"
	"sort"

	"vistoria/internal/models"
	"vistoria/internal/repositories/interfaces"
	"vistoria/internal/utils"
	"vistoria/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	cacheKeyOverviewReport   = "reports:overview"
	cacheKeyInspectorsReport = "reports:inspectors"
	cacheKeyBrandsReport     = "reports:brands"
	cacheKeyProblemsReport   = "reports:problems"
)

// reportCacheKeys lists every cached report so write paths can invalidate
// them in one call. Only default-window reports are cached; explicit date
// ranges always recompute.
var reportCacheKeys = []string{
	cacheKeyOverviewReport,
	cacheKeyInspectorsReport,
	cacheKeyBrandsReport,
	cacheKeyProblemsReport,
}

type ReportService interface {
	Overview(ctx context.Context, from, to string) (*models.OverviewReport, error)
	ByInspector(ctx context.Context, from, to string) ([]*models.InspectorMetrics, error)
	Brands(ctx context.Context, from, to string) (*models.BrandsReport, error)
	Problems(ctx context.Context, from, to string) (*models.ProblemsReport, error)
	ExportInspections(ctx context.Context, from, to string) (*models.InspectionsReport, error)
	ExportInspectors(ctx context.Context, from, to string) (*models.InspectorsReport, error)
}

type reportService struct {
	inspectionRepo interfaces.InspectionRepository
	vehicleRepo    interfaces.VehicleRepository
	userRepo       interfaces.UserRepository
	cache          CacheService
	logger         *logger.Logger
}

func NewReportService(
	inspectionRepo interfaces.InspectionRepository,
	vehicleRepo interfaces.VehicleRepository,
	userRepo interfaces.UserRepository,
	cache CacheService,
	log *logger.Logger,
) ReportService {
	return &reportService{
		inspectionRepo: inspectionRepo,
		vehicleRepo:    vehicleRepo,
		userRepo:       userRepo,
		cache:          cache,
		logger:         log,
	}
}

func (s *reportService) Overview(ctx context.Context, from, to string) (*models.OverviewReport, error) {
	cacheable := from == "" && to == ""
	if cacheable && s.cache != nil {
		var cached models.OverviewReport
		if err := s.cache.Get(ctx, cacheKeyOverviewReport, &cached); err == nil {
			return &cached, nil
		}
	}

	inspections, window, err := s.windowInspections(ctx, from, to)
	if err != nil {
		return nil, err
	}

	report := BuildOverview(inspections, window)
	if cacheable && s.cache != nil {
		if err := s.cache.Set(ctx, cacheKeyOverviewReport, report, utils.ReportCacheTTL); err != nil {
			s.logger.WithError(err).Warn("Failed to cache overview report")
		}
	}
	return report, nil
}

func (s *reportService) ByInspector(ctx context.Context, from, to string) ([]*models.InspectorMetrics, error) {
	cacheable := from == "" && to == ""
	if cacheable && s.cache != nil {
		var cached []*models.InspectorMetrics
		if err := s.cache.Get(ctx, cacheKeyInspectorsReport, &cached); err == nil {
			return cached, nil
		}
	}

	inspections, _, err := s.windowInspections(ctx, from, to)
	if err != nil {
		return nil, err
	}
	inspectors, err := s.listInspectors(ctx)
	if err != nil {
		return nil, err
	}

	byInspector := groupByInspector(inspections)
	metrics := make([]*models.InspectorMetrics, 0, len(inspectors))
	for _, inspector := range inspectors {
		metrics = append(metrics, BuildInspectorMetrics(inspector, byInspector[inspector.ID]))
	}
	sort.SliceStable(metrics, func(i, j int) bool {
		return metrics[i].Total > metrics[j].Total
	})

	if cacheable && s.cache != nil {
		if err := s.cache.Set(ctx, cacheKeyInspectorsReport, metrics, utils.ReportCacheTTL); err != nil {
			s.logger.WithError(err).Warn("Failed to cache inspector report")
		}
	}
	return metrics, nil
}

func (s *reportService) Brands(ctx context.Context, from, to string) (*models.BrandsReport, error) {
	cacheable := from == "" && to == ""
	if cacheable && s.cache != nil {
		var cached models.BrandsReport
		if err := s.cache.Get(ctx, cacheKeyBrandsReport, &cached); err == nil {
			return &cached, nil
		}
	}

	// Brand metrics only cover inspections that reached a verdict, so the
	// query is by terminal status with the window applied on top.
	closed, err := s.inspectionRepo.ListByStatuses(ctx, []models.InspectionStatus{
		models.InspectionStatusApproved,
		models.InspectionStatusRejected,
	})
	if err != nil {
		return nil, err
	}
	fromDate, toDate := utils.ResolveWindow(from, to)
	inspections := make([]*models.Inspection, 0, len(closed))
	for _, inspection := range closed {
		if inspection.StartedAt.Before(fromDate) || inspection.StartedAt.After(toDate) {
			continue
		}
		inspections = append(inspections, inspection)
	}
	vehicles, err := s.vehiclesFor(ctx, inspections)
	if err != nil {
		return nil, err
	}

	report := BuildBrandsReport(inspections, vehicles)
	if cacheable && s.cache != nil {
		if err := s.cache.Set(ctx, cacheKeyBrandsReport, report, utils.ReportCacheTTL); err != nil {
			s.logger.WithError(err).Warn("Failed to cache brand report")
		}
	}
	return report, nil
}

func (s *reportService) Problems(ctx context.Context, from, to string) (*models.ProblemsReport, error) {
	cacheable := from == "" && to == ""
	if cacheable && s.cache != nil {
		var cached models.ProblemsReport
		if err := s.cache.Get(ctx, cacheKeyProblemsReport, &cached); err == nil {
			return &cached, nil
		}
	}

	inspections, _, err := s.windowInspections(ctx, from, to)
	if err != nil {
		return nil, err
	}
	vehicles, err := s.vehiclesFor(ctx, inspections)
	if err != nil {
		return nil, err
	}

	report := BuildProblemsReport(inspections, vehicles)
	if cacheable && s.cache != nil {
		if err := s.cache.Set(ctx, cacheKeyProblemsReport, report, utils.ReportCacheTTL); err != nil {
			s.logger.WithError(err).Warn("Failed to cache problem report")
		}
	}
	return report, nil
}

func (s *reportService) ExportInspections(ctx context.Context, from, to string) (*models.InspectionsReport, error) {
	inspections, window, err := s.windowInspections(ctx, from, to)
	if err != nil {
		return nil, err
	}
	vehicles, err := s.vehiclesFor(ctx, inspections)
	if err != nil {
		return nil, err
	}
	inspectors, err := s.inspectorsFor(ctx, inspections)
	if err != nil {
		return nil, err
	}

	rows := make([]*models.InspectionExportRow, 0, len(inspections))
	for _, inspection := range inspections {
		rows = append(rows, BuildInspectionExportRow(inspection, vehicles[inspection.VehicleID], inspectors[inspection.InspectorID]))
	}

	return &models.InspectionsReport{
		Window:      window,
		Total:       len(rows),
		Inspections: rows,
	}, nil
}

func (s *reportService) ExportInspectors(ctx context.Context, from, to string) (*models.InspectorsReport, error) {
	inspections, _, err := s.windowInspections(ctx, from, to)
	if err != nil {
		return nil, err
	}
	inspectors, err := s.listInspectors(ctx)
	if err != nil {
		return nil, err
	}

	byInspector := groupByInspector(inspections)
	rows := make([]*models.InspectorExportRow, 0, len(inspectors))
	for _, inspector := range inspectors {
		rows = append(rows, BuildInspectorExportRow(inspector, byInspector[inspector.ID]))
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Total > rows[j].Total
	})

	return &models.InspectorsReport{
		Total:      len(rows),
		Inspectors: rows,
	}, nil
}

func (s *reportService) windowInspections(ctx context.Context, from, to string) ([]*models.Inspection, models.ReportWindow, error) {
	fromDate, toDate := utils.ResolveWindow(from, to)
	window := models.ReportWindow{
		From: utils.FormatDate(fromDate),
		To:   utils.FormatDate(toDate),
	}
	inspections, err := s.inspectionRepo.ListByWindow(ctx, fromDate, toDate)
	if err != nil {
		return nil, window, err
	}
	return inspections, window, nil
}

func (s *reportService) vehiclesFor(ctx context.Context, inspections []*models.Inspection) (map[primitive.ObjectID]*models.Vehicle, error) {
	ids := make([]primitive.ObjectID, 0, len(inspections))
	for _, inspection := range inspections {
		ids = append(ids, inspection.VehicleID)
	}
	return s.vehicleRepo.GetByIDs(ctx, ids)
}

func (s *reportService) inspectorsFor(ctx context.Context, inspections []*models.Inspection) (map[primitive.ObjectID]*models.User, error) {
	ids := make([]primitive.ObjectID, 0, len(inspections))
	for _, inspection := range inspections {
		ids = append(ids, inspection.InspectorID)
	}
	return s.userRepo.GetByIDs(ctx, ids)
}

// listInspectors returns every INSPECTOR account, so the per-inspector
// reports also show inspectors with zero activity in the window.
func (s *reportService) listInspectors(ctx context.Context) ([]*models.User, error) {
	return s.userRepo.GetByRole(ctx, models.RoleInspector)
}

func groupByInspector(inspections []*models.Inspection) map[primitive.ObjectID][]*models.Inspection {
	grouped := make(map[primitive.ObjectID][]*models.Inspection)
	for _, inspection := range inspections {
		grouped[inspection.InspectorID] = append(grouped[inspection.InspectorID], inspection)
	}
	return grouped
}

// BuildOverview aggregates totals and mean duration over a window. The mean
// only considers inspections that carry a positive elapsed time.
func BuildOverview(inspections []*models.Inspection, window models.ReportWindow) *models.OverviewReport {
	report := &models.OverviewReport{
		Total:  len(inspections),
		Window: window,
	}
	for _, inspection := range inspections {
		switch inspection.Status {
		case models.InspectionStatusApproved:
			report.Approved++
		case models.InspectionStatusRejected:
			report.Rejected++
		}
	}
	report.MeanElapsedMinutes = meanElapsed(inspections)
	return report
}

func BuildInspectorMetrics(inspector *models.User, inspections []*models.Inspection) *models.InspectorMetrics {
	metrics := &models.InspectorMetrics{
		InspectorID:    inspector.ID.Hex(),
		InspectorName:  inspector.Name,
		InspectorEmail: inspector.Email,
		Total:          len(inspections),
		ByStatus:       make(map[models.InspectionStatus]int),
	}
	for _, inspection := range inspections {
		metrics.ByStatus[inspection.Status]++
	}
	metrics.Approved = metrics.ByStatus[models.InspectionStatusApproved]
	metrics.Rejected = metrics.ByStatus[models.InspectionStatusRejected]
	metrics.MeanElapsedMinutes = meanElapsed(inspections)
	metrics.ApprovalRate = approvalRate(metrics.Approved, metrics.Total)
	return metrics
}

// BuildBrandsReport aggregates closed inspections per vehicle brand, most
// inspected brands first. Open inspections carry no verdict and are excluded;
// inspections whose vehicle is unknown are skipped.
func BuildBrandsReport(inspections []*models.Inspection, vehicles map[primitive.ObjectID]*models.Vehicle) *models.BrandsReport {
	byBrand := make(map[string][]*models.Inspection)
	for _, inspection := range inspections {
		if !models.IsTerminalOutcome(inspection.Status) {
			continue
		}
		vehicle, ok := vehicles[inspection.VehicleID]
		if !ok {
			continue
		}
		byBrand[vehicle.Brand] = append(byBrand[vehicle.Brand], inspection)
	}

	brands := make([]*models.BrandMetrics, 0, len(byBrand))
	for brand, group := range byBrand {
		metrics := &models.BrandMetrics{
			Brand: brand,
			Total: len(group),
		}
		for _, inspection := range group {
			switch inspection.Status {
			case models.InspectionStatusApproved:
				metrics.Approved++
			case models.InspectionStatusRejected:
				metrics.Rejected++
			}
		}
		metrics.ApprovalRate = approvalRate(metrics.Approved, metrics.Total)
		metrics.MeanElapsedMinutes = meanElapsed(group)
		brands = append(brands, metrics)
	}

	sort.SliceStable(brands, func(i, j int) bool {
		if brands[i].Total != brands[j].Total {
			return brands[i].Total > brands[j].Total
		}
		return brands[i].Brand < brands[j].Brand
	})

	return &models.BrandsReport{
		Total:  len(brands),
		Brands: brands,
	}
}

// BuildProblemsReport ranks rejected checklist items across all inspections,
// open ones included, since item results are recorded verbatim at creation.
// Percentages are relative to the number of closed inspections, rounded to
// two decimals, and each problem carries at most MaxProblemExamples sample
// inspections.
func BuildProblemsReport(inspections []*models.Inspection, vehicles map[primitive.ObjectID]*models.Vehicle) *models.ProblemsReport {
	closed := 0
	type problemAcc struct {
		rejections int
		brands     map[string]struct{}
		examples   []models.ProblemExample
	}
	acc := make(map[string]*problemAcc)
	order := make([]string, 0)

	for _, inspection := range inspections {
		if models.IsTerminalOutcome(inspection.Status) {
			closed++
		}

		for _, item := range inspection.ChecklistItems {
			if item.Result != models.ChecklistResultRejected {
				continue
			}
			entry, ok := acc[item.Key]
			if !ok {
				entry = &problemAcc{brands: make(map[string]struct{})}
				acc[item.Key] = entry
				order = append(order, item.Key)
			}
			entry.rejections++

			vehicle := vehicles[inspection.VehicleID]
			if vehicle != nil {
				entry.brands[vehicle.Brand] = struct{}{}
			}
			if len(entry.examples) < utils.MaxProblemExamples {
				example := models.ProblemExample{
					InspectionID: inspection.ID.Hex(),
					Comment:      item.Comment,
				}
				if vehicle != nil {
					example.Vehicle = vehicle.Name
					example.Plate = vehicle.Plate
				}
				entry.examples = append(entry.examples, example)
			}
		}
	}

	problems := make([]*models.ProblemMetrics, 0, len(acc))
	for _, key := range order {
		entry := acc[key]
		brands := make([]string, 0, len(entry.brands))
		for brand := range entry.brands {
			brands = append(brands, brand)
		}
		sort.Strings(brands)

		percentage := 0.0
		if closed > 0 {
			percentage = math.Round(float64(entry.rejections)/float64(closed)*10000) / 100
		}

		problems = append(problems, &models.ProblemMetrics{
			Item:           key,
			Rejections:     entry.rejections,
			Percentage:     percentage,
			AffectedBrands: brands,
			Examples:       entry.examples,
		})
	}

	sort.SliceStable(problems, func(i, j int) bool {
		return problems[i].Rejections > problems[j].Rejections
	})

	return &models.ProblemsReport{
		Total:    len(problems),
		Problems: problems,
	}
}

func BuildInspectionExportRow(inspection *models.Inspection, vehicle *models.Vehicle, inspector *models.User) *models.InspectionExportRow {
	row := &models.InspectionExportRow{
		ID:        inspection.ID.Hex(),
		Title:     inspection.Title,
		Status:    string(inspection.Status),
		StartDate: utils.FormatDate(inspection.StartedAt),
		EndDate:   utils.FormatDatePtr(inspection.EndedAt),
		Remarks:   inspection.Remarks,
	}
	if inspection.ElapsedMinutes != nil {
		row.ElapsedMinutes = *inspection.ElapsedMinutes
	}
	if vehicle != nil {
		row.Vehicle = models.VehicleExport{
			Name:  vehicle.Name,
			Plate: vehicle.Plate,
			Brand: vehicle.Brand,
			Model: vehicle.Model,
			Year:  vehicle.Year,
			Owner: vehicle.Owner,
		}
	}
	if inspector != nil {
		row.Inspector = models.InspectorExport{
			Name:  inspector.Name,
			Email: inspector.Email,
		}
	}
	for _, item := range inspection.ChecklistItems {
		row.Checklist.Total++
		switch item.Result {
		case models.ChecklistResultApproved:
			row.Checklist.Approved++
		case models.ChecklistResultRejected:
			row.Checklist.Rejected++
		case models.ChecklistResultNotApplicable:
			row.Checklist.NotApplicable++
		}
	}
	return row
}

func BuildInspectorExportRow(inspector *models.User, inspections []*models.Inspection) *models.InspectorExportRow {
	metrics := BuildInspectorMetrics(inspector, inspections)
	return &models.InspectorExportRow{
		ID:                 metrics.InspectorID,
		Name:               metrics.InspectorName,
		Email:              metrics.InspectorEmail,
		Total:              metrics.Total,
		Approved:           metrics.Approved,
		Rejected:           metrics.Rejected,
		Pending:            metrics.ByStatus[models.InspectionStatusPending],
		InProgress:         metrics.ByStatus[models.InspectionStatusInProgress],
		Cancelled:          metrics.ByStatus[models.InspectionStatusCancelled],
		MeanElapsedMinutes: metrics.MeanElapsedMinutes,
		ApprovalRate:       metrics.ApprovalRate,
	}
}

// meanElapsed averages elapsed minutes over inspections that have one,
// rounded to the nearest minute. Returns 0 when none qualify.
func meanElapsed(inspections []*models.Inspection) int {
	sum, count := 0, 0
	for _, inspection := range inspections {
		if inspection.HasElapsed() {
			sum += *inspection.ElapsedMinutes
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return int(math.Round(float64(sum) / float64(count)))
}

// approvalRate is the approved share as a whole percentage, 0 when total is 0.
func approvalRate(approved, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(approved) / float64(total) * 100))
}
