package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"vistoria/internal/models"
	"vistoria/internal/repositories/interfaces"
	"vistoria/internal/utils"
	"vistoria/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InspectionService drives the vistoria lifecycle. Two distinct paths reach a
// terminal status: Complete derives the outcome from the checklist, while
// UpdateStatus applies a caller-supplied APPROVED/REJECTED without consulting
// the items, as a manual override.
type InspectionService interface {
	Create(ctx context.Context, input *CreateInspectionInput) (*models.InspectionDetail, error)
	List(ctx context.Context, query *InspectionQuery, params *utils.PaginationParams) ([]*models.InspectionDetail, int64, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.InspectionDetail, error)
	Update(ctx context.Context, id primitive.ObjectID, input *UpdateInspectionInput) (*models.InspectionDetail, error)
	Complete(ctx context.Context, id primitive.ObjectID, remarks string) (*models.InspectionDetail, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, target models.InspectionStatus) (*models.InspectionDetail, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type CreateInspectionInput struct {
	Title       string
	Description string
	VehicleID   primitive.ObjectID
	InspectorID primitive.ObjectID
	Items       []models.ChecklistItem
}

type UpdateInspectionInput struct {
	Title       *string
	Description *string
	Remarks     *string
	// Items replaces the whole checklist when non-nil; partial item patches
	// are not supported.
	Items *[]models.ChecklistItem
}

type InspectionQuery struct {
	Status      models.InspectionStatus
	InspectorID string
	From        string
	To          string
	Search      string
}

type inspectionService struct {
	inspectionRepo interfaces.InspectionRepository
	vehicleRepo    interfaces.VehicleRepository
	userRepo       interfaces.UserRepository
	cache          CacheService
	logger         *logger.Logger
}

func NewInspectionService(
	inspectionRepo interfaces.InspectionRepository,
	vehicleRepo interfaces.VehicleRepository,
	userRepo interfaces.UserRepository,
	cache CacheService,
	log *logger.Logger,
) InspectionService {
	return &inspectionService{
		inspectionRepo: inspectionRepo,
		vehicleRepo:    vehicleRepo,
		userRepo:       userRepo,
		cache:          cache,
		logger:         log,
	}
}

func (s *inspectionService) Create(ctx context.Context, input *CreateInspectionInput) (*models.InspectionDetail, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, input.VehicleID)
	if err != nil {
		return nil, err
	}

	inspector, err := s.userRepo.GetByID(ctx, input.InspectorID)
	if err != nil {
		return nil, err
	}
	if !inspector.Role.CanInspect() {
		return nil, fmt.Errorf("%w: user %s cannot own inspections", models.ErrInvalidState, inspector.ID.Hex())
	}

	// Item results are persisted verbatim; the evaluator only runs on
	// Complete.
	inspection := &models.Inspection{
		Title:          strings.TrimSpace(input.Title),
		Description:    strings.TrimSpace(input.Description),
		Status:         models.InspectionStatusPending,
		VehicleID:      vehicle.ID,
		InspectorID:    inspector.ID,
		StartedAt:      time.Now(),
		ChecklistItems: input.Items,
	}

	if err := s.inspectionRepo.Create(ctx, inspection); err != nil {
		return nil, err
	}
	s.invalidateReports(ctx)

	s.logger.WithFields(map[string]interface{}{
		"inspection_id": inspection.ID.Hex(),
		"vehicle_id":    vehicle.ID.Hex(),
	}).Info("Inspection created")

	return &models.InspectionDetail{
		Inspection: *inspection,
		Vehicle:    vehicle,
		Inspector:  inspector.Summary(),
	}, nil
}

func (s *inspectionService) List(ctx context.Context, query *InspectionQuery, params *utils.PaginationParams) ([]*models.InspectionDetail, int64, error) {
	filter, err := s.resolveFilter(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	if filter == nil {
		// Free-text search matched no vehicle.
		return []*models.InspectionDetail{}, 0, nil
	}

	inspections, total, err := s.inspectionRepo.List(ctx, filter, params)
	if err != nil {
		return nil, 0, err
	}

	details, err := s.buildDetails(ctx, inspections)
	if err != nil {
		return nil, 0, err
	}
	return details, total, nil
}

func (s *inspectionService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.InspectionDetail, error) {
	inspection, err := s.inspectionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.buildDetail(ctx, inspection)
}

func (s *inspectionService) Update(ctx context.Context, id primitive.ObjectID, input *UpdateInspectionInput) (*models.InspectionDetail, error) {
	if _, err := s.inspectionRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.Title != nil {
		updates["title"] = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		updates["description"] = strings.TrimSpace(*input.Description)
	}
	if input.Remarks != nil {
		updates["remarks"] = strings.TrimSpace(*input.Remarks)
	}
	if input.Items != nil {
		// Whole-set replacement: the embedded array is swapped in the same
		// write as the field updates, so readers never observe a partial
		// checklist.
		items := *input.Items
		if items == nil {
			items = []models.ChecklistItem{}
		}
		updates["checklist_items"] = items
	}

	if len(updates) > 0 {
		if err := s.inspectionRepo.Update(ctx, id, updates); err != nil {
			return nil, err
		}
		s.invalidateReports(ctx)
	}

	return s.GetByID(ctx, id)
}

func (s *inspectionService) Complete(ctx context.Context, id primitive.ObjectID, remarks string) (*models.InspectionDetail, error) {
	inspection, err := s.inspectionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if inspection.Status != models.InspectionStatusInProgress {
		return nil, fmt.Errorf("%w: only in-progress inspections can be completed (current: %s)",
			models.ErrInvalidState, inspection.Status)
	}

	outcome := models.EvaluateChecklist(inspection.ChecklistItems)
	inspection.Close(outcome, time.Now())

	updates := map[string]interface{}{
		"status":          inspection.Status,
		"ended_at":        inspection.EndedAt,
		"elapsed_minutes": inspection.ElapsedMinutes,
	}
	if remarks != "" {
		updates["remarks"] = strings.TrimSpace(remarks)
	}

	if err := s.inspectionRepo.Update(ctx, id, updates); err != nil {
		return nil, err
	}
	s.invalidateReports(ctx)

	s.logger.WithFields(map[string]interface{}{
		"inspection_id": id.Hex(),
		"outcome":       outcome,
	}).Info("Inspection completed")

	return s.GetByID(ctx, id)
}

func (s *inspectionService) UpdateStatus(ctx context.Context, id primitive.ObjectID, target models.InspectionStatus) (*models.InspectionDetail, error) {
	inspection, err := s.inspectionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !models.CanTransition(inspection.Status, target) {
		return nil, fmt.Errorf("%w: %s -> %s", models.ErrInvalidTransition, inspection.Status, target)
	}

	updates := map[string]interface{}{"status": target}
	if models.IsTerminalOutcome(target) {
		// Manual terminal override: the caller supplies the verdict, the
		// checklist is not re-evaluated.
		inspection.Close(target, time.Now())
		updates["ended_at"] = inspection.EndedAt
		updates["elapsed_minutes"] = inspection.ElapsedMinutes
	}

	if err := s.inspectionRepo.Update(ctx, id, updates); err != nil {
		return nil, err
	}
	s.invalidateReports(ctx)

	s.logger.WithFields(map[string]interface{}{
		"inspection_id": id.Hex(),
		"status":        target,
	}).Info("Inspection status changed")

	return s.GetByID(ctx, id)
}

func (s *inspectionService) Delete(ctx context.Context, id primitive.ObjectID) error {
	inspection, err := s.inspectionRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !inspection.Deletable() {
		return fmt.Errorf("%w: only pending or cancelled inspections can be deleted (current: %s)",
			models.ErrInvalidState, inspection.Status)
	}

	if err := s.inspectionRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateReports(ctx)

	s.logger.WithField("inspection_id", id.Hex()).Info("Inspection deleted")
	return nil
}

func (s *inspectionService) resolveFilter(ctx context.Context, query *InspectionQuery) (*models.InspectionFilter, error) {
	filter := &models.InspectionFilter{}
	if query == nil {
		return filter, nil
	}

	filter.Status = query.Status

	if query.InspectorID != "" {
		id, err := primitive.ObjectIDFromHex(query.InspectorID)
		if err != nil {
			return nil, fmt.Errorf("%w: inspector %s", models.ErrNotFound, query.InspectorID)
		}
		filter.InspectorID = id
	}

	if query.From != "" {
		if from, err := time.Parse(utils.DateLayout, query.From); err == nil {
			filter.From = &from
		}
	}
	if query.To != "" {
		if to, err := time.Parse(utils.DateLayout, query.To); err == nil {
			end := to.Add(24*time.Hour - time.Nanosecond)
			filter.To = &end
		}
	}

	if search := strings.TrimSpace(query.Search); search != "" {
		ids, err := s.vehicleRepo.SearchIDs(ctx, search)
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return nil, nil
		}
		filter.VehicleIDs = ids
	}

	return filter, nil
}

func (s *inspectionService) buildDetail(ctx context.Context, inspection *models.Inspection) (*models.InspectionDetail, error) {
	details, err := s.buildDetails(ctx, []*models.Inspection{inspection})
	if err != nil {
		return nil, err
	}
	return details[0], nil
}

func (s *inspectionService) buildDetails(ctx context.Context, inspections []*models.Inspection) ([]*models.InspectionDetail, error) {
	vehicleIDs := make([]primitive.ObjectID, 0, len(inspections))
	inspectorIDs := make([]primitive.ObjectID, 0, len(inspections))
	for _, inspection := range inspections {
		vehicleIDs = append(vehicleIDs, inspection.VehicleID)
		inspectorIDs = append(inspectorIDs, inspection.InspectorID)
	}

	vehicles, err := s.vehicleRepo.GetByIDs(ctx, vehicleIDs)
	if err != nil {
		return nil, err
	}
	inspectors, err := s.userRepo.GetByIDs(ctx, inspectorIDs)
	if err != nil {
		return nil, err
	}

	details := make([]*models.InspectionDetail, 0, len(inspections))
	for _, inspection := range inspections {
		detail := &models.InspectionDetail{Inspection: *inspection}
		if vehicle, ok := vehicles[inspection.VehicleID]; ok {
			detail.Vehicle = vehicle
		}
		if inspector, ok := inspectors[inspection.InspectorID]; ok {
			detail.Inspector = inspector.Summary()
		}
		details = append(details, detail)
	}
	return details, nil
}

func (s *inspectionService) invalidateReports(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, reportCacheKeys...); err != nil {
		s.logger.WithError(err).Warn("Failed to invalidate report cache")
	}
}
