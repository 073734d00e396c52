package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"vistoria/internal/models"
	"vistoria/internal/repositories/interfaces"
	"vistoria/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type VehicleService interface {
	Create(ctx context.Context, input *VehicleInput) (*models.Vehicle, error)
	List(ctx context.Context) ([]*models.VehicleWithCount, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.VehicleDetail, error)
	GetWithCount(ctx context.Context, id primitive.ObjectID) (*models.VehicleWithCount, error)
	Update(ctx context.Context, id primitive.ObjectID, input *VehicleUpdateInput) (*models.Vehicle, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type VehicleInput struct {
	Name  string
	Plate string
	Brand string
	Model string
	Year  int
	Owner string
}

type VehicleUpdateInput struct {
	Name  *string
	Plate *string
	Brand *string
	Model *string
	Year  *int
	Owner *string
}

type vehicleService struct {
	vehicleRepo    interfaces.VehicleRepository
	inspectionRepo interfaces.InspectionRepository
	userRepo       interfaces.UserRepository
	logger         *logger.Logger
}

func NewVehicleService(
	vehicleRepo interfaces.VehicleRepository,
	inspectionRepo interfaces.InspectionRepository,
	userRepo interfaces.UserRepository,
	log *logger.Logger,
) VehicleService {
	return &vehicleService{
		vehicleRepo:    vehicleRepo,
		inspectionRepo: inspectionRepo,
		userRepo:       userRepo,
		logger:         log,
	}
}

func (s *vehicleService) Create(ctx context.Context, input *VehicleInput) (*models.Vehicle, error) {
	plate := strings.ToUpper(strings.TrimSpace(input.Plate))

	if _, err := s.vehicleRepo.GetByPlate(ctx, plate); err == nil {
		return nil, fmt.Errorf("%w: vehicle with plate %s already exists", models.ErrConflict, plate)
	} else if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	vehicle := &models.Vehicle{
		Name:  strings.TrimSpace(input.Name),
		Plate: plate,
		Brand: strings.TrimSpace(input.Brand),
		Model: strings.TrimSpace(input.Model),
		Year:  input.Year,
		Owner: strings.TrimSpace(input.Owner),
	}

	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		return nil, err
	}

	s.logger.WithField("plate", vehicle.Plate).Info("Vehicle registered")
	return vehicle, nil
}

func (s *vehicleService) List(ctx context.Context) ([]*models.VehicleWithCount, error) {
	vehicles, err := s.vehicleRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*models.VehicleWithCount, 0, len(vehicles))
	for _, vehicle := range vehicles {
		count, err := s.inspectionRepo.CountByVehicle(ctx, vehicle.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, &models.VehicleWithCount{
			Vehicle:         *vehicle,
			InspectionCount: count,
		})
	}
	return result, nil
}

func (s *vehicleService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.VehicleDetail, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	inspections, err := s.inspectionRepo.ListByVehicle(ctx, id)
	if err != nil {
		return nil, err
	}

	inspectorIDs := make([]primitive.ObjectID, 0, len(inspections))
	for _, inspection := range inspections {
		inspectorIDs = append(inspectorIDs, inspection.InspectorID)
	}
	inspectors, err := s.userRepo.GetByIDs(ctx, inspectorIDs)
	if err != nil {
		return nil, err
	}

	details := make([]*models.InspectionDetail, 0, len(inspections))
	for _, inspection := range inspections {
		detail := &models.InspectionDetail{Inspection: *inspection, Vehicle: vehicle}
		if inspector, ok := inspectors[inspection.InspectorID]; ok {
			detail.Inspector = inspector.Summary()
		}
		details = append(details, detail)
	}

	return &models.VehicleDetail{Vehicle: *vehicle, Inspections: details}, nil
}

func (s *vehicleService) GetWithCount(ctx context.Context, id primitive.ObjectID) (*models.VehicleWithCount, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	count, err := s.inspectionRepo.CountByVehicle(ctx, id)
	if err != nil {
		return nil, err
	}

	return &models.VehicleWithCount{Vehicle: *vehicle, InspectionCount: count}, nil
}

func (s *vehicleService) Update(ctx context.Context, id primitive.ObjectID, input *VehicleUpdateInput) (*models.Vehicle, error) {
	existing, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Brand != nil {
		updates["brand"] = strings.TrimSpace(*input.Brand)
	}
	if input.Model != nil {
		updates["model"] = strings.TrimSpace(*input.Model)
	}
	if input.Year != nil {
		updates["year"] = *input.Year
	}
	if input.Owner != nil {
		updates["owner"] = strings.TrimSpace(*input.Owner)
	}

	if input.Plate != nil {
		plate := strings.ToUpper(strings.TrimSpace(*input.Plate))
		if plate != existing.Plate {
			if _, err := s.vehicleRepo.GetByPlate(ctx, plate); err == nil {
				return nil, fmt.Errorf("%w: vehicle with plate %s already exists", models.ErrConflict, plate)
			} else if !errors.Is(err, models.ErrNotFound) {
				return nil, err
			}
			updates["plate"] = plate
		}
	}

	if len(updates) > 0 {
		if err := s.vehicleRepo.Update(ctx, id, updates); err != nil {
			return nil, err
		}
	}

	return s.vehicleRepo.GetByID(ctx, id)
}

func (s *vehicleService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.vehicleRepo.GetByID(ctx, id); err != nil {
		return err
	}

	count, err := s.inspectionRepo.CountByVehicle(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: vehicle has %d associated inspections", models.ErrConflict, count)
	}

	if err := s.vehicleRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.WithField("vehicle_id", id.Hex()).Info("Vehicle deleted")
	return nil
}
