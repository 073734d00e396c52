package interfaces

import (
	"context"
	"time"

	"vistoria/internal/models"
	"vistoria/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type InspectionRepository interface {
	Create(ctx context.Context, inspection *models.Inspection) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Inspection, error)
	List(ctx context.Context, filter *models.InspectionFilter, params *utils.PaginationParams) ([]*models.Inspection, int64, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	ListByVehicle(ctx context.Context, vehicleID primitive.ObjectID) ([]*models.Inspection, error)
	CountByVehicle(ctx context.Context, vehicleID primitive.ObjectID) (int64, error)
	ListByWindow(ctx context.Context, from, to time.Time) ([]*models.Inspection, error)
	ListByStatuses(ctx context.Context, statuses []models.InspectionStatus) ([]*models.Inspection, error)
}
