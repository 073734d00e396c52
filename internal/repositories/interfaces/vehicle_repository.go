package interfaces

import (
	"context"

	"vistoria/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type VehicleRepository interface {
	Create(ctx context.Context, vehicle *models.Vehicle) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Vehicle, error)
	GetByPlate(ctx context.Context, plate string) (*models.Vehicle, error)
	List(ctx context.Context) ([]*models.Vehicle, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	// GetByIDs bulk-loads vehicles for composing inspection responses.
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.Vehicle, error)

	// SearchIDs resolves a free-text query against name/plate/brand/model to
	// the matching vehicle IDs.
	SearchIDs(ctx context.Context, query string) ([]primitive.ObjectID, error)
}
