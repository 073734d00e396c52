package mongodb

import (
	"context"
	"fmt"
	"time"

	"vistoria/internal/models"
	"vistoria/internal/repositories/interfaces"
	"vistoria/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Checklist items live embedded in the inspection document, so item
// replacement plus status/timestamp stamping is a single UpdateOne and needs
// no multi-document transaction.
type inspectionRepository struct {
	collection *mongo.Collection
}

func NewInspectionRepository(db *mongo.Database) interfaces.InspectionRepository {
	return &inspectionRepository{
		collection: db.Collection("inspections"),
	}
}

func (r *inspectionRepository) Create(ctx context.Context, inspection *models.Inspection) error {
	inspection.ID = primitive.NewObjectID()
	inspection.CreatedAt = time.Now()
	inspection.UpdatedAt = time.Now()
	if inspection.ChecklistItems == nil {
		inspection.ChecklistItems = []models.ChecklistItem{}
	}

	_, err := r.collection.InsertOne(ctx, inspection)
	if err != nil {
		return fmt.Errorf("failed to create inspection: %w", err)
	}
	return nil
}

func (r *inspectionRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Inspection, error) {
	var inspection models.Inspection
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&inspection)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("%w: inspection %s", models.ErrNotFound, id.Hex())
		}
		return nil, fmt.Errorf("failed to get inspection: %w", err)
	}
	return &inspection, nil
}

func buildFilter(filter *models.InspectionFilter) bson.M {
	query := bson.M{}
	if filter == nil {
		return query
	}

	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if !filter.InspectorID.IsZero() {
		query["inspector_id"] = filter.InspectorID
	}
	if len(filter.VehicleIDs) > 0 {
		query["vehicle_id"] = bson.M{"$in": filter.VehicleIDs}
	}
	if filter.From != nil || filter.To != nil {
		window := bson.M{}
		if filter.From != nil {
			window["$gte"] = *filter.From
		}
		if filter.To != nil {
			window["$lte"] = *filter.To
		}
		query["started_at"] = window
	}
	return query
}

func (r *inspectionRepository) List(ctx context.Context, filter *models.InspectionFilter, params *utils.PaginationParams) ([]*models.Inspection, int64, error) {
	query := buildFilter(filter)

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count inspections: %w", err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if params != nil {
		skip, limit := params.SkipLimit()
		opts.SetSkip(skip).SetLimit(limit)
	}

	inspections, err := r.decodeAll(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	return inspections, total, nil
}

func (r *inspectionRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	if err != nil {
		return fmt.Errorf("failed to update inspection: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: inspection %s", models.ErrNotFound, id.Hex())
	}
	return nil
}

func (r *inspectionRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	// Embedded checklist items go with the document.
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete inspection: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: inspection %s", models.ErrNotFound, id.Hex())
	}
	return nil
}

func (r *inspectionRepository) ListByVehicle(ctx context.Context, vehicleID primitive.ObjectID) ([]*models.Inspection, error) {
	return r.decodeAll(ctx, bson.M{"vehicle_id": vehicleID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
}

func (r *inspectionRepository) CountByVehicle(ctx context.Context, vehicleID primitive.ObjectID) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"vehicle_id": vehicleID})
	if err != nil {
		return 0, fmt.Errorf("failed to count inspections for vehicle: %w", err)
	}
	return count, nil
}

func (r *inspectionRepository) ListByWindow(ctx context.Context, from, to time.Time) ([]*models.Inspection, error) {
	query := bson.M{"started_at": bson.M{"$gte": from, "$lte": to}}
	return r.decodeAll(ctx, query,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
}

func (r *inspectionRepository) ListByStatuses(ctx context.Context, statuses []models.InspectionStatus) ([]*models.Inspection, error) {
	return r.decodeAll(ctx, bson.M{"status": bson.M{"$in": statuses}}, nil)
}

func (r *inspectionRepository) decodeAll(ctx context.Context, query bson.M, opts *options.FindOptions) ([]*models.Inspection, error) {
	var cursor *mongo.Cursor
	var err error
	if opts != nil {
		cursor, err = r.collection.Find(ctx, query, opts)
	} else {
		cursor, err = r.collection.Find(ctx, query)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find inspections: %w", err)
	}
	defer cursor.Close(ctx)

	var inspections []*models.Inspection
	for cursor.Next(ctx) {
		var inspection models.Inspection
		if err := cursor.Decode(&inspection); err != nil {
			return nil, fmt.Errorf("failed to decode inspection: %w", err)
		}
		inspections = append(inspections, &inspection)
	}
	return inspections, cursor.Err()
}
