package mongodb

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"vistoria/internal/models"
	"vistoria/internal/repositories/interfaces"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type vehicleRepository struct {
	collection *mongo.Collection
}

func NewVehicleRepository(db *mongo.Database) interfaces.VehicleRepository {
	return &vehicleRepository{
		collection: db.Collection("vehicles"),
	}
}

func (r *vehicleRepository) Create(ctx context.Context, vehicle *models.Vehicle) error {
	vehicle.ID = primitive.NewObjectID()
	vehicle.Plate = strings.ToUpper(strings.TrimSpace(vehicle.Plate))
	vehicle.CreatedAt = time.Now()
	vehicle.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, vehicle)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: vehicle with plate %s already exists", models.ErrConflict, vehicle.Plate)
		}
		return fmt.Errorf("failed to create vehicle: %w", err)
	}
	return nil
}

func (r *vehicleRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&vehicle)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("%w: vehicle %s", models.ErrNotFound, id.Hex())
		}
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}
	return &vehicle, nil
}

func (r *vehicleRepository) GetByPlate(ctx context.Context, plate string) (*models.Vehicle, error) {
	plate = strings.ToUpper(strings.TrimSpace(plate))

	var vehicle models.Vehicle
	err := r.collection.FindOne(ctx, bson.M{"plate": plate}).Decode(&vehicle)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("%w: vehicle with plate %s", models.ErrNotFound, plate)
		}
		return nil, fmt.Errorf("failed to get vehicle by plate: %w", err)
	}
	return &vehicle, nil
}

func (r *vehicleRepository) List(ctx context.Context) ([]*models.Vehicle, error) {
	cursor, err := r.collection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	defer cursor.Close(ctx)

	var vehicles []*models.Vehicle
	for cursor.Next(ctx) {
		var vehicle models.Vehicle
		if err := cursor.Decode(&vehicle); err != nil {
			return nil, fmt.Errorf("failed to decode vehicle: %w", err)
		}
		vehicles = append(vehicles, &vehicle)
	}
	return vehicles, cursor.Err()
}

func (r *vehicleRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	if plate, exists := updates["plate"]; exists {
		if plateStr, ok := plate.(string); ok {
			updates["plate"] = strings.ToUpper(strings.TrimSpace(plateStr))
		}
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: vehicle with plate %v already exists", models.ErrConflict, updates["plate"])
		}
		return fmt.Errorf("failed to update vehicle: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: vehicle %s", models.ErrNotFound, id.Hex())
	}
	return nil
}

func (r *vehicleRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: vehicle %s", models.ErrNotFound, id.Hex())
	}
	return nil
}

func (r *vehicleRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.Vehicle, error) {
	vehicles := make(map[primitive.ObjectID]*models.Vehicle, len(ids))
	if len(ids) == 0 {
		return vehicles, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to find vehicles by IDs: %w", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var vehicle models.Vehicle
		if err := cursor.Decode(&vehicle); err != nil {
			return nil, fmt.Errorf("failed to decode vehicle: %w", err)
		}
		vehicles[vehicle.ID] = &vehicle
	}
	return vehicles, cursor.Err()
}

func (r *vehicleRepository) SearchIDs(ctx context.Context, query string) ([]primitive.ObjectID, error) {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(strings.TrimSpace(query)), Options: "i"}
	filter := bson.M{"$or": []bson.M{
		{"name": pattern},
		{"plate": pattern},
		{"brand": pattern},
		{"model": pattern},
	}}

	cursor, err := r.collection.Find(ctx, filter,
		options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, fmt.Errorf("failed to search vehicles: %w", err)
	}
	defer cursor.Close(ctx)

	var ids []primitive.ObjectID
	for cursor.Next(ctx) {
		var doc struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode vehicle ID: %w", err)
		}
		ids = append(ids, doc.ID)
	}
	return ids, cursor.Err()
}
