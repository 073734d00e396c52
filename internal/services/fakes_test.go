package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"vistoria/internal/models"
	"vistoria/internal/utils"
	"vistoria/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestLogger() *logger.Logger {
	log, err := logger.NewLogger(&logger.Config{
		Level:  logger.ErrorLevel,
		Format: "text",
		Output: "stderr",
	})
	if err != nil {
		panic(err)
	}
	return log
}

type fakeUserRepo struct {
	users map[primitive.ObjectID]*models.User
	order []primitive.ObjectID
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*models.User)}
}

func (r *fakeUserRepo) add(name, email string, role models.Role) *models.User {
	user := &models.User{
		ID:    primitive.NewObjectID(),
		Name:  name,
		Email: strings.ToLower(email),
		Role:  role,
	}
	r.users[user.ID] = user
	r.order = append(r.order, user.ID)
	return user
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	email := strings.ToLower(user.Email)
	for _, existing := range r.users {
		if existing.Email == email {
			return fmt.Errorf("%w: email already registered", models.ErrConflict)
		}
	}
	user.ID = primitive.NewObjectID()
	user.Email = email
	r.users[user.ID] = user
	r.order = append(r.order, user.ID)
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: user %s", models.ErrNotFound, id.Hex())
	}
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	email = strings.ToLower(email)
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, fmt.Errorf("%w: user %s", models.ErrNotFound, email)
}

func (r *fakeUserRepo) GetByRole(ctx context.Context, role models.Role) ([]*models.User, error) {
	result := make([]*models.User, 0)
	for _, id := range r.order {
		if r.users[id].Role == role {
			result = append(result, r.users[id])
		}
	}
	return result, nil
}

func (r *fakeUserRepo) GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.User, error) {
	result := make(map[primitive.ObjectID]*models.User)
	for _, id := range ids {
		if user, ok := r.users[id]; ok {
			result[id] = user
		}
	}
	return result, nil
}

type fakeVehicleRepo struct {
	vehicles map[primitive.ObjectID]*models.Vehicle
	order    []primitive.ObjectID
}

func newFakeVehicleRepo() *fakeVehicleRepo {
	return &fakeVehicleRepo{vehicles: make(map[primitive.ObjectID]*models.Vehicle)}
}

func (r *fakeVehicleRepo) add(name, plate, brand, model string) *models.Vehicle {
	vehicle := &models.Vehicle{
		ID:    primitive.NewObjectID(),
		Name:  name,
		Plate: strings.ToUpper(plate),
		Brand: brand,
		Model: model,
	}
	r.vehicles[vehicle.ID] = vehicle
	r.order = append(r.order, vehicle.ID)
	return vehicle
}

func (r *fakeVehicleRepo) Create(ctx context.Context, vehicle *models.Vehicle) error {
	plate := strings.ToUpper(vehicle.Plate)
	for _, existing := range r.vehicles {
		if existing.Plate == plate {
			return fmt.Errorf("%w: plate already registered", models.ErrConflict)
		}
	}
	vehicle.ID = primitive.NewObjectID()
	vehicle.Plate = plate
	r.vehicles[vehicle.ID] = vehicle
	r.order = append(r.order, vehicle.ID)
	return nil
}

func (r *fakeVehicleRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Vehicle, error) {
	vehicle, ok := r.vehicles[id]
	if !ok {
		return nil, fmt.Errorf("%w: vehicle %s", models.ErrNotFound, id.Hex())
	}
	return vehicle, nil
}

func (r *fakeVehicleRepo) GetByPlate(ctx context.Context, plate string) (*models.Vehicle, error) {
	plate = strings.ToUpper(plate)
	for _, vehicle := range r.vehicles {
		if vehicle.Plate == plate {
			return vehicle, nil
		}
	}
	return nil, fmt.Errorf("%w: vehicle %s", models.ErrNotFound, plate)
}

func (r *fakeVehicleRepo) List(ctx context.Context) ([]*models.Vehicle, error) {
	result := make([]*models.Vehicle, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.vehicles[id])
	}
	return result, nil
}

func (r *fakeVehicleRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	vehicle, ok := r.vehicles[id]
	if !ok {
		return fmt.Errorf("%w: vehicle %s", models.ErrNotFound, id.Hex())
	}
	for key, value := range updates {
		switch key {
		case "name":
			vehicle.Name = value.(string)
		case "plate":
			vehicle.Plate = strings.ToUpper(value.(string))
		case "brand":
			vehicle.Brand = value.(string)
		case "model":
			vehicle.Model = value.(string)
		case "year":
			vehicle.Year = value.(int)
		case "owner":
			vehicle.Owner = value.(string)
		}
	}
	return nil
}

func (r *fakeVehicleRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := r.vehicles[id]; !ok {
		return fmt.Errorf("%w: vehicle %s", models.ErrNotFound, id.Hex())
	}
	delete(r.vehicles, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *fakeVehicleRepo) GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.Vehicle, error) {
	result := make(map[primitive.ObjectID]*models.Vehicle)
	for _, id := range ids {
		if vehicle, ok := r.vehicles[id]; ok {
			result[id] = vehicle
		}
	}
	return result, nil
}

func (r *fakeVehicleRepo) SearchIDs(ctx context.Context, query string) ([]primitive.ObjectID, error) {
	query = strings.ToLower(query)
	ids := make([]primitive.ObjectID, 0)
	for _, id := range r.order {
		vehicle := r.vehicles[id]
		haystack := strings.ToLower(strings.Join([]string{vehicle.Name, vehicle.Plate, vehicle.Brand, vehicle.Model}, " "))
		if strings.Contains(haystack, query) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

type fakeInspectionRepo struct {
	inspections map[primitive.ObjectID]*models.Inspection
	order       []primitive.ObjectID
}

func newFakeInspectionRepo() *fakeInspectionRepo {
	return &fakeInspectionRepo{inspections: make(map[primitive.ObjectID]*models.Inspection)}
}

func (r *fakeInspectionRepo) add(inspection *models.Inspection) *models.Inspection {
	if inspection.ID.IsZero() {
		inspection.ID = primitive.NewObjectID()
	}
	r.inspections[inspection.ID] = inspection
	r.order = append(r.order, inspection.ID)
	return inspection
}

func (r *fakeInspectionRepo) Create(ctx context.Context, inspection *models.Inspection) error {
	inspection.ID = primitive.NewObjectID()
	r.inspections[inspection.ID] = inspection
	r.order = append(r.order, inspection.ID)
	return nil
}

func (r *fakeInspectionRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Inspection, error) {
	inspection, ok := r.inspections[id]
	if !ok {
		return nil, fmt.Errorf("%w: inspection %s", models.ErrNotFound, id.Hex())
	}
	return inspection, nil
}

func (r *fakeInspectionRepo) matches(inspection *models.Inspection, filter *models.InspectionFilter) bool {
	if filter == nil {
		return true
	}
	if filter.Status != "" && inspection.Status != filter.Status {
		return false
	}
	if !filter.InspectorID.IsZero() && inspection.InspectorID != filter.InspectorID {
		return false
	}
	if len(filter.VehicleIDs) > 0 {
		found := false
		for _, id := range filter.VehicleIDs {
			if inspection.VehicleID == id {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if filter.From != nil && inspection.StartedAt.Before(*filter.From) {
		return false
	}
	if filter.To != nil && inspection.StartedAt.After(*filter.To) {
		return false
	}
	return true
}

func (r *fakeInspectionRepo) List(ctx context.Context, filter *models.InspectionFilter, params *utils.PaginationParams) ([]*models.Inspection, int64, error) {
	matched := make([]*models.Inspection, 0)
	for _, id := range r.order {
		if r.matches(r.inspections[id], filter) {
			matched = append(matched, r.inspections[id])
		}
	}
	total := int64(len(matched))

	if params != nil {
		skip, limit := params.SkipLimit()
		if skip >= total {
			return []*models.Inspection{}, total, nil
		}
		end := skip + limit
		if end > total {
			end = total
		}
		matched = matched[skip:end]
	}
	return matched, total, nil
}

func (r *fakeInspectionRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	inspection, ok := r.inspections[id]
	if !ok {
		return fmt.Errorf("%w: inspection %s", models.ErrNotFound, id.Hex())
	}
	for key, value := range updates {
		switch key {
		case "title":
			inspection.Title = value.(string)
		case "description":
			inspection.Description = value.(string)
		case "remarks":
			inspection.Remarks = value.(string)
		case "status":
			inspection.Status = value.(models.InspectionStatus)
		case "ended_at":
			inspection.EndedAt = value.(*time.Time)
		case "elapsed_minutes":
			inspection.ElapsedMinutes = value.(*int)
		case "checklist_items":
			inspection.ChecklistItems = value.([]models.ChecklistItem)
		}
	}
	return nil
}

func (r *fakeInspectionRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := r.inspections[id]; !ok {
		return fmt.Errorf("%w: inspection %s", models.ErrNotFound, id.Hex())
	}
	delete(r.inspections, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *fakeInspectionRepo) ListByVehicle(ctx context.Context, vehicleID primitive.ObjectID) ([]*models.Inspection, error) {
	result := make([]*models.Inspection, 0)
	for _, id := range r.order {
		if r.inspections[id].VehicleID == vehicleID {
			result = append(result, r.inspections[id])
		}
	}
	return result, nil
}

func (r *fakeInspectionRepo) CountByVehicle(ctx context.Context, vehicleID primitive.ObjectID) (int64, error) {
	inspections, _ := r.ListByVehicle(ctx, vehicleID)
	return int64(len(inspections)), nil
}

func (r *fakeInspectionRepo) ListByWindow(ctx context.Context, from, to time.Time) ([]*models.Inspection, error) {
	result := make([]*models.Inspection, 0)
	for _, id := range r.order {
		started := r.inspections[id].StartedAt
		if !started.Before(from) && !started.After(to) {
			result = append(result, r.inspections[id])
		}
	}
	return result, nil
}

func (r *fakeInspectionRepo) ListByStatuses(ctx context.Context, statuses []models.InspectionStatus) ([]*models.Inspection, error) {
	result := make([]*models.Inspection, 0)
	for _, id := range r.order {
		for _, status := range statuses {
			if r.inspections[id].Status == status {
				result = append(result, r.inspections[id])
				break
			}
		}
	}
	return result, nil
}

// fakeCache is a JSON round-tripping in-memory CacheService.
type fakeCache struct {
	entries map[string][]byte
	sets    int
	hits    int
	deletes int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]byte)}
}

func (c *fakeCache) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := c.entries[key]
	if !ok {
		return fmt.Errorf("cache miss: %s", key)
	}
	c.hits++
	return json.Unmarshal(raw, dest)
}

func (c *fakeCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = raw
	c.sets++
	return nil
}

func (c *fakeCache) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(c.entries, key)
	}
	c.deletes++
	return nil
}
