package main

import (
	"context"
	"log"
	"time"

	"vistoria/internal/config"
	"vistoria/internal/models"
	"vistoria/internal/repositories/interfaces"
	"vistoria/internal/repositories/mongodb"
	"vistoria/pkg/database"

	"golang.org/x/crypto/bcrypt"
)

// Seeds a development database with staff accounts, a small fleet and
// inspections spread across the whole lifecycle. Safe to run repeatedly:
// existing records are left alone.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.Close()

	if err := database.NewMigrator(db.Database).Up(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	userRepo := mongodb.NewUserRepository(db.Database)
	vehicleRepo := mongodb.NewVehicleRepository(db.Database)
	inspectionRepo := mongodb.NewInspectionRepository(db.Database)

	users := seedUsers(ctx, userRepo)
	vehicles := seedVehicles(ctx, vehicleRepo)
	seedInspections(ctx, inspectionRepo, users, vehicles)

	log.Println("Seed completed")
}

func seedUsers(ctx context.Context, repo interfaces.UserRepository) []*models.User {
	hash, err := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}

	seeds := []*models.User{
		{Name: "Admin", Email: "admin@vistoria.dev", Password: string(hash), Role: models.RoleAdmin},
		{Name: "Carlos Mendes", Email: "carlos@vistoria.dev", Password: string(hash), Role: models.RoleInspector},
		{Name: "Ana Lima", Email: "ana@vistoria.dev", Password: string(hash), Role: models.RoleInspector},
	}

	users := make([]*models.User, 0, len(seeds))
	for _, user := range seeds {
		if existing, err := repo.GetByEmail(ctx, user.Email); err == nil {
			users = append(users, existing)
			continue
		}
		if err := repo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to seed user %s: %v", user.Email, err)
		}
		users = append(users, user)
	}
	return users
}

func seedVehicles(ctx context.Context, repo interfaces.VehicleRepository) []*models.Vehicle {
	seeds := []*models.Vehicle{
		{Name: "Fleet Car 1", Plate: "ABC-1234", Brand: "Toyota", Model: "Corolla", Year: 2022, Owner: "Transportes Silva"},
		{Name: "Fleet Car 2", Plate: "ABC-5678", Brand: "Toyota", Model: "Hilux", Year: 2021, Owner: "Transportes Silva"},
		{Name: "Fleet Van 1", Plate: "DEF-1010", Brand: "Fiat", Model: "Ducato", Year: 2019, Owner: "Logistica Prime"},
		{Name: "Fleet Van 2", Plate: "DEF-2020", Brand: "Fiat", Model: "Fiorino", Year: 2020, Owner: "Logistica Prime"},
		{Name: "Sedan 1", Plate: "GHI-3030", Brand: "Honda", Model: "Civic", Year: 2023, Owner: "Maria Souza"},
		{Name: "Sedan 2", Plate: "GHI-4040", Brand: "Honda", Model: "City", Year: 2018, Owner: "Joao Pereira"},
		{Name: "Hatch 1", Plate: "JKL-5050", Brand: "Volkswagen", Model: "Gol", Year: 2017, Owner: "Pedro Santos"},
		{Name: "Hatch 2", Plate: "JKL-6060", Brand: "Volkswagen", Model: "Polo", Year: 2022, Owner: "Clara Dias"},
		{Name: "Truck 1", Plate: "MNO-7070", Brand: "Mercedes-Benz", Model: "Accelo", Year: 2016, Owner: "Cargas Norte"},
		{Name: "Truck 2", Plate: "MNO-8080", Brand: "Mercedes-Benz", Model: "Atego", Year: 2020, Owner: "Cargas Norte"},
	}

	vehicles := make([]*models.Vehicle, 0, len(seeds))
	for _, vehicle := range seeds {
		if existing, err := repo.GetByPlate(ctx, vehicle.Plate); err == nil {
			vehicles = append(vehicles, existing)
			continue
		}
		if err := repo.Create(ctx, vehicle); err != nil {
			log.Fatalf("Failed to seed vehicle %s: %v", vehicle.Plate, err)
		}
		vehicles = append(vehicles, vehicle)
	}
	return vehicles
}

func passingChecklist() []models.ChecklistItem {
	return []models.ChecklistItem{
		{Key: "brakes", Result: models.ChecklistResultApproved},
		{Key: "lights", Result: models.ChecklistResultApproved},
		{Key: "tires", Result: models.ChecklistResultApproved},
		{Key: "seatbelts", Result: models.ChecklistResultNotApplicable},
	}
}

func failingChecklist(key, comment string) []models.ChecklistItem {
	items := passingChecklist()
	items = append(items, models.ChecklistItem{
		Key:     key,
		Result:  models.ChecklistResultRejected,
		Comment: comment,
	})
	return items
}

func seedInspections(ctx context.Context, repo interfaces.InspectionRepository, users []*models.User, vehicles []*models.Vehicle) {
	if count, err := repo.CountByVehicle(ctx, vehicles[0].ID); err != nil {
		log.Fatalf("Failed to check existing inspections: %v", err)
	} else if count > 0 {
		log.Println("Inspections already seeded, skipping")
		return
	}

	carlos, ana := users[1], users[2]
	now := time.Now()

	type seed struct {
		title     string
		status    models.InspectionStatus
		vehicle   *models.Vehicle
		inspector *models.User
		daysAgo   int
		duration  time.Duration
		items     []models.ChecklistItem
		remarks   string
	}

	seeds := []seed{
		// Pending
		{title: "Entry inspection", status: models.InspectionStatusPending, vehicle: vehicles[0], inspector: carlos, daysAgo: 1},
		{title: "Annual check", status: models.InspectionStatusPending, vehicle: vehicles[1], inspector: ana, daysAgo: 2},
		{title: "Pre-sale check", status: models.InspectionStatusPending, vehicle: vehicles[4], inspector: carlos, daysAgo: 1},
		{title: "Entry inspection", status: models.InspectionStatusPending, vehicle: vehicles[7], inspector: ana, daysAgo: 3},

		// In progress
		{title: "Annual check", status: models.InspectionStatusInProgress, vehicle: vehicles[2], inspector: carlos, daysAgo: 1, items: passingChecklist()},
		{title: "Fleet audit", status: models.InspectionStatusInProgress, vehicle: vehicles[8], inspector: ana, daysAgo: 2, items: passingChecklist()},
		{title: "Return inspection", status: models.InspectionStatusInProgress, vehicle: vehicles[5], inspector: carlos, daysAgo: 1},

		// Approved
		{title: "Annual check", status: models.InspectionStatusApproved, vehicle: vehicles[0], inspector: carlos, daysAgo: 10, duration: 45 * time.Minute, items: passingChecklist(), remarks: "No issues found"},
		{title: "Entry inspection", status: models.InspectionStatusApproved, vehicle: vehicles[3], inspector: ana, daysAgo: 12, duration: 30 * time.Minute, items: passingChecklist()},
		{title: "Fleet audit", status: models.InspectionStatusApproved, vehicle: vehicles[4], inspector: carlos, daysAgo: 15, duration: 60 * time.Minute, items: passingChecklist()},
		{title: "Annual check", status: models.InspectionStatusApproved, vehicle: vehicles[6], inspector: ana, daysAgo: 18, duration: 50 * time.Minute, items: passingChecklist()},
		{title: "Pre-sale check", status: models.InspectionStatusApproved, vehicle: vehicles[7], inspector: carlos, daysAgo: 20, duration: 40 * time.Minute, items: passingChecklist()},
		{title: "Return inspection", status: models.InspectionStatusApproved, vehicle: vehicles[9], inspector: ana, daysAgo: 25, duration: 35 * time.Minute, items: passingChecklist()},

		// Rejected
		{title: "Annual check", status: models.InspectionStatusRejected, vehicle: vehicles[2], inspector: carlos, daysAgo: 8, duration: 55 * time.Minute, items: failingChecklist("brakes", "Worn brake pads"), remarks: "Brake service required"},
		{title: "Entry inspection", status: models.InspectionStatusRejected, vehicle: vehicles[8], inspector: ana, daysAgo: 14, duration: 70 * time.Minute, items: failingChecklist("brakes", "Brake fluid leak")},
		{title: "Fleet audit", status: models.InspectionStatusRejected, vehicle: vehicles[5], inspector: carlos, daysAgo: 16, duration: 65 * time.Minute, items: failingChecklist("tires", "Tread below legal limit")},
		{title: "Annual check", status: models.InspectionStatusRejected, vehicle: vehicles[1], inspector: ana, daysAgo: 22, duration: 45 * time.Minute, items: failingChecklist("lights", "Broken headlight")},

		// Cancelled
		{title: "Entry inspection", status: models.InspectionStatusCancelled, vehicle: vehicles[3], inspector: carlos, daysAgo: 5},
		{title: "Pre-sale check", status: models.InspectionStatusCancelled, vehicle: vehicles[6], inspector: ana, daysAgo: 9},
		{title: "Return inspection", status: models.InspectionStatusCancelled, vehicle: vehicles[9], inspector: carlos, daysAgo: 11},
	}

	for _, s := range seeds {
		started := now.AddDate(0, 0, -s.daysAgo)
		inspection := &models.Inspection{
			Title:          s.title,
			Status:         s.status,
			VehicleID:      s.vehicle.ID,
			InspectorID:    s.inspector.ID,
			StartedAt:      started,
			ChecklistItems: s.items,
			Remarks:        s.remarks,
		}
		if models.IsTerminalOutcome(s.status) {
			inspection.Close(s.status, started.Add(s.duration))
		}
		if err := repo.Create(ctx, inspection); err != nil {
			log.Fatalf("Failed to seed inspection %q: %v", s.title, err)
		}
	}

	log.Printf("Seeded %d inspections", len(seeds))
}
