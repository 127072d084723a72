package main

import (
	"fmt"
	"time"

	"his-backend/config"
	"his-backend/internal/domain/entity"
	"his-backend/internal/infrastructure/database"
	"his-backend/internal/repository"
	"his-backend/pkg/password"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Seeds one development account per role. Running twice is a no-op: accounts
// that already exist are skipped.
func main() {
	logrus.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.RunMigrations(db, "db/migrations"); err != nil {
		logrus.Fatalf("Failed to migrate database: %v", err)
	}

	if err := seed(db); err != nil {
		logrus.Fatalf("Failed to seed database: %v", err)
	}

	logrus.Info("Seed complete")
}

func seed(db *gorm.DB) error {
	userRepo := repository.NewUserRepository()
	profileRepo := repository.NewProfileRepository()
	hasher := password.NewHasher(0)

	newUser := func(tx *gorm.DB, username, plain, fullName, email string, role entity.Role) (*entity.User, error) {
		existing, err := userRepo.FindByUsername(tx, username)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			logrus.Infof("User %s already exists, skipping", username)
			return nil, nil
		}

		hashed, err := hasher.Hash(plain)
		if err != nil {
			return nil, err
		}
		user := &entity.User{
			Username:     username,
			PasswordHash: hashed,
			FullName:     fullName,
			Email:        email,
			Role:         role,
		}
		if err := userRepo.Create(tx, user); err != nil {
			return nil, err
		}
		return user, nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if _, err := newUser(tx, "admin", "admin123", "System Administrator", "admin@hospital.local", entity.RoleAdmin); err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}

		doctor, err := newUser(tx, "doctor1", "doctor123", "Dr. Siti Rahayu", "doctor1@hospital.local", entity.RoleDoctor)
		if err != nil {
			return fmt.Errorf("seed doctor: %w", err)
		}
		if doctor != nil {
			if err := profileRepo.CreateDoctor(tx, &entity.Doctor{
				UserID:    doctor.ID,
				Specialty: "General Medicine",
				SIPNumber: "SIP-0001",
				STRNumber: "STR-0001",
			}); err != nil {
				return fmt.Errorf("seed doctor profile: %w", err)
			}
		}

		staff, err := newUser(tx, "staff1", "staff123", "Budi Santoso", "staff1@hospital.local", entity.RoleStaff)
		if err != nil {
			return fmt.Errorf("seed staff: %w", err)
		}
		if staff != nil {
			if err := profileRepo.CreateStaff(tx, &entity.Staff{
				UserID:     staff.ID,
				Department: entity.DepartmentRegistration,
			}); err != nil {
				return fmt.Errorf("seed staff profile: %w", err)
			}
		}

		patient, err := newUser(tx, "patient1", "patient123", "Andi Wijaya", "patient1@hospital.local", entity.RolePatient)
		if err != nil {
			return fmt.Errorf("seed patient: %w", err)
		}
		if patient != nil {
			if err := profileRepo.CreatePatient(tx, &entity.Patient{
				UserID:      patient.ID,
				NIK:         "3174012345678901",
				DateOfBirth: time.Date(1990, time.March, 15, 0, 0, 0, 0, time.UTC),
				Gender:      entity.GenderMale,
				BloodType:   "O",
				Address:     "Jl. Merdeka No. 1, Jakarta",
			}); err != nil {
				return fmt.Errorf("seed patient profile: %w", err)
			}
		}

		return nil
	})
}
