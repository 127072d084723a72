package usecase

import (
	"context"
	"time"

	"his-backend/internal/converter"
	"his-backend/internal/delivery/dto"
	"his-backend/internal/domain/entity"
	"his-backend/internal/domain/repository"
	"his-backend/pkg/password"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// UserCreationUsecase provisions doctor, staff and patient accounts. Only
// admins reach these operations; patients may also self-register through the
// auth flow.
type UserCreationUsecase interface {
	CreateDoctor(ctx context.Context, req *dto.CreateDoctorUserRequest) (*dto.UserResponse, error)
	CreateStaff(ctx context.Context, req *dto.CreateStaffUserRequest) (*dto.UserResponse, error)
	CreatePatient(ctx context.Context, req *dto.CreatePatientUserRequest) (*dto.UserResponse, error)
}

type userCreationUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	hasher      *password.Hasher
}

func NewUserCreationUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	hasher *password.Hasher,
) UserCreationUsecase {
	return &userCreationUsecase{
		db:          db,
		log:         log,
		userRepo:    userRepo,
		profileRepo: profileRepo,
		hasher:      hasher,
	}
}

func (u *userCreationUsecase) CreateDoctor(ctx context.Context, req *dto.CreateDoctorUserRequest) (*dto.UserResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.createUser(tx, req.Username, req.Password, req.FullName, req.Email, req.PhoneNumber, entity.RoleDoctor)
	if err != nil {
		return nil, err
	}

	doctor := &entity.Doctor{
		UserID:    user.ID,
		Specialty: req.Specialty,
		SIPNumber: req.SIPNumber,
		STRNumber: req.STRNumber,
	}
	if err := u.profileRepo.CreateDoctor(tx, doctor); err != nil {
		u.log.Warnf("Failed to create doctor profile: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	user.DoctorProfile = doctor
	return converter.UserToResponse(user), nil
}

func (u *userCreationUsecase) CreateStaff(ctx context.Context, req *dto.CreateStaffUserRequest) (*dto.UserResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.createUser(tx, req.Username, req.Password, req.FullName, req.Email, req.PhoneNumber, entity.RoleStaff)
	if err != nil {
		return nil, err
	}

	staff := &entity.Staff{
		UserID:     user.ID,
		Department: entity.Department(req.Department),
	}
	if err := u.profileRepo.CreateStaff(tx, staff); err != nil {
		u.log.Warnf("Failed to create staff profile: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	user.StaffProfile = staff
	return converter.UserToResponse(user), nil
}

func (u *userCreationUsecase) CreatePatient(ctx context.Context, req *dto.CreatePatientUserRequest) (*dto.UserResponse, error) {
	dob, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.createUser(tx, req.Username, req.Password, req.FullName, req.Email, req.PhoneNumber, entity.RolePatient)
	if err != nil {
		return nil, err
	}

	patient := &entity.Patient{
		UserID:      user.ID,
		NIK:         req.NIK,
		DateOfBirth: dob,
		Gender:      req.Gender,
		BloodType:   req.BloodType,
		BPJSNumber:  req.BPJSNumber,
		Address:     req.Address,
	}
	if err := u.profileRepo.CreatePatient(tx, patient); err != nil {
		if isDuplicateKeyError(err, "nik") {
			return nil, ErrNIKAlreadyExists
		}
		u.log.Warnf("Failed to create patient profile: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	user.PatientProfile = patient
	return converter.UserToResponse(user), nil
}

func (u *userCreationUsecase) createUser(tx *gorm.DB, username, plainPassword, fullName, email, phone string, role entity.Role) (*entity.User, error) {
	hashed, err := u.hasher.Hash(plainPassword)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	user := &entity.User{
		Username:     username,
		PasswordHash: hashed,
		FullName:     fullName,
		Email:        email,
		PhoneNumber:  phone,
		Role:         role,
	}
	if err := u.userRepo.Create(tx, user); err != nil {
		if isDuplicateKeyError(err, "username") {
			return nil, ErrUsernameAlreadyExists
		}
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}
	return user, nil
}
