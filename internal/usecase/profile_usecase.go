package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"his-backend/internal/converter"
	"his-backend/internal/delivery/dto"
	"his-backend/internal/domain/entity"
	"his-backend/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrProfileNotFound        = errors.New("profile not found")
	ErrUnsupportedPhotoFormat = errors.New("photo must be JPEG or PNG")
)

// ObjectStorage is the slice of the storage client the profile flow needs.
type ObjectStorage interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
}

type ProfileUsecase interface {
	UpdateProfile(ctx context.Context, auth *entity.AuthContext, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	UploadPhoto(ctx context.Context, auth *entity.AuthContext, r io.Reader, size int64, contentType string) (*dto.PhotoUploadResponse, error)
	GenerateDeviceAPIKey(ctx context.Context, auth *entity.AuthContext) (*dto.DeviceAPIKeyResponse, error)
}

type profileUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	storage     ObjectStorage
}

func NewProfileUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	storage ObjectStorage,
) ProfileUsecase {
	return &profileUsecase{
		db:          db,
		log:         log,
		userRepo:    userRepo,
		profileRepo: profileRepo,
		storage:     storage,
	}
}

// UpdateProfile applies the caller's self-service changes. Identity fields
// (username, NIK, role, department) stay immutable here.
func (u *profileUsecase) UpdateProfile(ctx context.Context, auth *entity.AuthContext, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(tx, auth.UserID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.PhoneNumber != "" {
		user.PhoneNumber = req.PhoneNumber
	}
	if err := u.userRepo.Update(tx, user); err != nil {
		u.log.Warnf("Failed to update user: %+v", err)
		return nil, err
	}

	switch user.Role {
	case entity.RoleDoctor:
		doctor, err := u.profileRepo.FindDoctorByUserID(tx, user.ID)
		if err != nil {
			return nil, err
		}
		if doctor == nil {
			return nil, ErrProfileNotFound
		}
		if req.Specialty != "" {
			doctor.Specialty = req.Specialty
		}
		if req.SIPNumber != "" {
			doctor.SIPNumber = req.SIPNumber
		}
		if err := u.profileRepo.UpdateDoctor(tx, doctor); err != nil {
			u.log.Warnf("Failed to update doctor profile: %+v", err)
			return nil, err
		}
		user.DoctorProfile = doctor

	case entity.RoleStaff:
		staff, err := u.profileRepo.FindStaffByUserID(tx, user.ID)
		if err != nil {
			return nil, err
		}
		user.StaffProfile = staff

	case entity.RolePatient:
		patient, err := u.profileRepo.FindPatientByUserID(tx, user.ID)
		if err != nil {
			return nil, err
		}
		if patient == nil {
			return nil, ErrProfileNotFound
		}
		if req.BloodType != "" {
			patient.BloodType = req.BloodType
		}
		if req.Address != "" {
			patient.Address = req.Address
		}
		if req.EmergencyContactName != "" {
			patient.EmergencyContactName = req.EmergencyContactName
		}
		if req.EmergencyContactPhone != "" {
			patient.EmergencyContactPhone = req.EmergencyContactPhone
		}
		if err := u.profileRepo.UpdatePatient(tx, patient); err != nil {
			u.log.Warnf("Failed to update patient profile: %+v", err)
			return nil, err
		}
		user.PatientProfile = patient
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.UserToResponse(user), nil
}

func (u *profileUsecase) UploadPhoto(ctx context.Context, auth *entity.AuthContext, r io.Reader, size int64, contentType string) (*dto.PhotoUploadResponse, error) {
	var ext string
	switch contentType {
	case "image/jpeg":
		ext = ".jpg"
	case "image/png":
		ext = ".png"
	default:
		return nil, ErrUnsupportedPhotoFormat
	}

	db := u.db.WithContext(ctx)

	user, err := u.userRepo.FindByID(db, auth.UserID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	key := path.Join("profile-photos", fmt.Sprintf("%s%s", user.ID, ext))
	url, err := u.storage.Put(ctx, key, r, size, contentType)
	if err != nil {
		u.log.Warnf("Failed to upload photo: %+v", err)
		return nil, err
	}

	user.PhotoURL = url
	if err := u.userRepo.Update(db, user); err != nil {
		u.log.Warnf("Failed to update photo URL: %+v", err)
		return nil, err
	}

	return &dto.PhotoUploadResponse{PhotoURL: url}, nil
}

// GenerateDeviceAPIKey mints a fresh key for the calling patient. Any key
// issued before stops working immediately.
func (u *profileUsecase) GenerateDeviceAPIKey(ctx context.Context, auth *entity.AuthContext) (*dto.DeviceAPIKeyResponse, error) {
	db := u.db.WithContext(ctx)

	patient, err := u.profileRepo.FindPatientByUserID(db, auth.UserID)
	if err != nil {
		u.log.Warnf("Failed to find patient profile: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrProfileNotFound
	}

	key := uuid.New()
	patient.DeviceAPIKey = &key
	if err := u.profileRepo.UpdatePatient(db, patient); err != nil {
		u.log.Warnf("Failed to store device API key: %+v", err)
		return nil, err
	}

	return &dto.DeviceAPIKeyResponse{DeviceAPIKey: key}, nil
}
