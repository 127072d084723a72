package usecase

import (
	"his-backend/internal/domain/entity"
	"his-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProfileResolver maps (user id, role) to the profile row that domain tables
// reference. Admins have no profile table; their user id doubles as the
// profile id. A nil ref with nil error means the profile row is missing.
type ProfileResolver struct {
	profileRepo repository.ProfileRepository
}

func NewProfileResolver(profileRepo repository.ProfileRepository) *ProfileResolver {
	return &ProfileResolver{profileRepo: profileRepo}
}

func (r *ProfileResolver) Resolve(db *gorm.DB, userID uuid.UUID, role entity.Role) (*entity.ProfileRef, error) {
	switch role {
	case entity.RoleAdmin:
		return &entity.ProfileRef{ProfileID: userID}, nil

	case entity.RoleDoctor:
		doctor, err := r.profileRepo.FindDoctorByUserID(db, userID)
		if err != nil {
			return nil, err
		}
		if doctor == nil {
			return nil, nil
		}
		return &entity.ProfileRef{ProfileID: doctor.ID}, nil

	case entity.RoleStaff:
		staff, err := r.profileRepo.FindStaffByUserID(db, userID)
		if err != nil {
			return nil, err
		}
		if staff == nil {
			return nil, nil
		}
		dept := staff.Department
		return &entity.ProfileRef{ProfileID: staff.ID, Department: &dept}, nil

	case entity.RolePatient:
		patient, err := r.profileRepo.FindPatientByUserID(db, userID)
		if err != nil {
			return nil, err
		}
		if patient == nil {
			return nil, nil
		}
		return &entity.ProfileRef{ProfileID: patient.ID}, nil
	}

	return nil, nil
}
