package usecase

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"his-backend/internal/delivery/dto"
	"his-backend/internal/domain/entity"
	"his-backend/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type fakeVisitRepo struct {
	visits map[uuid.UUID]*entity.Visit

	lastFilter repository.VisitFilter
}

func newFakeVisitRepo() *fakeVisitRepo {
	return &fakeVisitRepo{visits: map[uuid.UUID]*entity.Visit{}}
}

func (f *fakeVisitRepo) Create(_ *gorm.DB, visit *entity.Visit) error {
	if visit.ID == uuid.Nil {
		visit.ID = uuid.New()
	}
	f.visits[visit.ID] = visit
	return nil
}

func (f *fakeVisitRepo) FindByID(_ *gorm.DB, id uuid.UUID) (*entity.Visit, error) {
	return f.visits[id], nil
}

func (f *fakeVisitRepo) FindAll(_ *gorm.DB, filter repository.VisitFilter) ([]entity.Visit, int64, error) {
	f.lastFilter = filter
	var out []entity.Visit
	for _, v := range f.visits {
		if filter.PatientID != nil && v.PatientID != *filter.PatientID {
			continue
		}
		if filter.DoctorID != nil && v.DoctorID != *filter.DoctorID {
			continue
		}
		if filter.Status != nil && v.VisitStatus != *filter.Status {
			continue
		}
		out = append(out, *v)
	}
	return out, int64(len(out)), nil
}

func (f *fakeVisitRepo) Update(_ *gorm.DB, visit *entity.Visit) error {
	f.visits[visit.ID] = visit
	return nil
}

func (f *fakeVisitRepo) Delete(_ *gorm.DB, id uuid.UUID) error {
	delete(f.visits, id)
	return nil
}

type visitFixture struct {
	usecase  VisitUsecase
	visits   *fakeVisitRepo
	profiles *fakeProfileRepo
}

func newVisitFixture(t *testing.T) *visitFixture {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	visits := newFakeVisitRepo()
	profiles := newFakeProfileRepo()

	return &visitFixture{
		usecase:  NewVisitUsecase(stubDB(), log, visits, profiles),
		visits:   visits,
		profiles: profiles,
	}
}

func staffAuth(dept entity.Department) *entity.AuthContext {
	return &entity.AuthContext{
		UserID:     uuid.New(),
		Role:       entity.RoleStaff,
		ProfileID:  uuid.New(),
		Department: &dept,
	}
}

func TestCreateVisitRecordsRegisteringStaff(t *testing.T) {
	f := newVisitFixture(t)

	patientUserID := uuid.New()
	patient := &entity.Patient{ID: uuid.New(), UserID: patientUserID}
	f.profiles.patients[patientUserID] = patient

	doctorUserID := uuid.New()
	doctor := &entity.Doctor{ID: uuid.New(), UserID: doctorUserID}
	f.profiles.doctors[doctorUserID] = doctor

	auth := staffAuth(entity.DepartmentRegistration)
	resp, err := f.usecase.Create(context.Background(), auth, &dto.CreateVisitRequest{
		PatientUserID: patientUserID,
		DoctorUserID:  doctorUserID,
		VisitDatetime: time.Now().Add(time.Hour).Format(time.RFC3339),
		VisitType:     "general",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if resp.PatientID != patient.ID {
		t.Errorf("PatientID = %s, want profile id %s", resp.PatientID, patient.ID)
	}
	if resp.DoctorID != doctor.ID {
		t.Errorf("DoctorID = %s, want profile id %s", resp.DoctorID, doctor.ID)
	}
	if resp.RegistrationStaffID != auth.ProfileID {
		t.Errorf("RegistrationStaffID = %s, want caller profile %s", resp.RegistrationStaffID, auth.ProfileID)
	}
	if resp.VisitStatus != string(entity.VisitStatusRegistered) {
		t.Errorf("VisitStatus = %q, want registered", resp.VisitStatus)
	}
}

func TestCreateVisitValidation(t *testing.T) {
	f := newVisitFixture(t)

	patientUserID := uuid.New()
	f.profiles.patients[patientUserID] = &entity.Patient{ID: uuid.New(), UserID: patientUserID}

	auth := staffAuth(entity.DepartmentRegistration)
	when := time.Now().Format(time.RFC3339)

	tests := []struct {
		name    string
		req     dto.CreateVisitRequest
		wantErr error
	}{
		{"bad datetime", dto.CreateVisitRequest{PatientUserID: patientUserID, DoctorUserID: uuid.New(), VisitDatetime: "tomorrow at nine"}, ErrInvalidVisitTime},
		{"unknown patient", dto.CreateVisitRequest{PatientUserID: uuid.New(), DoctorUserID: uuid.New(), VisitDatetime: when}, ErrPatientNotFound},
		{"unknown doctor", dto.CreateVisitRequest{PatientUserID: patientUserID, DoctorUserID: uuid.New(), VisitDatetime: when}, ErrDoctorNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.usecase.Create(context.Background(), auth, &tt.req); !errors.Is(err, tt.wantErr) {
				t.Errorf("Create error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetVisitOwnershipScope(t *testing.T) {
	f := newVisitFixture(t)

	patientID := uuid.New()
	doctorID := uuid.New()
	visit := &entity.Visit{
		ID:          uuid.New(),
		PatientID:   patientID,
		DoctorID:    doctorID,
		VisitStatus: entity.VisitStatusRegistered,
	}
	f.visits.visits[visit.ID] = visit

	tests := []struct {
		name    string
		auth    *entity.AuthContext
		wantErr error
	}{
		{"owning patient", &entity.AuthContext{Role: entity.RolePatient, ProfileID: patientID}, nil},
		{"other patient", &entity.AuthContext{Role: entity.RolePatient, ProfileID: uuid.New()}, ErrVisitAccessDenied},
		{"assigned doctor", &entity.AuthContext{Role: entity.RoleDoctor, ProfileID: doctorID}, nil},
		{"other doctor", &entity.AuthContext{Role: entity.RoleDoctor, ProfileID: uuid.New()}, ErrVisitAccessDenied},
		{"any staff", staffAuth(entity.DepartmentCashier), nil},
		{"admin", &entity.AuthContext{Role: entity.RoleAdmin, ProfileID: uuid.New()}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.usecase.GetByID(context.Background(), tt.auth, visit.ID)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("GetByID error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if _, err := f.usecase.GetByID(context.Background(), staffAuth(entity.DepartmentRegistration), uuid.New()); !errors.Is(err, ErrVisitNotFound) {
		t.Errorf("unknown visit error = %v, want ErrVisitNotFound", err)
	}
}

func TestListVisitsPinsPatientsAndDoctors(t *testing.T) {
	f := newVisitFixture(t)

	patientAuth := &entity.AuthContext{Role: entity.RolePatient, ProfileID: uuid.New()}
	if _, _, err := f.usecase.List(context.Background(), patientAuth, "", 1, 20); err != nil {
		t.Fatalf("List: %v", err)
	}
	if f.visits.lastFilter.PatientID == nil || *f.visits.lastFilter.PatientID != patientAuth.ProfileID {
		t.Error("patient listing should be filtered to the caller's profile")
	}

	doctorAuth := &entity.AuthContext{Role: entity.RoleDoctor, ProfileID: uuid.New()}
	if _, _, err := f.usecase.List(context.Background(), doctorAuth, "examining", 1, 20); err != nil {
		t.Fatalf("List: %v", err)
	}
	if f.visits.lastFilter.DoctorID == nil || *f.visits.lastFilter.DoctorID != doctorAuth.ProfileID {
		t.Error("doctor listing should be filtered to the caller's profile")
	}
	if f.visits.lastFilter.Status == nil || *f.visits.lastFilter.Status != entity.VisitStatusExamining {
		t.Error("status filter should be passed through")
	}

	if _, _, err := f.usecase.List(context.Background(), staffAuth(entity.DepartmentRegistration), "", 1, 20); err != nil {
		t.Fatalf("List: %v", err)
	}
	if f.visits.lastFilter.PatientID != nil || f.visits.lastFilter.DoctorID != nil {
		t.Error("staff listing should not be pinned to a profile")
	}
}

func TestUpdateVisitDoctorStatusOnly(t *testing.T) {
	f := newVisitFixture(t)

	doctorID := uuid.New()
	visit := &entity.Visit{
		ID:             uuid.New(),
		PatientID:      uuid.New(),
		DoctorID:       doctorID,
		ChiefComplaint: "headache",
		VisitType:      entity.VisitTypeGeneral,
		VisitStatus:    entity.VisitStatusRegistered,
	}
	f.visits.visits[visit.ID] = visit

	otherDoctor := &entity.AuthContext{Role: entity.RoleDoctor, ProfileID: uuid.New()}
	_, err := f.usecase.Update(context.Background(), otherDoctor, visit.ID, &dto.UpdateVisitRequest{VisitStatus: "examining"})
	if !errors.Is(err, ErrVisitAccessDenied) {
		t.Errorf("other doctor error = %v, want ErrVisitAccessDenied", err)
	}

	// Non-status fields sent by a doctor are silently ignored.
	owner := &entity.AuthContext{Role: entity.RoleDoctor, ProfileID: doctorID}
	sneaky := "hijacked"
	resp, err := f.usecase.Update(context.Background(), owner, visit.ID, &dto.UpdateVisitRequest{
		VisitStatus:    "completed",
		VisitType:      "emergency",
		ChiefComplaint: &sneaky,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if resp.VisitStatus != string(entity.VisitStatusCompleted) {
		t.Errorf("VisitStatus = %q, want completed", resp.VisitStatus)
	}
	if resp.VisitType != string(entity.VisitTypeGeneral) {
		t.Errorf("VisitType = %q, doctor must not change it", resp.VisitType)
	}
	if resp.ChiefComplaint != "headache" {
		t.Errorf("ChiefComplaint = %q, doctor must not change it", resp.ChiefComplaint)
	}

	// Completed visits accept no further status changes, even from admins.
	admin := &entity.AuthContext{Role: entity.RoleAdmin, ProfileID: uuid.New()}
	_, err = f.usecase.Update(context.Background(), admin, visit.ID, &dto.UpdateVisitRequest{VisitStatus: "examining"})
	if !errors.Is(err, ErrVisitAlreadyClosed) {
		t.Errorf("reopening error = %v, want ErrVisitAlreadyClosed", err)
	}
}

func TestUpdateVisitAdminAllFields(t *testing.T) {
	f := newVisitFixture(t)

	newDoctorUserID := uuid.New()
	newDoctor := &entity.Doctor{ID: uuid.New(), UserID: newDoctorUserID}
	f.profiles.doctors[newDoctorUserID] = newDoctor

	visit := &entity.Visit{
		ID:          uuid.New(),
		PatientID:   uuid.New(),
		DoctorID:    uuid.New(),
		VisitType:   entity.VisitTypeGeneral,
		VisitStatus: entity.VisitStatusRegistered,
	}
	f.visits.visits[visit.ID] = visit

	admin := &entity.AuthContext{Role: entity.RoleAdmin, ProfileID: uuid.New()}
	complaint := "chest pain"
	when := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	resp, err := f.usecase.Update(context.Background(), admin, visit.ID, &dto.UpdateVisitRequest{
		VisitStatus:    "examining",
		VisitType:      "emergency",
		ChiefComplaint: &complaint,
		VisitDatetime:  when.Format(time.RFC3339),
		DoctorUserID:   &newDoctorUserID,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if resp.VisitStatus != string(entity.VisitStatusExamining) {
		t.Errorf("VisitStatus = %q, want examining", resp.VisitStatus)
	}
	if resp.VisitType != string(entity.VisitTypeEmergency) {
		t.Errorf("VisitType = %q, want emergency", resp.VisitType)
	}
	if resp.ChiefComplaint != complaint {
		t.Errorf("ChiefComplaint = %q, want %q", resp.ChiefComplaint, complaint)
	}
	if !resp.VisitDatetime.Equal(when) {
		t.Errorf("VisitDatetime = %s, want %s", resp.VisitDatetime, when)
	}
	if resp.DoctorID != newDoctor.ID {
		t.Errorf("DoctorID = %s, want reassigned profile %s", resp.DoctorID, newDoctor.ID)
	}

	unknown := uuid.New()
	_, err = f.usecase.Update(context.Background(), admin, visit.ID, &dto.UpdateVisitRequest{DoctorUserID: &unknown})
	if !errors.Is(err, ErrDoctorNotFound) {
		t.Errorf("unknown doctor error = %v, want ErrDoctorNotFound", err)
	}

	_, err = f.usecase.Update(context.Background(), admin, visit.ID, &dto.UpdateVisitRequest{VisitDatetime: "next tuesday"})
	if !errors.Is(err, ErrInvalidVisitTime) {
		t.Errorf("bad datetime error = %v, want ErrInvalidVisitTime", err)
	}
}
