package usecase

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"his-backend/config"
	"his-backend/internal/delivery/dto"
	"his-backend/internal/domain/entity"
	"his-backend/pkg/password"
	"his-backend/pkg/token"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// The fakes below ignore the passed *gorm.DB entirely; the use case only
// needs a handle it can call WithContext on, so stubDB builds one that never
// touches a connection.

func stubDB() *gorm.DB {
	db := &gorm.DB{Config: &gorm.Config{}}
	db.Statement = &gorm.Statement{DB: db, Context: context.Background()}
	return db
}

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*entity.User{}}
}

func (f *fakeUserRepo) Create(_ *gorm.DB, user *entity.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) FindByUsername(_ *gorm.DB, username string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(_ *gorm.DB, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByID(_ *gorm.DB, id uuid.UUID) (*entity.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) Update(_ *gorm.DB, user *entity.User) error {
	f.users[user.ID] = user
	return nil
}

type fakeProfileRepo struct {
	doctors  map[uuid.UUID]*entity.Doctor
	staff    map[uuid.UUID]*entity.Staff
	patients map[uuid.UUID]*entity.Patient
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{
		doctors:  map[uuid.UUID]*entity.Doctor{},
		staff:    map[uuid.UUID]*entity.Staff{},
		patients: map[uuid.UUID]*entity.Patient{},
	}
}

func (f *fakeProfileRepo) CreateDoctor(_ *gorm.DB, d *entity.Doctor) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	f.doctors[d.UserID] = d
	return nil
}

func (f *fakeProfileRepo) CreateStaff(_ *gorm.DB, s *entity.Staff) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	f.staff[s.UserID] = s
	return nil
}

func (f *fakeProfileRepo) CreatePatient(_ *gorm.DB, p *entity.Patient) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	f.patients[p.UserID] = p
	return nil
}

func (f *fakeProfileRepo) FindDoctorByUserID(_ *gorm.DB, userID uuid.UUID) (*entity.Doctor, error) {
	return f.doctors[userID], nil
}

func (f *fakeProfileRepo) FindStaffByUserID(_ *gorm.DB, userID uuid.UUID) (*entity.Staff, error) {
	return f.staff[userID], nil
}

func (f *fakeProfileRepo) FindPatientByUserID(_ *gorm.DB, userID uuid.UUID) (*entity.Patient, error) {
	return f.patients[userID], nil
}

func (f *fakeProfileRepo) FindPatientByDeviceAPIKey(_ *gorm.DB, key uuid.UUID) (*entity.Patient, error) {
	for _, p := range f.patients {
		if p.DeviceAPIKey != nil && *p.DeviceAPIKey == key {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProfileRepo) UpdateDoctor(_ *gorm.DB, d *entity.Doctor) error {
	f.doctors[d.UserID] = d
	return nil
}

func (f *fakeProfileRepo) UpdateStaff(_ *gorm.DB, s *entity.Staff) error {
	f.staff[s.UserID] = s
	return nil
}

func (f *fakeProfileRepo) UpdatePatient(_ *gorm.DB, p *entity.Patient) error {
	f.patients[p.UserID] = p
	return nil
}

type fakeSessionRepo struct {
	sessions map[string]*entity.UserSession
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]*entity.UserSession{}}
}

func (f *fakeSessionRepo) Create(_ *gorm.DB, session *entity.UserSession) error {
	if session.SessionID == uuid.Nil {
		session.SessionID = uuid.New()
	}
	f.sessions[session.RefreshToken] = session
	return nil
}

func (f *fakeSessionRepo) FindByAccessToken(_ *gorm.DB, accessToken string) (*entity.UserSession, error) {
	for _, s := range f.sessions {
		if s.AccessToken == accessToken {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeSessionRepo) FindByRefreshToken(_ *gorm.DB, refreshToken string) (*entity.UserSession, error) {
	return f.sessions[refreshToken], nil
}

func (f *fakeSessionRepo) DeleteByRefreshToken(_ *gorm.DB, refreshToken string) (int64, error) {
	if _, ok := f.sessions[refreshToken]; !ok {
		return 0, nil
	}
	delete(f.sessions, refreshToken)
	return 1, nil
}

type authFixture struct {
	usecase  AuthUsecase
	users    *fakeUserRepo
	profiles *fakeProfileRepo
	sessions *fakeSessionRepo
	codec    *token.Codec
	hasher   *password.Hasher
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	codec, err := token.NewCodec(config.JWTConfig{
		Secret:        "test-secret-key",
		Algorithm:     "HS256",
		AccessExpiry:  30 * time.Minute,
		RefreshExpiry: 168 * time.Hour,
	})
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}

	log := logrus.New()
	log.SetOutput(io.Discard)

	users := newFakeUserRepo()
	profiles := newFakeProfileRepo()
	sessions := newFakeSessionRepo()
	hasher := password.NewHasher(bcrypt.MinCost)

	return &authFixture{
		usecase:  NewAuthUsecase(stubDB(), log, users, profiles, sessions, NewProfileResolver(profiles), codec, hasher),
		users:    users,
		profiles: profiles,
		sessions: sessions,
		codec:    codec,
		hasher:   hasher,
	}
}

func (f *authFixture) addUser(t *testing.T, username, plain string, role entity.Role, active bool) *entity.User {
	t.Helper()
	hashed, err := f.hasher.Hash(plain)
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	user := &entity.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: hashed,
		FullName:     "Test " + username,
		Email:        username + "@example.com",
		Role:         role,
		IsActive:     &active,
	}
	f.users.users[user.ID] = user
	return user
}

func (f *authFixture) addStaffUser(t *testing.T, username, plain string, dept entity.Department) (*entity.User, *entity.Staff) {
	t.Helper()
	user := f.addUser(t, username, plain, entity.RoleStaff, true)
	staff := &entity.Staff{ID: uuid.New(), UserID: user.ID, Department: dept}
	f.profiles.staff[user.ID] = staff
	return user, staff
}

func (f *authFixture) addPatientUser(t *testing.T, username, plain string) (*entity.User, *entity.Patient) {
	t.Helper()
	user := f.addUser(t, username, plain, entity.RolePatient, true)
	patient := &entity.Patient{ID: uuid.New(), UserID: user.ID, NIK: "3174012345678901"}
	f.profiles.patients[user.ID] = patient
	return user, patient
}

func TestLoginIssuesTokenPairWithResolvedClaims(t *testing.T) {
	f := newAuthFixture(t)
	user, staff := f.addStaffUser(t, "apoteker1", "rahasia123", entity.DepartmentPharmacy)

	resp, err := f.usecase.Login(context.Background(), &dto.LoginRequest{Username: "apoteker1", Password: "rahasia123"}, "10.0.0.1", "test-agent")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if resp.TokenType != "bearer" {
		t.Errorf("TokenType = %q, want bearer", resp.TokenType)
	}
	if resp.ExpiresIn != int64((30 * time.Minute).Seconds()) {
		t.Errorf("ExpiresIn = %d, want 1800", resp.ExpiresIn)
	}

	claims, err := f.codec.Verify(resp.AccessToken)
	if err != nil {
		t.Fatalf("Verify access token: %v", err)
	}
	if claims.Role != string(entity.RoleStaff) {
		t.Errorf("access claims role = %q, want staff", claims.Role)
	}
	if claims.ProfileID != staff.ID.String() {
		t.Errorf("access claims profile_id = %q, want staff profile %s", claims.ProfileID, staff.ID)
	}
	if claims.Department == nil || *claims.Department != string(entity.DepartmentPharmacy) {
		t.Errorf("access claims department = %v, want Pharmacy", claims.Department)
	}
	got, err := claims.UserID()
	if err != nil || got != user.ID {
		t.Errorf("access claims subject = %s (%v), want %s", got, err, user.ID)
	}

	session, err := f.sessions.FindByRefreshToken(nil, resp.RefreshToken)
	if err != nil || session == nil {
		t.Fatal("session should be persisted for the refresh token")
	}
	if session.IPAddress != "10.0.0.1" || session.UserAgent != "test-agent" {
		t.Errorf("session metadata = %q/%q, want 10.0.0.1/test-agent", session.IPAddress, session.UserAgent)
	}
}

func TestLoginFailuresAreUniform(t *testing.T) {
	f := newAuthFixture(t)
	f.addPatientUser(t, "pasien1", "rahasia123")
	f.addUser(t, "nonaktif", "rahasia123", entity.RoleAdmin, false)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"unknown username", "tidakada", "rahasia123"},
		{"wrong password", "pasien1", "salah"},
		{"deactivated account", "nonaktif", "rahasia123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.usecase.Login(context.Background(), &dto.LoginRequest{Username: tt.username, Password: tt.password}, "", "")
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("Login error = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestLoginWithoutProfileRow(t *testing.T) {
	f := newAuthFixture(t)
	// A doctor account whose profile row was never provisioned.
	f.addUser(t, "dokterkosong", "rahasia123", entity.RoleDoctor, true)

	_, err := f.usecase.Login(context.Background(), &dto.LoginRequest{Username: "dokterkosong", Password: "rahasia123"}, "", "")
	if !errors.Is(err, ErrUserInvalid) {
		t.Errorf("Login error = %v, want ErrUserInvalid", err)
	}
}

func TestAdminLoginUsesUserIDAsProfileID(t *testing.T) {
	f := newAuthFixture(t)
	admin := f.addUser(t, "admin", "rahasia123", entity.RoleAdmin, true)

	resp, err := f.usecase.Login(context.Background(), &dto.LoginRequest{Username: "admin", Password: "rahasia123"}, "", "")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	claims, err := f.codec.Verify(resp.AccessToken)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.ProfileID != admin.ID.String() {
		t.Errorf("admin profile_id = %q, want user id %s", claims.ProfileID, admin.ID)
	}
	if claims.Department != nil {
		t.Errorf("admin department = %q, want nil", *claims.Department)
	}
}

func TestRefreshTokenIsSingleUse(t *testing.T) {
	f := newAuthFixture(t)
	f.addPatientUser(t, "pasien1", "rahasia123")

	first, err := f.usecase.Login(context.Background(), &dto.LoginRequest{Username: "pasien1", Password: "rahasia123"}, "", "")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	second, err := f.usecase.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: first.RefreshToken})
	if err != nil {
		t.Fatalf("first rotation: %v", err)
	}
	if second.RefreshToken == first.RefreshToken {
		t.Error("rotation should mint a new refresh token")
	}

	_, err = f.usecase.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: first.RefreshToken})
	if !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("second rotation error = %v, want ErrSessionNotFound", err)
	}

	// The pair from the second rotation is still live.
	if _, err := f.usecase.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: second.RefreshToken}); err != nil {
		t.Errorf("rotating the new token: %v", err)
	}
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	f := newAuthFixture(t)
	f.addPatientUser(t, "pasien1", "rahasia123")

	resp, err := f.usecase.Login(context.Background(), &dto.LoginRequest{Username: "pasien1", Password: "rahasia123"}, "", "")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	_, err = f.usecase.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: resp.AccessToken})
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("refresh with access token error = %v, want ErrInvalidToken", err)
	}
}

func TestRefreshExpiredSession(t *testing.T) {
	f := newAuthFixture(t)
	f.addPatientUser(t, "pasien1", "rahasia123")

	resp, err := f.usecase.Login(context.Background(), &dto.LoginRequest{Username: "pasien1", Password: "rahasia123"}, "", "")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	f.sessions.sessions[resp.RefreshToken].ExpiresAt = time.Now().Add(-time.Hour)

	_, err = f.usecase.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: resp.RefreshToken})
	if !errors.Is(err, ErrRefreshTokenExpired) {
		t.Errorf("refresh error = %v, want ErrRefreshTokenExpired", err)
	}
	if _, ok := f.sessions.sessions[resp.RefreshToken]; ok {
		t.Error("expired session should be removed")
	}
}

func TestRefreshAfterDeactivation(t *testing.T) {
	f := newAuthFixture(t)
	user, _ := f.addPatientUser(t, "pasien1", "rahasia123")

	resp, err := f.usecase.Login(context.Background(), &dto.LoginRequest{Username: "pasien1", Password: "rahasia123"}, "", "")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	inactive := false
	user.IsActive = &inactive

	_, err = f.usecase.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: resp.RefreshToken})
	if !errors.Is(err, ErrUserInvalid) {
		t.Errorf("refresh error = %v, want ErrUserInvalid", err)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	f := newAuthFixture(t)
	f.addPatientUser(t, "pasien1", "rahasia123")

	resp, err := f.usecase.Login(context.Background(), &dto.LoginRequest{Username: "pasien1", Password: "rahasia123"}, "", "")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if err := f.usecase.Logout(context.Background(), resp.RefreshToken); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	_, err = f.usecase.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: resp.RefreshToken})
	if !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("refresh after logout error = %v, want ErrSessionNotFound", err)
	}

	_, err = f.usecase.Authenticate(context.Background(), resp.AccessToken)
	if !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("authenticate after logout error = %v, want ErrSessionNotFound", err)
	}

	// Logging out a token twice is not an error.
	if err := f.usecase.Logout(context.Background(), resp.RefreshToken); err != nil {
		t.Errorf("repeated Logout: %v", err)
	}
}

func TestAuthenticateBuildsAuthContext(t *testing.T) {
	f := newAuthFixture(t)
	user, staff := f.addStaffUser(t, "kasir1", "rahasia123", entity.DepartmentCashier)

	resp, err := f.usecase.Login(context.Background(), &dto.LoginRequest{Username: "kasir1", Password: "rahasia123"}, "", "")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	auth, err := f.usecase.Authenticate(context.Background(), resp.AccessToken)
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if auth.UserID != user.ID {
		t.Errorf("UserID = %s, want %s", auth.UserID, user.ID)
	}
	if auth.Role != entity.RoleStaff {
		t.Errorf("Role = %q, want staff", auth.Role)
	}
	if auth.ProfileID != staff.ID {
		t.Errorf("ProfileID = %s, want %s", auth.ProfileID, staff.ID)
	}
	if auth.Department == nil || *auth.Department != entity.DepartmentCashier {
		t.Errorf("Department = %v, want Cashier", auth.Department)
	}
}

func TestAuthenticateRejectsRefreshToken(t *testing.T) {
	f := newAuthFixture(t)
	f.addPatientUser(t, "pasien1", "rahasia123")

	resp, err := f.usecase.Login(context.Background(), &dto.LoginRequest{Username: "pasien1", Password: "rahasia123"}, "", "")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	_, err = f.usecase.Authenticate(context.Background(), resp.RefreshToken)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("authenticate with refresh token error = %v, want ErrInvalidToken", err)
	}
}

func TestRegisterValidationBeforeWrite(t *testing.T) {
	f := newAuthFixture(t)
	existing, _ := f.addPatientUser(t, "pasien1", "rahasia123")

	base := dto.RegisterPatientRequest{
		Username:    "pasienbaru",
		Password:    "rahasia123",
		FullName:    "Pasien Baru",
		Email:       "baru@example.com",
		NIK:         "3174019876543210",
		DateOfBirth: "1990-03-15",
		Gender:      "L",
	}

	t.Run("invalid date format", func(t *testing.T) {
		req := base
		req.DateOfBirth = "15-03-1990"
		if _, err := f.usecase.Register(context.Background(), &req); !errors.Is(err, ErrInvalidDateFormat) {
			t.Errorf("Register error = %v, want ErrInvalidDateFormat", err)
		}
	})

	t.Run("duplicate username", func(t *testing.T) {
		req := base
		req.Username = existing.Username
		if _, err := f.usecase.Register(context.Background(), &req); !errors.Is(err, ErrUsernameAlreadyExists) {
			t.Errorf("Register error = %v, want ErrUsernameAlreadyExists", err)
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		req := base
		req.Email = existing.Email
		if _, err := f.usecase.Register(context.Background(), &req); !errors.Is(err, ErrEmailAlreadyExists) {
			t.Errorf("Register error = %v, want ErrEmailAlreadyExists", err)
		}
	})
}

func TestProfileResolver(t *testing.T) {
	profiles := newFakeProfileRepo()
	resolver := NewProfileResolver(profiles)

	adminID := uuid.New()
	ref, err := resolver.Resolve(nil, adminID, entity.RoleAdmin)
	if err != nil || ref == nil || ref.ProfileID != adminID {
		t.Errorf("admin resolve = %+v (%v), want profile id %s", ref, err, adminID)
	}

	doctorUserID := uuid.New()
	ref, err = resolver.Resolve(nil, doctorUserID, entity.RoleDoctor)
	if err != nil || ref != nil {
		t.Errorf("missing doctor profile should resolve to nil, got %+v (%v)", ref, err)
	}

	staffUserID := uuid.New()
	staff := &entity.Staff{ID: uuid.New(), UserID: staffUserID, Department: entity.DepartmentLaboratory}
	profiles.staff[staffUserID] = staff
	ref, err = resolver.Resolve(nil, staffUserID, entity.RoleStaff)
	if err != nil || ref == nil {
		t.Fatalf("staff resolve failed: %+v (%v)", ref, err)
	}
	if ref.ProfileID != staff.ID {
		t.Errorf("staff profile id = %s, want %s", ref.ProfileID, staff.ID)
	}
	if ref.Department == nil || *ref.Department != entity.DepartmentLaboratory {
		t.Errorf("staff department = %v, want Laboratory", ref.Department)
	}
}
