package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"his-backend/internal/converter"
	"his-backend/internal/delivery/dto"
	"his-backend/internal/domain/entity"
	"his-backend/internal/domain/repository"
	"his-backend/pkg/password"
	"his-backend/pkg/token"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials    = errors.New("invalid username or password")
	ErrInvalidToken          = errors.New("invalid or expired token")
	ErrSessionNotFound       = errors.New("session not found or expired")
	ErrRefreshTokenExpired   = errors.New("refresh token expired")
	ErrUserInvalid           = errors.New("user account is not usable")
	ErrUsernameAlreadyExists = errors.New("username already exists")
	ErrEmailAlreadyExists    = errors.New("email already exists")
	ErrNIKAlreadyExists      = errors.New("NIK already exists")
	ErrUserNotFound          = errors.New("user not found")
	ErrInvalidDateFormat     = errors.New("invalid date format, use YYYY-MM-DD")
)

type AuthUsecase interface {
	Register(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest, ip, userAgent string) (*dto.TokenResponse, error)
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	GetCurrentUser(ctx context.Context, auth *entity.AuthContext) (*dto.UserResponse, error)
	Authenticate(ctx context.Context, accessToken string) (*entity.AuthContext, error)
}

type authUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	sessionRepo repository.SessionRepository
	resolver    *ProfileResolver
	codec       *token.Codec
	hasher      *password.Hasher
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	sessionRepo repository.SessionRepository,
	resolver *ProfileResolver,
	codec *token.Codec,
	hasher *password.Hasher,
) AuthUsecase {
	return &authUsecase{
		db:          db,
		log:         log,
		userRepo:    userRepo,
		profileRepo: profileRepo,
		sessionRepo: sessionRepo,
		resolver:    resolver,
		codec:       codec,
		hasher:      hasher,
	}
}

// Register creates a patient account. Doctor and staff accounts are
// provisioned by admins through the user creation flow.
func (u *authUsecase) Register(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.UserResponse, error) {
	dob, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	db := u.db.WithContext(ctx)

	existing, err := u.userRepo.FindByUsername(db, req.Username)
	if err != nil {
		u.log.Warnf("Failed to check username: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameAlreadyExists
	}

	existing, err = u.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		u.log.Warnf("Failed to check email: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	hashed, err := u.hasher.Hash(req.Password)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	tx := db.Begin()
	defer tx.Rollback()

	user := &entity.User{
		Username:     req.Username,
		PasswordHash: hashed,
		FullName:     req.FullName,
		Email:        req.Email,
		PhoneNumber:  req.PhoneNumber,
		Role:         entity.RolePatient,
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

// Login exchanges credentials for a token pair. Unknown username, wrong
// password and deactivated account all collapse into ErrInvalidCredentials so
// responses cannot be used to probe which usernames exist.
func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest, ip, userAgent string) (*dto.TokenResponse, error) {
	db := u.db.WithContext(ctx)

	user, err := u.userRepo.FindByUsername(db, req.Username)
	if err != nil {
		u.log.Warnf("Failed to find user by username: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if !u.hasher.Verify(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	if !user.Active() {
		return nil, ErrInvalidCredentials
	}

	ref, err := u.resolver.Resolve(db, user.ID, user.Role)
	if err != nil {
		u.log.Warnf("Failed to resolve profile: %+v", err)
		return nil, err
	}
	if ref == nil {
		return nil, ErrUserInvalid
	}

	return u.issueTokenPair(db, user, ref, ip, userAgent)
}

// RefreshToken rotates a refresh token: the presented token is consumed and a
// fresh pair is minted with identity claims recomputed from current state.
// Consumption is a conditional delete, so of two concurrent rotations of the
// same token exactly one succeeds.
func (u *authUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := u.codec.Verify(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.Role != "" {
		// An access token presented as a refresh token.
		return nil, ErrInvalidToken
	}

	db := u.db.WithContext(ctx)

	session, err := u.sessionRepo.FindByRefreshToken(db, req.RefreshToken)
	if err != nil {
		u.log.Warnf("Failed to find session: %+v", err)
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	if time.Now().After(session.ExpiresAt) {
		if _, err := u.sessionRepo.DeleteByRefreshToken(db, req.RefreshToken); err != nil {
			u.log.Warnf("Failed to remove expired session: %+v", err)
		}
		return nil, ErrRefreshTokenExpired
	}

	user, err := u.userRepo.FindByID(db, session.UserID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil || !user.Active() {
		return nil, ErrUserInvalid
	}

	ref, err := u.resolver.Resolve(db, user.ID, user.Role)
	if err != nil {
		u.log.Warnf("Failed to resolve profile: %+v", err)
		return nil, err
	}
	if ref == nil {
		return nil, ErrUserInvalid
	}

	rows, err := u.sessionRepo.DeleteByRefreshToken(db, req.RefreshToken)
	if err != nil {
		u.log.Warnf("Failed to consume refresh token: %+v", err)
		return nil, err
	}
	if rows == 0 {
		return nil, ErrSessionNotFound
	}

	return u.issueTokenPair(db, user, ref, session.IPAddress, session.UserAgent)
}

// Logout revokes the session owning the refresh token. Revoking an already
// revoked or unknown token is not an error.
func (u *authUsecase) Logout(ctx context.Context, refreshToken string) error {
	if _, err := u.sessionRepo.DeleteByRefreshToken(u.db.WithContext(ctx), refreshToken); err != nil {
		u.log.Warnf("Failed to delete session: %+v", err)
		return err
	}
	return nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, auth *entity.AuthContext) (*dto.UserResponse, error) {
	db := u.db.WithContext(ctx)

	user, err := u.userRepo.FindByID(db, auth.UserID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	switch user.Role {
	case entity.RoleDoctor:
		user.DoctorProfile, err = u.profileRepo.FindDoctorByUserID(db, user.ID)
	case entity.RoleStaff:
		user.StaffProfile, err = u.profileRepo.FindStaffByUserID(db, user.ID)
	case entity.RolePatient:
		user.PatientProfile, err = u.profileRepo.FindPatientByUserID(db, user.ID)
	}
	if err != nil {
		u.log.Warnf("Failed to load profile: %+v", err)
		return nil, err
	}

	return converter.UserToResponse(user), nil
}

// Authenticate verifies an access token against both its signature and its
// session row, then rebuilds the request identity from the embedded claims.
func (u *authUsecase) Authenticate(ctx context.Context, accessToken string) (*entity.AuthContext, error) {
	claims, err := u.codec.Verify(accessToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.Role == "" {
		// A refresh token presented where an access token belongs.
		return nil, ErrInvalidToken
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil, ErrInvalidToken
	}
	profileID, err := uuid.Parse(claims.ProfileID)
	if err != nil {
		return nil, ErrInvalidToken
	}

	db := u.db.WithContext(ctx)

	session, err := u.sessionRepo.FindByAccessToken(db, accessToken)
	if err != nil {
		u.log.Warnf("Failed to find session: %+v", err)
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	user, err := u.userRepo.FindByID(db, userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil || !user.Active() {
		return nil, ErrUserInvalid
	}

	auth := &entity.AuthContext{
		UserID:    userID,
		Role:      entity.Role(claims.Role),
		ProfileID: profileID,
	}
	if claims.Department != nil {
		dept := entity.Department(*claims.Department)
		auth.Department = &dept
	}
	return auth, nil
}

func (u *authUsecase) issueTokenPair(db *gorm.DB, user *entity.User, ref *entity.ProfileRef, ip, userAgent string) (*dto.TokenResponse, error) {
	accessToken, err := u.codec.SignAccessToken(user.ID, user.Role, ref.ProfileID.String(), ref.Department)
	if err != nil {
		u.log.Warnf("Failed to sign access token: %+v", err)
		return nil, err
	}

	refreshToken, err := u.codec.SignRefreshToken(user.ID)
	if err != nil {
		u.log.Warnf("Failed to sign refresh token: %+v", err)
		return nil, err
	}

	session := &entity.UserSession{
		UserID:       user.ID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(u.codec.RefreshExpiry()),
		IPAddress:    ip,
		UserAgent:    userAgent,
	}
	if err := u.sessionRepo.Create(db, session); err != nil {
		u.log.Warnf("Failed to create session: %+v", err)
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    int64(u.codec.AccessExpiry().Seconds()),
	}, nil
}

// isDuplicateKeyError checks if the error is a PostgreSQL unique constraint
// violation containing the specified constraint name
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}

// isForeignKeyError checks if the error is a PostgreSQL foreign key violation
// containing the specified constraint name
func isForeignKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23503 = foreign_key_violation
		if pgErr.Code == "23503" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}
