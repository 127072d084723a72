package token

import (
	"errors"
	"testing"
	"time"

	"his-backend/config"
	"his-backend/internal/domain/entity"

	"github.com/google/uuid"
)

func testCodec(t *testing.T) *Codec {
	t.Helper()
	codec, err := NewCodec(config.JWTConfig{
		Secret:        "test-secret-key",
		Algorithm:     "HS256",
		AccessExpiry:  30 * time.Minute,
		RefreshExpiry: 168 * time.Hour,
	})
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	return codec
}

func TestNewCodecRejectsNonHMAC(t *testing.T) {
	tests := []struct {
		algorithm string
		wantErr   bool
	}{
		{"HS256", false},
		{"HS384", false},
		{"HS512", false},
		{"RS256", true},
		{"ES256", true},
		{"none", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.algorithm, func(t *testing.T) {
			_, err := NewCodec(config.JWTConfig{Secret: "s", Algorithm: tt.algorithm})
			if (err != nil) != tt.wantErr {
				t.Errorf("NewCodec(%q) error = %v, wantErr %v", tt.algorithm, err, tt.wantErr)
			}
		})
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	codec := testCodec(t)
	userID := uuid.New()
	profileID := uuid.New()
	dept := entity.DepartmentPharmacy

	signed, err := codec.SignAccessToken(userID, entity.RoleStaff, profileID.String(), &dept)
	if err != nil {
		t.Fatalf("SignAccessToken: %v", err)
	}

	claims, err := codec.Verify(signed)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}

	if claims.Role != string(entity.RoleStaff) {
		t.Errorf("Role = %q, want %q", claims.Role, entity.RoleStaff)
	}
	if claims.ProfileID != profileID.String() {
		t.Errorf("ProfileID = %q, want %q", claims.ProfileID, profileID)
	}
	if claims.Department == nil || *claims.Department != string(dept) {
		t.Errorf("Department = %v, want %q", claims.Department, dept)
	}
	got, err := claims.UserID()
	if err != nil {
		t.Fatalf("UserID: %v", err)
	}
	if got != userID {
		t.Errorf("UserID = %s, want %s", got, userID)
	}
}

func TestAccessTokenWithoutDepartment(t *testing.T) {
	codec := testCodec(t)

	signed, err := codec.SignAccessToken(uuid.New(), entity.RoleDoctor, uuid.New().String(), nil)
	if err != nil {
		t.Fatalf("SignAccessToken: %v", err)
	}

	claims, err := codec.Verify(signed)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.Department != nil {
		t.Errorf("Department = %q, want nil", *claims.Department)
	}
}

func TestRefreshTokenCarriesSubjectOnly(t *testing.T) {
	codec := testCodec(t)
	userID := uuid.New()

	signed, err := codec.SignRefreshToken(userID)
	if err != nil {
		t.Fatalf("SignRefreshToken: %v", err)
	}

	claims, err := codec.Verify(signed)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.Role != "" {
		t.Errorf("Role = %q, want empty", claims.Role)
	}
	if claims.ProfileID != "" {
		t.Errorf("ProfileID = %q, want empty", claims.ProfileID)
	}
	got, err := claims.UserID()
	if err != nil {
		t.Fatalf("UserID: %v", err)
	}
	if got != userID {
		t.Errorf("UserID = %s, want %s", got, userID)
	}
}

func TestVerifyFailuresAreUniform(t *testing.T) {
	codec := testCodec(t)

	otherCodec, err := NewCodec(config.JWTConfig{
		Secret:        "a-different-secret",
		Algorithm:     "HS256",
		AccessExpiry:  30 * time.Minute,
		RefreshExpiry: 168 * time.Hour,
	})
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	foreign, err := otherCodec.SignRefreshToken(uuid.New())
	if err != nil {
		t.Fatalf("SignRefreshToken: %v", err)
	}

	expiredCodec, err := NewCodec(config.JWTConfig{
		Secret:        "test-secret-key",
		Algorithm:     "HS256",
		AccessExpiry:  -time.Minute,
		RefreshExpiry: -time.Minute,
	})
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	expired, err := expiredCodec.SignAccessToken(uuid.New(), entity.RolePatient, uuid.New().String(), nil)
	if err != nil {
		t.Fatalf("SignAccessToken: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-jwt"},
		{"empty", ""},
		{"wrong secret", foreign},
		{"expired", expired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := codec.Verify(tt.token)
			if !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Verify(%s) error = %v, want ErrInvalidToken", tt.name, err)
			}
		})
	}
}
