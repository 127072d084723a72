package token

import (
	"errors"
	"time"

	"his-backend/config"
	"his-backend/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is the single failure surfaced by Verify. Structural,
// signature and expiry failures are deliberately indistinguishable so the
// codec cannot be used as an oracle.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the payload carried by both token kinds. Access tokens fill all
// fields; refresh tokens carry only the registered subject and expiry.
type Claims struct {
	Role       string  `json:"role,omitempty"`
	ProfileID  string  `json:"profile_id,omitempty"`
	Department *string `json:"department,omitempty"`
	jwt.RegisteredClaims
}

// Codec signs and verifies both access and refresh tokens with one shared
// symmetric key; the two kinds differ only in claim set and TTL.
type Codec struct {
	secret        []byte
	method        jwt.SigningMethod
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

func NewCodec(cfg config.JWTConfig) (*Codec, error) {
	method := jwt.GetSigningMethod(cfg.Algorithm)
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.New("jwt algorithm must be an HMAC variant")
	}
	return &Codec{
		secret:        []byte(cfg.Secret),
		method:        method,
		accessExpiry:  cfg.AccessExpiry,
		refreshExpiry: cfg.RefreshExpiry,
	}, nil
}

// SignAccessToken embeds the full identity claims resolved at issuance time.
func (c *Codec) SignAccessToken(userID uuid.UUID, role entity.Role, profileID string, department *entity.Department) (string, error) {
	var dept *string
	if department != nil {
		d := string(*department)
		dept = &d
	}
	claims := Claims{
		Role:       string(role),
		ProfileID:  profileID,
		Department: dept,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(c.accessExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return c.sign(claims)
}

// SignRefreshToken carries only the subject. Identity claims are recomputed
// from current profile state on every rotation, never copied forward.
func (c *Codec) SignRefreshToken(userID uuid.UUID) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(c.refreshExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return c.sign(claims)
}

func (c *Codec) sign(claims Claims) (string, error) {
	return jwt.NewWithClaims(c.method, claims).SignedString(c.secret)
}

// Verify validates signature and expiry and returns the claims.
func (c *Codec) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return c.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// Subject parses the user id a verified token was issued for.
func (cl *Claims) UserID() (uuid.UUID, error) {
	return uuid.Parse(cl.Subject)
}

func (c *Codec) AccessExpiry() time.Duration {
	return c.accessExpiry
}

func (c *Codec) RefreshExpiry() time.Duration {
	return c.refreshExpiry
}
