package repository

import (
	"his-backend/internal/domain/entity"

	"gorm.io/gorm"
)

// SessionRepository is pure persistence over issued token pairs.
// DeleteByRefreshToken reports how many rows it removed: refresh rotation
// relies on that count to make consumption single-use, so of two racing
// rotations only the one that actually deleted the row may mint a new pair.
type SessionRepository interface {
	Create(db *gorm.DB, session *entity.UserSession) error
	FindByAccessToken(db *gorm.DB, accessToken string) (*entity.UserSession, error)
	FindByRefreshToken(db *gorm.DB, refreshToken string) (*entity.UserSession, error)
	DeleteByRefreshToken(db *gorm.DB, refreshToken string) (int64, error)
}
