package repository

import (
	"errors"

	"his-backend/internal/domain/entity"
	domainRepo "his-backend/internal/domain/repository"

	"gorm.io/gorm"
)

type sessionRepository struct{}

func NewSessionRepository() domainRepo.SessionRepository {
	return &sessionRepository{}
}

func (r *sessionRepository) Create(db *gorm.DB, session *entity.UserSession) error {
	return db.Create(session).Error
}

func (r *sessionRepository) FindByAccessToken(db *gorm.DB, accessToken string) (*entity.UserSession, error) {
	var session entity.UserSession
	err := db.Where("access_token = ?", accessToken).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) FindByRefreshToken(db *gorm.DB, refreshToken string) (*entity.UserSession, error) {
	var session entity.UserSession
	err := db.Where("refresh_token = ?", refreshToken).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

// DeleteByRefreshToken returns affected rows: 1 = consumed, 0 = the token was
// already consumed or revoked (loser of a rotation race included).
func (r *sessionRepository) DeleteByRefreshToken(db *gorm.DB, refreshToken string) (int64, error) {
	result := db.Where("refresh_token = ?", refreshToken).Delete(&entity.UserSession{})
	return result.RowsAffected, result.Error
}
