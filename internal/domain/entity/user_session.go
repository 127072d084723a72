package entity

import (
	"time"

	"github.com/google/uuid"
)

// UserSession binds one issued token pair to a user. Its existence is the
// source of truth for revocation: a structurally valid token whose session
// row is gone must be rejected.
type UserSession struct {
	SessionID    uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"session_id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	AccessToken  string    `gorm:"type:text;not null;index" json:"-"`
	RefreshToken string    `gorm:"type:text;not null;index" json:"-"`
	ExpiresAt    time.Time `gorm:"not null" json:"expires_at"`
	IPAddress    string    `gorm:"type:varchar(45)" json:"ip_address,omitempty"`
	UserAgent    string    `gorm:"type:text" json:"user_agent,omitempty"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (UserSession) TableName() string {
	return "user_sessions"
}
