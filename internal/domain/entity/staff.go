package entity

import "github.com/google/uuid"

// Staff is the staff-specific profile record carrying the department that
// department-scoped authorization checks evaluate.
type Staff struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID     uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Department Department `gorm:"type:varchar(30);not null;index" json:"department"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Staff) TableName() string {
	return "staff"
}
