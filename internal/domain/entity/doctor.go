package entity

import "github.com/google/uuid"

// Doctor is the doctor-specific profile record. Domain tables reference
// Doctor.ID, never the user id.
type Doctor struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Specialty string    `gorm:"type:varchar(100)" json:"specialty,omitempty"`
	SIPNumber string    `gorm:"column:sip_number;type:varchar(50)" json:"sip_number,omitempty"`
	STRNumber string    `gorm:"column:str_number;type:varchar(50)" json:"str_number,omitempty"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Doctor) TableName() string {
	return "doctors"
}
