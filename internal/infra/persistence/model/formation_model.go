package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FormationModel mirrors the 'formations' table (the course catalog).
type FormationModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title       string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text"`
	Duration    string    `gorm:"type:varchar(100)"`
	Price       float64   `gorm:"type:decimal(10,2)"`
	Category    string    `gorm:"type:varchar(100)"`
	CreatedAt   time.Time

	Enrollments []UserFormationModel `gorm:"foreignKey:FormationID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (FormationModel) TableName() string {
	return "formations"
}

// BeforeCreate assigns the UUID application-side.
func (m *FormationModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	return nil
}

// UserFormationModel mirrors the 'user_formations' table tracking enrollments.
// A user can hold at most one enrollment per formation.
type UserFormationModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_formation"`
	FormationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_formation"`
	Status      string    `gorm:"type:varchar(20);not null;default:enrolled"`
	EnrolledAt  time.Time `gorm:"autoCreateTime"`

	Formation *FormationModel `gorm:"foreignKey:FormationID"`
}

// TableName explicitly sets the table name for GORM.
func (UserFormationModel) TableName() string {
	return "user_formations"
}

// BeforeCreate assigns the UUID application-side.
func (m *UserFormationModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	return nil
}
