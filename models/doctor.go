package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Doctor struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	ClinicID uuid.UUID `gorm:"type:uuid;index;not null"`

	Name           string `gorm:"not null"`
	Specialization string `gorm:"not null"`
	Phone          string
	Email          string
	IsAvailable    bool  `gorm:"default:true"`
	WorkingHours   JSONB `gorm:"type:jsonb;default:'{}'"`

	Appointments []Appointment `gorm:"foreignKey:DoctorID"`

	gorm.Model
}

func (d *Doctor) BeforeCreate(tx *gorm.DB) (err error) {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return
}

// DisplayName implements the notification recipient contract.
func (d Doctor) DisplayName() string { return d.Name }

// EmailAddress implements the notification recipient contract.
func (d Doctor) EmailAddress() string { return d.Email }

// PhoneNumber implements the notification recipient contract.
func (d Doctor) PhoneNumber() string { return d.Phone }
