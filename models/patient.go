package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Patient struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key"`
	ClinicID        uuid.UUID `gorm:"type:uuid;index;not null"`
	CreatedByUserID uuid.UUID `gorm:"type:uuid;index;not null"`

	Name             string `gorm:"not null"`
	Phone            string `gorm:"not null;uniqueIndex:idx_clinic_phone,priority:2"`
	Email            string
	DateOfBirth      *time.Time
	EmergencyContact string
	BloodGroup       string `gorm:"type:varchar(5)"`
	Allergies        string
	Notes            string
	RegistrationDate time.Time `gorm:"default:CURRENT_TIMESTAMP"`
	IsActive         bool      `gorm:"default:true"`

	Appointments []Appointment `gorm:"foreignKey:PatientID"`
	Bills        []Bill        `gorm:"foreignKey:PatientID"`

	gorm.Model
}

func (p *Patient) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}

// DisplayName implements the notification recipient contract.
func (p Patient) DisplayName() string { return p.Name }

// EmailAddress implements the notification recipient contract.
func (p Patient) EmailAddress() string { return p.Email }

// PhoneNumber implements the notification recipient contract.
func (p Patient) PhoneNumber() string { return p.Phone }
