package models

import (
	"github.com/google/uuid"
)

type Clinic struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key"`
	Name           string    `gorm:"not null"`
	Address        string
	Phone          string
	Email          string
	WorkingHours   JSONB `gorm:"type:jsonb;default:'{}'"`
	EmailReminders bool  `gorm:"default:true"`
	SMSReminders   bool  `gorm:"default:false"`

	Users        []User        `gorm:"foreignKey:ClinicID"`
	Patients     []Patient     `gorm:"foreignKey:ClinicID"`
	Doctors      []Doctor      `gorm:"foreignKey:ClinicID"`
	Appointments []Appointment `gorm:"foreignKey:ClinicID"`
	Bills        []Bill        `gorm:"foreignKey:ClinicID"`
}
