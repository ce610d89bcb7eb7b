package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Treatment struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key"`
	ClinicID        uuid.UUID `gorm:"type:uuid;index;not null"`
	CreatedByUserID uuid.UUID `gorm:"type:uuid;index;not null"`

	PatientID uuid.UUID `gorm:"type:uuid;index;not null"`
	DoctorID  uuid.UUID `gorm:"type:uuid;index;not null"`

	Date          time.Time `gorm:"not null"`
	Diagnosis     string    `gorm:"not null"`
	Symptoms      string
	Treatment     string `gorm:"type:text"`
	Prescriptions string `gorm:"type:text"`
	Notes         string
	FollowUpDate  *time.Time
	Status        string `gorm:"type:varchar(20);default:'ongoing'"` // ongoing, completed, follow-up

	Patient Patient `gorm:"foreignKey:PatientID"`
	Doctor  Doctor  `gorm:"foreignKey:DoctorID"`

	gorm.Model
}

func (t *Treatment) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}
