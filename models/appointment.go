package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReminderSettings is the declarative reminder configuration attached to an
// appointment: which lead-time offsets fire for the patient and the doctor,
// and over which channels patient reminders go out.
type ReminderSettings struct {
	PatientReminders    []string `json:"patientReminders"`
	DoctorReminders     []string `json:"doctorReminders"`
	NotificationMethods []string `json:"notificationMethods"`
}

func (r ReminderSettings) Value() (driver.Value, error) {
	return json.Marshal(r)
}

func (r *ReminderSettings) Scan(value interface{}) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, r)
}

// Empty reports whether no reminders are configured at all.
func (r ReminderSettings) Empty() bool {
	return len(r.PatientReminders) == 0 && len(r.DoctorReminders) == 0
}

type Appointment struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key"`
	ClinicID        uuid.UUID `gorm:"type:uuid;index;not null"`
	CreatedByUserID uuid.UUID `gorm:"type:uuid;index;not null"`

	PatientID uuid.UUID `gorm:"type:uuid;index;not null"`
	DoctorID  uuid.UUID `gorm:"type:uuid;index;not null"`

	Date   time.Time `gorm:"not null;index"`
	Time   string    `gorm:"type:varchar(5);not null"` // "HH:MM", 24-hour
	Reason string    `gorm:"not null"`
	Notes  string
	Status string `gorm:"type:varchar(20);default:'scheduled'"` // scheduled, confirmed, completed, cancelled

	ReminderSettings ReminderSettings `gorm:"type:jsonb;default:'{}'"`

	Patient Patient `gorm:"foreignKey:PatientID"`
	Doctor  Doctor  `gorm:"foreignKey:DoctorID"`

	gorm.Model
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}
