// models/notification_log.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationLog struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key"`
	ClinicID      uuid.UUID `gorm:"type:uuid;index"`
	AppointmentID uuid.UUID `gorm:"type:uuid;index"`
	RecipientType string    `gorm:"type:varchar(20)"` // patient, doctor
	Channel       string    `gorm:"type:varchar(20)"` // email, sms
	Address       string
	Message       string `gorm:"type:text"`
	Status        string `gorm:"type:varchar(20)"` // sent, failed, skipped
	ErrorMessage  string `gorm:"type:text"`
	SentAt        time.Time
	gorm.Model
}

func (n *NotificationLog) BeforeCreate(tx *gorm.DB) (err error) {
	n.ID = uuid.New()
	return
}
