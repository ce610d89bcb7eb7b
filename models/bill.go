package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Bill struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key"`
	ClinicID        uuid.UUID `gorm:"type:uuid;index;not null"`
	CreatedByUserID uuid.UUID `gorm:"type:uuid;index;not null"`

	BillNumber    string     `gorm:"uniqueIndex;not null"`
	PatientID     uuid.UUID  `gorm:"type:uuid;index;not null"`
	AppointmentID *uuid.UUID `gorm:"type:uuid;index"`
	BillDate      time.Time  `gorm:"default:CURRENT_TIMESTAMP"`

	TotalAmount float64 `gorm:"type:decimal(10,2);not null"`
	PaidAmount  float64 `gorm:"type:decimal(10,2);default:0.0"`

	Status string `gorm:"type:varchar(20);default:'unpaid'"` // paid, unpaid, partial
	Notes  string

	Items []BillItem `gorm:"foreignKey:BillID"`

	gorm.Model
}

type BillItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	BillID      uuid.UUID `gorm:"type:uuid;index;not null"`
	Description string    `gorm:"not null"`
	Quantity    int       `gorm:"default:1"`
	UnitPrice   float64   `gorm:"type:decimal(10,2);not null"`
	TotalPrice  float64   `gorm:"type:decimal(10,2);not null"`
}

func (b *Bill) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return
}
