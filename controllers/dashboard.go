package controllers

import (
	"net/http"
	"time"

	"mediflow-backend/config"
	"mediflow-backend/models"
	"mediflow-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DashboardOverview struct {
	TotalPatients      int64               `json:"totalPatients"`
	TotalDoctors       int64               `json:"totalDoctors"`
	TodaysAppointments []TodaysAppointment `json:"todaysAppointments"`
	OutstandingBalance float64             `json:"outstandingBalance"`
	MonthlyRevenue     float64             `json:"monthlyRevenue"`
	ArmedReminders     int                 `json:"armedReminders"`
}

type TodaysAppointment struct {
	ID      uuid.UUID `json:"id"`
	Patient string    `json:"patient"`
	Doctor  string    `json:"doctor"`
	Time    string    `json:"time"`
	Reason  string    `json:"reason"`
	Status  string    `json:"status"`
}

func GetDashboardOverview(c *gin.Context) {
	clinicID, exists := c.Get("clinicId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Clinic ID not found in context")
		return
	}
	clinicUUID, err := uuid.Parse(clinicID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid clinic ID format")
		return
	}

	overview := DashboardOverview{}

	// Headcounts
	config.DB.Model(&models.Patient{}).
		Where("clinic_id = ? AND is_active = ?", clinicUUID, true).
		Count(&overview.TotalPatients)
	config.DB.Model(&models.Doctor{}).
		Where("clinic_id = ?", clinicUUID).
		Count(&overview.TotalDoctors)

	// Today's appointments
	today := utils.BeginningOfDay(time.Now())
	var appointments []models.Appointment
	config.DB.Where("clinic_id = ? AND date >= ? AND date < ?", clinicUUID, today, today.AddDate(0, 0, 1)).
		Preload("Patient").Preload("Doctor").
		Order("time ASC").Find(&appointments)

	for _, appointment := range appointments {
		overview.TodaysAppointments = append(overview.TodaysAppointments, TodaysAppointment{
			ID:      appointment.ID,
			Patient: appointment.Patient.Name,
			Doctor:  appointment.Doctor.Name,
			Time:    appointment.Time,
			Reason:  appointment.Reason,
			Status:  appointment.Status,
		})
	}

	// Billing figures
	config.DB.Model(&models.Bill{}).
		Where("clinic_id = ? AND status IN ?", clinicUUID, []string{"unpaid", "partial"}).
		Select("COALESCE(SUM(total_amount - paid_amount), 0)").Scan(&overview.OutstandingBalance)

	now := time.Now()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	config.DB.Model(&models.Bill{}).
		Where("clinic_id = ? AND bill_date >= ?", clinicUUID, firstOfMonth).
		Select("COALESCE(SUM(paid_amount), 0)").Scan(&overview.MonthlyRevenue)

	if notifications != nil {
		overview.ArmedReminders = len(notifications.ArmedReminderKeys())
	}

	c.JSON(http.StatusOK, overview)
}
