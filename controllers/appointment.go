// controllers/appointment.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"mediflow-backend/config"
	"mediflow-backend/models"
	"mediflow-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CreateAppointmentInput defines the expected JSON structure for booking an appointment
type CreateAppointmentInput struct {
	PatientID        uuid.UUID                `json:"patientId" binding:"required"`
	DoctorID         uuid.UUID                `json:"doctorId" binding:"required"`
	Date             time.Time                `json:"date" binding:"required"`
	Time             string                   `json:"time" binding:"required"`
	Reason           string                   `json:"reason" binding:"required"`
	Notes            string                   `json:"notes"`
	Status           string                   `json:"status" binding:"omitempty,oneof=scheduled confirmed completed cancelled"`
	ReminderSettings *models.ReminderSettings `json:"reminderSettings"`
}

// UpdateAppointmentInput defines the expected JSON structure for updating an appointment
type UpdateAppointmentInput struct {
	PatientID        *uuid.UUID               `json:"patientId"`
	DoctorID         *uuid.UUID               `json:"doctorId"`
	Date             *time.Time               `json:"date"`
	Time             *string                  `json:"time"`
	Reason           *string                  `json:"reason"`
	Notes            *string                  `json:"notes"`
	Status           *string                  `json:"status" binding:"omitempty,oneof=scheduled confirmed completed cancelled"`
	ReminderSettings *models.ReminderSettings `json:"reminderSettings"`
}

// CreateAppointment books a new appointment and schedules its reminders
func CreateAppointment(c *gin.Context) {
	clinicID, exists := c.Get("clinicId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Clinic ID not found in context")
		return
	}
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	clinicUUID, err := uuid.Parse(clinicID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid clinic ID format")
		return
	}

	var input CreateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidateTimeOfDay(input.Time) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment time, expected HH:MM")
		return
	}

	// Validate patient exists in the same clinic
	var patient models.Patient
	if err := config.DB.Where("clinic_id = ? AND id = ?", clinicUUID, input.PatientID).
		First(&patient).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Patient not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	// Validate doctor exists in the same clinic
	var doctor models.Doctor
	if err := config.DB.Where("clinic_id = ? AND id = ?", clinicUUID, input.DoctorID).
		First(&doctor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Doctor not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	status := input.Status
	if status == "" {
		status = "scheduled"
	}

	appointment := models.Appointment{
		ID:              uuid.New(),
		ClinicID:        clinicUUID,
		CreatedByUserID: uuid.Must(uuid.Parse(userID.(string))),
		PatientID:       input.PatientID,
		DoctorID:        input.DoctorID,
		Date:            input.Date,
		Time:            input.Time,
		Reason:          input.Reason,
		Notes:           input.Notes,
		Status:          status,
	}
	if input.ReminderSettings != nil {
		appointment.ReminderSettings = *input.ReminderSettings
	}

	if err := config.DB.Create(&appointment).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create appointment")
		return
	}

	// Schedule reminders best-effort; a scheduling failure never rolls back
	// the booking.
	if notifications != nil && !appointment.ReminderSettings.Empty() {
		if !notifications.ScheduleReminders(appointment) {
			logrus.Warnf("Failed to schedule reminders for appointment %s", appointment.ID)
		}
	}

	c.JSON(http.StatusCreated, appointment)
}

// GetAppointments retrieves appointments for the clinic, optionally filtered
func GetAppointments(c *gin.Context) {
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

	query := config.DB.Where("clinic_id = ?", clinicUUID)

	if patientID := c.Query("patientId"); patientID != "" {
		query = query.Where("patient_id = ?", patientID)
	}
	if doctorID := c.Query("doctorId"); doctorID != "" {
		query = query.Where("doctor_id = ?", doctorID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if from := c.Query("from"); from != "" {
		query = query.Where("date >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		query = query.Where("date <= ?", to)
	}

	var appointments []models.Appointment
	if err := query.Preload("Patient").Preload("Doctor").
		Order("date DESC, time DESC").Find(&appointments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve appointments")
		return
	}

	c.JSON(http.StatusOK, appointments)
}

// GetAppointment retrieves a specific appointment by ID
func GetAppointment(c *gin.Context) {
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

	appointmentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	var appointment models.Appointment
	if err := config.DB.Where("clinic_id = ? AND id = ?", clinicUUID, appointmentUUID).
		Preload("Patient").Preload("Doctor").First(&appointment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, appointment)
}

// UpdateAppointment updates an appointment and replaces its reminder set
// when reminder settings are part of the payload
func UpdateAppointment(c *gin.Context) {
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

	appointmentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	var input UpdateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var appointment models.Appointment
	if err := config.DB.Where("clinic_id = ? AND id = ?", clinicUUID, appointmentUUID).
		First(&appointment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.PatientID != nil {
		var patient models.Patient
		if err := config.DB.Where("clinic_id = ? AND id = ?", clinicUUID, *input.PatientID).
			First(&patient).Error; err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Patient not found")
			return
		}
		appointment.PatientID = *input.PatientID
	}
	if input.DoctorID != nil {
		var doctor models.Doctor
		if err := config.DB.Where("clinic_id = ? AND id = ?", clinicUUID, *input.DoctorID).
			First(&doctor).Error; err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Doctor not found")
			return
		}
		appointment.DoctorID = *input.DoctorID
	}
	if input.Time != nil {
		if !utils.ValidateTimeOfDay(*input.Time) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment time, expected HH:MM")
			return
		}
		appointment.Time = *input.Time
	}
	if input.Date != nil {
		appointment.Date = *input.Date
	}
	if input.Reason != nil {
		appointment.Reason = *input.Reason
	}
	if input.Notes != nil {
		appointment.Notes = *input.Notes
	}
	if input.Status != nil {
		appointment.Status = *input.Status
	}
	if input.ReminderSettings != nil {
		appointment.ReminderSettings = *input.ReminderSettings
	}

	if err := config.DB.Save(&appointment).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update appointment")
		return
	}

	// When the payload carries reminder settings the reminder set is fully
	// replaced: cancel everything, then schedule from the updated record.
	if notifications != nil && input.ReminderSettings != nil {
		notifications.CancelReminders(appointment.ID)
		if !notifications.ScheduleReminders(appointment) {
			logrus.Warnf("Failed to reschedule reminders for appointment %s", appointment.ID)
		}
	}

	c.JSON(http.StatusOK, appointment)
}

// DeleteAppointment removes an appointment and cancels its armed reminders
func DeleteAppointment(c *gin.Context) {
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

	appointmentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	result := config.DB.Where("clinic_id = ? AND id = ?", clinicUUID, appointmentUUID).
		Delete(&models.Appointment{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete appointment")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		return
	}

	if notifications != nil {
		notifications.CancelReminders(appointmentUUID)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Appointment deleted"})
}
