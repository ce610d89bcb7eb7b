// controllers/treatment.go
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
	"gorm.io/gorm"
)

// CreateTreatmentInput defines the expected JSON structure for recording a treatment
type CreateTreatmentInput struct {
	PatientID     uuid.UUID  `json:"patientId" binding:"required"`
	DoctorID      uuid.UUID  `json:"doctorId" binding:"required"`
	Date          time.Time  `json:"date" binding:"required"`
	Diagnosis     string     `json:"diagnosis" binding:"required"`
	Symptoms      string     `json:"symptoms"`
	Treatment     string     `json:"treatment"`
	Prescriptions string     `json:"prescriptions"`
	Notes         string     `json:"notes"`
	FollowUpDate  *time.Time `json:"followUpDate"`
	Status        string     `json:"status" binding:"omitempty,oneof=ongoing completed follow-up"`
}

// UpdateTreatmentInput defines the expected JSON structure for updating a treatment
type UpdateTreatmentInput struct {
	Diagnosis     *string    `json:"diagnosis"`
	Symptoms      *string    `json:"symptoms"`
	Treatment     *string    `json:"treatment"`
	Prescriptions *string    `json:"prescriptions"`
	Notes         *string    `json:"notes"`
	FollowUpDate  *time.Time `json:"followUpDate"`
	Status        *string    `json:"status" binding:"omitempty,oneof=ongoing completed follow-up"`
}

// CreateTreatment records a new treatment for a patient
func CreateTreatment(c *gin.Context) {
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

	var input CreateTreatmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Validate patient and doctor exist in the same clinic
	var patient models.Patient
	if err := config.DB.Where("clinic_id = ? AND id = ?", clinicUUID, input.PatientID).
		First(&patient).Error; err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Patient not found")
		return
	}
	var doctor models.Doctor
	if err := config.DB.Where("clinic_id = ? AND id = ?", clinicUUID, input.DoctorID).
		First(&doctor).Error; err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Doctor not found")
		return
	}

	status := input.Status
	if status == "" {
		status = "ongoing"
	}

	treatment := models.Treatment{
		ID:              uuid.New(),
		ClinicID:        clinicUUID,
		CreatedByUserID: uuid.Must(uuid.Parse(userID.(string))),
		PatientID:       input.PatientID,
		DoctorID:        input.DoctorID,
		Date:            input.Date,
		Diagnosis:       input.Diagnosis,
		Symptoms:        input.Symptoms,
		Treatment:       input.Treatment,
		Prescriptions:   input.Prescriptions,
		Notes:           input.Notes,
		FollowUpDate:    input.FollowUpDate,
		Status:          status,
	}

	if err := config.DB.Create(&treatment).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create treatment")
		return
	}

	c.JSON(http.StatusCreated, treatment)
}

// GetTreatments retrieves treatments, optionally filtered by patient
func GetTreatments(c *gin.Context) {
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

	var treatments []models.Treatment
	if err := query.Preload("Patient").Preload("Doctor").
		Order("date DESC").Find(&treatments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve treatments")
		return
	}

	c.JSON(http.StatusOK, treatments)
}

// GetTreatment retrieves a specific treatment by ID
func GetTreatment(c *gin.Context) {
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

	treatmentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid treatment ID format")
		return
	}

	var treatment models.Treatment
	if err := config.DB.Where("clinic_id = ? AND id = ?", clinicUUID, treatmentUUID).
		Preload("Patient").Preload("Doctor").First(&treatment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Treatment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, treatment)
}

// UpdateTreatment updates an existing treatment
func UpdateTreatment(c *gin.Context) {
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

	treatmentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid treatment ID format")
		return
	}

	var input UpdateTreatmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var treatment models.Treatment
	if err := config.DB.Where("clinic_id = ? AND id = ?", clinicUUID, treatmentUUID).
		First(&treatment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Treatment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Diagnosis != nil {
		treatment.Diagnosis = *input.Diagnosis
	}
	if input.Symptoms != nil {
		treatment.Symptoms = *input.Symptoms
	}
	if input.Treatment != nil {
		treatment.Treatment = *input.Treatment
	}
	if input.Prescriptions != nil {
		treatment.Prescriptions = *input.Prescriptions
	}
	if input.Notes != nil {
		treatment.Notes = *input.Notes
	}
	if input.FollowUpDate != nil {
		treatment.FollowUpDate = input.FollowUpDate
	}
	if input.Status != nil {
		treatment.Status = *input.Status
	}

	if err := config.DB.Save(&treatment).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update treatment")
		return
	}

	c.JSON(http.StatusOK, treatment)
}

// DeleteTreatment soft-deletes a treatment record
func DeleteTreatment(c *gin.Context) {
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

	treatmentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid treatment ID format")
		return
	}

	result := config.DB.Where("clinic_id = ? AND id = ?", clinicUUID, treatmentUUID).
		Delete(&models.Treatment{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete treatment")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Treatment not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Treatment deleted"})
}
