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

// CreatePatientInput defines the expected JSON structure for registering a patient
type CreatePatientInput struct {
	Name             string     `json:"name" binding:"required"`
	Phone            string     `json:"phone" binding:"required"`
	Email            *string    `json:"email"` // Pointer to allow null
	DateOfBirth      *time.Time `json:"dateOfBirth"`
	EmergencyContact string     `json:"emergencyContact"`
	BloodGroup       string     `json:"bloodGroup"`
	Allergies        string     `json:"allergies"`
	Notes            string     `json:"notes"`
}

// UpdatePatientInput defines the expected JSON structure for updating a patient
type UpdatePatientInput struct {
	Name             *string    `json:"name"`
	Phone            *string    `json:"phone"`
	Email            *string    `json:"email"`
	DateOfBirth      *time.Time `json:"dateOfBirth"`
	EmergencyContact *string    `json:"emergencyContact"`
	BloodGroup       *string    `json:"bloodGroup"`
	Allergies        *string    `json:"allergies"`
	Notes            *string    `json:"notes"`
	IsActive         *bool      `json:"isActive"`
}

// CreatePatient registers a new patient for the clinic
func CreatePatient(c *gin.Context) {
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

	var input CreatePatientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Validate phone format
	if !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	// Check if phone already exists for this clinic
	var existingPatient models.Patient
	if err := config.DB.Where("clinic_id = ? AND phone = ?", clinicUUID, input.Phone).
		First(&existingPatient).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Patient with this phone number already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	patient := models.Patient{
		ID:               uuid.New(),
		ClinicID:         clinicUUID,
		CreatedByUserID:  uuid.Must(uuid.Parse(userID.(string))),
		Name:             input.Name,
		Phone:            input.Phone,
		DateOfBirth:      input.DateOfBirth,
		EmergencyContact: input.EmergencyContact,
		BloodGroup:       input.BloodGroup,
		Allergies:        input.Allergies,
		Notes:            input.Notes,
		RegistrationDate: time.Now(),
		IsActive:         true,
	}

	if input.Email != nil {
		patient.Email = *input.Email
	}

	if err := config.DB.Create(&patient).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create patient")
		return
	}

	c.JSON(http.StatusCreated, patient)
}

// GetPatients retrieves all patients for the clinic
func GetPatients(c *gin.Context) {
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

	// Optional name/phone search
	if search := c.Query("search"); search != "" {
		query = query.Where("name ILIKE ? OR phone LIKE ?", "%"+search+"%", "%"+search+"%")
	}

	var patients []models.Patient
	if err := query.Order("registration_date DESC").Find(&patients).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve patients")
		return
	}

	c.JSON(http.StatusOK, patients)
}

// GetPatient retrieves a specific patient by ID
func GetPatient(c *gin.Context) {
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

	patientUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid patient ID format")
		return
	}

	var patient models.Patient
	if err := config.DB.Where("clinic_id = ? AND id = ?", clinicUUID, patientUUID).
		First(&patient).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Patient not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, patient)
}

// UpdatePatient updates an existing patient
func UpdatePatient(c *gin.Context) {
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

	patientUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid patient ID format")
		return
	}

	var input UpdatePatientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var patient models.Patient
	if err := config.DB.Where("clinic_id = ? AND id = ?", clinicUUID, patientUUID).
		First(&patient).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Patient not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Phone != nil {
		if !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		patient.Phone = *input.Phone
	}
	if input.Name != nil {
		patient.Name = *input.Name
	}
	if input.Email != nil {
		patient.Email = *input.Email
	}
	if input.DateOfBirth != nil {
		patient.DateOfBirth = input.DateOfBirth
	}
	if input.EmergencyContact != nil {
		patient.EmergencyContact = *input.EmergencyContact
	}
	if input.BloodGroup != nil {
		patient.BloodGroup = *input.BloodGroup
	}
	if input.Allergies != nil {
		patient.Allergies = *input.Allergies
	}
	if input.Notes != nil {
		patient.Notes = *input.Notes
	}
	if input.IsActive != nil {
		patient.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&patient).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update patient")
		return
	}

	c.JSON(http.StatusOK, patient)
}

// DeletePatient soft-deletes a patient
func DeletePatient(c *gin.Context) {
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

	patientUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid patient ID format")
		return
	}

	result := config.DB.Where("clinic_id = ? AND id = ?", clinicUUID, patientUUID).
		Delete(&models.Patient{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete patient")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Patient not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Patient deleted"})
}
