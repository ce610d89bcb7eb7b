package controllers

import (
	"errors"
	"net/http"

	"mediflow-backend/config"
	"mediflow-backend/models"
	"mediflow-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateDoctorInput defines the expected JSON structure for adding a doctor
type CreateDoctorInput struct {
	Name           string       `json:"name" binding:"required"`
	Specialization string       `json:"specialization" binding:"required"`
	Phone          string       `json:"phone"`
	Email          string       `json:"email" binding:"omitempty,email"`
	IsAvailable    *bool        `json:"isAvailable"`
	WorkingHours   models.JSONB `json:"workingHours"`
}

// UpdateDoctorInput defines the expected JSON structure for updating a doctor
type UpdateDoctorInput struct {
	Name           *string       `json:"name"`
	Specialization *string       `json:"specialization"`
	Phone          *string       `json:"phone"`
	Email          *string       `json:"email" binding:"omitempty,email"`
	IsAvailable    *bool         `json:"isAvailable"`
	WorkingHours   *models.JSONB `json:"workingHours"`
}

// CreateDoctor adds a new doctor to the clinic roster
func CreateDoctor(c *gin.Context) {
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

	var input CreateDoctorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Phone != "" && !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	doctor := models.Doctor{
		ID:             uuid.New(),
		ClinicID:       clinicUUID,
		Name:           input.Name,
		Specialization: input.Specialization,
		Phone:          input.Phone,
		Email:          input.Email,
		IsAvailable:    true,
		WorkingHours:   input.WorkingHours,
	}
	if input.IsAvailable != nil {
		doctor.IsAvailable = *input.IsAvailable
	}
	if doctor.WorkingHours == nil {
		doctor.WorkingHours = models.JSONB{}
	}

	if err := config.DB.Create(&doctor).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create doctor")
		return
	}

	c.JSON(http.StatusCreated, doctor)
}

// GetDoctors retrieves all doctors for the clinic
func GetDoctors(c *gin.Context) {
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

	// Optional availability filter
	if available := c.Query("available"); available == "true" {
		query = query.Where("is_available = ?", true)
	}

	var doctors []models.Doctor
	if err := query.Order("name ASC").Find(&doctors).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve doctors")
		return
	}

	c.JSON(http.StatusOK, doctors)
}

// GetDoctor retrieves a specific doctor by ID
func GetDoctor(c *gin.Context) {
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

	doctorUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid doctor ID format")
		return
	}

	var doctor models.Doctor
	if err := config.DB.Where("clinic_id = ? AND id = ?", clinicUUID, doctorUUID).
		First(&doctor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Doctor not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, doctor)
}

// UpdateDoctor updates an existing doctor
func UpdateDoctor(c *gin.Context) {
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

	doctorUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid doctor ID format")
		return
	}

	var input UpdateDoctorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var doctor models.Doctor
	if err := config.DB.Where("clinic_id = ? AND id = ?", clinicUUID, doctorUUID).
		First(&doctor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Doctor not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Phone != nil {
		if *input.Phone != "" && !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		doctor.Phone = *input.Phone
	}
	if input.Name != nil {
		doctor.Name = *input.Name
	}
	if input.Specialization != nil {
		doctor.Specialization = *input.Specialization
	}
	if input.Email != nil {
		doctor.Email = *input.Email
	}
	if input.IsAvailable != nil {
		doctor.IsAvailable = *input.IsAvailable
	}
	if input.WorkingHours != nil {
		doctor.WorkingHours = *input.WorkingHours
	}

	if err := config.DB.Save(&doctor).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update doctor")
		return
	}

	c.JSON(http.StatusOK, doctor)
}

// DeleteDoctor soft-deletes a doctor
func DeleteDoctor(c *gin.Context) {
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

	doctorUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid doctor ID format")
		return
	}

	result := config.DB.Where("clinic_id = ? AND id = ?", clinicUUID, doctorUUID).
		Delete(&models.Doctor{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete doctor")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Doctor not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Doctor deleted"})
}
