package controllers

import (
	"net/http"

	"mediflow-backend/config"
	"mediflow-backend/models"
	"mediflow-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UpdateClinicProfileInput struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

type UpdateWorkingHoursInput struct {
	WorkingHours models.JSONB `json:"workingHours" binding:"required"`
}

type UpdateNotificationSettingsInput struct {
	EmailReminders *bool `json:"emailReminders"`
	SMSReminders   *bool `json:"smsReminders"`
}

func getClinic(c *gin.Context) *models.Clinic {
	clinicID, exists := c.Get("clinicId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Clinic ID not found in context")
		return nil
	}

	clinicUUID, err := uuid.Parse(clinicID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid clinic ID format")
		return nil
	}

	var clinic models.Clinic
	if err := config.DB.First(&clinic, "id = ?", clinicUUID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Clinic not found")
		return nil
	}
	return &clinic
}

func GetProfile(c *gin.Context) {
	clinic := getClinic(c)
	if clinic == nil {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"name":           clinic.Name,
		"address":        clinic.Address,
		"phone":          clinic.Phone,
		"email":          clinic.Email,
		"workingHours":   clinic.WorkingHours,
		"emailReminders": clinic.EmailReminders,
		"smsReminders":   clinic.SMSReminders,
	})
}

func UpdateClinicProfile(c *gin.Context) {
	clinic := getClinic(c)
	if clinic == nil {
		return
	}

	var input UpdateClinicProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	clinic.Name = input.Name
	clinic.Address = input.Address
	clinic.Phone = input.Phone
	clinic.Email = input.Email

	if err := config.DB.Save(clinic).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}

func UpdateWorkingHours(c *gin.Context) {
	clinic := getClinic(c)
	if clinic == nil {
		return
	}

	var input UpdateWorkingHoursInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	clinic.WorkingHours = input.WorkingHours

	if err := config.DB.Save(clinic).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update working hours")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Working hours updated"})
}

func UpdateNotificationSettings(c *gin.Context) {
	clinic := getClinic(c)
	if clinic == nil {
		return
	}

	var input UpdateNotificationSettingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	if input.EmailReminders != nil {
		clinic.EmailReminders = *input.EmailReminders
	}
	if input.SMSReminders != nil {
		clinic.SMSReminders = *input.SMSReminders
	}

	if err := config.DB.Save(clinic).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update notification settings")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification settings updated"})
}
