// controllers/bill.go
package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"mediflow-backend/config"
	"mediflow-backend/models"
	"mediflow-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BillItemInput defines the structure for a bill line item
type BillItemInput struct {
	Description string  `json:"description" binding:"required"`
	Quantity    int     `json:"quantity" binding:"min=1"`
	UnitPrice   float64 `json:"unitPrice" binding:"min=0"`
}

// CreateBillInput defines the expected JSON structure for creating a bill
type CreateBillInput struct {
	PatientID     uuid.UUID       `json:"patientId" binding:"required"`
	AppointmentID *uuid.UUID      `json:"appointmentId"`
	BillDate      *time.Time      `json:"billDate"`
	Items         []BillItemInput `json:"items" binding:"required,min=1"`
	PaidAmount    float64         `json:"paidAmount" binding:"min=0"`
	Status        string          `json:"status" binding:"omitempty,oneof=paid unpaid partial"`
	Notes         string          `json:"notes"`
}

// UpdateBillInput defines the expected JSON structure for updating a bill
type UpdateBillInput struct {
	PaidAmount *float64 `json:"paidAmount" binding:"omitempty,min=0"`
	Status     *string  `json:"status" binding:"omitempty,oneof=paid unpaid partial"`
	Notes      *string  `json:"notes"`
}

// CreateBill creates a new bill for a patient
func CreateBill(c *gin.Context) {
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

	var input CreateBillInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
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

	// Validate appointment when referenced
	if input.AppointmentID != nil {
		var appointment models.Appointment
		if err := config.DB.Where("clinic_id = ? AND id = ?", clinicUUID, *input.AppointmentID).
			First(&appointment).Error; err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Appointment not found")
			return
		}
	}

	// Calculate bill items
	var total float64
	var billItems []models.BillItem

	for _, item := range input.Items {
		quantity := item.Quantity
		if quantity == 0 {
			quantity = 1
		}
		itemTotal := item.UnitPrice * float64(quantity)
		total += itemTotal

		billItems = append(billItems, models.BillItem{
			ID:          uuid.New(),
			Description: item.Description,
			Quantity:    quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  itemTotal,
		})
	}

	billDate := time.Now()
	if input.BillDate != nil {
		billDate = *input.BillDate
	}
	status := input.Status
	if status == "" {
		status = "unpaid"
	}

	bill := models.Bill{
		ID:              uuid.New(),
		ClinicID:        clinicUUID,
		CreatedByUserID: uuid.Must(uuid.Parse(userID.(string))),
		BillNumber:      fmt.Sprintf("BILL-%d", time.Now().UnixNano()),
		PatientID:       input.PatientID,
		AppointmentID:   input.AppointmentID,
		BillDate:        billDate,
		TotalAmount:     total,
		PaidAmount:      input.PaidAmount,
		Status:          status,
		Notes:           input.Notes,
		Items:           billItems,
	}

	if err := config.DB.Create(&bill).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create bill")
		return
	}

	c.JSON(http.StatusCreated, bill)
}

// GetBills retrieves all bills for the clinic
func GetBills(c *gin.Context) {
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
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var bills []models.Bill
	if err := query.Preload("Items").Order("bill_date DESC").Find(&bills).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve bills")
		return
	}

	c.JSON(http.StatusOK, bills)
}

// GetBill retrieves a specific bill by ID
func GetBill(c *gin.Context) {
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

	billUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid bill ID format")
		return
	}

	var bill models.Bill
	if err := config.DB.Where("clinic_id = ? AND id = ?", clinicUUID, billUUID).
		Preload("Items").First(&bill).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Bill not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, bill)
}

// UpdateBill updates payment status and notes of a bill
func UpdateBill(c *gin.Context) {
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

	billUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid bill ID format")
		return
	}

	var input UpdateBillInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var bill models.Bill
	if err := config.DB.Where("clinic_id = ? AND id = ?", clinicUUID, billUUID).
		First(&bill).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Bill not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.PaidAmount != nil {
		bill.PaidAmount = *input.PaidAmount
	}
	if input.Status != nil {
		bill.Status = *input.Status
	}
	if input.Notes != nil {
		bill.Notes = *input.Notes
	}

	if err := config.DB.Save(&bill).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update bill")
		return
	}

	c.JSON(http.StatusOK, bill)
}

// DeleteBill soft-deletes a bill
func DeleteBill(c *gin.Context) {
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

	billUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid bill ID format")
		return
	}

	result := config.DB.Where("clinic_id = ? AND id = ?", clinicUUID, billUUID).
		Delete(&models.Bill{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete bill")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Bill not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Bill deleted"})
}
