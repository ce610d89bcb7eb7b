// controllers/notification.go
package controllers

import (
	"net/http"

	"mediflow-backend/services"
	"mediflow-backend/utils"

	"github.com/gin-gonic/gin"
)

var notifications *services.NotificationService

// UseNotificationService injects the reminder scheduler shared by the
// appointment and notification handlers.
func UseNotificationService(s *services.NotificationService) {
	notifications = s
}

// UpdateTemplateInput defines the expected JSON structure for editing a template
type UpdateTemplateInput struct {
	Subject string `json:"subject"`
	Body    string `json:"body" binding:"required"`
}

// TestNotificationInput defines the expected JSON structure for a test send
type TestNotificationInput struct {
	RecipientType string            `json:"recipientType" binding:"required,oneof=patient doctor"`
	Channel       string            `json:"channel" binding:"required,oneof=email sms"`
	Address       string            `json:"address" binding:"required"`
	Variables     map[string]string `json:"variables"`
}

// GetReminderTimeOptions lists the supported reminder lead times
func GetReminderTimeOptions(c *gin.Context) {
	c.JSON(http.StatusOK, services.ReminderTimeOptions())
}

// GetNotificationTemplate returns the template for a (recipient, channel) slot
func GetNotificationTemplate(c *gin.Context) {
	recipient := services.RecipientType(c.Param("recipient"))
	channel := services.Channel(c.Param("channel"))

	template := notifications.GetTemplate(recipient, channel)
	if template == nil {
		utils.RespondWithError(c, http.StatusNotFound, "Template not found")
		return
	}

	c.JSON(http.StatusOK, template)
}

// UpdateNotificationTemplate replaces the template for a (recipient, channel) slot
func UpdateNotificationTemplate(c *gin.Context) {
	recipient := services.RecipientType(c.Param("recipient"))
	channel := services.Channel(c.Param("channel"))

	var input UpdateTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	updated := notifications.UpdateTemplate(recipient, channel, services.MessageTemplate{
		Subject: input.Subject,
		Body:    input.Body,
	})
	if !updated {
		utils.RespondWithError(c, http.StatusNotFound, "Unknown template slot")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Template updated"})
}

// SendTestNotification renders and sends one message immediately so staff
// can verify channel configuration
func SendTestNotification(c *gin.Context) {
	var input TestNotificationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	sent := notifications.TestNotification(
		services.RecipientType(input.RecipientType),
		services.Channel(input.Channel),
		input.Address,
		input.Variables,
	)
	if !sent {
		utils.RespondWithError(c, http.StatusBadGateway, "Test notification failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Test notification sent"})
}

// GetArmedReminders lists the keys of all reminders currently armed
func GetArmedReminders(c *gin.Context) {
	keys := notifications.ArmedReminderKeys()
	c.JSON(http.StatusOK, gin.H{
		"count":     len(keys),
		"reminders": keys,
	})
}
