package main

import (
	"fmt"
	"os"

	"mediflow-backend/config"
	"mediflow-backend/controllers"
	"mediflow-backend/models"
	"mediflow-backend/routes"
	"mediflow-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.Clinic{},
		&models.User{},
		&models.Patient{},
		&models.Doctor{},
		&models.Appointment{},
		&models.Bill{},
		&models.BillItem{},
		&models.Treatment{},
		&models.NotificationLog{},
	)
}

func main() {

	notificationService := services.NewNotificationService(config.DB)
	controllers.UseNotificationService(notificationService)
	notificationService.StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
