package routes

import (
	"os"
	"strings"

	"mediflow-backend/config"
	"mediflow-backend/controllers"
	"mediflow-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}
	if env := os.Getenv("ALLOWED_ORIGINS"); env != "" {
		allowedOrigins = strings.Split(env, ",")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Patient routes
		patients := api.Group("/patients")
		{
			patients.POST("", controllers.CreatePatient)
			patients.GET("", controllers.GetPatients)
			patients.GET("/:id", controllers.GetPatient)
			patients.PUT("/:id", controllers.UpdatePatient)
			patients.DELETE("/:id", controllers.DeletePatient)
		}

		// Doctor routes
		doctors := api.Group("/doctors")
		{
			doctors.POST("", controllers.CreateDoctor)
			doctors.GET("", controllers.GetDoctors)
			doctors.GET("/:id", controllers.GetDoctor)
			doctors.PUT("/:id", controllers.UpdateDoctor)
			doctors.DELETE("/:id", controllers.DeleteDoctor)
		}

		// Appointment routes
		appointments := api.Group("/appointments")
		{
			appointments.POST("", controllers.CreateAppointment)
			appointments.GET("", controllers.GetAppointments)
			appointments.GET("/:id", controllers.GetAppointment)
			appointments.PUT("/:id", controllers.UpdateAppointment)
			appointments.DELETE("/:id", controllers.DeleteAppointment)
		}

		// Bill routes
		bills := api.Group("/bills")
		{
			bills.POST("", controllers.CreateBill)
			bills.GET("", controllers.GetBills)
			bills.GET("/:id", controllers.GetBill)
			bills.PUT("/:id", controllers.UpdateBill)
			bills.DELETE("/:id", controllers.DeleteBill)
		}

		// Treatment routes
		treatments := api.Group("/treatments")
		{
			treatments.POST("", controllers.CreateTreatment)
			treatments.GET("", controllers.GetTreatments)
			treatments.GET("/:id", controllers.GetTreatment)
			treatments.PUT("/:id", controllers.UpdateTreatment)
			treatments.DELETE("/:id", controllers.DeleteTreatment)
		}

		// Notification routes
		notifications := api.Group("/notifications")
		{
			notifications.GET("/reminder-times", controllers.GetReminderTimeOptions)
			notifications.GET("/templates/:recipient/:channel", controllers.GetNotificationTemplate)
			notifications.PUT("/templates/:recipient/:channel", controllers.UpdateNotificationTemplate)
			notifications.POST("/test", controllers.SendTestNotification)
			notifications.GET("/armed", controllers.GetArmedReminders)
		}

		// Dashboard routes
		api.GET("/dashboard", controllers.GetDashboardOverview)

		// Settings routes
		profile := api.Group("/profile")
		{
			profile.GET("", controllers.GetProfile)
			profile.PUT("/update-clinic", controllers.UpdateClinicProfile)
			profile.PUT("/update-hours", controllers.UpdateWorkingHours)
			profile.PUT("/update-notifications", controllers.UpdateNotificationSettings)
		}
	}

	return r
}
