package routes

import (
	"raspisanie/internal/auth"
	"raspisanie/internal/handlers"
	"raspisanie/internal/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const requestIDHeader = "X-Request-ID"

// RequestID проставляет идентификатор запроса, если клиент его не передал
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("requestID", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// SetupRoutes регистрирует все маршруты приложения.
func SetupRoutes(r *gin.Engine) {
	handlers.RegisterValidators()

	r.Use(RequestID())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", requestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", requestIDHeader},
		AllowCredentials: false,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", handlers.Register)
		authGroup.POST("/login", handlers.Login)
		authGroup.POST("/refresh", handlers.RefreshToken)
	}

	// Чтение доступно без авторизации
	api := r.Group("/api")
	{
		api.GET("/profiles", handlers.ListProfiles)
		api.GET("/profiles/:id/times", handlers.GetProfileTimes)
		api.GET("/profiles/:id/schedules", handlers.ListSchedules)
		api.GET("/profiles/:id/ws", ws.ProfileWebSocketHandler)

		api.GET("/schedules/:id", handlers.GetSchedule)
		api.GET("/schedules/:id/entries", handlers.GetEntries)
		api.GET("/schedules/:id/export", handlers.ExportSchedule)

		api.GET("/busy/rooms", handlers.RoomBusy)
		api.GET("/busy/teachers", handlers.TeacherBusy)

		api.GET("/rooms", handlers.ListRooms)
		api.GET("/teachers", handlers.ListTeachers)

		api.GET("/audit/conflicts", handlers.AuditConflicts)
	}

	// Изменения только для операторов
	protected := r.Group("/api")
	protected.Use(auth.AuthMiddleware())
	{
		protected.POST("/profiles", handlers.CreateProfile)
		protected.PUT("/profiles/:id/times", handlers.UpdateProfileTimes)
		protected.DELETE("/profiles/:id", handlers.DeleteProfile)
		protected.POST("/profiles/:id/schedules", handlers.CreateSchedule)

		protected.DELETE("/schedules/:id", handlers.DeleteSchedule)
		protected.PUT("/schedules/:id/entries", handlers.SaveEntries)

		protected.POST("/rooms", handlers.CreateRoom)
		protected.POST("/teachers", handlers.CreateTeacher)
	}
}
