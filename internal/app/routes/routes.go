package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Atharvasurya/punjab-alumni-sih/internal/app/controllers"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/app/models"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/middleware"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/pkg/websocket"
)

// Controllers groups every handler mounted by SetupRouter
type Controllers struct {
	Auth          *controllers.AuthController
	Users         *controllers.UserController
	Opportunities *controllers.OpportunityController
	Events        *controllers.EventController
	Messages      *controllers.MessageController
	Admin         *controllers.AdminController
	Health        *controllers.HealthController
	WebSocket     *websocket.Handler
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers, authMiddleware *middleware.AuthMiddleware) {
	api := router.Group("/api")

	api.GET("/health", c.Health.Check)

	// --- Public Auth routes ---
	auth := api.Group("/auth")
	{
		auth.POST("/login", c.Auth.Login)
		auth.POST("/logout", c.Auth.Logout)
		auth.GET("/me", authMiddleware.RequireRoles(), c.Auth.Me)
	}

	// --- Authenticated routes, any role ---
	authenticated := api.Group("")
	authenticated.Use(authMiddleware.RequireRoles())

	adminOnly := authMiddleware.RequireRoles(models.RoleAdmin)

	alumni := authenticated.Group("/alumni")
	{
		alumni.GET("", c.Users.ListAlumni)
		alumni.GET("/:id", c.Users.GetAlumni)
		// ownership is checked by the service
		alumni.PUT("/:id", c.Users.UpdateAlumni)
		alumni.POST("", adminOnly, c.Users.CreateAlumni)
		alumni.DELETE("/:id", adminOnly, c.Users.DeleteAlumni)
	}

	students := authenticated.Group("/students")
	{
		students.GET("", c.Users.ListStudents)
		students.GET("/:id", c.Users.GetStudent)
		students.POST("", adminOnly, c.Users.CreateStudent)
	}

	opportunities := authenticated.Group("/opportunities")
	{
		opportunities.GET("", c.Opportunities.List)
		opportunities.POST("", c.Opportunities.Create)
		opportunities.GET("/:id", c.Opportunities.Get)
		opportunities.PUT("/:id", c.Opportunities.Update)
		opportunities.DELETE("/:id", c.Opportunities.Delete)
		opportunities.POST("/:id/apply", authMiddleware.RequireRoles(models.RoleStudents, models.RoleAlumni), c.Opportunities.Apply)
		opportunities.PUT("/:id/applications/:userId", c.Opportunities.SetApplicationStatus)
	}

	events := authenticated.Group("/events")
	{
		events.GET("", c.Events.List)
		events.POST("", c.Events.Create)
		events.GET("/:id", c.Events.Get)
		events.PUT("/:id", c.Events.Update)
		events.DELETE("/:id", c.Events.Delete)
		events.POST("/:id/rsvp", c.Events.RSVP)
	}

	messages := authenticated.Group("/messages")
	{
		messages.GET("", c.Messages.List)
		messages.POST("", c.Messages.Send)
		messages.PUT("/:id/read", c.Messages.MarkRead)
		messages.GET("/ws", c.WebSocket.HandleConnection)
	}

	admin := api.Group("/admin")
	admin.Use(authMiddleware.RequireRoles(models.RoleAdmin, models.RoleCollege))
	{
		admin.GET("/analytics", c.Admin.Analytics)
		admin.GET("/auditlogs", c.Admin.AuditLogs)
		admin.GET("/export", c.Admin.Export)
	}
}
