package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/mercado-sofia/FAITH-CommUNITY-sub001/controllers"
	"github.com/mercado-sofia/FAITH-CommUNITY-sub001/middleware"
	"github.com/mercado-sofia/FAITH-CommUNITY-sub001/models"
)

// SetupRoutes registers the API surface.
func SetupRoutes(router *gin.Engine, submissions *controllers.SubmissionController, notifications *controllers.NotificationController) {
	v1 := router.Group("/api/v1")
	{
		public := v1.Group("")
		{
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "FAITH CommUNITY API is running",
				})
			})
		}

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// Notification feed (all authenticated admins)
			n := protected.Group("/notifications")
			{
				n.GET("", notifications.List)
				n.GET("/unread-count", notifications.UnreadCount)
				n.PUT("/:id/read", notifications.MarkRead)
				n.PUT("/read-all", notifications.MarkAllRead)
			}

			// Submission review (superadmin only)
			s := protected.Group("/superadmin/submissions")
			s.Use(middleware.RequireRole(models.RoleSuperadmin))
			{
				s.GET("", submissions.List)
				s.PUT("/:id/approve", submissions.Approve)
				s.PUT("/:id/reject", submissions.Reject)
				s.DELETE("/:id/delete", submissions.Delete)
				s.POST("/bulk/approve", submissions.BulkApprove)
				s.POST("/bulk/reject", submissions.BulkReject)
				s.POST("/bulk/delete", submissions.BulkDelete)
			}
		}
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"error": "Route not found"})
	})
}
