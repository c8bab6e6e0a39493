package routes

import (
	"safaisync-be/controllers"

	"github.com/gin-gonic/gin"
)

// AdminRoutes sets up the admin console routes
func AdminRoutes(r *gin.Engine, ac *controllers.AdminController, auth gin.HandlerFunc) {
	admin := r.Group("/api/admin")
	{
		admin.POST("/login", ac.Login)
		admin.POST("/logout", ac.Logout)
	}

	protected := admin.Group("", auth)
	{
		protected.GET("/complaints", ac.Dashboard)
		protected.PUT("/complaints/:id", ac.UpdateComplaint)
		protected.DELETE("/complaints/:id", ac.DeleteComplaint)
		protected.GET("/vehicles", ac.Vehicles)
		protected.PUT("/vehicles/:truckId/status", ac.UpdateVehicleStatus)
	}
}
