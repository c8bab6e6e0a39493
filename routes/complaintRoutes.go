package routes

import (
	"safaisync-be/controllers"

	"github.com/gin-gonic/gin"
)

// ComplaintRoutes sets up the citizen-facing routes
func ComplaintRoutes(r *gin.Engine, cc *controllers.ComplaintController, submitLimiter gin.HandlerFunc) {
	api := r.Group("/api")
	{
		api.GET("/stats", cc.Stats)
		api.POST("/location/reverse", cc.ReverseGeocode)
	}

	complaints := api.Group("/complaints")
	{
		complaints.POST("/analyze", cc.Analyze)
		complaints.POST("", submitLimiter, cc.CreateComplaint)
		complaints.GET("", cc.ListComplaints)
		complaints.GET("/:id", cc.GetComplaint)
		complaints.GET("/:id/image", cc.GetComplaintImage)
	}
}
