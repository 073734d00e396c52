package routes

import (
	"vistoria/internal/handlers"
	"vistoria/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupInspectionRoutes sets up inspection lifecycle routes
func SetupInspectionRoutes(r *gin.RouterGroup, inspectionHandler *handlers.InspectionHandler, jwtSecret string) {
	inspections := r.Group("/inspections")
	inspections.Use(middleware.AuthRequired(jwtSecret), middleware.StaffRequired())
	{
		inspections.POST("", inspectionHandler.CreateInspection)
		inspections.GET("", inspectionHandler.ListInspections)
		inspections.GET("/:id", inspectionHandler.GetInspection)
		inspections.PATCH("/:id", inspectionHandler.UpdateInspection)
		inspections.POST("/:id/complete", inspectionHandler.CompleteInspection)
		inspections.PATCH("/:id/status", inspectionHandler.UpdateInspectionStatus)
		inspections.DELETE("/:id", inspectionHandler.DeleteInspection)
	}
}
