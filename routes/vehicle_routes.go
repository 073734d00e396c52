package routes

import (
	"vistoria/internal/handlers"
	"vistoria/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupVehicleRoutes sets up vehicle management routes
func SetupVehicleRoutes(r *gin.RouterGroup, vehicleHandler *handlers.VehicleHandler, jwtSecret string) {
	vehicles := r.Group("/vehicles")
	vehicles.Use(middleware.AuthRequired(jwtSecret), middleware.StaffRequired())
	{
		vehicles.POST("", vehicleHandler.CreateVehicle)
		vehicles.GET("", vehicleHandler.ListVehicles)
		vehicles.GET("/:id", vehicleHandler.GetVehicle)
		vehicles.GET("/:id/count", vehicleHandler.CountInspections)
		vehicles.PATCH("/:id", vehicleHandler.UpdateVehicle)
		vehicles.DELETE("/:id", vehicleHandler.DeleteVehicle)
	}
}
