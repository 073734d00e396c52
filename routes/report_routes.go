package routes

import (
	"vistoria/internal/handlers"
	"vistoria/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupReportRoutes sets up reporting and export routes
func SetupReportRoutes(r *gin.RouterGroup, reportHandler *handlers.ReportHandler, jwtSecret string) {
	reports := r.Group("/reports")
	reports.Use(middleware.AuthRequired(jwtSecret), middleware.StaffRequired())
	{
		reports.GET("/overview", reportHandler.Overview)
		reports.GET("/inspectors", reportHandler.ByInspector)
		reports.GET("/brands", reportHandler.Brands)
		reports.GET("/problems", reportHandler.Problems)
		reports.GET("/inspections/export", reportHandler.ExportInspections)
		reports.GET("/inspectors/export", reportHandler.ExportInspectors)
	}
}
