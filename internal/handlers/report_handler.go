package handlers

import (
	"fmt"
	"net/http"
	"time"

	"vistoria/internal/services"
	"vistoria/internal/utils"
	"vistoria/internal/validators"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportService services.ReportService
}

func NewReportHandler(reportService services.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

func (h *ReportHandler) window(c *gin.Context) (string, string, bool) {
	request := validators.ReportQueryRequest{
		From: c.Query("from"),
		To:   c.Query("to"),
	}
	if errs := validators.ValidateReportQuery(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.FieldMap())
		return "", "", false
	}
	return request.From, request.To, true
}

// Overview returns totals and mean duration for the window
func (h *ReportHandler) Overview(c *gin.Context) {
	from, to, ok := h.window(c)
	if !ok {
		return
	}

	report, err := h.reportService.Overview(c.Request.Context(), from, to)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Overview report generated", report)
}

// ByInspector returns per-inspector metrics for the window
func (h *ReportHandler) ByInspector(c *gin.Context) {
	from, to, ok := h.window(c)
	if !ok {
		return
	}

	metrics, err := h.reportService.ByInspector(c.Request.Context(), from, to)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Inspector report generated", metrics, &utils.Meta{
		Count: len(metrics),
	})
}

// Brands returns per-brand metrics for the window
func (h *ReportHandler) Brands(c *gin.Context) {
	from, to, ok := h.window(c)
	if !ok {
		return
	}

	report, err := h.reportService.Brands(c.Request.Context(), from, to)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Brand report generated", report)
}

// Problems ranks the most rejected checklist items for the window
func (h *ReportHandler) Problems(c *gin.Context) {
	from, to, ok := h.window(c)
	if !ok {
		return
	}

	report, err := h.reportService.Problems(c.Request.Context(), from, to)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Problem report generated", report)
}

func csvAttachment(c *gin.Context, name string) {
	filename := fmt.Sprintf("%s-%s.csv", name, time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)
}

// ExportInspections exports windowed inspections as JSON or CSV
func (h *ReportHandler) ExportInspections(c *gin.Context) {
	from, to, ok := h.window(c)
	if !ok {
		return
	}

	report, err := h.reportService.ExportInspections(c.Request.Context(), from, to)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	if c.Query("format") == "csv" {
		csvAttachment(c, "inspections")
		if err := utils.WriteInspectionsCSV(c.Writer, report.Inspections); err != nil {
			utils.InternalServerErrorResponse(c)
		}
		return
	}

	utils.SuccessResponse(c, "Inspection export generated", report)
}

// ExportInspectors exports per-inspector aggregates as JSON or CSV
func (h *ReportHandler) ExportInspectors(c *gin.Context) {
	from, to, ok := h.window(c)
	if !ok {
		return
	}

	report, err := h.reportService.ExportInspectors(c.Request.Context(), from, to)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	if c.Query("format") == "csv" {
		csvAttachment(c, "inspectors")
		if err := utils.WriteInspectorsCSV(c.Writer, report.Inspectors); err != nil {
			utils.InternalServerErrorResponse(c)
		}
		return
	}

	utils.SuccessResponse(c, "Inspector export generated", report)
}
