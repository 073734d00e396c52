package handlers

import (
	"vistoria/internal/models"
	"vistoria/internal/services"
	"vistoria/internal/utils"
	"vistoria/internal/validators"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type InspectionHandler struct {
	inspectionService services.InspectionService
}

func NewInspectionHandler(inspectionService services.InspectionService) *InspectionHandler {
	return &InspectionHandler{
		inspectionService: inspectionService,
	}
}

func checklistItems(requests []validators.ChecklistItemRequest) []models.ChecklistItem {
	items := make([]models.ChecklistItem, 0, len(requests))
	for _, request := range requests {
		items = append(items, models.ChecklistItem{
			Key:     request.Key,
			Result:  models.ChecklistResult(request.Result),
			Comment: request.Comment,
		})
	}
	return items
}

// CreateInspection opens a new inspection in PENDING state
func (h *InspectionHandler) CreateInspection(c *gin.Context) {
	var request validators.InspectionCreateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateInspectionCreate(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.FieldMap())
		return
	}

	vehicleID, _ := primitive.ObjectIDFromHex(request.VehicleID)
	inspectorID, _ := primitive.ObjectIDFromHex(request.InspectorID)

	detail, err := h.inspectionService.Create(c.Request.Context(), &services.CreateInspectionInput{
		Title:       request.Title,
		Description: request.Description,
		VehicleID:   vehicleID,
		InspectorID: inspectorID,
		Items:       checklistItems(request.Items),
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, "Inspection created successfully", detail)
}

// ListInspections returns inspections with filtering and pagination
func (h *InspectionHandler) ListInspections(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	query := &services.InspectionQuery{
		Status:      models.InspectionStatus(c.Query("status")),
		InspectorID: c.Query("inspector_id"),
		From:        c.Query("from"),
		To:          c.Query("to"),
		Search:      params.Search,
	}

	details, total, err := h.inspectionService.List(c.Request.Context(), query, params)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Inspections retrieved", details, &utils.Meta{
		Pagination: utils.BuildPaginationMeta(params, total),
	})
}

// GetInspection returns one inspection with its relations
func (h *InspectionHandler) GetInspection(c *gin.Context) {
	id, ok := paramObjectID(c, "id")
	if !ok {
		return
	}

	detail, err := h.inspectionService.GetByID(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Inspection retrieved", detail)
}

// UpdateInspection patches fields and optionally replaces the checklist
func (h *InspectionHandler) UpdateInspection(c *gin.Context) {
	id, ok := paramObjectID(c, "id")
	if !ok {
		return
	}

	var request validators.InspectionUpdateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateInspectionUpdate(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.FieldMap())
		return
	}

	input := &services.UpdateInspectionInput{
		Title:       request.Title,
		Description: request.Description,
		Remarks:     request.Remarks,
	}
	if request.Items != nil {
		items := checklistItems(*request.Items)
		input.Items = &items
	}

	detail, err := h.inspectionService.Update(c.Request.Context(), id, input)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Inspection updated successfully", detail)
}

// CompleteInspection closes an in-progress inspection from its checklist
func (h *InspectionHandler) CompleteInspection(c *gin.Context) {
	id, ok := paramObjectID(c, "id")
	if !ok {
		return
	}

	// The remarks body is optional.
	var request validators.InspectionCompleteRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&request); err != nil {
			utils.BadRequestResponse(c, "Invalid request: "+err.Error())
			return
		}
	}

	detail, err := h.inspectionService.Complete(c.Request.Context(), id, request.Remarks)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Inspection completed", detail)
}

// UpdateInspectionStatus applies a manual status transition
func (h *InspectionHandler) UpdateInspectionStatus(c *gin.Context) {
	id, ok := paramObjectID(c, "id")
	if !ok {
		return
	}

	var request validators.InspectionStatusRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateInspectionStatus(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.FieldMap())
		return
	}

	detail, err := h.inspectionService.UpdateStatus(c.Request.Context(), id, models.InspectionStatus(request.Status))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Inspection status updated", detail)
}

// DeleteInspection removes a pending or cancelled inspection
func (h *InspectionHandler) DeleteInspection(c *gin.Context) {
	id, ok := paramObjectID(c, "id")
	if !ok {
		return
	}

	if err := h.inspectionService.Delete(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
