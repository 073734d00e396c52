package handlers

import (
	"vistoria/internal/services"
	"vistoria/internal/utils"
	"vistoria/internal/validators"

	"github.com/gin-gonic/gin"
)

type VehicleHandler struct {
	vehicleService services.VehicleService
}

func NewVehicleHandler(vehicleService services.VehicleService) *VehicleHandler {
	return &VehicleHandler{
		vehicleService: vehicleService,
	}
}

// CreateVehicle registers a new vehicle
func (h *VehicleHandler) CreateVehicle(c *gin.Context) {
	var request validators.VehicleCreateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateVehicleCreate(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.FieldMap())
		return
	}

	vehicle, err := h.vehicleService.Create(c.Request.Context(), &services.VehicleInput{
		Name:  request.Name,
		Plate: request.Plate,
		Brand: request.Brand,
		Model: request.Model,
		Year:  request.Year,
		Owner: request.Owner,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, "Vehicle registered successfully", vehicle)
}

// ListVehicles returns all vehicles with their inspection counts
func (h *VehicleHandler) ListVehicles(c *gin.Context) {
	vehicles, err := h.vehicleService.List(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Vehicles retrieved", vehicles, &utils.Meta{
		Count: len(vehicles),
	})
}

// GetVehicle returns one vehicle with its inspection history
func (h *VehicleHandler) GetVehicle(c *gin.Context) {
	id, ok := paramObjectID(c, "id")
	if !ok {
		return
	}

	detail, err := h.vehicleService.GetByID(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Vehicle retrieved", detail)
}

// CountInspections returns one vehicle with its inspection count
func (h *VehicleHandler) CountInspections(c *gin.Context) {
	id, ok := paramObjectID(c, "id")
	if !ok {
		return
	}

	vehicle, err := h.vehicleService.GetWithCount(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Vehicle retrieved", vehicle)
}

// UpdateVehicle patches vehicle fields
func (h *VehicleHandler) UpdateVehicle(c *gin.Context) {
	id, ok := paramObjectID(c, "id")
	if !ok {
		return
	}

	var request validators.VehicleUpdateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateVehicleUpdate(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.FieldMap())
		return
	}

	vehicle, err := h.vehicleService.Update(c.Request.Context(), id, &services.VehicleUpdateInput{
		Name:  request.Name,
		Plate: request.Plate,
		Brand: request.Brand,
		Model: request.Model,
		Year:  request.Year,
		Owner: request.Owner,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Vehicle updated successfully", vehicle)
}

// DeleteVehicle removes a vehicle without inspection history
func (h *VehicleHandler) DeleteVehicle(c *gin.Context) {
	id, ok := paramObjectID(c, "id")
	if !ok {
		return
	}

	if err := h.vehicleService.Delete(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
