package validators

type VehicleCreateRequest struct {
	Name  string `json:"name" binding:"required" validate:"required,min=2,max=100"`
	Plate string `json:"plate" binding:"required" validate:"required,license_plate"`
	Brand string `json:"brand" binding:"required" validate:"required,min=2,max=50"`
	Model string `json:"model" binding:"required" validate:"required,min=1,max=50"`
	Year  int    `json:"year" binding:"required" validate:"required,min=1950,max=2030"`
	Owner string `json:"owner" validate:"omitempty,max=100"`
}

type VehicleUpdateRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=2,max=100"`
	Plate *string `json:"plate" validate:"omitempty,license_plate"`
	Brand *string `json:"brand" validate:"omitempty,min=2,max=50"`
	Model *string `json:"model" validate:"omitempty,min=1,max=50"`
	Year  *int    `json:"year" validate:"omitempty,min=1950,max=2030"`
	Owner *string `json:"owner" validate:"omitempty,max=100"`
}

func ValidateVehicleCreate(req *VehicleCreateRequest) ValidationErrors {
	return ValidateStruct(req)
}

func ValidateVehicleUpdate(req *VehicleUpdateRequest) ValidationErrors {
	return ValidateStruct(req)
}
