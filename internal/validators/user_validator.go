package validators

type RegisterRequest struct {
	Name     string `json:"name" binding:"required" validate:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required" validate:"required,email"`
	Password string `json:"password" binding:"required" validate:"required,min=6,max=128"`
	Role     string `json:"role" validate:"omitempty,oneof=ADMIN INSPECTOR USER"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required" validate:"required,email"`
	Password string `json:"password" binding:"required" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required" validate:"required"`
}

func ValidateRegister(req *RegisterRequest) ValidationErrors {
	return ValidateStruct(req)
}

func ValidateLogin(req *LoginRequest) ValidationErrors {
	return ValidateStruct(req)
}

func ValidateRefreshToken(req *RefreshTokenRequest) ValidationErrors {
	return ValidateStruct(req)
}
