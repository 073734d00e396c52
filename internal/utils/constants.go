package utils

import "time"

// Application Constants
const (
	AppName    = "Vistoria"
	AppVersion = "1.0.0"

	// Pagination
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1

	// Authentication
	JWTAccessTokenTTL  = 15 * time.Minute
	JWTRefreshTokenTTL = 7 * 24 * time.Hour
	PasswordMinLength  = 6
	PasswordMaxLength  = 128

	// Reports
	DefaultReportWindowDays = 30
	ReportCacheTTL          = 5 * time.Minute
	MaxProblemExamples      = 5

	// Response status
	StatusSuccess = "success"
	StatusError   = "error"

	// Error messages
	ErrValidationFailed = "Validation failed"
	ErrInternalServer   = "Internal server error"
	ErrUnauthorized     = "Authentication required"
	ErrForbidden        = "Insufficient permissions"
)
