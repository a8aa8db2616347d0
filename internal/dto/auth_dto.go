package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type SignupRequest struct {
	Email    string `json:"email"     validate:"required,email"`
	Username string `json:"username"  validate:"required,min=3"`
	Password string `json:"password"  validate:"required,min=6"`
	FullName string `json:"full_name" validate:"required,min=2"`
	Role     string `json:"role"      validate:"omitempty,oneof=admin pharmacist cashier"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type AuthResponse struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	Token    string `json:"token"`
}

type VerifyResponse struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}
