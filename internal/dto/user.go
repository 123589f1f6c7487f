package dto

import (
	"strings"
	"time"

	"github.com/SscSPs/general_ledger_app/internal/core/domain"
)

// RegisterRequest defines the data needed to sign up with a password.
type RegisterRequest struct {
	Username     string `json:"username" binding:"required,min=3,max=50"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=6"`
	FullName     string `json:"fullName" binding:"required,min=2"`
	BusinessName string `json:"businessName"`
}

// LoginRequest accepts either the username or the email as Username.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// GoogleExchangeCodeRequest carries the authorization code from the Google consent screen.
type GoogleExchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// ChangePasswordRequest carries the current password and its replacement.
type ChangePasswordRequest struct {
	CurrentPassword    string `json:"currentPassword" binding:"required"`
	NewPassword        string `json:"newPassword" binding:"required,min=6"`
	ConfirmNewPassword string `json:"confirmNewPassword" binding:"omitempty,eqfield=NewPassword"`
}

// UpdateProfileRequest defines the profile fields a user may change.
// Empty strings are treated as not provided.
type UpdateProfileRequest struct {
	FullName     *string `json:"fullName" binding:"omitempty,min=2"`
	BusinessName *string `json:"businessName"`
	Phone        *string `json:"phone"`
	Address      *string `json:"address"`
	TaxID        *string `json:"taxId"`
	Currency     *string `json:"currency" binding:"omitempty,oneof=USD EUR GBP CAD AUD"`
}

// ToProfileUpdate converts the request into a domain update, dropping blank values.
func (r UpdateProfileRequest) ToProfileUpdate() domain.ProfileUpdate {
	return domain.ProfileUpdate{
		FullName:     nonBlank(r.FullName),
		BusinessName: nonBlank(r.BusinessName),
		Phone:        nonBlank(r.Phone),
		Address:      nonBlank(r.Address),
		TaxID:        nonBlank(r.TaxID),
		Currency:     nonBlank(r.Currency),
	}
}

func nonBlank(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// UserResponse defines the user data returned to clients.
type UserResponse struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FullName     string    `json:"fullName"`
	BusinessName string    `json:"businessName"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	TaxID        string    `json:"taxId"`
	Currency     string    `json:"currency"`
	AuthProvider string    `json:"authProvider"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToUserResponse converts a domain.User to UserResponse DTO
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:           u.UserID,
		Username:     u.Username,
		Email:        u.Email,
		FullName:     u.FullName,
		BusinessName: u.BusinessName,
		Phone:        u.Phone,
		Address:      u.Address,
		TaxID:        u.TaxID,
		Currency:     u.Currency,
		AuthProvider: string(u.AuthProvider),
		CreatedAt:    u.CreatedAt,
	}
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}

// ProfileResponse wraps the current user's profile.
type ProfileResponse struct {
	Success bool         `json:"success"`
	User    UserResponse `json:"user"`
}

// LoginResponse represents the response for a successful token exchange.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
