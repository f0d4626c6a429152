package dto

import (
	"time"
)

// Request DTOs

type SignupRequest struct {
	SignupType        string `json:"signup_type" validate:"required,oneof=email google apple"`
	Email             string `json:"email" validate:"required_if=SignupType email,omitempty,email,max=255"`
	Password          string `json:"password" validate:"required_if=SignupType email,omitempty,min=6"`
	FullName          string `json:"full_name" validate:"omitempty,max=255"`
	GoogleAccessToken string `json:"google_access_token" validate:"required_if=SignupType google"`
	AppleAccessToken  string `json:"apple_access_token" validate:"required_if=SignupType apple"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=4,numeric"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	OTP         string `json:"otp" validate:"required,len=4,numeric"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6,nefield=OldPassword"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Response DTOs

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// AuthResponse is returned by signup and sign-in. Tokens is empty until
// an email account verifies its OTP.
type AuthResponse struct {
	User   *UserResponse  `json:"user"`
	Tokens *TokenResponse `json:"tokens,omitempty"`
}

type UserResponse struct {
	ID                   int64     `json:"id"`
	Email                string    `json:"email,omitempty"`
	FullName             string    `json:"full_name"`
	Role                 string    `json:"role"`
	SignupType           string    `json:"signup_type"`
	VerifyEmail          bool      `json:"verify_email"`
	Bio                  string    `json:"bio"`
	UploadsID            *int64    `json:"uploads_id"`
	EventTypePreferences []string  `json:"event_type_preferences"`
	FoodPreferences      []string  `json:"food_preferences"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}
