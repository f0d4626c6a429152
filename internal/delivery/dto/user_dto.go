package dto

// UpdateProfileRequest carries the profile fields a user may change. Absent
// fields are left untouched; email cannot be changed.
type UpdateProfileRequest struct {
	Email                *string   `json:"email"`
	FullName             *string   `json:"full_name" validate:"omitempty,min=2,max=255"`
	Bio                  *string   `json:"bio" validate:"omitempty,max=1000"`
	UploadsID            *int64    `json:"uploads_id" validate:"omitempty,gt=0"`
	EventTypePreferences *[]string `json:"event_type_preferences" validate:"omitempty,dive,min=1,max=100"`
	FoodPreferences      *[]string `json:"food_preferences" validate:"omitempty,dive,min=1,max=100"`
}

type UserFilter struct {
	Role       string
	SignupType string
	Search     string
}
