package entity

import (
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const (
	SignupEmail  = "email"
	SignupGoogle = "google"
	SignupApple  = "apple"
)

// RecentlyDeletedWindowDays is how long a soft-deleted account stays restorable.
const RecentlyDeletedWindowDays = 90

// User is an account. Deleted accounts keep their row with DeletedAt set.
type User struct {
	ID                   int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Email                *string    `gorm:"type:varchar(255);uniqueIndex" json:"email"`
	Password             string     `gorm:"type:text" json:"-"`
	FullName             string     `gorm:"type:varchar(255)" json:"full_name"`
	Role                 string     `gorm:"type:varchar(20);not null;default:user;index" json:"role"`
	SignupType           string     `gorm:"type:varchar(20);not null" json:"signup_type"`
	OTP                  *string    `gorm:"column:otp;type:varchar(10)" json:"-"`
	VerifyEmail          bool       `gorm:"not null;default:false" json:"verify_email"`
	GoogleAccessToken    *string    `gorm:"type:text" json:"-"`
	AppleAccessToken     *string    `gorm:"type:text" json:"-"`
	UploadsID            *int64     `gorm:"index" json:"uploads_id"`
	Bio                  string     `gorm:"type:text" json:"bio"`
	EventTypePreferences StringList `gorm:"type:jsonb;not null;default:'[]'" json:"event_type_preferences"`
	FoodPreferences      StringList `gorm:"type:jsonb;not null;default:'[]'" json:"food_preferences"`
	DeletedAt            *time.Time `gorm:"index" json:"deleted_at,omitempty"`
	CreatedAt            time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Upload *Upload `gorm:"foreignKey:UploadsID" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// DeletedUser is a soft-deleted account still inside the restore window.
type DeletedUser struct {
	User
	DaysSinceDeleted int `json:"days_since_deleted"`
	RemainingDays    int `json:"remaining_days"`
}
