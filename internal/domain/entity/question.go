package entity

import "time"

const (
	QuestionTypeEventCategory = "event_category"
	QuestionTypeFood          = "food"
	QuestionTypeLocation      = "location"

	ResponseTypeEvent    = "event"
	ResponseTypeFood     = "food"
	ResponseTypeLocation = "location"
)

// QuestionType is a questionnaire prompt shown during onboarding.
type QuestionType struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	Type      string    `gorm:"type:varchar(20);not null;index" json:"type"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (QuestionType) TableName() string {
	return "question_types"
}

type QuestionTypeResponse struct {
	ID              int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	QuestionTypesID int64     `gorm:"not null;index" json:"question_types_id"`
	UserID          int64     `gorm:"not null;index" json:"user_id"`
	Text            string    `gorm:"type:text;not null" json:"text"`
	Type            string    `gorm:"type:varchar(20);not null;index" json:"type"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	QuestionType QuestionType `gorm:"foreignKey:QuestionTypesID;constraint:OnDelete:CASCADE" json:"-"`
	User         User         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (QuestionTypeResponse) TableName() string {
	return "question_type_responses"
}
