package dto

// Question types

type CreateQuestionTypeRequest struct {
	Text string `json:"text" validate:"required"`
	Type string `json:"type" validate:"required,oneof=event_category food location"`
}

type UpdateQuestionTypeRequest struct {
	Text *string `json:"text" validate:"omitempty,min=1"`
	Type *string `json:"type" validate:"omitempty,oneof=event_category food location"`
}

// Question type responses

type CreateQuestionResponseRequest struct {
	QuestionTypesID int64  `json:"question_types_id" validate:"required,gt=0"`
	Text            string `json:"text" validate:"required"`
	Type            string `json:"type" validate:"required,oneof=event food location"`
}

type UpdateQuestionResponseRequest struct {
	Text *string `json:"text" validate:"omitempty,min=1"`
	Type *string `json:"type" validate:"omitempty,oneof=event food location"`
}

type QuestionResponseFilter struct {
	UserID          *int64
	QuestionTypesID *int64
	Type            string
}

// NameRequest creates or renames a category or notification type.
type NameRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// Suggested items

type CreateSuggestedItemRequest struct {
	Name      string `json:"name" validate:"required,max=255"`
	CreatedBy string `json:"created_by" validate:"omitempty,oneof=admin user"`
}

type UpdateSuggestedItemRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=255"`
}

// FAQ

type CreateFAQRequest struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
}

type UpdateFAQRequest struct {
	Question *string `json:"question" validate:"omitempty,min=1"`
	Answer   *string `json:"answer" validate:"omitempty,min=1"`
}
