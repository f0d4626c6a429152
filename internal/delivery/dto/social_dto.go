package dto

// Feedback

type CreateFeedbackRequest struct {
	Comment string `json:"comment" validate:"required,max=5000"`
}

type UpdateFeedbackRequest struct {
	Comment *string `json:"comment" validate:"omitempty,min=1,max=5000"`
}

// Reports

type CreateReportRequest struct {
	ReportedUserID int64  `json:"reported_user_id" validate:"required,gt=0"`
	Reason         string `json:"reason" validate:"required,max=255"`
	Description    string `json:"description" validate:"omitempty,max=5000"`
}

type UpdateReportRequest struct {
	Reason      *string `json:"reason" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
}

type ReportFilter struct {
	CreatorID      *int64
	ReportedUserID *int64
	Reason         string
}

// Blocks

type CreateBlockRequest struct {
	BlockUserID int64 `json:"block_user_id" validate:"required,gt=0"`
}

type UpdateBlockRequest struct {
	Status *bool `json:"status" validate:"required"`
}

type BlockFilter struct {
	CreatorID   *int64
	BlockUserID *int64
	Status      *bool
}
