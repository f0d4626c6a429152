package dto

type CreateNotificationRequest struct {
	ReceiverID int64  `json:"receiver_id" validate:"required,gt=0"`
	Type       int64  `json:"type" validate:"required,gt=0"`
	Title      string `json:"title" validate:"required,max=255"`
	Content    string `json:"content"`
	EventID    *int64 `json:"event_id" validate:"omitempty,gt=0"`
}

type UpdateNotificationRequest struct {
	Title   *string `json:"title" validate:"omitempty,min=1,max=255"`
	Content *string `json:"content"`
	IsRead  *bool   `json:"is_read"`
}

type UploadResponse struct {
	ID       int64  `json:"id"`
	FileName string `json:"file_name"`
	FileType string `json:"file_type"`
	FileURL  string `json:"file_url"`
	Size     int64  `json:"size"`
}
