package entity

import "time"

type Upload struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	FileName  string    `gorm:"type:varchar(255);not null" json:"file_name"`
	FileType  string    `gorm:"type:varchar(100);not null" json:"file_type"`
	FileURL   string    `gorm:"type:text;not null" json:"file_url"`
	Size      int64     `gorm:"not null;default:0" json:"size"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Upload) TableName() string {
	return "uploads"
}
