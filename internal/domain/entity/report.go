package entity

import "time"

// Report is a complaint one user files against another.
type Report struct {
	ID              int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ReportCreatorID int64     `gorm:"not null;index" json:"report_creator_id"`
	ReportedUserID  int64     `gorm:"not null;index" json:"reported_user_id"`
	Reason          string    `gorm:"type:varchar(255);not null" json:"reason"`
	Description     string    `gorm:"type:text" json:"description"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Creator      User `gorm:"foreignKey:ReportCreatorID;constraint:OnDelete:CASCADE" json:"-"`
	ReportedUser User `gorm:"foreignKey:ReportedUserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Report) TableName() string {
	return "report"
}

type ReportView struct {
	Report
	CreatorInfo  JSON `json:"report_creator"`
	ReportedInfo JSON `json:"reported_user"`
}
