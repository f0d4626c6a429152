package entity

import "time"

// BlockUser records that BlockCreatorID blocked BlockUserID. Status false
// means the block was lifted without deleting the row.
type BlockUser struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	BlockCreatorID int64     `gorm:"not null;uniqueIndex:idx_block_users_pair" json:"block_creator_id"`
	BlockUserID    int64     `gorm:"not null;uniqueIndex:idx_block_users_pair;index" json:"block_user_id"`
	Status         bool      `gorm:"not null;default:true" json:"status"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Creator     User `gorm:"foreignKey:BlockCreatorID;constraint:OnDelete:CASCADE" json:"-"`
	BlockedUser User `gorm:"foreignKey:BlockUserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (BlockUser) TableName() string {
	return "block_users"
}

type BlockView struct {
	BlockUser
	CreatorInfo JSON `json:"block_creator"`
	BlockedInfo JSON `json:"blocked_user"`
}
