package model

import (
	"time"
)

// Follow 关注关系（Follower 关注 Author）
type Follow struct {
	ID         string `gorm:"primaryKey;type:varchar(36)"`
	FollowerID string `gorm:"type:varchar(36);index:idx_follow_follower;index:idx_follow_pair,unique;not null;check:chk_follow_not_self,follower_id <> author_id"`
	AuthorID   string `gorm:"type:varchar(36);not null;index:idx_follow_pair,unique;index:idx_follow_author"`
	// 复合唯一键，避免重复关注
	// idx_follow_pair = (follower_id, author_id)
	Follower  *User `gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE" json:"-"`
	Author    *User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time
}

func (Follow) TableName() string { return "follows" }
