package models

import "time"

// UserFollow 关注关系模型
// 硬删除：取关后重新关注要能命中 (follower_id, followee_id) 的 upsert
type UserFollow struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FollowerID uint      `gorm:"not null;uniqueIndex:idx_follower_followee" json:"follower_id"`
	FolloweeID uint      `gorm:"not null;uniqueIndex:idx_follower_followee" json:"followee_id"`
	CreatedAt  time.Time `json:"created_at"`

	Follower *User `gorm:"foreignKey:FollowerID" json:"-"`
	Followee *User `gorm:"foreignKey:FolloweeID" json:"-"`
}

func (UserFollow) TableName() string {
	return "user_follows"
}
