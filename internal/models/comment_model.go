package models

import "time"

// Comment 活动评论模型，只增不改
type Comment struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	EventID uint   `gorm:"not null;index" json:"event_id"`
	UserID  uint   `gorm:"not null" json:"user_id"`
	Content string `gorm:"not null" json:"content"`

	CreatedAt time.Time `json:"created_at"`

	Event *Event `gorm:"foreignKey:EventID" json:"-"`
	User  *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Comment) TableName() string {
	return "comments"
}
