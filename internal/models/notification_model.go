package models

import "time"

// 通知类型
const (
	NotificationTypeRSVP   = "rsvp"
	NotificationTypeFollow = "follow"
)

// Notification 通知模型
// read 状态单向：unread -> read
type Notification struct {
	ID      uint           `gorm:"primaryKey" json:"id"`
	UserID  uint           `gorm:"not null;index" json:"user_id"`
	Type    string         `gorm:"not null" json:"type"`
	Message string         `json:"message"`
	Data    map[string]any `gorm:"serializer:json" json:"data"`
	Read    bool           `gorm:"default:false;index" json:"read"`

	CreatedAt time.Time `json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (Notification) TableName() string {
	return "notifications"
}
