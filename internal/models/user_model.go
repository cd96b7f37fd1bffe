package models

import (
	"time"

	"gorm.io/gorm"
)

// User 用户模型
type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Email        string   `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string   `json:"-"`
	GoogleID     string   `gorm:"index" json:"-"`
	Name         string   `gorm:"not null" json:"name"`
	AvatarURL    string   `json:"avatarUrl"`
	Bio          string   `json:"bio"`
	City         string   `json:"city"`
	Interests    []string `gorm:"serializer:json" json:"interests"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	OwnedGroups []Group         `gorm:"foreignKey:OwnerID" json:"-"`
	Memberships []GroupMember   `gorm:"foreignKey:UserID" json:"-"`
	Attendance  []EventAttendee `gorm:"foreignKey:UserID" json:"-"`
	Comments    []Comment       `gorm:"foreignKey:UserID" json:"-"`
}

func (User) TableName() string {
	return "users"
}
