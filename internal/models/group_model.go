package models

import (
	"time"

	"gorm.io/gorm"
)

// Group 社群模型
type Group struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	City        string `gorm:"index" json:"city"`
	CoverImage  string `json:"coverImage"`
	OwnerID     uint   `gorm:"not null" json:"ownerId"`

	Owner   *User         `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Members []GroupMember `gorm:"foreignKey:GroupID" json:"-"`
	Events  []Event       `gorm:"foreignKey:GroupID" json:"-"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Group) TableName() string {
	return "groups"
}

// 成员角色
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)
