package models

import (
	"time"

	"gorm.io/gorm"
)

// Event 活动模型
type Event struct {
	ID uint `gorm:"primaryKey" json:"id"`

	GroupID     uint      `gorm:"not null;index" json:"groupId"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	StartsAt    time.Time `gorm:"index" json:"startsAt"`
	EndsAt      time.Time `json:"endsAt"`
	Venue       string    `json:"venue"`
	Address     string    `json:"address"`
	City        string    `gorm:"index" json:"city"`
	Capacity    int       `json:"capacity"`
	ImageURL    string    `json:"imageUrl"`
	Tags        []string  `gorm:"serializer:json" json:"tags"`

	Group     *Group          `gorm:"foreignKey:GroupID" json:"group,omitempty"`
	Attendees []EventAttendee `gorm:"foreignKey:EventID" json:"-"`
	Comments  []Comment       `gorm:"foreignKey:EventID" json:"-"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Event) TableName() string {
	return "events"
}
