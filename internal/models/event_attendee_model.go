package models

import "time"

// RSVP 状态
const (
	RSVPGoing      = "going"
	RSVPInterested = "interested"
	RSVPCancelled  = "cancelled"
)

// EventAttendee 活动报名模型
// (user_id, event_id) 唯一，状态通过 upsert 覆盖
type EventAttendee struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	UserID  uint   `gorm:"not null;uniqueIndex:idx_user_event" json:"user_id"`
	EventID uint   `gorm:"not null;uniqueIndex:idx_user_event" json:"event_id"`
	Status  string `gorm:"not null" json:"status"` // going, interested, cancelled

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User  *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Event *Event `gorm:"foreignKey:EventID" json:"-"`
}

func (EventAttendee) TableName() string {
	return "event_attendees"
}

// ValidRSVPStatus reports whether s is one of the accepted RSVP states.
func ValidRSVPStatus(s string) bool {
	switch s {
	case RSVPGoing, RSVPInterested, RSVPCancelled:
		return true
	}
	return false
}
