package services

import (
	"fmt"
	"time"

	"github.com/sarcaxticlarka/urbanmeet/internal/models"
	"github.com/sarcaxticlarka/urbanmeet/internal/repositories"
)

// relatedEventsLimit 零结果兜底搜索的条数上限
const relatedEventsLimit = 10

type EventService struct {
	EventRepo *repositories.EventRepository
	GroupRepo *repositories.GroupRepository
}

func NewEventService(eventRepo *repositories.EventRepository, groupRepo *repositories.GroupRepository) *EventService {
	return &EventService{
		EventRepo: eventRepo,
		GroupRepo: groupRepo,
	}
}

// CreateEventRequest 创建活动请求
// GroupID 缺省时自动创建 "<title> Group" 社群
type CreateEventRequest struct {
	GroupID     uint      `json:"groupId"`
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	StartsAt    time.Time `json:"startsAt" binding:"required"`
	EndsAt      time.Time `json:"endsAt"`
	Venue       string    `json:"venue"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	Capacity    int       `json:"capacity"`
	ImageURL    string    `json:"imageUrl"`
	Tags        []string  `json:"tags"`
}

// UpdateEventRequest 更新活动请求，零值字段不改动
type UpdateEventRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	StartsAt    *time.Time `json:"startsAt"`
	EndsAt      *time.Time `json:"endsAt"`
	Venue       string     `json:"venue"`
	Address     string     `json:"address"`
	City        string     `json:"city"`
	Capacity    *int       `json:"capacity"`
	ImageURL    string     `json:"imageUrl"`
	Tags        []string   `json:"tags"`
}

// EventListFilter 列表查询参数
type EventListFilter struct {
	City    string
	From    *time.Time
	To      *time.Time
	OwnerID uint
	Search  string
	Page    int
	Limit   int
}

// EventList 列表结果，零命中时 RelatedEvents 兜底
type EventList struct {
	Events        []models.Event `json:"events"`
	RelatedEvents []models.Event `json:"relatedEvents,omitempty"`
	Pagination    Pagination     `json:"pagination"`
}

// EventDetail 活动详情，带报名计数
type EventDetail struct {
	*models.Event
	GoingCount      int64 `json:"goingCount"`
	InterestedCount int64 `json:"interestedCount"`
}

// List 过滤查询活动
// 带关键词的查询零命中时，退化为宽松单 token 搜索返回 relatedEvents，
// 调用方不会拿到完全空的结果页
func (s *EventService) List(f EventListFilter) (*EventList, error) {
	page, limit, offset := NormalizePage(f.Page, f.Limit)

	events, total, err := s.EventRepo.List(repositories.EventFilter{
		City:    f.City,
		From:    f.From,
		To:      f.To,
		OwnerID: f.OwnerID,
		Search:  f.Search,
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		return nil, err
	}

	result := &EventList{
		Events:     events,
		Pagination: NewPagination(page, limit, total),
	}
	if result.Events == nil {
		result.Events = []models.Event{}
	}

	if total == 0 && f.Search != "" {
		related, err := s.EventRepo.SearchLoose(f.Search, relatedEventsLimit)
		if err != nil {
			return nil, err
		}
		result.RelatedEvents = related
	}

	return result, nil
}

func (s *EventService) Get(id uint) (*EventDetail, error) {
	event, err := s.EventRepo.GetByID(id)
	if err != nil {
		return nil, ErrEventNotFound
	}

	going, err := s.EventRepo.AttendeeCount(id, models.RSVPGoing)
	if err != nil {
		return nil, err
	}
	interested, err := s.EventRepo.AttendeeCount(id, models.RSVPInterested)
	if err != nil {
		return nil, err
	}

	return &EventDetail{
		Event:           event,
		GoingCount:      going,
		InterestedCount: interested,
	}, nil
}

// Create 创建活动
// 未指定社群时自动创建 "<title> Group"，创建者为 owner 和 admin 成员
func (s *EventService) Create(userID uint, req *CreateEventRequest) (*models.Event, error) {
	event := &models.Event{
		GroupID:     req.GroupID,
		Title:       req.Title,
		Description: req.Description,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		Venue:       req.Venue,
		Address:     req.Address,
		City:        req.City,
		Capacity:    req.Capacity,
		ImageURL:    req.ImageURL,
		Tags:        req.Tags,
	}

	if req.GroupID == 0 {
		group := &models.Group{
			Name:    req.Title + " Group",
			City:    req.City,
			OwnerID: userID,
		}
		if err := s.EventRepo.CreateWithGroup(event, group); err != nil {
			return nil, err
		}
		return s.EventRepo.GetByID(event.ID)
	}

	if _, err := s.GroupRepo.GetByID(req.GroupID); err != nil {
		return nil, ErrGroupNotFound
	}
	if err := s.EventRepo.Create(event); err != nil {
		return nil, err
	}
	return s.EventRepo.GetByID(event.ID)
}

// Update 更新活动，仅所属社群的 owner 可操作
func (s *EventService) Update(eventID, userID uint, req *UpdateEventRequest) (*models.Event, error) {
	event, err := s.ownedEvent(eventID, userID)
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		event.Title = req.Title
	}
	if req.Description != "" {
		event.Description = req.Description
	}
	if req.StartsAt != nil {
		event.StartsAt = *req.StartsAt
	}
	if req.EndsAt != nil {
		event.EndsAt = *req.EndsAt
	}
	if req.Venue != "" {
		event.Venue = req.Venue
	}
	if req.Address != "" {
		event.Address = req.Address
	}
	if req.City != "" {
		event.City = req.City
	}
	if req.Capacity != nil {
		event.Capacity = *req.Capacity
	}
	if req.ImageURL != "" {
		event.ImageURL = req.ImageURL
	}
	if req.Tags != nil {
		event.Tags = req.Tags
	}

	if err := s.EventRepo.Update(event); err != nil {
		return nil, err
	}
	return event, nil
}

// Delete 删除活动，仅所属社群的 owner 可操作
func (s *EventService) Delete(eventID, userID uint) error {
	if _, err := s.ownedEvent(eventID, userID); err != nil {
		return err
	}
	return s.EventRepo.Delete(eventID)
}

func (s *EventService) ownedEvent(eventID, userID uint) (*models.Event, error) {
	event, err := s.EventRepo.GetByID(eventID)
	if err != nil {
		return nil, ErrEventNotFound
	}
	if event.Group == nil || event.Group.OwnerID != userID {
		return nil, ErrNotOwner
	}
	return event, nil
}

// RSVP 报名或更新报名状态，任意状态可互相切换
// going 时补齐社群成员，going/interested 时给本人写入通知，
// 三个写入在一个事务里完成
func (s *EventService) RSVP(eventID, userID uint, status string) (*models.EventAttendee, error) {
	if !models.ValidRSVPStatus(status) {
		return nil, ErrInvalidRSVPStatus
	}

	event, err := s.EventRepo.GetByID(eventID)
	if err != nil {
		return nil, ErrEventNotFound
	}

	var notification *models.Notification
	if status == models.RSVPGoing || status == models.RSVPInterested {
		notification = &models.Notification{
			UserID:  userID,
			Type:    models.NotificationTypeRSVP,
			Message: fmt.Sprintf("You are %s to %s", status, event.Title),
			Data: map[string]any{
				"event_id": event.ID,
				"status":   status,
			},
		}
	}

	if err := s.EventRepo.RSVP(event, userID, status, notification); err != nil {
		return nil, err
	}

	return s.EventRepo.GetAttendee(eventID, userID)
}

// UnRSVP 取消报名，只删除报名行，成员关系和通知不回滚
func (s *EventService) UnRSVP(eventID, userID uint) error {
	if _, err := s.EventRepo.GetByID(eventID); err != nil {
		return ErrEventNotFound
	}
	return s.EventRepo.DeleteAttendee(eventID, userID)
}

// Attendees 活动报名列表
func (s *EventService) Attendees(eventID uint) ([]models.EventAttendee, error) {
	if _, err := s.EventRepo.GetByID(eventID); err != nil {
		return nil, ErrEventNotFound
	}
	return s.EventRepo.ListAttendees(eventID)
}
