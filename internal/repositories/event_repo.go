package repositories

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sarcaxticlarka/urbanmeet/internal/models"
)

// eventSearchColumns 活动搜索命中的列，含所属社群的 name/city
var eventSearchColumns = []string{
	"events.title",
	"events.description",
	"events.city",
	"events.venue",
	"events.address",
	"groups.name",
	"groups.city",
}

// EventFilter 活动列表过滤条件
type EventFilter struct {
	City    string
	From    *time.Time
	To      *time.Time
	OwnerID uint
	Search  string
	Limit   int
	Offset  int
}

// EventRepository 活动仓储
type EventRepository struct {
	db *gorm.DB
}

// NewEventRepository 创建活动仓储实例
func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

// Create 创建活动
func (r *EventRepository) Create(event *models.Event) error {
	return r.db.Create(event).Error
}

// CreateWithGroup 在一个事务中创建社群、管理员成员和活动
// 用于 POST /events 缺省 groupId 时的自动建群
func (r *EventRepository) CreateWithGroup(event *models.Event, group *models.Group) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(group).Error; err != nil {
			return err
		}
		member := &models.GroupMember{
			GroupID:  group.ID,
			UserID:   group.OwnerID,
			Role:     models.RoleAdmin,
			JoinedAt: time.Now(),
		}
		if err := tx.Create(member).Error; err != nil {
			return err
		}
		event.GroupID = group.ID
		return tx.Create(event).Error
	})
}

// GetByID 根据ID获取活动，带所属社群
func (r *EventRepository) GetByID(id uint) (*models.Event, error) {
	var event models.Event
	if err := r.db.Preload("Group").Preload("Group.Owner").First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// Update 更新活动
func (r *EventRepository) Update(event *models.Event) error {
	return r.db.Save(event).Error
}

// Delete 删除活动
func (r *EventRepository) Delete(id uint) error {
	return r.db.Delete(&models.Event{}, id).Error
}

// List 按过滤条件查询活动
// 关键词按 (token x 列) 构造 OR 子句，匹配语义沿用底层 LIKE
func (r *EventRepository) List(f EventFilter) ([]models.Event, int64, error) {
	var events []models.Event
	var total int64

	query := r.filtered(f)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Group").
		Limit(f.Limit).Offset(f.Offset).Order("events.starts_at ASC").
		Find(&events).Error
	return events, total, err
}

func (r *EventRepository) filtered(f EventFilter) *gorm.DB {
	query := r.db.Model(&models.Event{}).
		Joins("JOIN groups ON groups.id = events.group_id")

	if f.City != "" {
		query = query.Where("events.city = ?", f.City)
	}
	if f.From != nil {
		query = query.Where("events.starts_at >= ?", *f.From)
	}
	if f.To != nil {
		query = query.Where("events.starts_at <= ?", *f.To)
	}
	if f.OwnerID != 0 {
		query = query.Where("groups.owner_id = ?", f.OwnerID)
	}
	if terms := TokenizeQuery(f.Search); len(terms) > 0 {
		if cond, args := ContainsClause(eventSearchColumns, terms, false); cond != "" {
			query = query.Where(cond, args...)
		}
	}
	return query
}

// SearchLoose 宽松的单 token OR 搜索，用于零结果时的 relatedEvents 兜底
func (r *EventRepository) SearchLoose(search string, limit int) ([]models.Event, error) {
	terms := TokenizeQuery(search)
	if len(terms) == 0 {
		return nil, nil
	}
	// 只保留单 token 项，不带整句匹配
	tokens := terms
	if len(terms) > 1 {
		tokens = terms[:len(terms)-1]
	}

	var events []models.Event
	query := r.db.Model(&models.Event{}).
		Joins("JOIN groups ON groups.id = events.group_id")
	if cond, args := ContainsClause(eventSearchColumns, tokens, false); cond != "" {
		query = query.Where(cond, args...)
	}
	err := query.Preload("Group").Limit(limit).Find(&events).Error
	return events, err
}

// GetAttendee 获取报名记录
func (r *EventRepository) GetAttendee(eventID, userID uint) (*models.EventAttendee, error) {
	var attendee models.EventAttendee
	err := r.db.Where("event_id = ? AND user_id = ?", eventID, userID).First(&attendee).Error
	if err != nil {
		return nil, err
	}
	return &attendee, nil
}

// ListAttendees 获取活动报名列表
func (r *EventRepository) ListAttendees(eventID uint) ([]models.EventAttendee, error) {
	var attendees []models.EventAttendee
	err := r.db.Where("event_id = ?", eventID).Preload("User").Find(&attendees).Error
	return attendees, err
}

// AttendeeCount 统计某状态的报名人数
func (r *EventRepository) AttendeeCount(eventID uint, status string) (int64, error) {
	var count int64
	err := r.db.Model(&models.EventAttendee{}).
		Where("event_id = ? AND status = ?", eventID, status).
		Count(&count).Error
	return count, err
}

// RSVP 在一个事务中完成报名的全部写入：
// 报名 upsert；going 时补社群成员；going/interested 时写入通知
func (r *EventRepository) RSVP(event *models.Event, userID uint, status string, notification *models.Notification) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		attendee := &models.EventAttendee{
			UserID:  userID,
			EventID: event.ID,
			Status:  status,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "event_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
		}).Create(attendee).Error; err != nil {
			return err
		}

		if status == models.RSVPGoing {
			member := &models.GroupMember{
				GroupID:  event.GroupID,
				UserID:   userID,
				Role:     models.RoleMember,
				JoinedAt: time.Now(),
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "group_id"}, {Name: "user_id"}},
				DoNothing: true,
			}).Create(member).Error; err != nil {
				return err
			}
		}

		if notification != nil {
			if err := tx.Create(notification).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// DeleteAttendee 取消报名，只删除报名行
func (r *EventRepository) DeleteAttendee(eventID, userID uint) error {
	return r.db.Where("event_id = ? AND user_id = ?", eventID, userID).
		Delete(&models.EventAttendee{}).Error
}
