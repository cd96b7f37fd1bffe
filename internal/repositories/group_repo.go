package repositories

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sarcaxticlarka/urbanmeet/internal/models"
)

// GroupFilter 社群列表过滤条件
type GroupFilter struct {
	City   string
	Search string
	Limit  int
	Offset int
}

// GroupRepository 社群仓储
type GroupRepository struct {
	db *gorm.DB
}

// NewGroupRepository 创建社群仓储实例
func NewGroupRepository(db *gorm.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

// Create 创建社群
func (r *GroupRepository) Create(group *models.Group) error {
	return r.db.Create(group).Error
}

// GetByID 根据ID获取社群
func (r *GroupRepository) GetByID(id uint) (*models.Group, error) {
	var group models.Group
	if err := r.db.Preload("Owner").First(&group, id).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

// Update 更新社群
func (r *GroupRepository) Update(group *models.Group) error {
	return r.db.Save(group).Error
}

// Delete 删除社群
func (r *GroupRepository) Delete(id uint) error {
	return r.db.Delete(&models.Group{}, id).Error
}

// List 按城市/关键词过滤社群
// 关键词匹配 name/description/city，大小写不敏感
func (r *GroupRepository) List(f GroupFilter) ([]models.Group, int64, error) {
	var groups []models.Group
	var total int64

	query := r.db.Model(&models.Group{})
	if f.City != "" {
		query = query.Where("city = ?", f.City)
	}
	if terms := TokenizeQuery(f.Search); len(terms) > 0 {
		if cond, args := ContainsClause([]string{"name", "description", "city"}, terms, true); cond != "" {
			query = query.Where(cond, args...)
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Owner").Limit(f.Limit).Offset(f.Offset).Order("created_at DESC").Find(&groups).Error
	return groups, total, err
}

// AddMember 加入社群，(group_id, user_id) 冲突时幂等
func (r *GroupRepository) AddMember(groupID, userID uint, role string) error {
	member := &models.GroupMember{
		GroupID:  groupID,
		UserID:   userID,
		Role:     role,
		JoinedAt: time.Now(),
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "group_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(member).Error
}

// RemoveMember 退出社群
func (r *GroupRepository) RemoveMember(groupID, userID uint) error {
	return r.db.Where("group_id = ? AND user_id = ?", groupID, userID).
		Delete(&models.GroupMember{}).Error
}

// IsMember 是否为社群成员
func (r *GroupRepository) IsMember(groupID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.GroupMember{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Count(&count).Error
	return count > 0, err
}

// GetMembers 获取社群成员列表
func (r *GroupRepository) GetMembers(groupID uint, limit, offset int) ([]models.GroupMember, int64, error) {
	var members []models.GroupMember
	var total int64

	query := r.db.Model(&models.GroupMember{}).Where("group_id = ?", groupID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Where("group_id = ?", groupID).Preload("User").
		Limit(limit).Offset(offset).Find(&members).Error
	return members, total, err
}

// MemberCount 社群成员数
func (r *GroupRepository) MemberCount(groupID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.GroupMember{}).Where("group_id = ?", groupID).Count(&count).Error
	return count, err
}
