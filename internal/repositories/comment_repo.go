package repositories

import (
	"gorm.io/gorm"

	"github.com/sarcaxticlarka/urbanmeet/internal/models"
)

// CommentRepository 评论仓储
type CommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository 创建评论仓储实例
func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create 创建评论
func (r *CommentRepository) Create(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// ListByEvent 获取活动评论，新的在前
func (r *CommentRepository) ListByEvent(eventID uint, limit, offset int) ([]models.Comment, int64, error) {
	var comments []models.Comment
	var total int64

	query := r.db.Model(&models.Comment{}).Where("event_id = ?", eventID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Where("event_id = ?", eventID).Preload("User").
		Order("created_at DESC").Limit(limit).Offset(offset).
		Find(&comments).Error
	return comments, total, err
}
