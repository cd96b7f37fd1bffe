package repositories

import (
	"gorm.io/gorm"

	"github.com/sarcaxticlarka/urbanmeet/internal/models"
)

// ResetTokenRepository 密码重置令牌仓储
type ResetTokenRepository struct {
	db *gorm.DB
}

// NewResetTokenRepository 创建令牌仓储实例
func NewResetTokenRepository(db *gorm.DB) *ResetTokenRepository {
	return &ResetTokenRepository{db: db}
}

// Create 创建令牌
func (r *ResetTokenRepository) Create(token *models.PasswordResetToken) error {
	return r.db.Create(token).Error
}

// GetByToken 根据令牌值查找
func (r *ResetTokenRepository) GetByToken(token string) (*models.PasswordResetToken, error) {
	var t models.PasswordResetToken
	if err := r.db.Where("token = ?", token).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// MarkUsed 标记令牌已使用
func (r *ResetTokenRepository) MarkUsed(id uint) error {
	return r.db.Model(&models.PasswordResetToken{}).
		Where("id = ?", id).
		Update("used", true).Error
}
