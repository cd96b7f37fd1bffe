package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sarcaxticlarka/urbanmeet/internal/models"
	"github.com/sarcaxticlarka/urbanmeet/internal/repositories"
	"github.com/sarcaxticlarka/urbanmeet/internal/utils"
	"github.com/sarcaxticlarka/urbanmeet/middleware/jwt"
	logger "github.com/sarcaxticlarka/urbanmeet/middleware/log"
)

type AuthService struct {
	UserRepo     *repositories.UserRepository
	TokenRepo    *repositories.ResetTokenRepository
	TokenManager *jwt.TokenManager
	Logger       *logger.Logger

	ResetTokenTTL time.Duration
	PublicURL     string
}

func NewAuthService(
	userRepo *repositories.UserRepository,
	tokenRepo *repositories.ResetTokenRepository,
	tokenManager *jwt.TokenManager,
	log *logger.Logger,
	resetTokenTTL time.Duration,
	publicURL string,
) *AuthService {
	return &AuthService{
		UserRepo:      userRepo,
		TokenRepo:     tokenRepo,
		TokenManager:  tokenManager,
		Logger:        log,
		ResetTokenTTL: resetTokenTTL,
		PublicURL:     publicURL,
	}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse 注册/登录响应
type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// ForgotRequest 找回密码请求
type ForgotRequest struct {
	Email string `json:"email" binding:"required"`
}

// ResetRequest 重置密码请求
type ResetRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (s *AuthService) Register(req *RegisterRequest) (*AuthResponse, error) {
	if !utils.ValidateEmail(req.Email) {
		return nil, fmt.Errorf("invalid email format")
	}
	if err := utils.ValidateStrongPassword(req.Password); err != nil {
		return nil, err
	}

	exists, err := s.UserRepo.ExistsByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: passwordHash,
		Name:         req.Name,
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}

	token, err := s.TokenManager.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{Token: token, User: user}, nil
}

func (s *AuthService) Login(req *LoginRequest) (*AuthResponse, error) {
	user, err := s.UserRepo.GetByEmail(req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.TokenManager.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{Token: token, User: user}, nil
}

// Me 根据令牌中的用户ID返回当前用户
func (s *AuthService) Me(userID uint) (*models.User, error) {
	user, err := s.UserRepo.GetByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// CheckEmail 邮箱是否已注册
func (s *AuthService) CheckEmail(email string) (bool, error) {
	return s.UserRepo.ExistsByEmail(email)
}

// PasswordStrength 评估密码强度
func (s *AuthService) PasswordStrength(password string) utils.PasswordStrength {
	return utils.EvaluatePasswordStrength(password)
}

// Forgot 创建单次有效的重置令牌
// 无论邮箱是否存在都不报错，避免探测已注册邮箱
func (s *AuthService) Forgot(ctx context.Context, req *ForgotRequest) error {
	user, err := s.UserRepo.GetByEmail(req.Email)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil
		}
		return err
	}

	token := &models.PasswordResetToken{
		Token:     uuid.New().String(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(s.ResetTokenTTL),
	}
	if err := s.TokenRepo.Create(token); err != nil {
		return err
	}

	// 邮件网关不在本服务范围内，重置链接记录到日志
	s.Logger.WithContext(ctx).Info("password reset token issued",
		zap.Uint("user_id", user.ID),
		zap.String("reset_link", fmt.Sprintf("%s/reset?token=%s", s.PublicURL, token.Token)),
	)
	return nil
}

// Reset 用令牌重置密码，令牌单次有效且有过期时间
func (s *AuthService) Reset(req *ResetRequest) error {
	token, err := s.TokenRepo.GetByToken(req.Token)
	if err != nil {
		return ErrInvalidResetToken
	}
	if !token.Usable(time.Now()) {
		return ErrInvalidResetToken
	}

	if err := utils.ValidateStrongPassword(req.Password); err != nil {
		return err
	}

	user, err := s.UserRepo.GetByID(token.UserID)
	if err != nil {
		return ErrUserNotFound
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	if err := s.UserRepo.Update(user); err != nil {
		return err
	}

	return s.TokenRepo.MarkUsed(token.ID)
}
