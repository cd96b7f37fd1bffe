package services

import (
	"github.com/sarcaxticlarka/urbanmeet/internal/models"
	"github.com/sarcaxticlarka/urbanmeet/internal/repositories"
)

type UserService struct {
	UserRepo         *repositories.UserRepository
	NotificationRepo *repositories.NotificationRepository
}

func NewUserService(userRepo *repositories.UserRepository, notificationRepo *repositories.NotificationRepository) *UserService {
	return &UserService{
		UserRepo:         userRepo,
		NotificationRepo: notificationRepo,
	}
}

// UpdateProfileRequest 更新个人资料请求，零值字段不改动
type UpdateProfileRequest struct {
	Name      string   `json:"name"`
	AvatarURL string   `json:"avatarUrl"`
	Bio       string   `json:"bio"`
	City      string   `json:"city"`
	Interests []string `json:"interests"`
}

func (s *UserService) GetProfile(userID uint) (*models.User, error) {
	user, err := s.UserRepo.GetByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) UpdateProfile(userID uint, req *UpdateProfileRequest) (*models.User, error) {
	user, err := s.UserRepo.GetByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.AvatarURL != "" {
		user.AvatarURL = req.AvatarURL
	}
	if req.Bio != "" {
		user.Bio = req.Bio
	}
	if req.City != "" {
		user.City = req.City
	}
	if req.Interests != nil {
		user.Interests = req.Interests
	}

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Follow 关注用户，重复关注幂等，被关注者收到通知
func (s *UserService) Follow(followerID, followeeID uint) error {
	if followerID == followeeID {
		return ErrSelfFollow
	}

	follower, err := s.UserRepo.GetByID(followerID)
	if err != nil {
		return ErrUserNotFound
	}
	if _, err := s.UserRepo.GetByID(followeeID); err != nil {
		return ErrUserNotFound
	}

	already, err := s.UserRepo.IsFollowing(followerID, followeeID)
	if err != nil {
		return err
	}

	if err := s.UserRepo.Follow(followerID, followeeID); err != nil {
		return err
	}

	if !already {
		notification := &models.Notification{
			UserID:  followeeID,
			Type:    models.NotificationTypeFollow,
			Message: follower.Name + " started following you",
			Data:    map[string]any{"follower_id": followerID},
		}
		if err := s.NotificationRepo.Create(notification); err != nil {
			return err
		}
	}
	return nil
}

// Unfollow 取消关注
func (s *UserService) Unfollow(followerID, followeeID uint) error {
	return s.UserRepo.Unfollow(followerID, followeeID)
}

func (s *UserService) Followers(userID uint, page, limit int) ([]models.User, Pagination, error) {
	page, limit, offset := NormalizePage(page, limit)
	users, total, err := s.UserRepo.Followers(userID, limit, offset)
	if err != nil {
		return nil, Pagination{}, err
	}
	return users, NewPagination(page, limit, total), nil
}

func (s *UserService) Following(userID uint, page, limit int) ([]models.User, Pagination, error) {
	page, limit, offset := NormalizePage(page, limit)
	users, total, err := s.UserRepo.Following(userID, limit, offset)
	if err != nil {
		return nil, Pagination{}, err
	}
	return users, NewPagination(page, limit, total), nil
}
