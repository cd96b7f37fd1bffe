package services

import (
	"errors"
	"strings"

	"github.com/sarcaxticlarka/urbanmeet/internal/models"
	"github.com/sarcaxticlarka/urbanmeet/internal/repositories"
)

type CommentService struct {
	CommentRepo *repositories.CommentRepository
	EventRepo   *repositories.EventRepository
}

func NewCommentService(commentRepo *repositories.CommentRepository, eventRepo *repositories.EventRepository) *CommentService {
	return &CommentService{
		CommentRepo: commentRepo,
		EventRepo:   eventRepo,
	}
}

// CreateCommentRequest 发表评论请求
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

func (s *CommentService) ListByEvent(eventID uint, page, limit int) ([]models.Comment, Pagination, error) {
	if _, err := s.EventRepo.GetByID(eventID); err != nil {
		return nil, Pagination{}, ErrEventNotFound
	}

	page, limit, offset := NormalizePage(page, limit)
	comments, total, err := s.CommentRepo.ListByEvent(eventID, limit, offset)
	if err != nil {
		return nil, Pagination{}, err
	}
	return comments, NewPagination(page, limit, total), nil
}

func (s *CommentService) Create(eventID, userID uint, req *CreateCommentRequest) (*models.Comment, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, errors.New("comment content cannot be empty")
	}

	if _, err := s.EventRepo.GetByID(eventID); err != nil {
		return nil, ErrEventNotFound
	}

	comment := &models.Comment{
		EventID: eventID,
		UserID:  userID,
		Content: content,
	}
	if err := s.CommentRepo.Create(comment); err != nil {
		return nil, err
	}
	return comment, nil
}
