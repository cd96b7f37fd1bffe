package services

import (
	"github.com/sarcaxticlarka/urbanmeet/internal/models"
	"github.com/sarcaxticlarka/urbanmeet/internal/repositories"
)

type SearchService struct {
	EventRepo *repositories.EventRepository
	GroupRepo *repositories.GroupRepository
	UserRepo  *repositories.UserRepository
}

func NewSearchService(
	eventRepo *repositories.EventRepository,
	groupRepo *repositories.GroupRepository,
	userRepo *repositories.UserRepository,
) *SearchService {
	return &SearchService{
		EventRepo: eventRepo,
		GroupRepo: groupRepo,
		UserRepo:  userRepo,
	}
}

// SearchResult 综合搜索结果
// Suggestions 为活动零命中时的宽松兜底；分页元数据跟随活动结果集
type SearchResult struct {
	Events      []models.Event `json:"events"`
	Groups      []models.Group `json:"groups"`
	Users       []models.User  `json:"users"`
	Suggestions []models.Event `json:"suggestions,omitempty"`
	Pagination  Pagination     `json:"pagination"`
}

func (s *SearchService) Search(query string, page, limit int) (*SearchResult, error) {
	page, limit, offset := NormalizePage(page, limit)

	events, total, err := s.EventRepo.List(repositories.EventFilter{
		Search: query,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, err
	}

	groups, _, err := s.GroupRepo.List(repositories.GroupFilter{
		Search: query,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}

	users, _, err := s.UserRepo.Search(repositories.TokenizeQuery(query), limit, 0)
	if err != nil {
		return nil, err
	}

	result := &SearchResult{
		Events:     events,
		Groups:     groups,
		Users:      users,
		Pagination: NewPagination(page, limit, total),
	}
	if result.Events == nil {
		result.Events = []models.Event{}
	}
	if result.Groups == nil {
		result.Groups = []models.Group{}
	}
	if result.Users == nil {
		result.Users = []models.User{}
	}

	if total == 0 && query != "" {
		suggestions, err := s.EventRepo.SearchLoose(query, relatedEventsLimit)
		if err != nil {
			return nil, err
		}
		result.Suggestions = suggestions
	}

	return result, nil
}
