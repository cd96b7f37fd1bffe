package services

import (
	"github.com/sarcaxticlarka/urbanmeet/internal/models"
	"github.com/sarcaxticlarka/urbanmeet/internal/repositories"
)

type GroupService struct {
	GroupRepo *repositories.GroupRepository
}

func NewGroupService(groupRepo *repositories.GroupRepository) *GroupService {
	return &GroupService{GroupRepo: groupRepo}
}

// CreateGroupRequest 创建社群请求
type CreateGroupRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	City        string `json:"city"`
	CoverImage  string `json:"coverImage"`
}

// UpdateGroupRequest 更新社群请求，零值字段不改动
type UpdateGroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	City        string `json:"city"`
	CoverImage  string `json:"coverImage"`
}

// GroupDetail 社群详情，带成员数
type GroupDetail struct {
	*models.Group
	MemberCount int64 `json:"memberCount"`
}

func (s *GroupService) List(city, search string, page, limit int) ([]models.Group, Pagination, error) {
	page, limit, offset := NormalizePage(page, limit)

	groups, total, err := s.GroupRepo.List(repositories.GroupFilter{
		City:   city,
		Search: search,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, Pagination{}, err
	}
	return groups, NewPagination(page, limit, total), nil
}

func (s *GroupService) Get(id uint) (*GroupDetail, error) {
	group, err := s.GroupRepo.GetByID(id)
	if err != nil {
		return nil, ErrGroupNotFound
	}
	count, err := s.GroupRepo.MemberCount(id)
	if err != nil {
		return nil, err
	}
	return &GroupDetail{Group: group, MemberCount: count}, nil
}

// Create 创建社群，创建者成为 owner 和 admin 成员
func (s *GroupService) Create(ownerID uint, req *CreateGroupRequest) (*models.Group, error) {
	group := &models.Group{
		Name:        req.Name,
		Description: req.Description,
		City:        req.City,
		CoverImage:  req.CoverImage,
		OwnerID:     ownerID,
	}
	if err := s.GroupRepo.Create(group); err != nil {
		return nil, err
	}
	if err := s.GroupRepo.AddMember(group.ID, ownerID, models.RoleAdmin); err != nil {
		return nil, err
	}
	return group, nil
}

// Update 更新社群，仅 owner 可操作
func (s *GroupService) Update(groupID, userID uint, req *UpdateGroupRequest) (*models.Group, error) {
	group, err := s.GroupRepo.GetByID(groupID)
	if err != nil {
		return nil, ErrGroupNotFound
	}
	if group.OwnerID != userID {
		return nil, ErrNotOwner
	}

	if req.Name != "" {
		group.Name = req.Name
	}
	if req.Description != "" {
		group.Description = req.Description
	}
	if req.City != "" {
		group.City = req.City
	}
	if req.CoverImage != "" {
		group.CoverImage = req.CoverImage
	}

	if err := s.GroupRepo.Update(group); err != nil {
		return nil, err
	}
	return group, nil
}

// Delete 删除社群，仅 owner 可操作
func (s *GroupService) Delete(groupID, userID uint) error {
	group, err := s.GroupRepo.GetByID(groupID)
	if err != nil {
		return ErrGroupNotFound
	}
	if group.OwnerID != userID {
		return ErrNotOwner
	}
	return s.GroupRepo.Delete(groupID)
}

// Join 加入社群，幂等
func (s *GroupService) Join(groupID, userID uint) error {
	if _, err := s.GroupRepo.GetByID(groupID); err != nil {
		return ErrGroupNotFound
	}
	return s.GroupRepo.AddMember(groupID, userID, models.RoleMember)
}

// Leave 退出社群，owner 不能退出自己的社群
func (s *GroupService) Leave(groupID, userID uint) error {
	group, err := s.GroupRepo.GetByID(groupID)
	if err != nil {
		return ErrGroupNotFound
	}
	if group.OwnerID == userID {
		return ErrOwnerCannotLeave
	}
	return s.GroupRepo.RemoveMember(groupID, userID)
}

func (s *GroupService) Members(groupID uint, page, limit int) ([]models.GroupMember, Pagination, error) {
	page, limit, offset := NormalizePage(page, limit)
	members, total, err := s.GroupRepo.GetMembers(groupID, limit, offset)
	if err != nil {
		return nil, Pagination{}, err
	}
	return members, NewPagination(page, limit, total), nil
}
