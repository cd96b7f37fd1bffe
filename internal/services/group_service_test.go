package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarcaxticlarka/urbanmeet/internal/models"
	"github.com/sarcaxticlarka/urbanmeet/internal/repositories"
)

func TestGroupService_Create(t *testing.T) {
	db := newTestDB(t)
	svc := NewGroupService(repositories.NewGroupRepository(db))

	owner := createTestUser(t, db, "owner@example.com", "Owner")

	group, err := svc.Create(owner.ID, &CreateGroupRequest{
		Name:        "Board Game Night",
		Description: "Weekly games",
		City:        "Berlin",
	})
	require.NoError(t, err)
	assert.Equal(t, owner.ID, group.OwnerID)

	// Creator joins as admin
	members, _, err := svc.Members(group.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, owner.ID, members[0].UserID)
	assert.Equal(t, models.RoleAdmin, members[0].Role)
}

func TestGroupService_Get(t *testing.T) {
	db := newTestDB(t)
	svc := NewGroupService(repositories.NewGroupRepository(db))

	owner := createTestUser(t, db, "owner@example.com", "Owner")
	group := createTestGroup(t, db, owner.ID, "Board Game Night", "Berlin")

	detail, err := svc.Get(group.ID)
	require.NoError(t, err)
	assert.Equal(t, "Board Game Night", detail.Name)
	assert.Equal(t, int64(1), detail.MemberCount)
	require.NotNil(t, detail.Owner)
	assert.Equal(t, "Owner", detail.Owner.Name)

	_, err = svc.Get(9999)
	assert.ErrorIs(t, err, ErrGroupNotFound)
}

func TestGroupService_UpdateDelete_OwnerOnly(t *testing.T) {
	db := newTestDB(t)
	svc := NewGroupService(repositories.NewGroupRepository(db))

	owner := createTestUser(t, db, "owner@example.com", "Owner")
	stranger := createTestUser(t, db, "stranger@example.com", "Stranger")
	group := createTestGroup(t, db, owner.ID, "Board Game Night", "Berlin")

	_, err := svc.Update(group.ID, stranger.ID, &UpdateGroupRequest{Name: "Hijacked"})
	assert.ErrorIs(t, err, ErrNotOwner)

	err = svc.Delete(group.ID, stranger.ID)
	assert.ErrorIs(t, err, ErrNotOwner)

	updated, err := svc.Update(group.ID, owner.ID, &UpdateGroupRequest{Description: "Now with dice"})
	require.NoError(t, err)
	assert.Equal(t, "Board Game Night", updated.Name)
	assert.Equal(t, "Now with dice", updated.Description)

	require.NoError(t, svc.Delete(group.ID, owner.ID))
	_, err = svc.Get(group.ID)
	assert.ErrorIs(t, err, ErrGroupNotFound)
}

func TestGroupService_JoinLeave(t *testing.T) {
	db := newTestDB(t)
	svc := NewGroupService(repositories.NewGroupRepository(db))

	owner := createTestUser(t, db, "owner@example.com", "Owner")
	member := createTestUser(t, db, "member@example.com", "Member")
	group := createTestGroup(t, db, owner.ID, "Board Game Night", "Berlin")

	t.Run("join is idempotent", func(t *testing.T) {
		require.NoError(t, svc.Join(group.ID, member.ID))
		require.NoError(t, svc.Join(group.ID, member.ID))

		var count int64
		require.NoError(t, db.Model(&models.GroupMember{}).
			Where("group_id = ? AND user_id = ?", group.ID, member.ID).
			Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("member leaves", func(t *testing.T) {
		require.NoError(t, svc.Leave(group.ID, member.ID))

		isMember, err := svc.GroupRepo.IsMember(group.ID, member.ID)
		require.NoError(t, err)
		assert.False(t, isMember)
	})

	t.Run("owner cannot leave own group", func(t *testing.T) {
		err := svc.Leave(group.ID, owner.ID)
		assert.ErrorIs(t, err, ErrOwnerCannotLeave)
	})

	t.Run("unknown group", func(t *testing.T) {
		assert.ErrorIs(t, svc.Join(9999, member.ID), ErrGroupNotFound)
		assert.ErrorIs(t, svc.Leave(9999, member.ID), ErrGroupNotFound)
	})
}

func TestGroupService_List(t *testing.T) {
	db := newTestDB(t)
	svc := NewGroupService(repositories.NewGroupRepository(db))

	owner := createTestUser(t, db, "owner@example.com", "Owner")
	createTestGroup(t, db, owner.ID, "Berlin Hikers", "Berlin")
	createTestGroup(t, db, owner.ID, "Berlin Readers", "Berlin")
	createTestGroup(t, db, owner.ID, "Lisbon Surfers", "Lisbon")

	t.Run("city filter", func(t *testing.T) {
		groups, p, err := svc.List("Berlin", "", 1, 10)
		require.NoError(t, err)
		assert.Len(t, groups, 2)
		assert.Equal(t, int64(2), p.Total)
	})

	t.Run("search is case-insensitive", func(t *testing.T) {
		groups, _, err := svc.List("", "hikers", 1, 10)
		require.NoError(t, err)
		require.Len(t, groups, 1)
		assert.Equal(t, "Berlin Hikers", groups[0].Name)
	})

	t.Run("pagination clamps limit", func(t *testing.T) {
		groups, p, err := svc.List("", "", 1, 2)
		require.NoError(t, err)
		assert.Len(t, groups, 2)
		assert.Equal(t, int64(3), p.Total)
		assert.Equal(t, 2, p.TotalPages)
	})
}
