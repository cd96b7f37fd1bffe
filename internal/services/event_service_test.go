package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sarcaxticlarka/urbanmeet/internal/models"
	"github.com/sarcaxticlarka/urbanmeet/internal/repositories"
)

func newEventService(db *gorm.DB) *EventService {
	return NewEventService(
		repositories.NewEventRepository(db),
		repositories.NewGroupRepository(db),
	)
}

func TestEventService_Create_WithGroup(t *testing.T) {
	db := newTestDB(t)
	svc := newEventService(db)

	owner := createTestUser(t, db, "owner@example.com", "Owner")
	group := createTestGroup(t, db, owner.ID, "Go Meetup", "Berlin")

	event, err := svc.Create(owner.ID, &CreateEventRequest{
		GroupID:  group.ID,
		Title:    "Monthly Talk",
		StartsAt: time.Now().Add(24 * time.Hour),
		City:     "Berlin",
		Tags:     []string{"go", "talks"},
	})
	require.NoError(t, err)
	assert.Equal(t, group.ID, event.GroupID)
	require.NotNil(t, event.Group)
	assert.Equal(t, "Go Meetup", event.Group.Name)
}

func TestEventService_Create_AutoGroup(t *testing.T) {
	db := newTestDB(t)
	svc := newEventService(db)

	creator := createTestUser(t, db, "creator@example.com", "Creator")

	event, err := svc.Create(creator.ID, &CreateEventRequest{
		Title:    "Street Food Tour",
		StartsAt: time.Now().Add(24 * time.Hour),
		City:     "Lisbon",
	})
	require.NoError(t, err)
	require.NotNil(t, event.Group)
	assert.Equal(t, "Street Food Tour Group", event.Group.Name)
	assert.Equal(t, creator.ID, event.Group.OwnerID)
	assert.Equal(t, "Lisbon", event.Group.City)

	// Creator becomes a member of the auto-created group
	isMember, err := svc.GroupRepo.IsMember(event.GroupID, creator.ID)
	require.NoError(t, err)
	assert.True(t, isMember)
}

func TestEventService_Create_UnknownGroup(t *testing.T) {
	db := newTestDB(t)
	svc := newEventService(db)

	creator := createTestUser(t, db, "creator@example.com", "Creator")

	_, err := svc.Create(creator.ID, &CreateEventRequest{
		GroupID:  9999,
		Title:    "Ghost Event",
		StartsAt: time.Now().Add(time.Hour),
	})
	assert.ErrorIs(t, err, ErrGroupNotFound)
}

func TestEventService_UpdateDelete_Ownership(t *testing.T) {
	db := newTestDB(t)
	svc := newEventService(db)

	owner := createTestUser(t, db, "owner@example.com", "Owner")
	stranger := createTestUser(t, db, "stranger@example.com", "Stranger")
	group := createTestGroup(t, db, owner.ID, "Go Meetup", "Berlin")
	event := createTestEvent(t, db, group.ID, "Monthly Talk", "Berlin", time.Now().Add(time.Hour))

	t.Run("non-owner cannot update", func(t *testing.T) {
		_, err := svc.Update(event.ID, stranger.ID, &UpdateEventRequest{Title: "Hijacked"})
		assert.ErrorIs(t, err, ErrNotOwner)
	})

	t.Run("non-owner cannot delete", func(t *testing.T) {
		err := svc.Delete(event.ID, stranger.ID)
		assert.ErrorIs(t, err, ErrNotOwner)
	})

	t.Run("owner updates partial fields", func(t *testing.T) {
		capacity := 50
		updated, err := svc.Update(event.ID, owner.ID, &UpdateEventRequest{
			Description: "Lightning talks",
			Capacity:    &capacity,
		})
		require.NoError(t, err)
		assert.Equal(t, "Monthly Talk", updated.Title)
		assert.Equal(t, "Lightning talks", updated.Description)
		assert.Equal(t, 50, updated.Capacity)
	})

	t.Run("owner deletes", func(t *testing.T) {
		require.NoError(t, svc.Delete(event.ID, owner.ID))
		_, err := svc.Get(event.ID)
		assert.ErrorIs(t, err, ErrEventNotFound)
	})
}

func TestEventService_RSVP(t *testing.T) {
	db := newTestDB(t)
	svc := newEventService(db)
	notificationRepo := repositories.NewNotificationRepository(db)

	owner := createTestUser(t, db, "owner@example.com", "Owner")
	attendee := createTestUser(t, db, "attendee@example.com", "Attendee")
	group := createTestGroup(t, db, owner.ID, "Go Meetup", "Berlin")
	event := createTestEvent(t, db, group.ID, "Monthly Talk", "Berlin", time.Now().Add(time.Hour))

	t.Run("going creates attendee, membership and notification", func(t *testing.T) {
		att, err := svc.RSVP(event.ID, attendee.ID, models.RSVPGoing)
		require.NoError(t, err)
		assert.Equal(t, models.RSVPGoing, att.Status)

		isMember, err := svc.GroupRepo.IsMember(group.ID, attendee.ID)
		require.NoError(t, err)
		assert.True(t, isMember)

		notifications, err := notificationRepo.List(attendee.ID, 10, false)
		require.NoError(t, err)
		require.Len(t, notifications, 1)
		assert.Equal(t, models.NotificationTypeRSVP, notifications[0].Type)
		assert.Contains(t, notifications[0].Message, "going")
	})

	t.Run("repeat RSVP keeps a single row", func(t *testing.T) {
		_, err := svc.RSVP(event.ID, attendee.ID, models.RSVPGoing)
		require.NoError(t, err)

		var count int64
		require.NoError(t, db.Model(&models.EventAttendee{}).
			Where("event_id = ? AND user_id = ?", event.ID, attendee.ID).
			Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("status switches via upsert", func(t *testing.T) {
		att, err := svc.RSVP(event.ID, attendee.ID, models.RSVPInterested)
		require.NoError(t, err)
		assert.Equal(t, models.RSVPInterested, att.Status)

		att, err = svc.RSVP(event.ID, attendee.ID, models.RSVPCancelled)
		require.NoError(t, err)
		assert.Equal(t, models.RSVPCancelled, att.Status)
	})

	t.Run("cancelled does not notify", func(t *testing.T) {
		before, err := notificationRepo.UnreadCount(attendee.ID)
		require.NoError(t, err)

		_, err = svc.RSVP(event.ID, attendee.ID, models.RSVPCancelled)
		require.NoError(t, err)

		after, err := notificationRepo.UnreadCount(attendee.ID)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("invalid status", func(t *testing.T) {
		_, err := svc.RSVP(event.ID, attendee.ID, "maybe")
		assert.ErrorIs(t, err, ErrInvalidRSVPStatus)
	})

	t.Run("unknown event", func(t *testing.T) {
		_, err := svc.RSVP(9999, attendee.ID, models.RSVPGoing)
		assert.ErrorIs(t, err, ErrEventNotFound)
	})
}

func TestEventService_UnRSVP(t *testing.T) {
	db := newTestDB(t)
	svc := newEventService(db)

	owner := createTestUser(t, db, "owner@example.com", "Owner")
	attendee := createTestUser(t, db, "attendee@example.com", "Attendee")
	group := createTestGroup(t, db, owner.ID, "Go Meetup", "Berlin")
	event := createTestEvent(t, db, group.ID, "Monthly Talk", "Berlin", time.Now().Add(time.Hour))

	_, err := svc.RSVP(event.ID, attendee.ID, models.RSVPGoing)
	require.NoError(t, err)

	require.NoError(t, svc.UnRSVP(event.ID, attendee.ID))

	attendees, err := svc.Attendees(event.ID)
	require.NoError(t, err)
	assert.Empty(t, attendees)

	// Membership gained via RSVP stays
	isMember, err := svc.GroupRepo.IsMember(group.ID, attendee.ID)
	require.NoError(t, err)
	assert.True(t, isMember)
}

func TestEventService_Get_Counts(t *testing.T) {
	db := newTestDB(t)
	svc := newEventService(db)

	owner := createTestUser(t, db, "owner@example.com", "Owner")
	group := createTestGroup(t, db, owner.ID, "Go Meetup", "Berlin")
	event := createTestEvent(t, db, group.ID, "Monthly Talk", "Berlin", time.Now().Add(time.Hour))

	going := createTestUser(t, db, "going@example.com", "Going")
	interested := createTestUser(t, db, "interested@example.com", "Interested")

	_, err := svc.RSVP(event.ID, going.ID, models.RSVPGoing)
	require.NoError(t, err)
	_, err = svc.RSVP(event.ID, interested.ID, models.RSVPInterested)
	require.NoError(t, err)

	detail, err := svc.Get(event.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), detail.GoingCount)
	assert.Equal(t, int64(1), detail.InterestedCount)
}

func TestEventService_List(t *testing.T) {
	db := newTestDB(t)
	svc := newEventService(db)

	owner := createTestUser(t, db, "owner@example.com", "Owner")
	berlin := createTestGroup(t, db, owner.ID, "Berlin Hikers", "Berlin")
	lisbon := createTestGroup(t, db, owner.ID, "Lisbon Surfers", "Lisbon")

	now := time.Now()
	createTestEvent(t, db, berlin.ID, "Forest Hike", "Berlin", now.Add(24*time.Hour))
	createTestEvent(t, db, berlin.ID, "Night Hike", "Berlin", now.Add(48*time.Hour))
	createTestEvent(t, db, lisbon.ID, "Sunrise Surf", "Lisbon", now.Add(24*time.Hour))

	t.Run("city filter", func(t *testing.T) {
		list, err := svc.List(EventListFilter{City: "Berlin"})
		require.NoError(t, err)
		assert.Len(t, list.Events, 2)
		assert.Equal(t, int64(2), list.Pagination.Total)
	})

	t.Run("date window", func(t *testing.T) {
		from := now.Add(36 * time.Hour)
		list, err := svc.List(EventListFilter{From: &from})
		require.NoError(t, err)
		require.Len(t, list.Events, 1)
		assert.Equal(t, "Night Hike", list.Events[0].Title)
	})

	t.Run("owner filter", func(t *testing.T) {
		list, err := svc.List(EventListFilter{OwnerID: owner.ID})
		require.NoError(t, err)
		assert.Len(t, list.Events, 3)
	})

	t.Run("ordered by start time", func(t *testing.T) {
		list, err := svc.List(EventListFilter{})
		require.NoError(t, err)
		require.Len(t, list.Events, 3)
		for i := 1; i < len(list.Events); i++ {
			assert.False(t, list.Events[i].StartsAt.Before(list.Events[i-1].StartsAt))
		}
	})

	t.Run("search matches group name too", func(t *testing.T) {
		list, err := svc.List(EventListFilter{Search: "Surfers"})
		require.NoError(t, err)
		require.Len(t, list.Events, 1)
		assert.Equal(t, "Sunrise Surf", list.Events[0].Title)
	})

	t.Run("zero hits fall back to loose search", func(t *testing.T) {
		// No hikes in Lisbon, but the loose fallback drops the filters
		list, err := svc.List(EventListFilter{City: "Lisbon", Search: "Hike"})
		require.NoError(t, err)
		assert.Empty(t, list.Events)
		assert.NotNil(t, list.Events)
		assert.NotEmpty(t, list.RelatedEvents)
	})

	t.Run("no fallback without search", func(t *testing.T) {
		list, err := svc.List(EventListFilter{City: "Atlantis"})
		require.NoError(t, err)
		assert.Empty(t, list.Events)
		assert.Empty(t, list.RelatedEvents)
	})

	t.Run("pagination", func(t *testing.T) {
		list, err := svc.List(EventListFilter{Page: 1, Limit: 2})
		require.NoError(t, err)
		assert.Len(t, list.Events, 2)
		assert.Equal(t, int64(3), list.Pagination.Total)
		assert.Equal(t, 2, list.Pagination.TotalPages)

		list, err = svc.List(EventListFilter{Page: 2, Limit: 2})
		require.NoError(t, err)
		assert.Len(t, list.Events, 1)
	})
}
