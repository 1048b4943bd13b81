package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shareit/internal/domain"
	"shareit/internal/events"
	"shareit/internal/models"
)

func TestBookingService_Create(t *testing.T) {
	env := newTestEnv(t)
	owner := env.user(t, "Owner", "owner@example.com")
	booker := env.user(t, "Booker", "booker@example.com")
	item := env.item(t, owner.ID, "Drill", true)

	now := time.Now().UTC()
	booking := env.booking(t, item.ID, booker.ID, now.Add(time.Hour), now.Add(2*time.Hour))

	assert.Equal(t, models.StatusWaiting, booking.Status)
	assert.Equal(t, "Drill", booking.ItemName)
	assert.Equal(t, owner.ID, booking.ItemOwnerID)
	assert.Equal(t, "Booker", booking.BookerName)
}

func TestBookingService_CreateRejections(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.user(t, "Owner", "owner@example.com")
	booker := env.user(t, "Booker", "booker@example.com")
	unavailable := env.item(t, owner.ID, "Broken saw", false)
	item := env.item(t, owner.ID, "Drill", true)

	now := time.Now().UTC()
	in := models.BookingCreate{ItemID: unavailable.ID, Start: now, End: now.Add(time.Hour)}
	_, err := env.bookings.Create(ctx, in, booker.ID)
	assert.True(t, domain.IsValidation(err))

	// The owner booking their own item reads as not found.
	in = models.BookingCreate{ItemID: item.ID, Start: now, End: now.Add(time.Hour)}
	_, err = env.bookings.Create(ctx, in, owner.ID)
	assert.True(t, domain.IsNotFound(err))

	// Unknown item and unknown booker.
	_, err = env.bookings.Create(ctx, models.BookingCreate{ItemID: 99, Start: now, End: now.Add(time.Hour)}, booker.ID)
	assert.True(t, domain.IsNotFound(err))
	_, err = env.bookings.Create(ctx, in, 99)
	assert.True(t, domain.IsNotFound(err))
}

func TestBookingService_TimeWindowEnforcement(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.user(t, "Owner", "owner@example.com")
	booker := env.user(t, "Booker", "booker@example.com")
	item := env.item(t, owner.ID, "Drill", true)

	logger := zerolog.Nop()
	strict := NewBookingService(env.db, env.db, env.db, env.bus, true, &logger)

	now := time.Now().UTC()
	cases := []struct {
		name       string
		start, end time.Time
	}{
		{"start in the past", now.Add(-time.Hour), now.Add(time.Hour)},
		{"end in the past", now.Add(-2 * time.Hour), now.Add(-time.Hour)},
		{"end not after start", now.Add(2 * time.Hour), now.Add(time.Hour)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := strict.Create(ctx, models.BookingCreate{ItemID: item.ID, Start: tc.start, End: tc.end}, booker.ID)
			assert.True(t, domain.IsValidation(err))
		})
	}

	// The default service accepts the same window.
	_, err := env.bookings.Create(ctx, models.BookingCreate{
		ItemID: item.ID, Start: now.Add(-time.Hour), End: now.Add(time.Hour),
	}, booker.ID)
	assert.NoError(t, err)
}

func TestBookingService_GetByIDVisibility(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.user(t, "Owner", "owner@example.com")
	booker := env.user(t, "Booker", "booker@example.com")
	stranger := env.user(t, "Stranger", "stranger@example.com")
	item := env.item(t, owner.ID, "Drill", true)

	now := time.Now().UTC()
	booking := env.booking(t, item.ID, booker.ID, now, now.Add(time.Hour))

	for _, id := range []int64{owner.ID, booker.ID} {
		found, err := env.bookings.GetByID(ctx, booking.ID, id)
		require.NoError(t, err)
		assert.Equal(t, booking.ID, found.ID)
	}

	_, err := env.bookings.GetByID(ctx, booking.ID, stranger.ID)
	assert.True(t, domain.IsNotFound(err))
}

func TestBookingService_UpdateStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.user(t, "Owner", "owner@example.com")
	booker := env.user(t, "Booker", "booker@example.com")
	item := env.item(t, owner.ID, "Drill", true)

	now := time.Now().UTC()
	booking := env.booking(t, item.ID, booker.ID, now, now.Add(time.Hour))

	// The booker cannot decide; not found, not forbidden.
	_, err := env.bookings.UpdateStatus(ctx, booking.ID, booker.ID, true)
	assert.True(t, domain.IsNotFound(err))

	approved, err := env.bookings.UpdateStatus(ctx, booking.ID, owner.ID, true)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, approved.Status)

	// Approving twice is the only guarded transition.
	_, err = env.bookings.UpdateStatus(ctx, booking.ID, owner.ID, true)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Equal(t, "booking is already approved", err.Error())

	// Rejecting an approved booking is accepted.
	rejected, err := env.bookings.UpdateStatus(ctx, booking.ID, owner.ID, false)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, rejected.Status)

	// And approving after a rejection is accepted too.
	approved, err = env.bookings.UpdateStatus(ctx, booking.ID, owner.ID, true)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, approved.Status)
}

func TestBookingService_ListValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	booker := env.user(t, "Booker", "booker@example.com")

	_, err := env.bookings.ListForBooker(ctx, "ALL", 42, 0, 10)
	assert.True(t, domain.IsNotFound(err))

	_, err = env.bookings.ListForBooker(ctx, "ALL", booker.ID, -1, 10)
	assert.True(t, domain.IsValidation(err))

	_, err = env.bookings.ListForBooker(ctx, "SOMETHING", booker.ID, 0, 10)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Equal(t, "Unknown state: SOMETHING", err.Error())

	// Case-insensitive state parsing.
	bookings, err := env.bookings.ListForBooker(ctx, "future", booker.ID, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, bookings)
}

func TestBookingService_ListsAndEvents(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.user(t, "Owner", "owner@example.com")
	booker := env.user(t, "Booker", "booker@example.com")
	item := env.item(t, owner.ID, "Drill", true)

	var published []string
	for _, eventType := range []string{events.EventBookingCreated, events.EventBookingApproved, events.EventBookingRejected} {
		eventType := eventType
		env.bus.Subscribe(eventType, func(event *events.Event) error {
			published = append(published, event.Type)
			return nil
		})
	}

	now := time.Now().UTC()
	booking := env.booking(t, item.ID, booker.ID, now, now.Add(time.Hour))
	_, err := env.bookings.UpdateStatus(ctx, booking.ID, owner.ID, true)
	require.NoError(t, err)

	assert.Equal(t, []string{events.EventBookingCreated, events.EventBookingApproved}, published)

	forBooker, err := env.bookings.ListForBooker(ctx, "ALL", booker.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, forBooker, 1)

	forOwner, err := env.bookings.ListForOwner(ctx, "ALL", owner.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, forOwner, 1)

	all, err := env.bookings.ListAllForUser(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, all, 1)
}
