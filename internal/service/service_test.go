package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"shareit/internal/database"
	"shareit/internal/events"
	"shareit/internal/models"
)

type testEnv struct {
	db       *database.DB
	bus      *events.EventBus
	users    *UserService
	items    *ItemService
	bookings *BookingService
	requests *RequestService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := zerolog.Nop()
	db, err := database.NewDB(":memory:", &logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	bus := events.NewEventBus()
	return &testEnv{
		db:       db,
		bus:      bus,
		users:    NewUserService(db, &logger),
		items:    NewItemService(db, db, db, db, db, &logger),
		bookings: NewBookingService(db, db, db, bus, false, &logger),
		requests: NewRequestService(db, db, db, &logger),
	}
}

func (e *testEnv) user(t *testing.T, name, email string) *models.User {
	t.Helper()
	user := &models.User{Name: name, Email: email}
	require.NoError(t, e.users.Create(context.Background(), user))
	return user
}

func (e *testEnv) item(t *testing.T, ownerID int64, name string, available bool) *models.Item {
	t.Helper()
	item, err := e.items.Create(context.Background(), models.ItemCreate{
		Name:        name,
		Description: name + " description",
		Available:   &available,
	}, ownerID)
	require.NoError(t, err)
	return item
}

func (e *testEnv) booking(t *testing.T, itemID, bookerID int64, start, end time.Time) *models.Booking {
	t.Helper()
	booking, err := e.bookings.Create(context.Background(), models.BookingCreate{
		ItemID: itemID,
		Start:  start,
		End:    end,
	}, bookerID)
	require.NoError(t, err)
	return booking
}

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }
