package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shareit/internal/domain"
	"shareit/internal/models"
)

func TestUserCRUD(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()

	user := &models.User{Name: "Alice", Email: "alice@example.com"}
	require.NoError(t, db.CreateUser(ctx, user))
	assert.NotZero(t, user.ID)

	found, err := db.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", found.Name)
	assert.Equal(t, "alice@example.com", found.Email)

	found.Name = "Alice B"
	found.Email = "alice.b@example.com"
	require.NoError(t, db.UpdateUser(ctx, found))

	updated, err := db.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice B", updated.Name)
	assert.Equal(t, "alice.b@example.com", updated.Email)

	users, err := db.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)

	require.NoError(t, db.DeleteUser(ctx, user.ID))
	_, err = db.GetUserByID(ctx, user.ID)
	assert.True(t, domain.IsNotFound(err))
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	mustCreateUser(t, db, "Alice", "alice@example.com")

	err := db.CreateUser(ctx, &models.User{Name: "Other", Email: "alice@example.com"})
	assert.True(t, domain.IsAlreadyExists(err))
}

func TestUpdateUser_DuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	mustCreateUser(t, db, "Alice", "alice@example.com")
	bob := mustCreateUser(t, db, "Bob", "bob@example.com")

	bob.Email = "alice@example.com"
	err := db.UpdateUser(ctx, bob)
	assert.True(t, domain.IsAlreadyExists(err))
}

func TestUser_NotFound(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()

	_, err := db.GetUserByID(ctx, 42)
	assert.True(t, domain.IsNotFound(err))

	assert.True(t, domain.IsNotFound(db.DeleteUser(ctx, 42)))
	assert.True(t, domain.IsNotFound(db.UpdateUser(ctx, &models.User{ID: 42, Name: "x", Email: "x@x"})))
}

func TestDeleteUser_LeavesDependentsInPlace(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	owner := mustCreateUser(t, db, "Owner", "owner@example.com")
	booker := mustCreateUser(t, db, "Booker", "booker@example.com")
	item := mustCreateItem(t, db, owner.ID, "Drill", true)

	now := time.Now().UTC()
	booking := mustCreateBooking(t, db, item, booker.ID, now.Add(-2*time.Hour), now.Add(-time.Hour), models.StatusApproved)

	comment := &models.Comment{ItemID: item.ID, AuthorID: booker.ID, Text: "works", Created: now}
	require.NoError(t, db.CreateComment(ctx, comment))

	require.NoError(t, db.DeleteUser(ctx, booker.ID))

	// The booking survives with a blank booker name.
	found, err := db.GetBookingByID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, booker.ID, found.BookerID)
	assert.Equal(t, "", found.BookerName)

	comments, err := db.ListCommentsByItem(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "", comments[0].AuthorName)
}
