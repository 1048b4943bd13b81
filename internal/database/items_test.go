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

func TestItemCRUD(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	owner := mustCreateUser(t, db, "Owner", "owner@example.com")

	item := &models.Item{
		Name:        "Drill",
		Description: "Cordless drill",
		Available:   true,
		OwnerID:     owner.ID,
	}
	require.NoError(t, db.CreateItem(ctx, item))
	assert.NotZero(t, item.ID)

	found, err := db.GetItemByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Drill", found.Name)
	assert.True(t, found.Available)
	assert.Nil(t, found.RequestID)

	found.Available = false
	found.Description = "Cordless drill, battery missing"
	require.NoError(t, db.UpdateItem(ctx, found))

	updated, err := db.GetItemByID(ctx, item.ID)
	require.NoError(t, err)
	assert.False(t, updated.Available)
	assert.Equal(t, "Cordless drill, battery missing", updated.Description)
}

func TestItem_NotFound(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()

	_, err := db.GetItemByID(ctx, 99)
	assert.True(t, domain.IsNotFound(err))
	assert.True(t, domain.IsNotFound(db.UpdateItem(ctx, &models.Item{ID: 99, Name: "x", Description: "x"})))
}

func TestListItemsByOwner(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	owner := mustCreateUser(t, db, "Owner", "owner@example.com")
	other := mustCreateUser(t, db, "Other", "other@example.com")

	first := mustCreateItem(t, db, owner.ID, "Drill", true)
	second := mustCreateItem(t, db, owner.ID, "Saw", true)
	mustCreateItem(t, db, other.ID, "Hammer", true)

	items, err := db.ListItemsByOwner(ctx, owner.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, first.ID, items[0].ID)
	assert.Equal(t, second.ID, items[1].ID)

	// Pagination
	items, err = db.ListItemsByOwner(ctx, owner.ID, 1, 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, second.ID, items[0].ID)
}

func TestSearchItems(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	owner := mustCreateUser(t, db, "Owner", "owner@example.com")

	drill := &models.Item{Name: "DRILL", Description: "heavy duty", Available: true, OwnerID: owner.ID}
	require.NoError(t, db.CreateItem(ctx, drill))
	saw := &models.Item{Name: "Saw", Description: "for drilling... no", Available: true, OwnerID: owner.ID}
	require.NoError(t, db.CreateItem(ctx, saw))
	hidden := &models.Item{Name: "drill press", Description: "broken", Available: false, OwnerID: owner.ID}
	require.NoError(t, db.CreateItem(ctx, hidden))

	// Case-insensitive, matches name or description, skips unavailable.
	items, err := db.SearchItems(ctx, "dRiLl", 10, 0)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, drill.ID, items[0].ID)
	assert.Equal(t, saw.ID, items[1].ID)
}

func TestListItemsByRequestIDs(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	owner := mustCreateUser(t, db, "Owner", "owner@example.com")
	requester := mustCreateUser(t, db, "Requester", "req@example.com")

	request := &models.ItemRequest{Description: "need a drill", RequesterID: requester.ID, Created: time.Now().UTC()}
	require.NoError(t, db.CreateRequest(ctx, request))

	item := &models.Item{Name: "Drill", Description: "answers the request", Available: true, OwnerID: owner.ID, RequestID: &request.ID}
	require.NoError(t, db.CreateItem(ctx, item))
	mustCreateItem(t, db, owner.ID, "Unrelated", true)

	items, err := db.ListItemsByRequestIDs(ctx, []int64{request.ID})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, item.ID, items[0].ID)
	require.NotNil(t, items[0].RequestID)
	assert.Equal(t, request.ID, *items[0].RequestID)

	items, err = db.ListItemsByRequestIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, items)
}
