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

func TestRequestCreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	requester := mustCreateUser(t, db, "Requester", "req@example.com")

	request := &models.ItemRequest{
		Description: "need a drill",
		RequesterID: requester.ID,
		Created:     time.Now().UTC(),
	}
	require.NoError(t, db.CreateRequest(ctx, request))
	assert.NotZero(t, request.ID)

	found, err := db.GetRequestByID(ctx, request.ID)
	require.NoError(t, err)
	assert.Equal(t, "need a drill", found.Description)
	assert.Equal(t, requester.ID, found.RequesterID)

	_, err = db.GetRequestByID(ctx, 999)
	assert.True(t, domain.IsNotFound(err))
}

func TestListRequestsByRequester_NewestFirst(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	requester := mustCreateUser(t, db, "Requester", "req@example.com")

	now := time.Now().UTC()
	older := &models.ItemRequest{Description: "old", RequesterID: requester.ID, Created: now.Add(-time.Hour)}
	require.NoError(t, db.CreateRequest(ctx, older))
	newer := &models.ItemRequest{Description: "new", RequesterID: requester.ID, Created: now}
	require.NoError(t, db.CreateRequest(ctx, newer))

	requests, err := db.ListRequestsByRequester(ctx, requester.ID)
	require.NoError(t, err)
	require.Len(t, requests, 2)
	assert.Equal(t, newer.ID, requests[0].ID)
	assert.Equal(t, older.ID, requests[1].ID)
}

func TestListRequestsExcluding(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	mine := mustCreateUser(t, db, "Mine", "mine@example.com")
	other := mustCreateUser(t, db, "Other", "other@example.com")

	now := time.Now().UTC()
	require.NoError(t, db.CreateRequest(ctx, &models.ItemRequest{Description: "mine", RequesterID: mine.ID, Created: now}))
	theirs := &models.ItemRequest{Description: "theirs", RequesterID: other.ID, Created: now}
	require.NoError(t, db.CreateRequest(ctx, theirs))

	requests, err := db.ListRequestsExcluding(ctx, mine.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, theirs.ID, requests[0].ID)
}

func TestCommentsForItem(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	owner := mustCreateUser(t, db, "Owner", "owner@example.com")
	author := mustCreateUser(t, db, "Author", "author@example.com")
	item := mustCreateItem(t, db, owner.ID, "Drill", true)

	comment := &models.Comment{
		ItemID:   item.ID,
		AuthorID: author.ID,
		Text:     "great drill",
		Created:  time.Now().UTC(),
	}
	require.NoError(t, db.CreateComment(ctx, comment))
	assert.NotZero(t, comment.ID)

	comments, err := db.ListCommentsByItem(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "great drill", comments[0].Text)
	assert.Equal(t, "Author", comments[0].AuthorName)

	comments, err = db.ListCommentsByItem(ctx, 999)
	require.NoError(t, err)
	assert.Empty(t, comments)
}
