package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"shareit/internal/domain"
	"shareit/internal/models"
)

const (
	maxItemNameLen        = 64
	maxItemDescriptionLen = 512
)

// ItemService owns the item catalog and its comment log. Comment
// eligibility is decided against the booking history.
type ItemService struct {
	items    domain.ItemRepository
	users    domain.UserRepository
	requests domain.RequestRepository
	bookings domain.BookingRepository
	comments domain.CommentRepository
	logger   zerolog.Logger
}

func NewItemService(
	items domain.ItemRepository,
	users domain.UserRepository,
	requests domain.RequestRepository,
	bookings domain.BookingRepository,
	comments domain.CommentRepository,
	logger *zerolog.Logger,
) *ItemService {
	return &ItemService{
		items:    items,
		users:    users,
		requests: requests,
		bookings: bookings,
		comments: comments,
		logger:   logger.With().Str("component", "item-service").Logger(),
	}
}

func (s *ItemService) Create(ctx context.Context, in models.ItemCreate, ownerID int64) (*models.Item, error) {
	if err := checkItemFields(in.Name, in.Description); err != nil {
		return nil, err
	}
	if in.Available == nil {
		return nil, domain.Validationf("item availability is required")
	}
	if _, err := s.users.GetUserByID(ctx, ownerID); err != nil {
		return nil, err
	}
	if in.RequestID != nil {
		if _, err := s.requests.GetRequestByID(ctx, *in.RequestID); err != nil {
			return nil, err
		}
	}

	item := &models.Item{
		Name:        in.Name,
		Description: in.Description,
		Available:   *in.Available,
		OwnerID:     ownerID,
		RequestID:   in.RequestID,
	}
	if err := s.items.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("item_id", item.ID).Int64("owner_id", ownerID).Msg("item created")
	return item, nil
}

// Update merges the supplied patch fields over the stored item. An
// absent field keeps its old value, never nulled.
func (s *ItemService) Update(ctx context.Context, patch models.ItemPatch, itemID, userID int64) (*models.Item, error) {
	item, err := s.items.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != userID {
		return nil, domain.NotFoundf("user with ID %d is not the owner of item %d", userID, itemID)
	}
	if patch.Empty() {
		return nil, domain.Validationf("no item fields to update")
	}

	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Description != nil {
		item.Description = *patch.Description
	}
	if patch.Available != nil {
		item.Available = *patch.Available
	}
	if err := checkItemFields(item.Name, item.Description); err != nil {
		return nil, err
	}

	if err := s.items.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("item_id", item.ID).Msg("item updated")
	return item, nil
}

func (s *ItemService) GetByID(ctx context.Context, itemID int64) (*models.Item, error) {
	return s.items.GetItemByID(ctx, itemID)
}

// GetView returns the item with its comments. The owner additionally
// sees the last and next booking; other viewers do not.
func (s *ItemService) GetView(ctx context.Context, itemID, viewerID int64) (*models.ItemView, error) {
	item, err := s.items.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	view := &models.ItemView{Item: *item}
	view.Comments, err = s.comments.ListCommentsByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if view.Comments == nil {
		view.Comments = []models.Comment{}
	}

	if item.OwnerID == viewerID {
		if err := s.attachBookings(ctx, view, time.Now()); err != nil {
			return nil, err
		}
	}
	return view, nil
}

func (s *ItemService) ListByOwner(ctx context.Context, ownerID int64, from, size int) ([]models.ItemView, error) {
	if err := checkPagination(from, size); err != nil {
		return nil, err
	}

	items, err := s.items.ListItemsByOwner(ctx, ownerID, size, pageOffset(from, size))
	if err != nil {
		return nil, err
	}
	return s.buildViews(ctx, items)
}

// Search matches the text against name or description of available
// items. A blank query short-circuits to an empty result set.
func (s *ItemService) Search(ctx context.Context, text string, from, size int) ([]models.ItemView, error) {
	if err := checkPagination(from, size); err != nil {
		return nil, err
	}
	if text == "" {
		return []models.ItemView{}, nil
	}

	items, err := s.items.SearchItems(ctx, text, size, pageOffset(from, size))
	if err != nil {
		return nil, err
	}
	return s.buildViews(ctx, items)
}

// AddComment appends a comment, gated by a completed approved booking
// of the item by the author.
func (s *ItemService) AddComment(ctx context.Context, itemID, authorID int64, text string) (*models.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.Validationf("comment text is required")
	}

	qualifying, err := s.bookings.ApprovedPastBookings(ctx, authorID, itemID, time.Now())
	if err != nil {
		return nil, err
	}
	if len(qualifying) == 0 {
		return nil, domain.Validationf("user with ID %d did not rent this item", authorID)
	}

	comment := &models.Comment{
		ItemID:     itemID,
		AuthorID:   authorID,
		AuthorName: qualifying[0].BookerName,
		Text:       text,
		Created:    time.Now().UTC(),
	}
	if err := s.comments.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("item_id", itemID).Int64("author_id", authorID).Msg("comment added")
	return comment, nil
}

func (s *ItemService) buildViews(ctx context.Context, items []models.Item) ([]models.ItemView, error) {
	now := time.Now()
	views := make([]models.ItemView, 0, len(items))
	for _, item := range items {
		view := models.ItemView{Item: item}

		comments, err := s.comments.ListCommentsByItem(ctx, item.ID)
		if err != nil {
			return nil, err
		}
		if comments == nil {
			comments = []models.Comment{}
		}
		view.Comments = comments

		if err := s.attachBookings(ctx, &view, now); err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *ItemService) attachBookings(ctx context.Context, view *models.ItemView, now time.Time) error {
	last, err := s.bookings.LastBookingForItem(ctx, view.ID, now)
	if err != nil {
		return err
	}
	next, err := s.bookings.NextBookingForItem(ctx, view.ID, now)
	if err != nil {
		return err
	}
	view.LastBooking = last.Short()
	view.NextBooking = next.Short()
	return nil
}

func checkItemFields(name, description string) error {
	if strings.TrimSpace(name) == "" {
		return domain.Validationf("item name is required")
	}
	if len(name) > maxItemNameLen {
		return domain.Validationf("item name is longer than %d characters", maxItemNameLen)
	}
	if strings.TrimSpace(description) == "" {
		return domain.Validationf("item description is required")
	}
	if len(description) > maxItemDescriptionLen {
		return domain.Validationf("item description is longer than %d characters", maxItemDescriptionLen)
	}
	return nil
}

// checkPagination rejects a negative first element or a non-positive
// page size.
func checkPagination(from, size int) error {
	if from < 0 {
		return domain.Validationf("invalid first page element: %d", from)
	}
	if size <= 0 {
		return domain.Validationf("invalid page size: %d", size)
	}
	return nil
}

// pageOffset converts the from parameter into a page-aligned offset:
// from selects the page from/size, not a literal row offset.
func pageOffset(from, size int) int {
	return (from / size) * size
}
