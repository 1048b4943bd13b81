package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"shareit/internal/domain"
	"shareit/internal/models"
)

type RequestService struct {
	requests domain.RequestRepository
	users    domain.UserRepository
	items    domain.ItemRepository
	logger   zerolog.Logger
}

func NewRequestService(
	requests domain.RequestRepository,
	users domain.UserRepository,
	items domain.ItemRepository,
	logger *zerolog.Logger,
) *RequestService {
	return &RequestService{
		requests: requests,
		users:    users,
		items:    items,
		logger:   logger.With().Str("component", "request-service").Logger(),
	}
}

func (s *RequestService) Create(ctx context.Context, in models.RequestCreate, requesterID int64) (*models.ItemRequest, error) {
	if strings.TrimSpace(in.Description) == "" {
		return nil, domain.Validationf("request description is required")
	}
	if _, err := s.users.GetUserByID(ctx, requesterID); err != nil {
		return nil, err
	}

	request := &models.ItemRequest{
		Description: in.Description,
		RequesterID: requesterID,
		Created:     time.Now().UTC(),
	}
	if err := s.requests.CreateRequest(ctx, request); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("request_id", request.ID).Int64("requester_id", requesterID).Msg("item request created")
	return request, nil
}

func (s *RequestService) ListForUser(ctx context.Context, userID int64) ([]models.ItemRequestView, error) {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}

	requests, err := s.requests.ListRequestsByRequester(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]models.ItemRequestView, 0, len(requests))
	for _, request := range requests {
		items, err := s.items.ListItemsByRequestID(ctx, request.ID)
		if err != nil {
			return nil, err
		}
		views = append(views, newRequestView(request, items))
	}
	return views, nil
}

// ListAll returns the requests of everyone but the caller. Fulfilling
// items are fetched in one batch and grouped by request.
func (s *RequestService) ListAll(ctx context.Context, excludingUserID int64, from, size int) ([]models.ItemRequestView, error) {
	if _, err := s.users.GetUserByID(ctx, excludingUserID); err != nil {
		return nil, err
	}
	if err := checkPagination(from, size); err != nil {
		return nil, err
	}

	requests, err := s.requests.ListRequestsExcluding(ctx, excludingUserID, size, pageOffset(from, size))
	if err != nil {
		return nil, err
	}

	requestIDs := make([]int64, 0, len(requests))
	for _, request := range requests {
		requestIDs = append(requestIDs, request.ID)
	}
	allItems, err := s.items.ListItemsByRequestIDs(ctx, requestIDs)
	if err != nil {
		return nil, err
	}

	grouped := make(map[int64][]models.Item, len(requests))
	for _, item := range allItems {
		if item.RequestID == nil {
			continue
		}
		grouped[*item.RequestID] = append(grouped[*item.RequestID], item)
	}

	views := make([]models.ItemRequestView, 0, len(requests))
	for _, request := range requests {
		views = append(views, newRequestView(request, grouped[request.ID]))
	}
	return views, nil
}

func (s *RequestService) GetByID(ctx context.Context, requestID, userID int64) (*models.ItemRequestView, error) {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}

	request, err := s.requests.GetRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	items, err := s.items.ListItemsByRequestID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	view := newRequestView(*request, items)
	return &view, nil
}

func newRequestView(request models.ItemRequest, items []models.Item) models.ItemRequestView {
	if items == nil {
		items = []models.Item{}
	}
	return models.ItemRequestView{ItemRequest: request, Items: items}
}
