package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"shareit/internal/domain"
	"shareit/internal/events"
	"shareit/internal/models"
)

// BookingService drives the WAITING -> APPROVED | REJECTED workflow.
type BookingService struct {
	bookings          domain.BookingRepository
	items             domain.ItemRepository
	users             domain.UserRepository
	eventBus          domain.EventPublisher
	enforceTimeWindow bool
	logger            zerolog.Logger
}

func NewBookingService(
	bookings domain.BookingRepository,
	items domain.ItemRepository,
	users domain.UserRepository,
	eventBus domain.EventPublisher,
	enforceTimeWindow bool,
	logger *zerolog.Logger,
) *BookingService {
	return &BookingService{
		bookings:          bookings,
		items:             items,
		users:             users,
		eventBus:          eventBus,
		enforceTimeWindow: enforceTimeWindow,
		logger:            logger.With().Str("component", "booking-service").Logger(),
	}
}

func (s *BookingService) Create(ctx context.Context, in models.BookingCreate, bookerID int64) (*models.Booking, error) {
	item, err := s.items.GetItemByID(ctx, in.ItemID)
	if err != nil {
		return nil, err
	}
	booker, err := s.users.GetUserByID(ctx, bookerID)
	if err != nil {
		return nil, err
	}

	if s.enforceTimeWindow {
		if err := checkTimeWindow(in.Start, in.End, time.Now()); err != nil {
			return nil, err
		}
	}
	if !item.Available {
		return nil, domain.Validationf("item with ID %d is not available for booking", item.ID)
	}
	// Reported as not found rather than forbidden, matching the
	// observed behavior.
	if bookerID == item.OwnerID {
		return nil, domain.NotFoundf("booking creator is the item owner")
	}

	booking := &models.Booking{
		Start:       in.Start,
		End:         in.End,
		Status:      models.StatusWaiting,
		ItemID:      item.ID,
		ItemName:    item.Name,
		ItemOwnerID: item.OwnerID,
		BookerID:    booker.ID,
		BookerName:  booker.Name,
	}
	if err := s.bookings.CreateBooking(ctx, booking); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("booking_id", booking.ID).Int64("item_id", item.ID).Int64("booker_id", bookerID).Msg("booking created")
	s.publish(events.EventBookingCreated, booking)
	return booking, nil
}

// GetByID resolves a booking for the booker or the item owner; anyone
// else gets not found.
func (s *BookingService) GetByID(ctx context.Context, bookingID, userID int64) (*models.Booking, error) {
	booking, err := s.bookings.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.BookerID != userID && booking.ItemOwnerID != userID {
		return nil, domain.NotFoundf(
			"user with ID %d is neither the booker nor the owner of booking %d", userID, bookingID,
		)
	}
	return booking, nil
}

// UpdateStatus lets the item owner approve or reject a waiting
// booking. Only re-approving an approved booking is guarded; the
// other late transitions are accepted, as before.
func (s *BookingService) UpdateStatus(ctx context.Context, bookingID, userID int64, approved bool) (*models.Booking, error) {
	booking, err := s.GetByID(ctx, bookingID, userID)
	if err != nil {
		return nil, err
	}
	if booking.ItemOwnerID != userID {
		return nil, domain.NotFoundf("user with ID %d is not the owner of the booked item", userID)
	}
	if approved && booking.Status == models.StatusApproved {
		return nil, domain.Validationf("booking is already approved")
	}

	status := models.StatusRejected
	eventType := events.EventBookingRejected
	if approved {
		status = models.StatusApproved
		eventType = events.EventBookingApproved
	}
	if err := s.bookings.UpdateBookingStatus(ctx, bookingID, status); err != nil {
		return nil, err
	}
	booking.Status = status

	s.logger.Info().Int64("booking_id", bookingID).Str("status", string(status)).Msg("booking status updated")
	s.publish(eventType, booking)
	return booking, nil
}

func (s *BookingService) ListForBooker(ctx context.Context, state string, bookerID int64, from, size int) ([]models.Booking, error) {
	parsed, err := s.checkListArgs(ctx, state, bookerID, from, size)
	if err != nil {
		return nil, err
	}
	return s.bookings.ListForBooker(ctx, bookerID, parsed, time.Now(), size, pageOffset(from, size))
}

func (s *BookingService) ListForOwner(ctx context.Context, state string, ownerID int64, from, size int) ([]models.Booking, error) {
	parsed, err := s.checkListArgs(ctx, state, ownerID, from, size)
	if err != nil {
		return nil, err
	}
	return s.bookings.ListForOwner(ctx, ownerID, parsed, time.Now(), size, pageOffset(from, size))
}

func (s *BookingService) ListAllForUser(ctx context.Context, userID int64) ([]models.Booking, error) {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.bookings.ListAllForUser(ctx, userID)
}

func (s *BookingService) checkListArgs(ctx context.Context, state string, userID int64, from, size int) (models.State, error) {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return "", err
	}
	if err := checkPagination(from, size); err != nil {
		return "", err
	}
	parsed, ok := models.ParseState(state)
	if !ok {
		return "", domain.Validationf("Unknown state: %s", state)
	}
	return parsed, nil
}

func (s *BookingService) publish(eventType string, booking *models.Booking) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.PublishJSON(eventType, events.PayloadFor(booking)); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Int64("booking_id", booking.ID).Msg("publish event error")
	}
}

func checkTimeWindow(start, end, now time.Time) error {
	if start.Before(now) {
		return domain.Validationf("booking start must not be in the past")
	}
	if end.Before(now) {
		return domain.Validationf("booking end must not be in the past")
	}
	if !end.After(start) {
		return domain.Validationf("booking end must be after start")
	}
	return nil
}
