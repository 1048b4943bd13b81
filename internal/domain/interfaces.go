package domain

import (
	"context"
	"time"

	"shareit/internal/models"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	UpdateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	DeleteUser(ctx context.Context, id int64) error
	ListUsers(ctx context.Context) ([]models.User, error)
}

type ItemRepository interface {
	CreateItem(ctx context.Context, item *models.Item) error
	UpdateItem(ctx context.Context, item *models.Item) error
	GetItemByID(ctx context.Context, id int64) (*models.Item, error)
	ListItemsByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]models.Item, error)
	SearchItems(ctx context.Context, text string, limit, offset int) ([]models.Item, error)
	ListItemsByRequestID(ctx context.Context, requestID int64) ([]models.Item, error)
	ListItemsByRequestIDs(ctx context.Context, requestIDs []int64) ([]models.Item, error)
}

type BookingRepository interface {
	CreateBooking(ctx context.Context, booking *models.Booking) error
	GetBookingByID(ctx context.Context, id int64) (*models.Booking, error)
	UpdateBookingStatus(ctx context.Context, id int64, status models.Status) error
	ListForBooker(ctx context.Context, bookerID int64, state models.State, now time.Time, limit, offset int) ([]models.Booking, error)
	ListForOwner(ctx context.Context, ownerID int64, state models.State, now time.Time, limit, offset int) ([]models.Booking, error)
	ListAllForUser(ctx context.Context, userID int64) ([]models.Booking, error)
	LastBookingForItem(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error)
	NextBookingForItem(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error)
	ApprovedPastBookings(ctx context.Context, bookerID, itemID int64, now time.Time) ([]models.Booking, error)
}

type RequestRepository interface {
	CreateRequest(ctx context.Context, request *models.ItemRequest) error
	GetRequestByID(ctx context.Context, id int64) (*models.ItemRequest, error)
	ListRequestsByRequester(ctx context.Context, requesterID int64) ([]models.ItemRequest, error)
	ListRequestsExcluding(ctx context.Context, userID int64, limit, offset int) ([]models.ItemRequest, error)
}

type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	ListCommentsByItem(ctx context.Context, itemID int64) ([]models.Comment, error)
}

type UserService interface {
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, id int64, patch models.UserPatch) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]models.User, error)
}

type ItemService interface {
	Create(ctx context.Context, in models.ItemCreate, ownerID int64) (*models.Item, error)
	Update(ctx context.Context, patch models.ItemPatch, itemID, userID int64) (*models.Item, error)
	GetByID(ctx context.Context, itemID int64) (*models.Item, error)
	GetView(ctx context.Context, itemID, viewerID int64) (*models.ItemView, error)
	ListByOwner(ctx context.Context, ownerID int64, from, size int) ([]models.ItemView, error)
	Search(ctx context.Context, text string, from, size int) ([]models.ItemView, error)
	AddComment(ctx context.Context, itemID, authorID int64, text string) (*models.Comment, error)
}

type BookingService interface {
	Create(ctx context.Context, in models.BookingCreate, bookerID int64) (*models.Booking, error)
	GetByID(ctx context.Context, bookingID, userID int64) (*models.Booking, error)
	UpdateStatus(ctx context.Context, bookingID, userID int64, approved bool) (*models.Booking, error)
	ListForBooker(ctx context.Context, state string, bookerID int64, from, size int) ([]models.Booking, error)
	ListForOwner(ctx context.Context, state string, ownerID int64, from, size int) ([]models.Booking, error)
	ListAllForUser(ctx context.Context, userID int64) ([]models.Booking, error)
}

type RequestService interface {
	Create(ctx context.Context, in models.RequestCreate, requesterID int64) (*models.ItemRequest, error)
	ListForUser(ctx context.Context, userID int64) ([]models.ItemRequestView, error)
	ListAll(ctx context.Context, excludingUserID int64, from, size int) ([]models.ItemRequestView, error)
	GetByID(ctx context.Context, requestID, userID int64) (*models.ItemRequestView, error)
}

type EventPublisher interface {
	PublishJSON(eventType string, payload any) error
}
