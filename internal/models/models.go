package models

import (
	"strings"
	"time"
)

// Status is the approval state of a booking. WAITING is the only
// creation state; APPROVED and REJECTED are set by the item owner.
type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// State filters a booking listing either by status or by time window.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

// ParseState matches a query parameter against the known states,
// ignoring case. The second result reports whether the value is known.
func ParseState(value string) (State, bool) {
	switch State(strings.ToUpper(strings.TrimSpace(value))) {
	case StateAll:
		return StateAll, true
	case StateCurrent:
		return StateCurrent, true
	case StatePast:
		return StatePast, true
	case StateFuture:
		return StateFuture, true
	case StateWaiting:
		return StateWaiting, true
	case StateRejected:
		return StateRejected, true
	default:
		return "", false
	}
}

type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Item struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	OwnerID     int64  `json:"owner_id"`
	RequestID   *int64 `json:"request_id,omitempty"`
}

// Booking carries the joined item and booker columns so list responses
// do not need follow-up lookups.
type Booking struct {
	ID          int64     `json:"id"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Status      Status    `json:"status"`
	ItemID      int64     `json:"item_id"`
	ItemName    string    `json:"item_name"`
	ItemOwnerID int64     `json:"item_owner_id"`
	BookerID    int64     `json:"booker_id"`
	BookerName  string    `json:"booker_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// BookingShort is the booking summary attached to an item view.
type BookingShort struct {
	ID       int64     `json:"id"`
	BookerID int64     `json:"booker_id"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

func (b *Booking) Short() *BookingShort {
	if b == nil {
		return nil
	}
	return &BookingShort{ID: b.ID, BookerID: b.BookerID, Start: b.Start, End: b.End}
}

type Comment struct {
	ID         int64     `json:"id"`
	ItemID     int64     `json:"item_id"`
	AuthorID   int64     `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Text       string    `json:"text"`
	Created    time.Time `json:"created"`
}

type ItemRequest struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	RequesterID int64     `json:"requester_id"`
	Created     time.Time `json:"created"`
}

// ItemView is an item annotated with its comments and, for the owner
// only, the last and next booking summaries.
type ItemView struct {
	Item
	LastBooking *BookingShort `json:"last_booking,omitempty"`
	NextBooking *BookingShort `json:"next_booking,omitempty"`
	Comments    []Comment     `json:"comments"`
}

// ItemRequestView is a request annotated with the items created
// against it.
type ItemRequestView struct {
	ItemRequest
	Items []Item `json:"items"`
}

// ItemCreate is the wire body for item creation. Available is a
// pointer so a missing field can be told apart from false.
type ItemCreate struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   *bool  `json:"available"`
	RequestID   *int64 `json:"request_id,omitempty"`
}

// ItemPatch carries the optional fields of an item update. A nil
// field keeps the stored value.
type ItemPatch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Available   *bool   `json:"available,omitempty"`
}

// Empty reports whether the patch supplies no field at all.
func (p ItemPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.Available == nil
}

// UserPatch carries the optional fields of a user update. An empty
// string is treated the same as an absent field.
type UserPatch struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

func (p UserPatch) HasName() bool  { return p.Name != nil && *p.Name != "" }
func (p UserPatch) HasEmail() bool { return p.Email != nil && *p.Email != "" }

type BookingCreate struct {
	ItemID int64     `json:"item_id"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
}

type CommentCreate struct {
	Text string `json:"text"`
}

type RequestCreate struct {
	Description string `json:"description"`
}
