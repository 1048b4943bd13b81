package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"shareit/internal/domain"
	"shareit/internal/models"
)

// bookingColumns joins the item and booker so list responses carry
// their names. LEFT JOIN keeps bookings visible after a user hard
// delete leaves them dangling.
const bookingColumns = `
        SELECT b.id, b.start_at, b.end_at, b.status,
               b.item_id, COALESCE(i.name, ''), COALESCE(i.owner_id, 0),
               b.booker_id, COALESCE(u.name, ''), b.created_at
        FROM bookings b
        LEFT JOIN items i ON i.id = b.item_id
        LEFT JOIN users u ON u.id = b.booker_id`

func (db *DB) CreateBooking(ctx context.Context, booking *models.Booking) error {
	query := `INSERT INTO bookings (item_id, booker_id, start_at, end_at, status, created_at)
              VALUES (?, ?, ?, ?, ?, ?)`
	now := time.Now().UTC()
	result, err := db.ExecContext(ctx, query,
		booking.ItemID,
		booking.BookerID,
		utc(booking.Start),
		utc(booking.End),
		booking.Status,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	booking.ID = id
	booking.CreatedAt = now
	return nil
}

func (db *DB) GetBookingByID(ctx context.Context, id int64) (*models.Booking, error) {
	query := bookingColumns + ` WHERE b.id = ?`
	booking, err := scanBooking(db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundf("booking with ID %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return booking, nil
}

func (db *DB) UpdateBookingStatus(ctx context.Context, id int64, status models.Status) error {
	result, err := db.ExecContext(ctx, `UPDATE bookings SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return domain.NotFoundf("booking with ID %d not found", id)
	}
	return nil
}

func (db *DB) ListForBooker(ctx context.Context, bookerID int64, state models.State, now time.Time, limit, offset int) ([]models.Booking, error) {
	where, args := stateFilter(`b.booker_id = ?`, bookerID, state, now)
	query := bookingColumns + ` WHERE ` + where + ` ORDER BY b.id DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)
	return db.queryBookings(ctx, query, args...)
}

func (db *DB) ListForOwner(ctx context.Context, ownerID int64, state models.State, now time.Time, limit, offset int) ([]models.Booking, error) {
	where, args := stateFilter(`i.owner_id = ?`, ownerID, state, now)
	query := bookingColumns + ` WHERE ` + where + ` ORDER BY b.id DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)
	return db.queryBookings(ctx, query, args...)
}

// ListAllForUser returns every booking the user participates in, as
// booker or as item owner. Used by the export endpoint.
func (db *DB) ListAllForUser(ctx context.Context, userID int64) ([]models.Booking, error) {
	query := bookingColumns + ` WHERE b.booker_id = ? OR i.owner_id = ? ORDER BY b.id DESC`
	return db.queryBookings(ctx, query, userID, userID)
}

func (db *DB) LastBookingForItem(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error) {
	query := bookingColumns + ` WHERE b.item_id = ? AND b.start_at < ? ORDER BY b.start_at DESC LIMIT 1`
	booking, err := scanBooking(db.QueryRowContext(ctx, query, itemID, utc(now)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last booking: %w", err)
	}
	return booking, nil
}

func (db *DB) NextBookingForItem(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error) {
	query := bookingColumns + ` WHERE b.item_id = ? AND b.start_at > ? ORDER BY b.start_at LIMIT 1`
	booking, err := scanBooking(db.QueryRowContext(ctx, query, itemID, utc(now)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get next booking: %w", err)
	}
	return booking, nil
}

// ApprovedPastBookings returns the bookings that qualify a user to
// comment on an item: approved and already started.
func (db *DB) ApprovedPastBookings(ctx context.Context, bookerID, itemID int64, now time.Time) ([]models.Booking, error) {
	query := bookingColumns + ` WHERE b.booker_id = ? AND b.item_id = ? AND b.start_at < ? AND b.status = ? ORDER BY b.id`
	return db.queryBookings(ctx, query, bookerID, itemID, utc(now), models.StatusApproved)
}

func stateFilter(base string, id int64, state models.State, now time.Time) (string, []any) {
	args := []any{id}
	switch state {
	case models.StateWaiting, models.StateRejected:
		return base + ` AND b.status = ?`, append(args, models.Status(state))
	case models.StatePast:
		return base + ` AND b.end_at < ?`, append(args, utc(now))
	case models.StateFuture:
		return base + ` AND b.start_at > ?`, append(args, utc(now))
	case models.StateCurrent:
		return base + ` AND b.start_at < ? AND b.end_at > ?`, append(args, utc(now), utc(now))
	default: // ALL
		return base, args
	}
}

func (db *DB) queryBookings(ctx context.Context, query string, args ...any) ([]models.Booking, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, *booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read bookings: %w", err)
	}
	return bookings, nil
}

func scanBooking(row rowScanner) (*models.Booking, error) {
	var booking models.Booking
	err := row.Scan(
		&booking.ID,
		&booking.Start,
		&booking.End,
		&booking.Status,
		&booking.ItemID,
		&booking.ItemName,
		&booking.ItemOwnerID,
		&booking.BookerID,
		&booking.BookerName,
		&booking.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}
