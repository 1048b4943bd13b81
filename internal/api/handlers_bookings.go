package api

import (
	"context"
	"net/http"
	"strconv"

	"shareit/internal/domain"
	"shareit/internal/export"
	"shareit/internal/metrics"
	"shareit/internal/models"
)

func (s *Server) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFrom(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var in models.BookingCreate
	if err := decodeBody(r, &in); err != nil {
		respondError(w, err)
		return
	}

	booking, err := s.bookings.Create(r.Context(), in, userID)
	if err != nil {
		respondError(w, err)
		return
	}
	metrics.IncBooking(string(booking.Status))
	writeJSON(w, http.StatusOK, booking)
}

func (s *Server) handleGetBooking(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFrom(r)
	if err != nil {
		respondError(w, err)
		return
	}
	bookingID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	booking, err := s.bookings.GetByID(r.Context(), bookingID, userID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (s *Server) handleUpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFrom(r)
	if err != nil {
		respondError(w, err)
		return
	}
	bookingID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	approvedRaw := r.URL.Query().Get("approved")
	approved, err := strconv.ParseBool(approvedRaw)
	if err != nil {
		respondError(w, domain.Validationf("invalid approved parameter: %s", approvedRaw))
		return
	}

	booking, err := s.bookings.UpdateStatus(r.Context(), bookingID, userID, approved)
	if err != nil {
		respondError(w, err)
		return
	}
	metrics.IncBooking(string(booking.Status))
	writeJSON(w, http.StatusOK, booking)
}

func (s *Server) handleListBookingsForBooker(w http.ResponseWriter, r *http.Request) {
	s.listBookings(w, r, s.bookings.ListForBooker)
}

func (s *Server) handleListBookingsForOwner(w http.ResponseWriter, r *http.Request) {
	s.listBookings(w, r, s.bookings.ListForOwner)
}

type bookingLister func(ctx context.Context, state string, userID int64, from, size int) ([]models.Booking, error)

func (s *Server) listBookings(w http.ResponseWriter, r *http.Request, list bookingLister) {
	userID, err := userIDFrom(r)
	if err != nil {
		respondError(w, err)
		return
	}
	from, size, err := pagination(r)
	if err != nil {
		respondError(w, err)
		return
	}

	state := r.URL.Query().Get("state")
	if state == "" {
		state = string(models.StateAll)
	}

	bookings, err := list(r.Context(), state, userID, from, size)
	if err != nil {
		respondError(w, err)
		return
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	writeJSON(w, http.StatusOK, bookings)
}

func (s *Server) handleExportBookings(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFrom(r)
	if err != nil {
		respondError(w, err)
		return
	}

	bookings, err := s.bookings.ListAllForUser(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="bookings.xlsx"`)
	if err := export.WriteWorkbook(w, bookings); err != nil {
		s.log.Error().Err(err).Int64("user_id", userID).Msg("export bookings")
	}
}
