package api

import (
	"net/http"

	"shareit/internal/models"
)

func (s *Server) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFrom(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var in models.RequestCreate
	if err := decodeBody(r, &in); err != nil {
		respondError(w, err)
		return
	}

	request, err := s.requests.Create(r.Context(), in, userID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, request)
}

func (s *Server) handleListRequestsForUser(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFrom(r)
	if err != nil {
		respondError(w, err)
		return
	}

	views, err := s.requests.ListForUser(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	if views == nil {
		views = []models.ItemRequestView{}
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleListAllRequests(w http.ResponseWriter, r *http.Request) {
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

	views, err := s.requests.ListAll(r.Context(), userID, from, size)
	if err != nil {
		respondError(w, err)
		return
	}
	if views == nil {
		views = []models.ItemRequestView{}
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFrom(r)
	if err != nil {
		respondError(w, err)
		return
	}
	requestID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	view, err := s.requests.GetByID(r.Context(), requestID, userID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
