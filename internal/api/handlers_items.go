package api

import (
	"net/http"

	"shareit/internal/models"
)

func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFrom(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var in models.ItemCreate
	if err := decodeBody(r, &in); err != nil {
		respondError(w, err)
		return
	}

	item, err := s.items.Create(r.Context(), in, userID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleGetItem(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFrom(r)
	if err != nil {
		respondError(w, err)
		return
	}
	itemID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	view, err := s.items.GetView(r.Context(), itemID, userID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFrom(r)
	if err != nil {
		respondError(w, err)
		return
	}
	itemID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var patch models.ItemPatch
	if err := decodeBody(r, &patch); err != nil {
		respondError(w, err)
		return
	}

	item, err := s.items.Update(r.Context(), patch, itemID, userID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
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

	views, err := s.items.ListByOwner(r.Context(), userID, from, size)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleSearchItems(w http.ResponseWriter, r *http.Request) {
	from, size, err := pagination(r)
	if err != nil {
		respondError(w, err)
		return
	}

	views, err := s.items.Search(r.Context(), r.URL.Query().Get("text"), from, size)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleAddComment(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFrom(r)
	if err != nil {
		respondError(w, err)
		return
	}
	itemID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var in models.CommentCreate
	if err := decodeBody(r, &in); err != nil {
		respondError(w, err)
		return
	}

	comment, err := s.items.AddComment(r.Context(), itemID, userID, in.Text)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, comment)
}
