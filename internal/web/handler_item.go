package web

import (
	"errors"
	"net/http"

	"carspect/internal/catalog"
	"carspect/internal/domain"
	"carspect/internal/inspect"
	"carspect/internal/service"
)

type setItemStatusRequest struct {
	Status domain.ItemStatus `json:"status"`
}

func (s *Server) handleSetItemStatus(w http.ResponseWriter, r *http.Request) {
	var req setItemStatusRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.editItem(w, r, inspect.SetStatus{Status: req.Status})
}

type setItemNotesRequest struct {
	Notes string `json:"notes"`
}

func (s *Server) handleSetItemNotes(w http.ResponseWriter, r *http.Request) {
	var req setItemNotesRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.editItem(w, r, inspect.SetNotes{Notes: req.Notes})
}

type setItemRatingRequest struct {
	Rating int `json:"rating"`
}

func (s *Server) handleSetItemRating(w http.ResponseWriter, r *http.Request) {
	var req setItemRatingRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.editItem(w, r, inspect.SetRating{Rating: req.Rating})
}

func (s *Server) handleClearItemRating(w http.ResponseWriter, r *http.Request) {
	s.editItem(w, r, inspect.ClearRating{})
}

// editItem runs one edit against the record addressed by the request path
// and writes the updated record back to the client.
func (s *Server) editItem(w http.ResponseWriter, r *http.Request, edit inspect.Edit) {
	id := r.PathValue("id")
	categoryID := catalog.ID(r.PathValue("category"))
	itemName := r.PathValue("item")

	insp, err := s.service.EditItem(r.Context(), id, categoryID, itemName, edit)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			s.writeError(w, http.StatusNotFound, "inspection not found")
		case errors.Is(err, inspect.ErrUnknownCategory):
			s.writeError(w, http.StatusUnprocessableEntity, "unknown category")
		case errors.Is(err, inspect.ErrUnknownItem):
			s.writeError(w, http.StatusUnprocessableEntity, "item not in category")
		case errors.Is(err, inspect.ErrInvalidStatus):
			s.writeError(w, http.StatusUnprocessableEntity, "invalid item status")
		case errors.Is(err, inspect.ErrRatingOutOfRange):
			s.writeError(w, http.StatusUnprocessableEntity, "rating must be between 1 and 5")
		default:
			s.writeError(w, http.StatusInternalServerError, "failed to edit item")
			s.logger.Error("edit item failed", "inspection_id", id, "category", categoryID, "item", itemName, "error", err)
		}
		return
	}
	s.writeJSON(w, http.StatusOK, insp)
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	report, err := s.service.Report(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "inspection not found")
			return
		}
		s.writeError(w, http.StatusInternalServerError, "failed to build report")
		s.logger.Error("build report failed", "error", err)
		return
	}
	s.writeJSON(w, http.StatusOK, report)
}
