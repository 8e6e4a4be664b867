package web

import (
	"errors"
	"net/http"
	"strings"

	"carspect/internal/catalog"
	"carspect/internal/domain"
	"carspect/internal/service"
)

const maxFieldLen = 200

type createInspectionRequest struct {
	CarModel     string `json:"carModel"`
	CarYear      string `json:"carYear"`
	LicensePlate string `json:"licensePlate"`
}

func (s *Server) handleCreateInspection(w http.ResponseWriter, r *http.Request) {
	var req createInspectionRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.CarModel = strings.TrimSpace(req.CarModel)
	req.CarYear = strings.TrimSpace(req.CarYear)
	req.LicensePlate = strings.TrimSpace(req.LicensePlate)
	if req.CarModel == "" || req.CarYear == "" || req.LicensePlate == "" {
		s.writeError(w, http.StatusBadRequest, "carModel, carYear and licensePlate are required")
		return
	}
	if len(req.CarModel) > maxFieldLen || len(req.CarYear) > maxFieldLen || len(req.LicensePlate) > maxFieldLen {
		s.writeError(w, http.StatusBadRequest, "field too long")
		return
	}

	insp, err := s.service.CreateInspection(r.Context(), req.CarModel, req.CarYear, req.LicensePlate)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "failed to create inspection")
		s.logger.Error("create inspection failed", "error", err)
		return
	}
	s.writeJSON(w, http.StatusCreated, insp)
}

func (s *Server) handleListInspections(w http.ResponseWriter, r *http.Request) {
	status := domain.InspectionStatus(strings.TrimSpace(r.URL.Query().Get("status")))

	inspections, err := s.service.ListInspections(r.Context(), status)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInspectionStatus) {
			s.writeError(w, http.StatusBadRequest, "invalid status filter")
			return
		}
		s.writeError(w, http.StatusInternalServerError, "failed to list inspections")
		s.logger.Error("list inspections failed", "error", err)
		return
	}
	if inspections == nil {
		inspections = []*domain.Inspection{}
	}
	s.writeJSON(w, http.StatusOK, inspections)
}

func (s *Server) handleGetInspection(w http.ResponseWriter, r *http.Request) {
	insp, err := s.service.GetInspection(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "inspection not found")
			return
		}
		s.writeError(w, http.StatusInternalServerError, "failed to get inspection")
		s.logger.Error("get inspection failed", "error", err)
		return
	}
	s.writeJSON(w, http.StatusOK, insp)
}

func (s *Server) handleDeleteInspection(w http.ResponseWriter, r *http.Request) {
	if err := s.service.DeleteInspection(r.Context(), r.PathValue("id")); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "inspection not found")
			return
		}
		s.writeError(w, http.StatusInternalServerError, "failed to delete inspection")
		s.logger.Error("delete inspection failed", "error", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type updateStatusRequest struct {
	Status domain.InspectionStatus `json:"status"`
}

func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	insp, err := s.service.UpdateStatus(r.Context(), r.PathValue("id"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			s.writeError(w, http.StatusNotFound, "inspection not found")
		case errors.Is(err, service.ErrInvalidInspectionStatus):
			s.writeError(w, http.StatusUnprocessableEntity, "invalid status")
		default:
			s.writeError(w, http.StatusInternalServerError, "failed to update status")
			s.logger.Error("update status failed", "error", err)
		}
		return
	}
	s.writeJSON(w, http.StatusOK, insp)
}

func (s *Server) handleGetCatalog(w http.ResponseWriter, r *http.Request) {
	type categoryPayload struct {
		ID    catalog.ID `json:"id"`
		Name  string     `json:"name"`
		Items []string   `json:"items"`
	}
	cats := catalog.Categories()
	payload := make([]categoryPayload, 0, len(cats))
	for _, c := range cats {
		payload = append(payload, categoryPayload{ID: c.ID, Name: c.Name, Items: c.Items})
	}
	s.writeJSON(w, http.StatusOK, payload)
}
