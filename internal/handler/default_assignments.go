package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/riverton-pd/roster-manager/backend/internal/domain"
	"github.com/riverton-pd/roster-manager/backend/internal/roster"
	"github.com/riverton-pd/roster-manager/backend/internal/utils"
)

func (h *Handler) GetOfficerDefaultAssignments(w http.ResponseWriter, r *http.Request) {
	officer := r.Context().Value(OfficerInfoCtx).(*domain.Officer)

	assignments, err := h.repository.GetDefaultAssignmentsByOfficer(officer.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "default assignments fetched", assignments)
}

// CreateDefaultAssignment opens a new default position/unit window for the
// officer. Overlapping predecessors are closed at the new start date, and
// schedule rows without an explicit position or unit pick up the new values.
func (h *Handler) CreateDefaultAssignment(w http.ResponseWriter, r *http.Request) {
	officer := r.Context().Value(OfficerInfoCtx).(*domain.Officer)

	var req struct {
		StartDate    string  `json:"startDate" validate:"required,datetime=2006-01-02"`
		EndDate      *string `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
		PositionName *string `json:"positionName"`
		UnitNumber   *string `json:"unitNumber"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	endDate, err := parseOptionalDate(req.EndDate)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := utils.ValidateScheduleWindow(startDate, endDate); err != nil {
		h.badRequest(w, r, err)
		return
	}

	next := &domain.DefaultAssignment{
		OfficerID:    officer.ID,
		StartDate:    startDate,
		EndDate:      endDate,
		PositionName: req.PositionName,
		UnitNumber:   req.UnitNumber,
	}

	plan, err := h.repository.CreateDefaultAssignmentWithCascade(next)
	if err != nil {
		var validationErr *roster.ValidationError
		switch {
		case errors.As(err, &validationErr):
			h.errorResponse(w, r, validationErr.Error())
		case errors.Is(err, roster.ErrNotFound):
			h.errorResponse(w, r, "an assignment changed underneath you, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "default assignment created", plan)
}

func (h *Handler) DeleteDefaultAssignment(w http.ResponseWriter, r *http.Request) {
	assignmentID, err := strconv.ParseInt(chi.URLParam(r, "assignmentID"), 10, 64)
	if err != nil {
		h.errorResponse(w, r, "invalid default assignment ID")
		return
	}

	if err := h.repository.DeleteDefaultAssignment(assignmentID); err != nil {
		switch {
		case errors.Is(err, roster.ErrNotFound):
			h.errorResponse(w, r, "default assignment not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "default assignment deleted", nil)
}
