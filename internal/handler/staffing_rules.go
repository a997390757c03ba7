package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/riverton-pd/roster-manager/backend/internal/domain"
	"github.com/riverton-pd/roster-manager/backend/internal/roster"
	"github.com/riverton-pd/roster-manager/backend/internal/utils"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) GetAllStaffingRules(w http.ResponseWriter, r *http.Request) {
	rules, err := h.repository.GetAllStaffingRules()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "staffing rules fetched", rules)
}

func (h *Handler) UpsertStaffingRule(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DayOfWeek          int32 `json:"dayOfWeek" validate:"gte=0,lte=6"`
		ShiftTypeID        int64 `json:"shiftTypeID" validate:"required"`
		MinimumOfficers    int32 `json:"minimumOfficers" validate:"gte=0"`
		MinimumSupervisors int32 `json:"minimumSupervisors" validate:"gte=0"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := utils.ValidateDayOfWeek(req.DayOfWeek); err != nil {
		h.badRequest(w, r, err)
		return
	}

	rule := &domain.MinimumStaffingRule{
		DayOfWeek:          req.DayOfWeek,
		ShiftTypeID:        req.ShiftTypeID,
		MinimumOfficers:    req.MinimumOfficers,
		MinimumSupervisors: req.MinimumSupervisors,
	}

	if err := h.repository.UpsertStaffingRule(rule); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "staffing rule saved", rule)
}

func (h *Handler) DeleteStaffingRule(w http.ResponseWriter, r *http.Request) {
	ruleIDParam := chi.URLParam(r, "id")
	ruleID, err := strconv.ParseInt(ruleIDParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "invalid staffing rule ID")
		return
	}

	if err := h.repository.DeleteStaffingRule(ruleID); err != nil {
		switch {
		case errors.Is(err, roster.ErrNotFound):
			h.errorResponse(w, r, "staffing rule not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "staffing rule deleted", nil)
}
