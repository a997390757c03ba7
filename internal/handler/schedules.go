package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/riverton-pd/roster-manager/backend/internal/domain"
	"github.com/riverton-pd/roster-manager/backend/internal/roster"
	"github.com/riverton-pd/roster-manager/backend/internal/utils"
)

func parseSlotQuery(r *http.Request) (int32, int64, error) {
	dayOfWeek, err := strconv.ParseInt(r.URL.Query().Get("dayOfWeek"), 10, 32)
	if err != nil {
		return 0, 0, errors.New("invalid dayOfWeek query parameter")
	}
	shiftTypeID, err := strconv.ParseInt(r.URL.Query().Get("shiftTypeID"), 10, 64)
	if err != nil {
		return 0, 0, errors.New("invalid shiftTypeID query parameter")
	}
	if err := utils.ValidateDayOfWeek(int32(dayOfWeek)); err != nil {
		return 0, 0, err
	}
	return int32(dayOfWeek), shiftTypeID, nil
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	d, err := parseDate(*s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (h *Handler) GetRecurringEntry(w http.ResponseWriter, r *http.Request) {
	entry := r.Context().Value(RecurringEntryCtx).(*domain.RecurringScheduleEntry)
	h.successResponse(w, r, "schedule entry fetched", entry)
}

func (h *Handler) GetOfficerRecurringEntries(w http.ResponseWriter, r *http.Request) {
	officer := r.Context().Value(OfficerInfoCtx).(*domain.Officer)

	entries, err := h.repository.GetRecurringEntriesByOfficer(officer.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "schedule entries fetched", entries)
}

func (h *Handler) CreateRecurringEntry(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OfficerID    int64   `json:"officerID" validate:"required"`
		ShiftTypeID  int64   `json:"shiftTypeID" validate:"required"`
		DayOfWeek    int32   `json:"dayOfWeek" validate:"gte=0,lte=6"`
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

	if err := utils.ValidateDayOfWeek(req.DayOfWeek); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := utils.ValidateScheduleWindow(startDate, endDate); err != nil {
		h.badRequest(w, r, err)
		return
	}

	entry := &domain.RecurringScheduleEntry{
		OfficerID:    req.OfficerID,
		ShiftTypeID:  req.ShiftTypeID,
		DayOfWeek:    req.DayOfWeek,
		StartDate:    startDate,
		EndDate:      endDate,
		PositionName: req.PositionName,
		UnitNumber:   req.UnitNumber,
	}

	if err := h.repository.CreateRecurringEntry(entry); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "schedule entry created", entry)
}

func (h *Handler) UpdateRecurringEntry(w http.ResponseWriter, r *http.Request) {
	entry := r.Context().Value(RecurringEntryCtx).(*domain.RecurringScheduleEntry)

	var req struct {
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

	if req.EndDate != nil {
		endDate, err := parseOptionalDate(req.EndDate)
		if err != nil {
			h.badRequest(w, r, err)
			return
		}
		if err := utils.ValidateScheduleWindow(entry.StartDate, endDate); err != nil {
			h.badRequest(w, r, err)
			return
		}
		entry.EndDate = endDate
	}
	if req.PositionName != nil {
		entry.PositionName = req.PositionName
	}
	if req.UnitNumber != nil {
		entry.UnitNumber = req.UnitNumber
	}

	if err := h.repository.UpdateRecurringEntry(entry); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "schedule entry update failed, please try again")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "schedule entry updated", entry)
}

func (h *Handler) DeleteRecurringEntry(w http.ResponseWriter, r *http.Request) {
	entry := r.Context().Value(RecurringEntryCtx).(*domain.RecurringScheduleEntry)

	if entry.IsPartnership {
		h.errorResponse(w, r, "unlink the partnership before deleting the entry")
		return
	}

	if err := h.repository.DeleteRecurringEntry(entry.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "schedule entry deleted", nil)
}

// EndOfficerSchedules closes every open recurring entry for the officer, for
// separations and long-term reassignments. Each entry is ended independently
// and the per-entry outcomes are returned, so one failure does not undo the
// rest.
func (h *Handler) EndOfficerSchedules(w http.ResponseWriter, r *http.Request) {
	officer := r.Context().Value(OfficerInfoCtx).(*domain.Officer)

	var req struct {
		EndDate string `json:"endDate" validate:"required,datetime=2006-01-02"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	endDate, err := parseDate(req.EndDate)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	results, err := h.repository.EndAllSchedulesForOfficer(officer.ID, endDate)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "schedules ended", results)
}

func (h *Handler) LinkPartners(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EntryAID int64 `json:"entryAID" validate:"required"`
		EntryBID int64 `json:"entryBID" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	entryA, err := h.repository.GetRecurringEntry(req.EntryAID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "schedule entry not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}
	entryB, err := h.repository.GetRecurringEntry(req.EntryBID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "schedule entry not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := h.repository.LinkPartners(entryA, entryB); err != nil {
		var validationErr *roster.ValidationError
		switch {
		case errors.As(err, &validationErr):
			h.errorResponse(w, r, validationErr.Error())
		case errors.Is(err, roster.ErrNotFound):
			h.errorResponse(w, r, "schedule entry not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "partners linked", []*domain.RecurringScheduleEntry{entryA, entryB})
}

func (h *Handler) UnlinkPartners(w http.ResponseWriter, r *http.Request) {
	entry := r.Context().Value(RecurringEntryCtx).(*domain.RecurringScheduleEntry)

	if !entry.IsPartnership {
		h.errorResponse(w, r, "entry is not part of a partnership")
		return
	}

	if err := h.repository.UnlinkPartners(entry); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "partners unlinked", nil)
}

// CheckPartnershipSymmetry audits every partnership flag on the roster for
// the slot and reports the first broken pairing.
func (h *Handler) CheckPartnershipSymmetry(w http.ResponseWriter, r *http.Request) {
	dayOfWeek, shiftTypeID, err := parseSlotQuery(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	entries, err := h.repository.GetRecurringEntriesForSlot(dayOfWeek, shiftTypeID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := roster.CheckSymmetry(entries); err != nil {
		var inconsistentErr *roster.InconsistentStateError
		switch {
		case errors.As(err, &inconsistentErr):
			h.errorResponse(w, r, inconsistentErr.Error())
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "partnerships are consistent", nil)
}
