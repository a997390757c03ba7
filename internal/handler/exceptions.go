package handler

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/riverton-pd/roster-manager/backend/internal/domain"
	"github.com/riverton-pd/roster-manager/backend/internal/roster"
	"github.com/riverton-pd/roster-manager/backend/internal/utils"
)

func (h *Handler) GetExceptionsByDate(w http.ResponseWriter, r *http.Request) {
	date, err := parseDate(r.URL.Query().Get("date"))
	if err != nil {
		h.errorResponse(w, r, "invalid date query parameter")
		return
	}

	exceptions, err := h.repository.GetExceptionsByDate(date)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "exceptions fetched", exceptions)
}

type exceptionRequest struct {
	OfficerID       int64   `json:"officerID" validate:"required"`
	Date            string  `json:"date" validate:"required,datetime=2006-01-02"`
	ShiftTypeID     *int64  `json:"shiftTypeID"`
	IsOff           bool    `json:"isOff"`
	Reason          *string `json:"reason"`
	CustomStartTime *string `json:"customStartTime"`
	CustomEndTime   *string `json:"customEndTime"`
	PositionName    *string `json:"positionName"`
	UnitNumber      *string `json:"unitNumber"`
	Notes           *string `json:"notes"`
}

func (h *Handler) buildException(req *exceptionRequest) (*domain.ScheduleException, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	if req.IsOff {
		if req.Reason == nil {
			return nil, errors.New("time off requires a leave type")
		}
		if err := utils.ValidatePTOType(*req.Reason); err != nil {
			return nil, err
		}
	} else if req.ShiftTypeID == nil {
		// A working override only makes sense on a concrete shift; only
		// time off may span the whole date.
		return nil, errors.New("a working exception must name a shift type")
	}

	if (req.CustomStartTime == nil) != (req.CustomEndTime == nil) {
		return nil, errors.New("custom start and end times must be provided together")
	}
	if req.CustomStartTime != nil {
		if _, err := roster.Hours(*req.CustomStartTime, *req.CustomEndTime); err != nil {
			return nil, err
		}
	}

	return &domain.ScheduleException{
		OfficerID:       req.OfficerID,
		Date:            date,
		ShiftTypeID:     req.ShiftTypeID,
		IsOff:           req.IsOff,
		Reason:          req.Reason,
		CustomStartTime: req.CustomStartTime,
		CustomEndTime:   req.CustomEndTime,
		PositionName:    req.PositionName,
		UnitNumber:      req.UnitNumber,
		Notes:           req.Notes,
	}, nil
}

// ptoHours determines how many hours a time-off record consumes: the custom
// window when one is set, otherwise the full span of the named shift.
func (h *Handler) ptoHours(exc *domain.ScheduleException) (float64, error) {
	if exc.CustomStartTime != nil && exc.CustomEndTime != nil {
		return roster.Hours(*exc.CustomStartTime, *exc.CustomEndTime)
	}

	if exc.ShiftTypeID == nil {
		return 0, errors.New("time off spanning the whole date requires custom times")
	}

	st, err := h.repository.GetShiftType(*exc.ShiftTypeID)
	if err != nil {
		return 0, err
	}

	return roster.Hours(st.StartTime, st.EndTime)
}

func (h *Handler) CreateException(w http.ResponseWriter, r *http.Request) {
	var req exceptionRequest

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	exc, err := h.buildException(&req)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	if !exc.IsOff {
		if err := h.repository.CreateWorkingException(exc); err != nil {
			var pgErr *pgconn.PgError
			switch {
			case errors.As(err, &pgErr) && pgErr.ConstraintName == exceptionSlotConstraint:
				h.errorResponse(w, r, "an exception of this kind already exists for this officer, date and shift")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}
		h.successResponse(w, r, "exception created", exc)
		return
	}

	hours, err := h.ptoHours(exc)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.CreatePTOException(exc, domain.PTOType(*exc.Reason), hours); err != nil {
		h.respondPTOError(w, r, err)
		return
	}

	h.successResponse(w, r, "time off recorded", exc)
}

func (h *Handler) UpdatePTOException(w http.ResponseWriter, r *http.Request) {
	old := r.Context().Value(ScheduleExceptionCtx).(*domain.ScheduleException)

	if !old.IsOff {
		h.errorResponse(w, r, "only time-off records can be edited this way")
		return
	}

	var req exceptionRequest

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if !req.IsOff {
		h.errorResponse(w, r, "the replacement record must also be time off")
		return
	}
	if req.OfficerID != old.OfficerID {
		h.errorResponse(w, r, "time off cannot be moved to another officer")
		return
	}

	next, err := h.buildException(&req)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	oldHours, err := h.ptoHours(old)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	nextHours, err := h.ptoHours(next)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.UpdatePTOException(old, next, domain.PTOType(*old.Reason), domain.PTOType(*next.Reason), oldHours, nextHours); err != nil {
		h.respondPTOError(w, r, err)
		return
	}

	h.successResponse(w, r, "time off updated", next)
}

func (h *Handler) DeleteException(w http.ResponseWriter, r *http.Request) {
	exc := r.Context().Value(ScheduleExceptionCtx).(*domain.ScheduleException)

	if !exc.IsOff {
		if err := h.repository.DeleteWorkingException(exc.ID); err != nil {
			switch {
			case errors.Is(err, roster.ErrNotFound):
				h.errorResponse(w, r, "exception not found")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}
		h.successResponse(w, r, "exception deleted", nil)
		return
	}

	hours, err := h.ptoHours(exc)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := h.repository.DeletePTOException(exc, domain.PTOType(*exc.Reason), hours); err != nil {
		h.respondPTOError(w, r, err)
		return
	}

	h.successResponse(w, r, "time off deleted and balance restored", nil)
}

// exceptionSlotConstraint enforces at most one record of each kind per
// officer, date and shift.
const exceptionSlotConstraint = "schedule_exceptions_officer_id_date_shift_type_id_is_off_key"

func (h *Handler) respondPTOError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *roster.ValidationError
	var partialErr *roster.PartialApplicationError
	var pgErr *pgconn.PgError
	switch {
	case errors.As(err, &pgErr) && pgErr.ConstraintName == exceptionSlotConstraint:
		h.errorResponse(w, r, "an exception of this kind already exists for this officer, date and shift")
	case errors.Is(err, roster.ErrInsufficientBalance):
		h.errorResponse(w, r, "insufficient leave balance")
	case errors.Is(err, roster.ErrNotFound):
		h.errorResponse(w, r, "record changed underneath you, please retry")
	case errors.As(err, &validationErr):
		h.errorResponse(w, r, validationErr.Error())
	case errors.As(err, &partialErr):
		// Commit outcome unknown; the balance may or may not have moved.
		h.internalServerError(w, r, partialErr)
	default:
		h.internalServerError(w, r, err)
	}
}
