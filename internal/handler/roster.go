package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/riverton-pd/roster-manager/backend/internal/domain"
	"github.com/riverton-pd/roster-manager/backend/internal/roster"
)

// DailyShiftRoster is one shift's resolved roster together with its
// staffing verdict.
type DailyShiftRoster struct {
	ShiftType *domain.ShiftType       `json:"shiftType"`
	Roster    *domain.ShiftRoster     `json:"roster"`
	Verdict   *domain.StaffingVerdict `json:"verdict"`
}

func (h *Handler) gatherFacts(date time.Time) (*roster.Facts, error) {
	dayOfWeek := int32(date.Weekday())

	recurring, err := h.repository.GetRecurringEntriesForDay(dayOfWeek, date)
	if err != nil {
		return nil, err
	}
	exceptions, err := h.repository.GetExceptionsByDate(date)
	if err != nil {
		return nil, err
	}
	defaults, err := h.repository.GetActiveDefaultAssignments(date)
	if err != nil {
		return nil, err
	}
	officers, err := h.repository.GetAllOfficers()
	if err != nil {
		return nil, err
	}

	profiles := make(map[int64]*domain.Officer, len(officers))
	for _, officer := range officers {
		profiles[officer.ID] = officer
	}

	return &roster.Facts{
		Recurring:  recurring,
		Exceptions: exceptions,
		Defaults:   defaults,
		Officers:   profiles,
	}, nil
}

func (h *Handler) resolveDay(date time.Time) ([]*DailyShiftRoster, error) {
	shiftTypes, err := h.repository.GetAllShiftTypes()
	if err != nil {
		return nil, err
	}

	facts, err := h.gatherFacts(date)
	if err != nil {
		return nil, err
	}

	dayOfWeek := int32(date.Weekday())

	day := make([]*DailyShiftRoster, 0, len(shiftTypes))
	for _, st := range shiftTypes {
		resolved, err := roster.Resolve(date, dayOfWeek, st, facts)
		if err != nil {
			return nil, err
		}

		rule, err := h.repository.GetStaffingRule(dayOfWeek, st.ID)
		if err != nil {
			return nil, err
		}

		day = append(day, &DailyShiftRoster{
			ShiftType: st,
			Roster:    resolved,
			Verdict:   roster.Evaluate(resolved, rule),
		})
	}

	return day, nil
}

func (h *Handler) GetDailyRoster(w http.ResponseWriter, r *http.Request) {
	date, err := parseDate(r.URL.Query().Get("date"))
	if err != nil {
		h.errorResponse(w, r, "invalid date query parameter")
		return
	}

	day, err := h.resolveDay(date)
	if err != nil {
		var validationErr *roster.ValidationError
		var inconsistentErr *roster.InconsistentStateError
		switch {
		case errors.As(err, &validationErr):
			h.errorResponse(w, r, validationErr.Error())
		case errors.As(err, &inconsistentErr):
			h.errorResponse(w, r, inconsistentErr.Error())
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "roster resolved", day)
}

// shouldQueueAlert decides whether a scan publishes a notification for the
// alert. New alerts always publish. An existing alert still in the open
// state means an earlier scan failed between insert and queueing, so it is
// published again; queued and sent alerts are not re-notified.
func shouldQueueAlert(created bool, alert *domain.StaffingAlert) bool {
	return created || alert.Status == domain.AlertStatusOpen
}

// RunStaffingScan resolves the date, opens an alert for every understaffed
// shift that does not have one yet, and queues a notification per new alert.
func (h *Handler) RunStaffingScan(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date string `json:"date" validate:"required,datetime=2006-01-02"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	day, err := h.resolveDay(date)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	alerts := make([]*domain.StaffingAlert, 0)
	for _, shift := range day {
		if !shift.Verdict.IsUnderstaffed {
			continue
		}

		alert := &domain.StaffingAlert{
			Date:               date,
			ShiftTypeID:        shift.ShiftType.ID,
			MissingSupervisors: max(shift.Verdict.MinSupervisors-shift.Verdict.CurrentSupervisors, 0),
			MissingOfficers:    max(shift.Verdict.MinOfficers-shift.Verdict.CurrentOfficers, 0),
		}

		created, err := h.repository.CreateStaffingAlertIfAbsent(alert)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		alerts = append(alerts, alert)

		if !shouldQueueAlert(created, alert) {
			continue
		}

		mailMessage := domain.MailMessage{
			Type: "staffing_alert",
			To:   h.config.InitialAdmin.Email,
			Data: domain.StaffingAlertMailData{
				AlertID:            alert.ID,
				Date:               date.Format("2006-01-02"),
				ShiftName:          shift.ShiftType.Name,
				MissingSupervisors: alert.MissingSupervisors,
				MissingOfficers:    alert.MissingOfficers,
			},
		}

		mailData, err := json.Marshal(mailMessage)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
		err = h.mailChannel.PublishWithContext(
			ctx,
			"",
			"notification_queue",
			true,
			false,
			amqp.Publishing{
				ContentType: "application/json",
				Body:        mailData,
			},
		)
		cancel()
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}

		if err := h.repository.MarkAlertQueued(alert); err != nil {
			h.internalServerError(w, r, err)
			return
		}
	}

	h.successResponse(w, r, "staffing scan completed", alerts)
}

func (h *Handler) GetStaffingAlerts(w http.ResponseWriter, r *http.Request) {
	if status := r.URL.Query().Get("status"); status != "" {
		alerts, err := h.repository.GetStaffingAlertsByStatus(domain.AlertStatus(status))
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		h.successResponse(w, r, "staffing alerts fetched", alerts)
		return
	}

	date, err := parseDate(r.URL.Query().Get("date"))
	if err != nil {
		h.errorResponse(w, r, "a date or status query parameter is required")
		return
	}

	alerts, err := h.repository.GetStaffingAlertsByDate(date)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "staffing alerts fetched", alerts)
}
