package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/riverton-pd/roster-manager/backend/internal/domain"
	"github.com/riverton-pd/roster-manager/backend/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

func (h *Handler) GetAllOfficerInfo(w http.ResponseWriter, r *http.Request) {
	officers, err := h.repository.GetAllOfficers()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "officers fetched", officers)
}

func (h *Handler) CreateOfficer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username    string  `json:"username" validate:"required"`
		FullName    string  `json:"fullName" validate:"required"`
		Email       string  `json:"email" validate:"required,email"`
		Role        string  `json:"role" validate:"required,oneof=officer supervisor admin"`
		BadgeNumber string  `json:"badgeNumber" validate:"required"`
		Rank        string  `json:"rank" validate:"required"`
		HireDate    string  `json:"hireDate" validate:"required,datetime=2006-01-02"`
		Vacation    float64 `json:"vacationHours" validate:"gte=0"`
		Sick        float64 `json:"sickHours" validate:"gte=0"`
		Comp        float64 `json:"compHours" validate:"gte=0"`
		Holiday     float64 `json:"holidayHours" validate:"gte=0"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	hireDate, err := time.Parse("2006-01-02", req.HireDate)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	password := utils.GenerateRandomPassword(h.config.NewOfficer.PasswordLength)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	officer := &domain.Officer{
		Username:      req.Username,
		PasswordHash:  string(hashedPassword),
		FullName:      req.FullName,
		Email:         req.Email,
		Role:          domain.Role(req.Role),
		BadgeNumber:   req.BadgeNumber,
		Rank:          req.Rank,
		HireDate:      hireDate,
		VacationHours: req.Vacation,
		SickHours:     req.Sick,
		CompHours:     req.Comp,
		HolidayHours:  req.Holiday,
	}

	if err := h.repository.CreateOfficer(officer); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch {
			case pgErr.ConstraintName == "officers_username_key":
				h.badRequest(w, r, errors.New("username already exists"))
			case pgErr.ConstraintName == "officers_email_key":
				h.badRequest(w, r, errors.New("email already exists"))
			case pgErr.ConstraintName == "officers_badge_number_key":
				h.badRequest(w, r, errors.New("badge number already exists"))
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	mailMessage := domain.MailMessage{
		Type: "create_officer",
		To:   officer.Email,
		Data: domain.CreateOfficerMailData{
			FullName: req.FullName,
			Username: req.Username,
			Password: password,
		},
	}

	emailData, err := json.Marshal(mailMessage)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	if err := h.mailChannel.PublishWithContext(
		ctx,
		"",
		"notification_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        emailData,
		},
	); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "officer created", officer)
}

func (h *Handler) GetOfficerInfo(w http.ResponseWriter, r *http.Request) {
	officer := r.Context().Value(OfficerInfoCtx).(*domain.Officer)
	h.successResponse(w, r, "officer fetched", officer)
}

func (h *Handler) UpdateOfficer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FullName              *string  `json:"fullName"`
		Email                 *string  `json:"email" validate:"omitempty,email"`
		Role                  *string  `json:"role" validate:"omitempty,oneof=officer supervisor admin"`
		BadgeNumber           *string  `json:"badgeNumber"`
		Rank                  *string  `json:"rank"`
		Vacation              *float64 `json:"vacationHours" validate:"omitempty,gte=0"`
		Sick                  *float64 `json:"sickHours" validate:"omitempty,gte=0"`
		Comp                  *float64 `json:"compHours" validate:"omitempty,gte=0"`
		Holiday               *float64 `json:"holidayHours" validate:"omitempty,gte=0"`
		ServiceCreditOverride *float64 `json:"serviceCreditOverride" validate:"omitempty,gte=0"`
		IsActive              *bool    `json:"isActive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	officer := r.Context().Value(OfficerInfoCtx).(*domain.Officer)

	if req.FullName != nil {
		officer.FullName = *req.FullName
	}
	if req.Email != nil {
		officer.Email = *req.Email
	}
	if req.Role != nil {
		officer.Role = domain.Role(*req.Role)
	}
	if req.BadgeNumber != nil {
		officer.BadgeNumber = *req.BadgeNumber
	}
	if req.Rank != nil {
		officer.Rank = *req.Rank
	}
	if req.Vacation != nil {
		officer.VacationHours = *req.Vacation
	}
	if req.Sick != nil {
		officer.SickHours = *req.Sick
	}
	if req.Comp != nil {
		officer.CompHours = *req.Comp
	}
	if req.Holiday != nil {
		officer.HolidayHours = *req.Holiday
	}
	if req.ServiceCreditOverride != nil {
		officer.ServiceCreditOverride = req.ServiceCreditOverride
	}
	if req.IsActive != nil {
		officer.IsActive = *req.IsActive
	}

	if err := h.repository.UpdateOfficer(officer); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch {
			case pgErr.ConstraintName == "officers_email_key":
				h.badRequest(w, r, errors.New("email already exists"))
			case pgErr.ConstraintName == "officers_username_key":
				h.badRequest(w, r, errors.New("username already exists"))
			case pgErr.ConstraintName == "officers_badge_number_key":
				h.badRequest(w, r, errors.New("badge number already exists"))
			default:
				h.internalServerError(w, r, err)
			}
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "officer update failed, please try again")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "officer updated", officer)
}

func (h *Handler) DeleteOfficer(w http.ResponseWriter, r *http.Request) {
	officer := r.Context().Value(OfficerInfoCtx).(*domain.Officer)

	if err := h.repository.DeleteOfficer(officer.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "officer deleted", nil)
}

func (h *Handler) UpdateOfficerPassword(w http.ResponseWriter, r *http.Request) {
	officer := r.Context().Value(OfficerInfoCtx).(*domain.Officer)

	var req struct {
		Password string `json:"password" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	officer.PasswordHash = string(hashedPassword)
	if err := h.repository.UpdateOfficer(officer); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "password updated", nil)
}
