package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Simplici0/dogsclub/internal/leads"
	"github.com/Simplici0/dogsclub/internal/metrics"
	"github.com/Simplici0/dogsclub/internal/notify"
)

var validate = metrics.NewValidator()

type contactRequest struct {
	Name         string `json:"name" validate:"required,max=200"`
	Email        string `json:"email" validate:"required,email"`
	WhatsApp     string `json:"whatsapp" validate:"max=40"`
	BusinessName string `json:"business_name" validate:"max=200"`
	Message      string `json:"message" validate:"required,max=5000"`
}

type contactResponse struct {
	LeadID           string `json:"lead_id"`
	ConfirmationSent bool   `json:"confirmation_sent"`
	NotificationSent bool   `json:"notification_sent"`
}

func (c *contactRequest) normalize() {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	c.WhatsApp = strings.TrimSpace(c.WhatsApp)
	c.BusinessName = strings.TrimSpace(c.BusinessName)
	c.Message = strings.TrimSpace(c.Message)
}

func contactFieldErrors(err error) []metrics.FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []metrics.FieldError{{Field: "body", Message: err.Error()}}
	}
	out := make([]metrics.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		msg := fmt.Sprintf("%s é inválido", fe.Field())
		switch fe.Tag() {
		case "required":
			msg = fmt.Sprintf("%s é obrigatório", fe.Field())
		case "email":
			msg = fmt.Sprintf("%s deve ser um e-mail válido", fe.Field())
		case "max":
			msg = fmt.Sprintf("%s deve ter no máximo %s caracteres", fe.Field(), fe.Param())
		}
		out = append(out, metrics.FieldError{Field: fe.Field(), Message: msg})
	}
	return out
}

// handleAPIContact stores the lead first; the two emails are best effort.
func (s *server) handleAPIContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "request body could not be decoded", err.Error())
		return
	}
	req.normalize()
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", "invalid contact request", contactFieldErrors(err))
		return
	}

	lead, err := s.leads.Create(r.Context(), leads.NewLead{
		Email:        req.Email,
		Name:         req.Name,
		WhatsApp:     req.WhatsApp,
		BusinessName: req.BusinessName,
		Message:      req.Message,
		Source:       leads.SourceContact,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to record contact lead")
		writeError(w, http.StatusInternalServerError, "db_error", "failed to record contact", nil)
		return
	}

	contact := notify.Contact{
		Name:         req.Name,
		Email:        req.Email,
		WhatsApp:     req.WhatsApp,
		BusinessName: req.BusinessName,
		Message:      req.Message,
		Source:       leads.SourceContact,
	}
	resp := contactResponse{LeadID: lead.ID}

	if _, err := s.mailer.SendContactConfirmation(r.Context(), contact); err != nil {
		s.logger.Warn().Err(err).Str("lead_id", lead.ID).Msg("contact confirmation not sent")
	} else {
		resp.ConfirmationSent = true
	}
	if _, err := s.mailer.SendInternalNotification(r.Context(), contact); err != nil {
		s.logger.Warn().Err(err).Str("lead_id", lead.ID).Msg("internal notification not sent")
	} else {
		resp.NotificationSent = true
	}

	writeJSON(w, http.StatusCreated, resp)
}
