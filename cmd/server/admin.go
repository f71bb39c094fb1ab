package main

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Simplici0/dogsclub/internal/leads"
)

const adminLeadsLimit = 200

type loginViewData struct {
	baseViewData
}

type leadsViewData struct {
	baseViewData
	Source   string
	Email    string
	Leads    []leads.Lead
	Statuses []leads.Status
}

func (s *server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	if isAuthenticated(r, s.auth) {
		http.Redirect(w, r, "/admin/leads", http.StatusSeeOther)
		return
	}
	s.renderTemplate(w, http.StatusOK, "login.html", loginViewData{})
}

func (s *server) handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	email := strings.ToLower(strings.TrimSpace(r.FormValue("email")))
	password := r.FormValue("password")
	valid, err := s.auth.validateCredentials(r.Context(), email, password)
	if err != nil {
		s.logger.Error().Err(err).Msg("authentication error")
		http.Error(w, "authentication error", http.StatusInternalServerError)
		return
	}
	if !valid {
		s.renderTemplate(w, http.StatusUnauthorized, "login.html", loginViewData{
			baseViewData: baseViewData{ErrorMessage: "Credenciais inválidas. Tente novamente."},
		})
		return
	}

	s.auth.setSessionCookie(w, email)
	http.Redirect(w, r, "/admin/leads", http.StatusSeeOther)
}

func (s *server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.auth.clearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *server) handleAdminLeads(w http.ResponseWriter, r *http.Request) {
	source := strings.TrimSpace(r.URL.Query().Get("source"))
	email := strings.TrimSpace(r.URL.Query().Get("email"))

	var (
		list []leads.Lead
		err  error
	)
	switch {
	case email != "":
		list, err = s.leads.ListByEmail(r.Context(), email)
	case source != "":
		list, err = s.leads.ListBySource(r.Context(), source)
	default:
		list, err = s.leads.ListActive(r.Context(), adminLeadsLimit)
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load leads")
		http.Error(w, "failed to load leads", http.StatusInternalServerError)
		return
	}

	s.renderTemplate(w, http.StatusOK, "admin_leads.html", leadsViewData{
		baseViewData: baseViewData{
			ErrorMessage:   r.URL.Query().Get("error"),
			SuccessMessage: r.URL.Query().Get("success"),
			LoggedIn:       true,
		},
		Source:   source,
		Email:    email,
		Leads:    list,
		Statuses: []leads.Status{leads.StatusActive, leads.StatusInactive, leads.StatusDeleted},
	})
}

func (s *server) handleAdminLeadStatus(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	err := s.leads.UpdateStatus(r.Context(), chi.URLParam(r, "id"), leads.Status(r.FormValue("status")))
	s.redirectAfterLeadUpdate(w, r, err, "Status atualizado")
}

func (s *server) handleAdminLeadNotes(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	err := s.leads.AddNotes(r.Context(), chi.URLParam(r, "id"), r.FormValue("notes"))
	s.redirectAfterLeadUpdate(w, r, err, "Notas salvas")
}

func (s *server) handleAdminLeadDelete(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	err := s.leads.Delete(r.Context(), chi.URLParam(r, "id"), r.FormValue("force") == "1")
	s.redirectAfterLeadUpdate(w, r, err, "Lead removido")
}

func (s *server) redirectAfterLeadUpdate(w http.ResponseWriter, r *http.Request, err error, success string) {
	switch {
	case errors.Is(err, leads.ErrNotFound):
		http.NotFound(w, r)
	case errors.Is(err, leads.ErrInvalidStatus):
		http.Redirect(w, r, "/admin/leads?error="+url.QueryEscape("Status inválido"), http.StatusSeeOther)
	case err != nil:
		s.logger.Error().Err(err).Str("lead_id", chi.URLParam(r, "id")).Msg("failed to update lead")
		http.Error(w, "failed to update lead", http.StatusInternalServerError)
	default:
		http.Redirect(w, r, "/admin/leads?success="+url.QueryEscape(success), http.StatusSeeOther)
	}
}
