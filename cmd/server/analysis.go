package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Simplici0/dogsclub/internal/leads"
	"github.com/Simplici0/dogsclub/internal/metrics"
	"github.com/Simplici0/dogsclub/internal/notify"
	"github.com/Simplici0/dogsclub/internal/report"
)

// errMailDelivery wraps failures reported by the mail API.
var errMailDelivery = errors.New("mail delivery failed")

type analysis struct {
	Input  metrics.Input   `json:"-"`
	Result metrics.Result  `json:"result"`
	Report report.Report   `json:"report"`
	Charts report.ChartSet `json:"charts"`
}

type formViewData struct {
	baseViewData
	Values url.Values
	Errors map[string]string
}

type dashboardViewData struct {
	baseViewData
	Analysis analysis
	Values   url.Values
}

type reportSent struct {
	ReportID  string `json:"report_id"`
	LeadID    string `json:"lead_id,omitempty"`
	MessageID string `json:"message_id"`
}

func (s *server) runAnalysis(raw metrics.Input) (analysis, error) {
	in, err := metrics.NewInput(raw)
	if err != nil {
		return analysis{}, err
	}
	res, err := s.analyzer.Analyze(in)
	if err != nil {
		return analysis{}, err
	}
	return analysis{
		Input:  in,
		Result: res,
		Report: report.Build(in, res),
		Charts: report.Charts(res),
	}, nil
}

// sendReport records the requester as a lead, then emails the HTML report.
// A lead that cannot be stored is logged and does not block delivery.
func (s *server) sendReport(ctx context.Context, a analysis) (reportSent, error) {
	doc, err := report.RenderHTML(a.Input, a.Result, a.Report, s.now())
	if err != nil {
		return reportSent{}, err
	}

	sent := reportSent{ReportID: a.Report.ID}
	lead, err := s.leads.Create(ctx, leads.NewLead{
		Email:        a.Input.ContactEmail,
		Name:         a.Input.OwnerName,
		WhatsApp:     a.Input.WhatsApp,
		BusinessName: a.Input.BusinessName,
		Message:      a.Input.Challenge,
		Source:       leads.SourceReport,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("report_id", a.Report.ID).Msg("failed to record report lead")
	} else {
		sent.LeadID = lead.ID
	}

	res, err := s.mailer.SendReport(ctx, notify.ReportDelivery{
		Name:              a.Input.OwnerName,
		Email:             a.Input.ContactEmail,
		BusinessName:      a.Input.BusinessName,
		UnrealizedRevenue: a.Result.UnrealizedRevenue,
		Document:          doc,
	})
	if errors.Is(err, notify.ErrNotConfigured) {
		return sent, err
	}
	if err != nil {
		return sent, fmt.Errorf("%w: %w", errMailDelivery, err)
	}
	sent.MessageID = res.MessageID
	return sent, nil
}

func (s *server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.renderTemplate(w, http.StatusOK, "form.html", formViewData{
		baseViewData: s.base(r),
		Values:       inputValues(metrics.FormDefaults()),
	})
}

func (s *server) renderFormErrors(w http.ResponseWriter, r *http.Request, errs []metrics.FieldError) {
	s.renderTemplate(w, http.StatusBadRequest, "form.html", formViewData{
		baseViewData: baseViewData{
			ErrorMessage: "Verifique os campos destacados.",
			LoggedIn:     isAuthenticated(r, s.auth),
		},
		Values: r.PostForm,
		Errors: fieldErrorMap(errs),
	})
}

// analyzeForm runs the pipeline for a browser form post. It renders the form
// with field messages and reports false when the input is rejected.
func (s *server) analyzeForm(w http.ResponseWriter, r *http.Request) (analysis, bool) {
	raw, formErrs, err := decodeInput(w, r)
	if err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return analysis{}, false
	}
	if len(formErrs) > 0 {
		s.renderFormErrors(w, r, formErrs)
		return analysis{}, false
	}

	a, err := s.runAnalysis(raw)
	var verr *metrics.ValidationError
	if errors.As(err, &verr) {
		s.renderFormErrors(w, r, verr.Fields)
		return analysis{}, false
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("analysis failed")
		http.Error(w, "failed to analyze business", http.StatusInternalServerError)
		return analysis{}, false
	}
	return a, true
}

func (s *server) handleAnalysisSubmit(w http.ResponseWriter, r *http.Request) {
	a, ok := s.analyzeForm(w, r)
	if !ok {
		return
	}
	s.renderTemplate(w, http.StatusOK, "dashboard.html", dashboardViewData{
		baseViewData: s.base(r),
		Analysis:     a,
		Values:       r.PostForm,
	})
}

func (s *server) handleAnalysisEmail(w http.ResponseWriter, r *http.Request) {
	a, ok := s.analyzeForm(w, r)
	if !ok {
		return
	}

	data := dashboardViewData{baseViewData: s.base(r), Analysis: a, Values: r.PostForm}
	status := http.StatusOK
	_, err := s.sendReport(r.Context(), a)
	switch {
	case errors.Is(err, notify.ErrNotConfigured):
		status = http.StatusServiceUnavailable
		data.ErrorMessage = "O envio de e-mails não está disponível no momento."
	case err != nil:
		status = http.StatusBadGateway
		data.ErrorMessage = "Não foi possível enviar o relatório. Tente novamente."
	default:
		data.SuccessMessage = "Relatório enviado para " + a.Input.ContactEmail + "."
	}
	s.renderTemplate(w, status, "dashboard.html", data)
}

// analyzeAPI decodes and analyzes an API request, writing the error response
// itself when it reports false.
func (s *server) analyzeAPI(w http.ResponseWriter, r *http.Request) (analysis, bool) {
	raw, formErrs, err := decodeInput(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "request body could not be decoded", err.Error())
		return analysis{}, false
	}
	if len(formErrs) > 0 {
		writeError(w, http.StatusBadRequest, "validation_failed", "invalid business input", formErrs)
		return analysis{}, false
	}

	a, err := s.runAnalysis(raw)
	if err != nil {
		s.writeAnalysisError(w, r, err)
		return analysis{}, false
	}
	return a, true
}

func (s *server) handleAPIAnalysis(w http.ResponseWriter, r *http.Request) {
	a, ok := s.analyzeAPI(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *server) handleAPIReport(w http.ResponseWriter, r *http.Request) {
	a, ok := s.analyzeAPI(w, r)
	if !ok {
		return
	}

	now := s.now()
	doc, err := report.RenderHTML(a.Input, a.Result, a.Report, now)
	if err != nil {
		s.writeAnalysisError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, notify.ReportFileName(a.Input.BusinessName, now)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}

func (s *server) handleAPIReportEmail(w http.ResponseWriter, r *http.Request) {
	a, ok := s.analyzeAPI(w, r)
	if !ok {
		return
	}

	sent, err := s.sendReport(r.Context(), a)
	if err != nil {
		s.writeAnalysisError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sent)
}
