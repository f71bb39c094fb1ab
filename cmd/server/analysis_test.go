package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Simplici0/dogsclub/internal/leads"
	"github.com/Simplici0/dogsclub/internal/metrics"
	"github.com/Simplici0/dogsclub/internal/report"
)

func TestAPIAnalysis(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := serve(srv, jsonRequest(t, http.MethodPost, "/api/analysis", sampleInput()))
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}

	var got struct {
		Result metrics.Result  `json:"result"`
		Report report.Report   `json:"report"`
		Charts report.ChartSet `json:"charts"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Result.BusinessName != "Pet Feliz" || got.Result.CurrentRevenue != 18000 {
		t.Fatalf("result=%+v", got.Result)
	}
	if got.Report.ID == "" || len(got.Report.Benchmarks) == 0 {
		t.Fatalf("report=%+v", got.Report)
	}
	if len(got.Charts.Revenue.Points) == 0 {
		t.Fatalf("charts=%+v", got.Charts)
	}
}

func TestAPIAnalysis_ValidationError(t *testing.T) {
	srv := newTestServer(t, nil)
	in := sampleInput()
	in.ContactEmail = "not-an-email"

	rec := serve(srv, jsonRequest(t, http.MethodPost, "/api/analysis", in))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	env := decodeError(t, rec)
	if env.Error.Code != "validation_failed" {
		t.Fatalf("code=%q", env.Error.Code)
	}
	if fields := env.fieldDetails(t); len(fields) != 1 || fields[0].Field != "contact_email" {
		t.Fatalf("details=%+v", fields)
	}
}

func TestAPIAnalysis_InvalidBody(t *testing.T) {
	srv := newTestServer(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/analysis", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")

	rec := serve(srv, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	env := decodeError(t, rec)
	if env.Error.Code != "invalid_body" || env.textDetails(t) == "" {
		t.Fatalf("error=%+v", env.Error)
	}
}

func TestAPIReport_Download(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := serve(srv, jsonRequest(t, http.MethodPost, "/api/report", sampleInput()))
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("Content-Type=%q", ct)
	}
	want := `attachment; filename="analise_pet_feliz_1773066600.html"`
	if cd := rec.Header().Get("Content-Disposition"); cd != want {
		t.Fatalf("Content-Disposition=%q, want %q", cd, want)
	}
	if !strings.Contains(rec.Body.String(), "Análise Financeira") {
		t.Fatalf("document missing title")
	}
}

func TestAPIReport_AcceptsFormBody(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := serve(srv, formRequest("/api/report", inputValues(sampleInput())))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Pet Feliz") {
		t.Fatalf("status=%d", rec.Code)
	}
}

func TestAPIReportEmail(t *testing.T) {
	sender := &recordingSender{}
	srv := newTestServer(t, sender)

	rec := serve(srv, jsonRequest(t, http.MethodPost, "/api/report/email", sampleInput()))
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}

	var sent reportSent
	if err := json.Unmarshal(rec.Body.Bytes(), &sent); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if sent.MessageID != "msg-1" || sent.LeadID == "" || sent.ReportID == "" {
		t.Fatalf("response=%+v", sent)
	}

	if len(sender.messages) != 1 {
		t.Fatalf("sent %d messages, want 1", len(sender.messages))
	}
	msg := sender.messages[0]
	if msg.To[0] != "ana@example.com" || msg.Subject != "Análise Financeira - Pet Feliz" || len(msg.Attachments) != 1 {
		t.Fatalf("message=%+v", msg)
	}

	recorded, err := srv.leads.ListBySource(context.Background(), leads.SourceReport)
	if err != nil {
		t.Fatalf("ListBySource: %v", err)
	}
	if len(recorded) != 1 || recorded[0].ID != sent.LeadID || recorded[0].BusinessName != "Pet Feliz" {
		t.Fatalf("recorded leads=%+v", recorded)
	}
}

func TestAPIReportEmail_MailFailure(t *testing.T) {
	srv := newTestServer(t, &recordingSender{err: errors.New("upstream down")})

	rec := serve(srv, jsonRequest(t, http.MethodPost, "/api/report/email", sampleInput()))
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	env := decodeError(t, rec)
	if env.Error.Code != "mail_failed" || !strings.Contains(env.textDetails(t), "upstream down") {
		t.Fatalf("error=%+v", env.Error)
	}
}

func TestAPIReportEmail_NotConfigured(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := serve(srv, jsonRequest(t, http.MethodPost, "/api/report/email", sampleInput()))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
}

func TestHome_PrefillsFormDefaults(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := serve(srv, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{`name="opening_time"`, `value="08:00"`, `value="18000"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("form missing %s", want)
		}
	}
}

func TestAnalysisForm_RendersDashboard(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := serve(srv, formRequest("/analysis", inputValues(sampleInput())))
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	for _, want := range []string{"Pet Feliz", "Saúde financeira", "R$ 18.000,00", `action="/analysis/email"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("dashboard missing %q", want)
		}
	}
}

func TestAnalysisForm_MalformedNumber(t *testing.T) {
	srv := newTestServer(t, nil)
	form := inputValues(sampleInput())
	form.Set("days_per_week", "seis")

	rec := serve(srv, formRequest("/analysis", form))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "days_per_week deve ser um número inteiro") || !strings.Contains(body, `value="seis"`) {
		t.Fatalf("form not re-rendered with the error")
	}
}

func TestAnalysisForm_ValidationError(t *testing.T) {
	srv := newTestServer(t, nil)
	form := inputValues(sampleInput())
	form.Del("business_name")

	rec := serve(srv, formRequest("/analysis", form))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "business_name é obrigatório") {
		t.Fatalf("missing business_name message")
	}
}

func TestAnalysisEmail_Form(t *testing.T) {
	sender := &recordingSender{}
	srv := newTestServer(t, sender)

	rec := serve(srv, formRequest("/analysis/email", inputValues(sampleInput())))
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Relatório enviado para ana@example.com.") {
		t.Fatalf("missing success message")
	}
	if len(sender.messages) != 1 {
		t.Fatalf("sent %d messages", len(sender.messages))
	}
}

func TestAnalysisForm_WithoutOptionalExpenses(t *testing.T) {
	srv := newTestServer(t, nil)
	form := inputValues(sampleInput())
	form.Del("rent_expense")
	form.Del("other_expense")

	rec := serve(srv, formRequest("/analysis", form))
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
}
