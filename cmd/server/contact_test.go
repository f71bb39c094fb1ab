package main

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/Simplici0/dogsclub/internal/leads"
)

func TestAPIContact(t *testing.T) {
	sender := &recordingSender{}
	srv := newTestServer(t, sender)

	rec := serve(srv, jsonRequest(t, http.MethodPost, "/api/contact", map[string]string{
		"name":          " Ana ",
		"email":         "Ana@Example.com",
		"business_name": "Pet Feliz",
		"message":       "Quero entender minha margem",
	}))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}

	var resp contactResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.LeadID == "" || !resp.ConfirmationSent || !resp.NotificationSent {
		t.Fatalf("response=%+v", resp)
	}
	if len(sender.messages) != 2 {
		t.Fatalf("sent %d messages, want 2", len(sender.messages))
	}
	if sender.messages[1].ReplyTo != "Ana@Example.com" {
		t.Fatalf("internal ReplyTo=%q", sender.messages[1].ReplyTo)
	}

	lead, err := srv.leads.Get(context.Background(), resp.LeadID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if lead.Source != leads.SourceContact || lead.Email != "ana@example.com" || lead.Name != "Ana" {
		t.Fatalf("lead=%+v", lead)
	}
}

func TestAPIContact_MailUnavailableStillRecordsLead(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := serve(srv, jsonRequest(t, http.MethodPost, "/api/contact", map[string]string{
		"name": "Ana", "email": "ana@example.com", "message": "oi",
	}))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	var resp contactResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ConfirmationSent || resp.NotificationSent {
		t.Fatalf("response=%+v, want nothing sent", resp)
	}
	if _, err := srv.leads.Get(context.Background(), resp.LeadID); err != nil {
		t.Fatalf("lead not stored: %v", err)
	}
}

func TestAPIContact_Validation(t *testing.T) {
	srv := newTestServer(t, &recordingSender{})

	rec := serve(srv, jsonRequest(t, http.MethodPost, "/api/contact", map[string]string{
		"name": "Ana", "email": "ana", "message": "oi",
	}))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", rec.Code)
	}
	fields := decodeError(t, rec).fieldDetails(t)
	if len(fields) != 1 || fields[0].Field != "email" {
		t.Fatalf("details=%+v", fields)
	}
	if fields[0].Message != "email deve ser um e-mail válido" {
		t.Fatalf("message=%q", fields[0].Message)
	}
}
