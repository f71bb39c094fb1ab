package notify

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// ErrNotConfigured is returned when the mail API settings are missing.
var ErrNotConfigured = errors.New("mail delivery is not configured")

// Sender delivers one message.
type Sender interface {
	Send(ctx context.Context, msg Message) (SendResult, error)
}

// Attachment is a file sent along with a message.
type Attachment struct {
	Name        string
	ContentType string
	Content     []byte
}

// Message is a transactional email.
type Message struct {
	From        string
	To          []string
	CC          []string
	ReplyTo     string
	Subject     string
	HTML        string
	Attachments []Attachment
}

// SendResult identifies a message accepted by the mail API.
type SendResult struct {
	MessageID string `json:"message_id"`
	Timestamp int64  `json:"timestamp"`
}

// ClientConfig holds the mail API connection settings.
type ClientConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client is a resty-backed Sender for a JSON mail API.
type Client struct {
	httpClient *resty.Client
	now        func() time.Time
}

// NewClient returns ErrNotConfigured when the base URL or key is empty.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.BaseURL == "" || cfg.APIKey == "" {
		return nil, ErrNotConfigured
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.APIKey)).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)

	return &Client{httpClient: restyClient, now: time.Now}, nil
}

type messagePayload struct {
	From        string              `json:"from"`
	To          []string            `json:"to"`
	CC          []string            `json:"cc,omitempty"`
	ReplyTo     string              `json:"reply_to,omitempty"`
	Subject     string              `json:"subject"`
	HTML        string              `json:"html"`
	Attachments []attachmentPayload `json:"attachments,omitempty"`
}

type attachmentPayload struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Content     string `json:"content"`
}

type sendResponse struct {
	ID string `json:"id"`
}

type apiError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) Send(ctx context.Context, msg Message) (SendResult, error) {
	if len(msg.To) == 0 {
		return SendResult{}, errors.New("send mail: no recipients")
	}

	payload := messagePayload{
		From:    msg.From,
		To:      msg.To,
		CC:      msg.CC,
		ReplyTo: msg.ReplyTo,
		Subject: msg.Subject,
		HTML:    msg.HTML,
	}
	for _, a := range msg.Attachments {
		payload.Attachments = append(payload.Attachments, attachmentPayload{
			Filename:    a.Name,
			ContentType: a.ContentType,
			Content:     base64.StdEncoding.EncodeToString(a.Content),
		})
	}

	result := new(sendResponse)
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(result).
		SetError(apiErr).
		Post("/messages")
	if err != nil {
		return SendResult{}, fmt.Errorf("send mail: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return SendResult{}, fmt.Errorf("mail api error: status=%d, code=%s, message=%s",
			resp.StatusCode(), apiErr.Error.Code, apiErr.Error.Message)
	}

	return SendResult{MessageID: result.ID, Timestamp: c.now().Unix()}, nil
}
