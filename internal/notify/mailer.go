package notify

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/Simplici0/dogsclub/internal/report"
)

var templates = template.Must(template.New("mail").Parse(`
{{define "report"}}<html><body style="font-family: Helvetica, Arial, sans-serif; color: #2c3e50;">
<p>Olá, {{.Name}}!</p>
<p>Segue em anexo a análise financeira do <b>{{.BusinessName}}</b>, gerada em {{.Date}}.</p>
<p>Identificamos um faturamento não realizado de <b>{{.Unrealized}}</b> por mês.
O relatório mostra onde está esse potencial e como aproveitá-lo.</p>
<p>Equipe Dog's Club</p>
</body></html>{{end}}

{{define "contact"}}<html><body style="font-family: Helvetica, Arial, sans-serif; color: #2c3e50;">
<p>Olá, {{.Name}}!</p>
<p>Recebemos sua mensagem em {{.Date}} e retornaremos em breve.</p>
<blockquote>{{.Message}}</blockquote>
<p>Petshop: {{.BusinessName}}<br>E-mail: {{.Email}}</p>
<p>Equipe Dog's Club</p>
</body></html>{{end}}

{{define "lead"}}<html><body style="font-family: Helvetica, Arial, sans-serif; color: #2c3e50;">
<h2>Novo lead</h2>
<table>
<tr><td>Nome</td><td>{{.Name}}</td></tr>
<tr><td>E-mail</td><td>{{.Email}}</td></tr>
<tr><td>WhatsApp</td><td>{{.WhatsApp}}</td></tr>
<tr><td>Petshop</td><td>{{.BusinessName}}</td></tr>
<tr><td>Fonte</td><td>{{.Source}}</td></tr>
<tr><td>Data</td><td>{{.Date}} ({{.Timestamp}})</td></tr>
</table>
<p>{{.Message}}</p>
</body></html>{{end}}
`))

// Mailer composes the Dog's Club transactional emails.
type Mailer struct {
	sender   Sender
	from     string
	internal []string
	logger   zerolog.Logger
	now      func() time.Time
}

// NewMailer returns a Mailer. A nil sender makes every send fail with ErrNotConfigured.
func NewMailer(sender Sender, from string, internalRecipients []string, logger zerolog.Logger) *Mailer {
	return &Mailer{
		sender:   sender,
		from:     from,
		internal: internalRecipients,
		logger:   logger,
		now:      time.Now,
	}
}

// Enabled reports whether the mailer can send anything.
func (m *Mailer) Enabled() bool {
	return m != nil && m.sender != nil && m.from != ""
}

// ReportDelivery is a finished analysis document addressed to the shop owner.
type ReportDelivery struct {
	Name              string
	Email             string
	BusinessName      string
	UnrealizedRevenue float64
	Document          []byte
	CC                []string
}

// Contact is a message left through the contact form.
type Contact struct {
	Name         string
	Email        string
	WhatsApp     string
	BusinessName string
	Message      string
	Source       string
}

// SendReport emails the analysis document as an HTML attachment.
func (m *Mailer) SendReport(ctx context.Context, d ReportDelivery) (SendResult, error) {
	now := m.now()
	body, err := render("report", struct {
		Name, BusinessName, Date, Unrealized string
	}{
		Name:         d.Name,
		BusinessName: d.BusinessName,
		Date:         now.Format("02/01/2006"),
		Unrealized:   report.FormatCurrency(d.UnrealizedRevenue),
	})
	if err != nil {
		return SendResult{}, err
	}

	return m.send(ctx, Message{
		To:      []string{d.Email},
		CC:      d.CC,
		Subject: "Análise Financeira - " + d.BusinessName,
		HTML:    body,
		Attachments: []Attachment{{
			Name:        ReportFileName(d.BusinessName, now),
			ContentType: "text/html; charset=utf-8",
			Content:     d.Document,
		}},
	})
}

// SendContactConfirmation acknowledges a contact form message.
func (m *Mailer) SendContactConfirmation(ctx context.Context, c Contact) (SendResult, error) {
	body, err := render("contact", struct {
		Contact
		Date string
	}{Contact: c, Date: m.now().Format("02/01/2006 às 15:04")})
	if err != nil {
		return SendResult{}, err
	}

	return m.send(ctx, Message{
		To:      []string{c.Email},
		Subject: "Recebemos sua mensagem - Dog's Club",
		HTML:    body,
	})
}

// SendInternalNotification tells the team about a new lead; replies go to the lead.
func (m *Mailer) SendInternalNotification(ctx context.Context, c Contact) (SendResult, error) {
	if len(m.internal) == 0 {
		return SendResult{}, fmt.Errorf("%w: no internal recipients", ErrNotConfigured)
	}

	now := m.now()
	body, err := render("lead", struct {
		Contact
		Date      string
		Timestamp int64
	}{Contact: c, Date: now.Format("02/01/2006 às 15:04"), Timestamp: now.Unix()})
	if err != nil {
		return SendResult{}, err
	}

	return m.send(ctx, Message{
		To:      m.internal,
		ReplyTo: c.Email,
		Subject: fmt.Sprintf("[NOVO LEAD] %s - %s", c.Name, c.BusinessName),
		HTML:    body,
	})
}

func (m *Mailer) send(ctx context.Context, msg Message) (SendResult, error) {
	if !m.Enabled() {
		return SendResult{}, ErrNotConfigured
	}
	msg.From = m.from

	res, err := m.sender.Send(ctx, msg)
	if err != nil {
		m.logger.Error().Err(err).Str("subject", msg.Subject).Msg("email delivery failed")
		return SendResult{}, err
	}
	m.logger.Info().Str("message_id", res.MessageID).Str("subject", msg.Subject).Msg("email sent")
	return res, nil
}

// ReportFileName is the attachment name: analise_{shop}_{unix}.html.
func ReportFileName(businessName string, at time.Time) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsSpace(r):
			return '_'
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '_', r == '-':
			return unicode.ToLower(r)
		default:
			return -1
		}
	}, strings.TrimSpace(businessName))
	if slug == "" {
		slug = "petshop"
	}
	return fmt.Sprintf("analise_%s_%d.html", slug, at.Unix())
}

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s email: %w", name, err)
	}
	return buf.String(), nil
}
