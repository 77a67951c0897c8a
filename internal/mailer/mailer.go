// AngelaMos | 2026
// mailer.go

package mailer

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v2"

	"github.com/jdstudio/backoffice/internal/config"
	"github.com/jdstudio/backoffice/internal/intake"
)

//go:embed templates/*.html
var templateFS embed.FS

// Mailer delivers transactional notifications through Resend.
type Mailer struct {
	client       *resend.Client
	templates    *template.Template
	fromAddress  string
	contactInbox string
	hireInbox    string
}

func New(cfg config.EmailConfig) (*Mailer, error) {
	templates, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse email templates: %w", err)
	}

	return &Mailer{
		client:       resend.NewClient(cfg.APIKey),
		templates:    templates,
		fromAddress:  cfg.FromAddress,
		contactInbox: cfg.ContactInbox,
		hireInbox:    cfg.HireInbox,
	}, nil
}

type contactData struct {
	Name    string
	Email   string
	Subject string
	Message string
}

type quoteData struct {
	Name        string
	Email       string
	Company     string
	ProjectType string
	Budget      string
	Timeline    string
	Details     string
}

type inviteData struct {
	Role      string
	AcceptURL string
}

var projectTypeLabels = map[string]string{
	"web":    "Web Application",
	"saas":   "SaaS Platform",
	"mobile": "Mobile App",
	"ai":     "AI Integration",
	"other":  "Other/Custom",
}

func (m *Mailer) SendContactNotification(
	ctx context.Context,
	message *intake.Message,
) error {
	html, err := m.render("contact.html", contactData{
		Name:    message.Name,
		Email:   message.Email,
		Subject: message.Subject,
		Message: message.Message,
	})
	if err != nil {
		return err
	}

	return m.send(ctx, &resend.SendEmailRequest{
		From:    m.fromAddress,
		To:      []string{m.contactInbox},
		Subject: "New Contact Message: " + message.Subject,
		Html:    html,
		ReplyTo: message.Email,
	})
}

func (m *Mailer) SendQuoteNotification(
	ctx context.Context,
	quote *intake.Quote,
) error {
	data := quoteData{
		Name:        quote.Name,
		Email:       quote.Email,
		ProjectType: quote.ProjectType,
		Budget:      quote.Budget,
		Timeline:    quote.Timeline,
		Details:     quote.Details,
	}
	if label, ok := projectTypeLabels[quote.ProjectType]; ok {
		data.ProjectType = label
	}
	if quote.Company != nil {
		data.Company = *quote.Company
	}

	html, err := m.render("quote.html", data)
	if err != nil {
		return err
	}

	return m.send(ctx, &resend.SendEmailRequest{
		From:    m.fromAddress,
		To:      []string{m.hireInbox},
		Subject: "New Quote Request from " + quote.Name,
		Html:    html,
		ReplyTo: quote.Email,
	})
}

func (m *Mailer) SendInvite(
	ctx context.Context,
	email, role, acceptURL string,
) error {
	html, err := m.render("invite.html", inviteData{
		Role:      role,
		AcceptURL: acceptURL,
	})
	if err != nil {
		return err
	}

	return m.send(ctx, &resend.SendEmailRequest{
		From:    m.fromAddress,
		To:      []string{email},
		Subject: "You've been invited to the JD Studio back office",
		Html:    html,
	})
}

func (m *Mailer) render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := m.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

func (m *Mailer) send(
	ctx context.Context,
	params *resend.SendEmailRequest,
) error {
	if _, err := m.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}
