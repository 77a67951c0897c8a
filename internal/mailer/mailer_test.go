// AngelaMos | 2026
// mailer_test.go

package mailer

import (
	"html/template"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMailer(t *testing.T) *Mailer {
	t.Helper()

	templates, err := template.ParseFS(templateFS, "templates/*.html")
	require.NoError(t, err)

	return &Mailer{
		templates:    templates,
		fromAddress:  "noreply@jdstudio.dev",
		contactInbox: "hello@jdstudio.dev",
		hireInbox:    "hire@jdstudio.dev",
	}
}

func TestRenderContact(t *testing.T) {
	m := newTestMailer(t)

	html, err := m.render("contact.html", contactData{
		Name:    "Dana",
		Email:   "dana@example.com",
		Subject: "New site",
		Message: "We need a refresh.",
	})
	require.NoError(t, err)

	assert.Contains(t, html, "Dana")
	assert.Contains(t, html, "dana@example.com")
	assert.Contains(t, html, "We need a refresh.")
}

func TestRenderQuote(t *testing.T) {
	m := newTestMailer(t)

	t.Run("includes the company when present", func(t *testing.T) {
		html, err := m.render("quote.html", quoteData{
			Name:        "Dana",
			Email:       "dana@example.com",
			Company:     "Acme Corp",
			ProjectType: "SaaS Platform",
			Budget:      "$25k",
			Timeline:    "3 months",
			Details:     "Multi-tenant dashboard.",
		})
		require.NoError(t, err)

		assert.Contains(t, html, "Acme Corp")
		assert.Contains(t, html, "SaaS Platform")
	})

	t.Run("omits the company block when absent", func(t *testing.T) {
		html, err := m.render("quote.html", quoteData{
			Name:        "Dana",
			Email:       "dana@example.com",
			ProjectType: "Web Application",
			Budget:      "$10k",
			Timeline:    "6 weeks",
			Details:     "Brochure site.",
		})
		require.NoError(t, err)

		assert.NotContains(t, html, "Company")
	})
}

func TestRenderInvite(t *testing.T) {
	m := newTestMailer(t)

	html, err := m.render("invite.html", inviteData{
		Role:      "admin",
		AcceptURL: "https://admin.jdstudio.dev/accept?token=abc",
	})
	require.NoError(t, err)

	assert.Contains(t, html, "admin")
	assert.Contains(t, html, "https://admin.jdstudio.dev/accept?token=abc")
}

func TestRenderEscapesHTML(t *testing.T) {
	m := newTestMailer(t)

	html, err := m.render("contact.html", contactData{
		Name:    "<script>alert(1)</script>",
		Email:   "dana@example.com",
		Subject: "hi",
		Message: "hello",
	})
	require.NoError(t, err)

	assert.NotContains(t, html, "<script>alert(1)</script>")
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestProjectTypeLabels(t *testing.T) {
	for _, projectType := range []string{"web", "saas", "mobile", "ai", "other"} {
		assert.NotEmpty(t, projectTypeLabels[projectType], projectType)
	}
}
