// -----------------------------------------------------------------------
// Mailer Service - SMTP notification dispatch for repair requests
// -----------------------------------------------------------------------

package mailer

import (
	"context"
	"crypto/rand"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"html"
	"net/smtp"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/reparo/internal/common"
	"github.com/ternarybob/reparo/internal/models"
)

// Service provides email sending over the configured SMTP transport
type Service struct {
	config common.EmailConfig
	logger arbor.ILogger
}

// NewService creates a new mailer service
func NewService(config common.EmailConfig, logger arbor.ILogger) *Service {
	return &Service{
		config: config,
		logger: logger,
	}
}

// IsConfigured checks whether SMTP has the minimum required settings
func (s *Service) IsConfigured() bool {
	return s.config.Host != "" && s.config.Username != "" && s.config.Password != "" && s.config.From != ""
}

// NotifyRepairRequest sends one notification for a repair request to the
// configured distribution list
func (s *Service) NotifyRepairRequest(ctx context.Context, req *models.RepairRequest) error {
	subject := fmt.Sprintf("🔧 New Repair Request - %s (%s)", req.IssueCategory, req.UrgencyLevel)
	htmlBody := buildNotificationHTML(req)
	textBody := buildNotificationText(req)

	if err := s.SendHTMLEmail(ctx, s.config.DistributionList, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send repair notification for task %s: %w", req.TaskGID, err)
	}

	s.logger.Info().
		Str("task", req.TaskGID).
		Str("to", s.config.DistributionList).
		Str("category", req.IssueCategory).
		Msg("Repair notification sent")

	return nil
}

// SendTestEmail sends a canned repair notification to verify SMTP configuration
func (s *Service) SendTestEmail(ctx context.Context) error {
	test := &models.RepairRequest{
		TaskGID:       "test_task_12345",
		FirstName:     "Test",
		LastName:      "Tenant",
		Email:         "test@example.com",
		Phone:         "(555) 123-4567",
		Address:       "123 Test Street",
		UnitNumber:    "Apt 4B",
		UrgencyLevel:  "Standard",
		IssueCategory: "Plumbing",
		SpecificIssue: "Leaky faucet",
		Description:   "This is a test notification from the repair request system.",
	}

	if err := s.NotifyRepairRequest(ctx, test); err != nil {
		s.logger.Error().Err(err).Msg("Failed to send test email")
		return err
	}
	return nil
}

// SendHTMLEmail sends an email with HTML and/or plain text body
func (s *Service) SendHTMLEmail(ctx context.Context, to, subject, htmlBody, textBody string) error {
	if s.config.Host == "" {
		return fmt.Errorf("SMTP host not configured")
	}
	if s.config.Username == "" || s.config.Password == "" {
		return fmt.Errorf("SMTP credentials not configured")
	}
	if s.config.From == "" {
		return fmt.Errorf("from email not configured")
	}

	// Build email message
	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: %s <%s>\r\n", s.config.FromName, s.config.From))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))

	if htmlBody != "" {
		// Multipart message with HTML and text; unique boundary avoids
		// collisions with content
		boundary := generateBoundary()
		msg.WriteString("MIME-Version: 1.0\r\n")
		msg.WriteString(fmt.Sprintf("Content-Type: multipart/alternative; boundary=\"%s\"\r\n", boundary))
		msg.WriteString("\r\n")

		if textBody != "" {
			msg.WriteString(fmt.Sprintf("--%s\r\n", boundary))
			msg.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
			msg.WriteString("Content-Transfer-Encoding: base64\r\n")
			msg.WriteString("\r\n")
			msg.WriteString(encodeBase64WithLineBreaks(textBody))
			msg.WriteString("\r\n")
		}

		// Base64 keeps long HTML lines within the RFC 5322 998-char limit
		msg.WriteString(fmt.Sprintf("--%s\r\n", boundary))
		msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
		msg.WriteString("Content-Transfer-Encoding: base64\r\n")
		msg.WriteString("\r\n")
		msg.WriteString(encodeBase64WithLineBreaks(htmlBody))
		msg.WriteString("\r\n")

		msg.WriteString(fmt.Sprintf("--%s--\r\n", boundary))
	} else {
		msg.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
		msg.WriteString("\r\n")
		msg.WriteString(textBody)
	}

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)

	if s.config.UseTLS {
		return s.sendWithTLS(addr, auth, s.config.From, to, msg.String())
	}

	return smtp.SendMail(addr, auth, s.config.From, []string{to}, []byte(msg.String()))
}

// sendWithTLS sends email using a TLS connection (required for Gmail)
func (s *Service) sendWithTLS(addr string, auth smtp.Auth, from, to, msg string) error {
	host := strings.Split(addr, ":")[0]

	conn, err := tls.Dial("tcp", addr, &tls.Config{
		ServerName: host,
	})
	if err != nil {
		// Fallback to STARTTLS if direct TLS fails
		return s.sendWithSTARTTLS(addr, auth, from, to, msg)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, host)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Close()

	return submit(client, auth, from, to, msg)
}

// sendWithSTARTTLS sends email using STARTTLS upgrade
func (s *Service) sendWithSTARTTLS(addr string, auth smtp.Auth, from, to, msg string) error {
	host := strings.Split(addr, ":")[0]

	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer client.Close()

	if err := client.StartTLS(&tls.Config{ServerName: host}); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	return submit(client, auth, from, to, msg)
}

// submit runs the SMTP transaction on an established client
func submit(client *smtp.Client, auth smtp.Auth, from, to, msg string) error {
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("SMTP authentication failed: %w", err)
	}

	if err := client.Mail(from); err != nil {
		return fmt.Errorf("failed to set mail from: %w", err)
	}

	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set mail recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to start data: %w", err)
	}

	if _, err := w.Write([]byte(msg)); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	return client.Quit()
}

// buildNotificationHTML renders the repair-request notification body
func buildNotificationHTML(req *models.RepairRequest) string {
	esc := html.EscapeString

	var b strings.Builder
	b.WriteString("<html><body style=\"font-family: Arial, sans-serif; line-height: 1.6;\">")
	b.WriteString(fmt.Sprintf("<h2>🔧 New Repair Request - %s</h2>", esc(req.IssueCategory)))

	if req.IsEmergency() {
		b.WriteString("<p style=\"color: red; font-weight: bold;\">⚠️ EMERGENCY - immediate attention required</p>")
	}

	b.WriteString("<h3>Tenant</h3><table cellpadding=\"4\">")
	b.WriteString(fmt.Sprintf("<tr><td><b>Name</b></td><td>%s</td></tr>", esc(req.TenantName())))
	b.WriteString(fmt.Sprintf("<tr><td><b>Email</b></td><td>%s</td></tr>", esc(req.Email)))
	b.WriteString(fmt.Sprintf("<tr><td><b>Phone</b></td><td>%s</td></tr>", esc(req.Phone)))
	b.WriteString("</table>")

	b.WriteString("<h3>Property</h3><table cellpadding=\"4\">")
	b.WriteString(fmt.Sprintf("<tr><td><b>Address</b></td><td>%s</td></tr>", esc(req.Address)))
	b.WriteString(fmt.Sprintf("<tr><td><b>Unit</b></td><td>%s</td></tr>", esc(req.UnitNumber)))
	b.WriteString("</table>")

	b.WriteString("<h3>Issue</h3><table cellpadding=\"4\">")
	b.WriteString(fmt.Sprintf("<tr><td><b>Category</b></td><td>%s</td></tr>", esc(req.IssueCategory)))
	b.WriteString(fmt.Sprintf("<tr><td><b>Urgency</b></td><td>%s</td></tr>", esc(req.UrgencyLevel)))
	b.WriteString(fmt.Sprintf("<tr><td><b>Specific issue</b></td><td>%s</td></tr>", esc(req.SpecificIssue)))
	b.WriteString("</table>")

	b.WriteString(fmt.Sprintf("<h3>Description</h3><p>%s</p>", esc(req.Description)))
	b.WriteString(fmt.Sprintf("<p style=\"color: #888;\">Task: %s</p>", esc(req.TaskGID)))
	b.WriteString("</body></html>")

	return b.String()
}

// buildNotificationText renders the plain-text alternative part
func buildNotificationText(req *models.RepairRequest) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("New Repair Request - %s (%s)\n\n", req.IssueCategory, req.UrgencyLevel))
	b.WriteString(fmt.Sprintf("Tenant: %s\n", req.TenantName()))
	b.WriteString(fmt.Sprintf("Email: %s\n", req.Email))
	b.WriteString(fmt.Sprintf("Phone: %s\n", req.Phone))
	b.WriteString(fmt.Sprintf("Address: %s, Unit %s\n", req.Address, req.UnitNumber))
	b.WriteString(fmt.Sprintf("Specific issue: %s\n", req.SpecificIssue))
	b.WriteString(fmt.Sprintf("Description: %s\n", req.Description))
	b.WriteString(fmt.Sprintf("Task: %s\n", req.TaskGID))
	return b.String()
}

// generateBoundary creates a unique MIME boundary string
func generateBoundary() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "reparo_boundary_fallback"
	}
	return fmt.Sprintf("reparo_%x", b)
}

// encodeBase64WithLineBreaks encodes content as base64 with 76-char line
// breaks per RFC 2045 for MIME content
func encodeBase64WithLineBreaks(content string) string {
	encoded := base64.StdEncoding.EncodeToString([]byte(content))

	var result strings.Builder
	const lineLen = 76

	for i := 0; i < len(encoded); i += lineLen {
		end := i + lineLen
		if end > len(encoded) {
			end = len(encoded)
		}
		result.WriteString(encoded[i:end])
		if end < len(encoded) {
			result.WriteString("\r\n")
		}
	}

	return result.String()
}
