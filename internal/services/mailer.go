package services

import (
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"

	"recruitai/backend/internal/config"
	"recruitai/backend/internal/models"
)

// Notifier dispatches shortlisting notifications.
type Notifier interface {
	Configured() bool
	SendInterviewInvitation(email, name, jobTitle string) error
	SendOperatorSummary(email, name, jobTitle string, selected []models.ShortlistedApplicant, total int) error
}

type mailerService struct {
	cfg config.SMTPConfig
}

func NewMailerService(cfg config.SMTPConfig) Notifier {
	return &mailerService{cfg: cfg}
}

// Configured implements Notifier.
func (m *mailerService) Configured() bool {
	return m.cfg.Email != "" && m.cfg.Password != ""
}

func (m *mailerService) send(to, subject, htmlBody string) error {
	if !m.Configured() {
		return fmt.Errorf("email not configured: set SMTP_EMAIL and SMTP_PASSWORD")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", msg.FormatAddress(m.cfg.Email, "RecruitAI"))
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Email, m.cfg.Password)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	return nil
}

// SendInterviewInvitation implements Notifier.
func (m *mailerService) SendInterviewInvitation(email, name, jobTitle string) error {
	subject := fmt.Sprintf("🎉 Interview Invitation: %s", jobTitle)

	body := fmt.Sprintf(`<html>
<body style="font-family: 'Segoe UI', Arial, sans-serif; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <div style="background: linear-gradient(135deg, #6366f1, #8b5cf6); color: white; padding: 30px; border-radius: 10px 10px 0 0; text-align: center;">
      <h1>🎉 Congratulations!</h1>
      <p>You've Been Selected for an Interview</p>
    </div>
    <div style="background: #f9fafb; padding: 30px; border-radius: 0 0 10px 10px;">
      <p>Dear <strong>%s</strong>,</p>
      <p>We are thrilled to inform you that after carefully reviewing your application,
      you have been <strong>shortlisted for an interview</strong> for the position of:</p>
      <div style="background: #e0e7ff; padding: 15px; border-radius: 8px; margin: 20px 0;">
        <h2 style="margin: 0; color: #4f46e5;">📋 %s</h2>
      </div>
      <p>Our HR team will contact you shortly with interview scheduling details.
      Please ensure your phone and email are accessible.</p>
      <p>Best regards,<br><strong>The Hiring Team</strong></p>
    </div>
    <div style="text-align: center; color: #6b7280; font-size: 12px; margin-top: 20px;">
      <p>This email was sent via RecruitAI Platform</p>
    </div>
  </div>
</body>
</html>`, name, jobTitle)

	return m.send(email, subject, body)
}

// SendOperatorSummary implements Notifier.
func (m *mailerService) SendOperatorSummary(email, name, jobTitle string, selected []models.ShortlistedApplicant, total int) error {
	subject := fmt.Sprintf("📊 Shortlist Summary: %s - %d Candidates Selected", jobTitle, len(selected))

	var rows strings.Builder
	for i, applicant := range selected {
		rows.WriteString(fmt.Sprintf(`<tr>
      <td style="padding: 12px; border-bottom: 1px solid #e5e7eb;">%d</td>
      <td style="padding: 12px; border-bottom: 1px solid #e5e7eb;"><strong>%s</strong></td>
      <td style="padding: 12px; border-bottom: 1px solid #e5e7eb;">%s</td>
      <td style="padding: 12px; border-bottom: 1px solid #e5e7eb; text-align: center;">
        <span style="background: #10b981; color: white; padding: 4px 12px; border-radius: 20px; font-weight: bold;">%d</span>
      </td>
    </tr>`, i+1, applicant.Name, applicant.Email, applicant.Score))
	}

	body := fmt.Sprintf(`<html>
<body style="font-family: 'Segoe UI', Arial, sans-serif; color: #333;">
  <div style="max-width: 800px; margin: 0 auto; padding: 20px;">
    <div style="background: linear-gradient(135deg, #6366f1, #8b5cf6); color: white; padding: 30px; border-radius: 10px 10px 0 0; text-align: center;">
      <h1>📊 Shortlist Summary</h1>
      <p>%s</p>
    </div>
    <div style="background: #f9fafb; padding: 30px; border-radius: 0 0 10px 10px;">
      <p>Dear <strong>%s</strong>,</p>
      <p>The following candidates have been automatically shortlisted based on their AI
      resume scores and have been sent interview invitation emails.</p>
      <p><strong>%d</strong> total applicants, <strong>%d</strong> selected for interview.</p>
      <table style="width: 100%%; border-collapse: collapse; background: white;">
        <thead>
          <tr>
            <th style="background: #4f46e5; color: white; padding: 15px; text-align: left;">#</th>
            <th style="background: #4f46e5; color: white; padding: 15px; text-align: left;">Name</th>
            <th style="background: #4f46e5; color: white; padding: 15px; text-align: left;">Email</th>
            <th style="background: #4f46e5; color: white; padding: 15px; text-align: left;">AI Score</th>
          </tr>
        </thead>
        <tbody>%s</tbody>
      </table>
      <p style="margin-top: 20px;">All selected candidates have been notified via email and
      their application status has been updated to <strong>"Shortlisted"</strong>.</p>
      <p>Best regards,<br><strong>RecruitAI Platform</strong></p>
    </div>
  </div>
</body>
</html>`, jobTitle, name, total, len(selected), rows.String())

	return m.send(email, subject, body)
}
