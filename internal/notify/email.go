package notify

import (
	"fmt"

	"inspection-service/internal/config"
	"inspection-service/internal/logging"
	"inspection-service/internal/metrics"
	"inspection-service/internal/models"
	"inspection-service/pkg/email"
)

const emailSubject = "Inspection Order Closure Notification"

// Sender delivers one message to one recipient. The SMTP implementation
// blocks for the network round-trip; tests substitute a fake.
type Sender interface {
	Send(to, subject, body string) error
}

// EmailChannel mails the closure details to every repair-responsible
// recipient in the notice. Recipients are handled independently: one
// recipient exhausting its retries never blocks or skips the others.
type EmailChannel struct {
	sender  Sender
	backoff Backoff
	logger  *logging.Logger
}

func NewEmailChannel(sender Sender, backoff Backoff, logger *logging.Logger) *EmailChannel {
	return &EmailChannel{sender: sender, backoff: backoff, logger: logger}
}

func (c *EmailChannel) Name() string { return "email" }

func (c *EmailChannel) Update(notice models.ClosureNotice) {
	if len(notice.Recipients) == 0 {
		c.logger.Debugf("No repair-responsible recipients, skipping email")
		return
	}
	body := emailBody(notice)
	for _, to := range notice.Recipients {
		attempt := 0
		err := c.backoff.Run(c.logger, func() error {
			attempt++
			if attempt > 1 {
				metrics.EmailRetriesTotal.Inc()
			}
			return c.sender.Send(to, emailSubject, body)
		})
		if err != nil {
			metrics.NotifyFailuresTotal.WithLabelValues(c.Name()).Inc()
			c.logger.Errorf("Giving up on recipient %s: %v", to, err)
			continue
		}
		c.logger.Infof("Closure email delivered to %s", to)
	}
}

func emailBody(n models.ClosureNotice) string {
	return fmt.Sprintf(
		"Dear Repair Responsible,\n\n"+
			"An inspection order closure has been registered with the following details:\n\n"+
			"- Seismograph ID: %d\n"+
			"- New State: %s\n"+
			"- Closed At: %s\n"+
			"- Reasons: %s\n"+
			"- Comments: %s\n\n"+
			"Please take the required actions.\n\n"+
			"Seismograph Management System",
		n.SeismographID,
		n.StateName,
		n.ClosedAt.Format("2006-01-02 15:04:05"),
		joinOr(n.Reasons, "none specified"),
		joinOr(n.Comments, "none"),
	)
}

// SMTPSender delivers through the configured SMTP relay.
type SMTPSender struct {
	cfg config.Config
}

func NewSMTPSender(cfg config.Config) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

func (s *SMTPSender) Send(to, subject, body string) error {
	e := s.cfg.Email
	return email.Send(email.Config{
		Host:        e.SMTPServer,
		Port:        e.SMTPPort,
		Username:    e.Username,
		Password:    e.Password,
		FromName:    e.FromName,
		FromAddress: e.FromAddress,
		StartTLS:    e.StartTLS,
		Timeout:     e.Timeout,
	}, to, subject, body)
}

// SimulatedSender logs instead of dialing out. Selected when SMTP
// credentials are absent so a development environment still completes the
// workflow without network calls.
type SimulatedSender struct {
	logger *logging.Logger
}

func NewSimulatedSender(logger *logging.Logger) *SimulatedSender {
	return &SimulatedSender{logger: logger}
}

func (s *SimulatedSender) Send(to, subject, body string) error {
	s.logger.Infof("SMTP credentials absent, simulated email to %s: %s\n%s", to, subject, body)
	return nil
}
