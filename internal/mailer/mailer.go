// Package mailer delivers petition lifecycle emails over SMTP. It implements
// the services.Notifier contract: it is handed a snapshot of the petition at
// the moment of the triggering event and never re-reads store state.
package mailer

import (
	"gopkg.in/gomail.v2"

	"github.com/petism/backend/internal/models"
)

// Mailer sends petition notices through a single SMTP account
type Mailer struct {
	dialer      *gomail.Dialer
	from        string
	frontendURL string
}

// New creates a Mailer. frontendURL is the public base URL embedded in the
// share links inside notice bodies.
func New(host string, port int, username, password, from, frontendURL string) *Mailer {
	return &Mailer{
		dialer:      gomail.NewDialer(host, port, username, password),
		from:        from,
		frontendURL: frontendURL,
	}
}

// SendCreationNotice emails the creator that their petition is live
func (m *Mailer) SendCreationNotice(petition *models.Petition) error {
	subject, body := ComposeCreationNotice(petition, m.frontendURL)
	return m.send(petition.CreatorEmail, subject, body)
}

// SendGoalReachedNotice emails the creator that the signature goal was reached
func (m *Mailer) SendGoalReachedNotice(petition *models.Petition) error {
	subject, body := ComposeGoalReachedNotice(petition, m.frontendURL)
	return m.send(petition.CreatorEmail, subject, body)
}

func (m *Mailer) send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	return m.dialer.DialAndSend(msg)
}
