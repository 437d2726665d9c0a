// Package mail delivers auth emails.
package mail

import (
	"context"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
)

// LogMailer writes confirmation and reset links to the log instead of
// sending email. It stands in for an SMTP or provider integration.
type LogMailer struct {
	baseURL string
	log     zerolog.Logger
}

// NewLogMailer builds links against baseURL, e.g. "http://localhost:5173".
func NewLogMailer(baseURL string, log zerolog.Logger) *LogMailer {
	return &LogMailer{baseURL: strings.TrimRight(baseURL, "/"), log: log}
}

func (m *LogMailer) SendConfirmation(ctx context.Context, email, token string) error {
	m.log.Info().
		Str("to", email).
		Str("link", m.link("/login", "confirm", token)).
		Msg("confirmation email")
	return nil
}

func (m *LogMailer) SendPasswordReset(ctx context.Context, email, token string) error {
	m.log.Info().
		Str("to", email).
		Str("link", m.link("/forgot-password", "reset", token)).
		Msg("password reset email")
	return nil
}

func (m *LogMailer) link(path, param, token string) string {
	return m.baseURL + path + "?" + url.Values{param: {token}}.Encode()
}
