package mailer

import "github.com/rs/zerolog/log"

// TokenSender delivers a password-reset token to the account owner through a
// side channel. The HTTP response never carries the token; whatever typed the
// email address must not be the thing that receives the credential.
type TokenSender interface {
	SendResetToken(email, token string) error
}

// LogSender writes the delivery to the application log. It stands in for a
// real mail transport in development and in the demo deployment.
type LogSender struct{}

// NewLogSender creates a LogSender.
func NewLogSender() *LogSender {
	return &LogSender{}
}

// SendResetToken logs the token instead of mailing it.
func (s *LogSender) SendResetToken(email, token string) error {
	log.Info().Str("email", email).Str("token", token).Msg("Password reset token issued (log delivery)")
	return nil
}
