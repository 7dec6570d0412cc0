package email

import (
	"fmt"
	"net/smtp"

	"chatcore-backend/internal/models"

	"go.uber.org/zap"
)

var sugar *zap.SugaredLogger
var server string
var address string
var username string
var password string

func Setup(cfg *models.ConfigFile, _sugar *zap.SugaredLogger) {
	sugar = _sugar
	server = cfg.SmtpServer
	address = fmt.Sprintf("%s:%d", cfg.SmtpServer, cfg.SmtpPort)
	username = cfg.SmtpUsername
	password = cfg.SmtpPassword
}

func sendEmail(email []string, subject string, message string) error {
	auth := smtp.PlainAuth("", username, password, server)

	msg := fmt.Appendf(nil, "To: %s\r\n", email[0])
	msg = fmt.Append(msg, "MIME-version: 1.0;\r\n")
	msg = fmt.Append(msg, "Content-Type: text/html; charset=\"UTF-8\";\r\n")
	msg = fmt.Appendf(msg, "Subject: %s\r\n", subject)
	msg = fmt.Append(msg, "\r\n")
	msg = fmt.Appendf(msg, "%s\r\n", message)

	return smtp.SendMail(address, auth, username, email, msg)
}

// SendResetCode delivers a password reset code. Without an SMTP server
// configured the code is only logged, which is enough for local use.
func SendResetCode(email string, handle string, code string) error {
	if server == "" {
		sugar.Infof("No SMTP server configured, password reset code for %s: %s", email, code)
		return nil
	}

	subject := "Password reset"
	message := fmt.Sprintf(`
	<html>
		<body>
			<h2>Hallo %s!</h2>
			<p>Your password reset code is: <b>%s</b></p>
		</body>
	</html>`,
		handle, code)

	return sendEmail([]string{email}, subject, message)
}
