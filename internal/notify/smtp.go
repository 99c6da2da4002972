package notify

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

// SMTPNotifier отправляет письма напрямую через SMTP сервер
type SMTPNotifier struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewSMTPNotifier создает notifier для отправки через SMTP
func NewSMTPNotifier(host string, port int, username, password, from string) *SMTPNotifier {
	return &SMTPNotifier{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

// Send отправляет письмо гостю
func (n *SMTPNotifier) Send(ctx context.Context, to, subject, body string) error {
	// gomail не принимает контекст, поэтому хотя бы не начинаем отправку
	// после отмены
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", n.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	dialer := gomail.NewDialer(n.host, n.port, n.username, n.password)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	return nil
}
