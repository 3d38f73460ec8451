package email

import (
	"fmt"
	"net/smtp"
	"strings"
)

// Service sends plain-text mail over SMTP.
type Service struct {
	host string
	port string
	from string
}

func NewService(host, port, from string) *Service {
	return &Service{
		host: host,
		port: port,
		from: from,
	}
}

// SendReorderAlert mails a low-stock warning to the configured recipients.
func (s *Service) SendReorderAlert(recipients []string, a ReorderAlert) error {
	subject := fmt.Sprintf("Inventory Alert: %s on %s", a.ItemName, a.Vessel)
	body := BuildReorderAlertBody(a)
	return s.send(recipients, subject, body)
}

func (s *Service) send(to []string, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s",
		s.from, strings.Join(to, ", "), subject, body)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	return smtp.SendMail(addr, nil, s.from, to, []byte(msg))
}
