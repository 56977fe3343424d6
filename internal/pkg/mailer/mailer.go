package mailer

import (
	"gopkg.in/gomail.v2"
)

// Dialer opens one authenticated SMTP session.
type Dialer interface {
	Dial() (gomail.SendCloser, error)
}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
}

func NewDialer(cfg Config) *gomail.Dialer {
	return gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
}

// Send dials once, sends msg and closes the session.
func Send(d Dialer, msg *gomail.Message) error {
	s, err := d.Dial()
	if err != nil {
		return err
	}
	defer s.Close()

	return gomail.Send(s, msg)
}
