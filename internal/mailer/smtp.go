package mailer

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/mail"
	"net/smtp"
	"time"

	"github.com/jordan-wright/email"

	"github.com/arsalan507/simplequran/internal/config"
	"github.com/arsalan507/simplequran/internal/pkg/log"
	"github.com/arsalan507/simplequran/internal/pkg/redact"
)

// DefaultSendTimeout — предел SMTP-сеанса, если в конфиге не задан.
const DefaultSendTimeout = 20 * time.Second

var errNoAuth = errors.New("smtp server does not support AUTH")

// SMTPSender отправляет письма через SMTP-релей SendGrid:
// логин "apikey", пароль — API-ключ.
//
// Весь сеанс (dial, приветствие, AUTH, DATA) ограничен дедлайном контекста
// и SendTimeout: по истечении соединение закрывается.
type SMTPSender struct {
	addr     string
	host     string
	user     string
	pass     string
	from     string
	fromAddr string
	timeout  time.Duration

	// send подменяется в тестах.
	send func(ctx context.Context, e *email.Email) error
}

var _ Sender = (*SMTPSender)(nil)

// NewSMTPSender создаёт отправителя. Пустой ключ не ошибка на старте:
// Send вернёт ErrNotConfigured.
func NewSMTPSender(cfg config.EmailConfig) *SMTPSender {
	host, _, err := net.SplitHostPort(cfg.Addr())
	if err != nil {
		host = cfg.SMTPHost
	}

	timeout := cfg.SendTimeout
	if timeout <= 0 {
		timeout = DefaultSendTimeout
	}

	s := &SMTPSender{
		addr:     cfg.Addr(),
		host:     host,
		user:     cfg.SMTPUser,
		pass:     cfg.APIKey,
		from:     (&mail.Address{Name: cfg.FromName, Address: cfg.FromEmail}).String(),
		fromAddr: cfg.FromEmail,
		timeout:  timeout,
	}
	s.send = s.deliver

	return s
}

// Configured сообщает, задан ли ключ.
func (s *SMTPSender) Configured() bool { return s.pass != "" }

func (s *SMTPSender) Send(ctx context.Context, m Message) error {
	const op = "mailer.SMTPSender.Send"

	lg := log.From(ctx)

	if !s.Configured() {
		lg.Error("email_not_configured", slog.String("op", op))
		return fmt.Errorf("%s: %w", op, ErrNotConfigured)
	}

	if m.To == "" || m.Subject == "" {
		return fmt.Errorf("%s: %w", op, ErrInvalidMessage)
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	e := email.NewEmail()
	e.From = s.from
	e.To = []string{m.To}
	if m.ReplyTo != "" {
		e.ReplyTo = []string{m.ReplyTo}
	}
	e.Subject = m.Subject
	e.Text = []byte(m.Text)
	e.HTML = []byte(m.HTML)

	if err := s.send(ctx, e); err != nil {
		lg.Error("email_send_failed",
			slog.String("op", op),
			slog.String("to", redact.Email(m.To)),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("%s: %w", op, err)
	}

	lg.Info("email_sent", slog.String("to", redact.Email(m.To)))

	return nil
}

// deliver проводит SMTP-сеанс по шагам smtp.SendMail, но на соединении,
// которое закрывается вместе с контекстом.
func (s *SMTPSender) deliver(ctx context.Context, e *email.Email) error {
	msg, err := e.Bytes()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", s.addr)
	if err != nil {
		return ctxErr(ctx, err)
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	if err := s.session(conn, e, msg); err != nil {
		return ctxErr(ctx, err)
	}

	return nil
}

// ctxErr заменяет ошибку закрытого соединения причиной из контекста.
func ctxErr(ctx context.Context, err error) error {
	if cerr := ctx.Err(); cerr != nil {
		return fmt.Errorf("%w: %v", cerr, err)
	}

	return err
}

func (s *SMTPSender) session(conn net.Conn, e *email.Email, msg []byte) error {
	c, err := smtp.NewClient(conn, s.host)
	if err != nil {
		return err
	}
	defer c.Close()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: s.host}); err != nil {
			return err
		}
	}

	if ok, _ := c.Extension("AUTH"); !ok {
		return errNoAuth
	}

	if err := c.Auth(smtp.PlainAuth("", s.user, s.pass, s.host)); err != nil {
		return err
	}

	if err := c.Mail(s.fromAddr); err != nil {
		return err
	}

	for _, rcpt := range e.To {
		if err := c.Rcpt(rcpt); err != nil {
			return err
		}
	}

	w, err := c.Data()
	if err != nil {
		return err
	}

	if _, err := w.Write(msg); err != nil {
		return err
	}

	if err := w.Close(); err != nil {
		return err
	}

	return c.Quit()
}
