// Package mail delivers plain-text notification emails.
package mail

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	gomail "gopkg.in/mail.v2"
)

const (
	BackendSMTP    = "smtp"
	BackendConsole = "console"
	BackendMemory  = "memory"
)

// Message is a single plain-text email.
type Message struct {
	From    string
	To      []string
	Subject string
	Body    string
}

// Sender delivers messages.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Options selects and configures a Sender backend.
type Options struct {
	Backend  string
	Host     string
	Port     int
	Username string
	Password string
	Timeout  time.Duration
}

// New builds the sender for the configured backend.
func New(opts Options) (Sender, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Backend)) {
	case "", BackendConsole:
		return NewConsoleSender(os.Stdout), nil
	case BackendSMTP:
		if strings.TrimSpace(opts.Host) == "" {
			return nil, fmt.Errorf("smtp backend requires a host")
		}
		return NewSMTPSender(opts), nil
	case BackendMemory:
		return NewOutbox(), nil
	default:
		return nil, fmt.Errorf("unknown mail backend %q", opts.Backend)
	}
}

// SMTPSender sends messages through an SMTP relay.
type SMTPSender struct {
	dialer *gomail.Dialer
}

// NewSMTPSender returns a sender dialing the relay described by opts.
func NewSMTPSender(opts Options) *SMTPSender {
	port := opts.Port
	if port <= 0 {
		port = 25
	}
	dialer := gomail.NewDialer(opts.Host, port, opts.Username, opts.Password)
	if opts.Timeout > 0 {
		dialer.Timeout = opts.Timeout
	}
	return &SMTPSender{dialer: dialer}
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", msg.From)
	m.SetHeader("To", msg.To...)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send mail to %s: %w", strings.Join(msg.To, ", "), err)
	}
	return nil
}

// ConsoleSender 将邮件内容打印到输出流，用于本地开发。
type ConsoleSender struct {
	logger *log.Logger
}

func NewConsoleSender(w io.Writer) *ConsoleSender {
	return &ConsoleSender{logger: log.New(w, "[mail] ", log.LstdFlags)}
}

func (s *ConsoleSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.logger.Printf("From: %s\nTo: %s\nSubject: %s\n\n%s\n%s",
		msg.From, strings.Join(msg.To, ", "), msg.Subject, msg.Body, strings.Repeat("-", 72))
	return nil
}

// Outbox keeps sent messages in memory.
type Outbox struct {
	mu       sync.Mutex
	messages []Message
}

func NewOutbox() *Outbox {
	return &Outbox{}
}

func (o *Outbox) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	msg.To = append([]string(nil), msg.To...)
	o.messages = append(o.messages, msg)
	return nil
}

// Messages returns a copy of everything sent so far.
func (o *Outbox) Messages() []Message {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]Message(nil), o.messages...)
}
