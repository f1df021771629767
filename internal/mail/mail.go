// Package mail renders and sends html mails over SMTP.
package mail

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"strings"

	"github.com/gofiber/template/html/v2"
	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"

	"github.com/ajadmin/ajadmin/internal/config"
)

//go:embed templates/*
var embeddedTemplates embed.FS

const messageTemplate = "message"

// Message is one outgoing mail.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Sender sends messages.
type Sender interface {
	Send(ctx context.Context, m Message) error
}

type view struct {
	Title      string
	Subject    string
	Paragraphs []string
}

// SMTP sends mails through an SMTP relay.
type SMTP struct {
	enabled  bool
	from     string
	fromName string
	title    string
	engine   *html.Engine
	send     func(m ...*gomail.Message) error
}

// NewSMTP creates a sender for cfg. title is shown in the mail header.
func NewSMTP(cfg config.Mail, title string) (*SMTP, error) {
	engine, err := newEngine()
	if err != nil {
		return nil, err
	}

	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)

	return &SMTP{
		enabled:  cfg.Enabled,
		from:     cfg.From,
		fromName: cfg.FromName,
		title:    title,
		engine:   engine,
		send:     dialer.DialAndSend,
	}, nil
}

func newEngine() (*html.Engine, error) {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return nil, fmt.Errorf("failed to open mail templates: %w", err)
	}

	engine := html.NewFileSystem(http.FS(sub), ".gohtml")
	if err = engine.Load(); err != nil {
		return nil, fmt.Errorf("failed to load mail templates: %w", err)
	}

	return engine, nil
}

// Render returns the html body of m.
func (s *SMTP) Render(m Message) (string, error) {
	var buf bytes.Buffer

	v := view{
		Title:      s.title,
		Subject:    m.Subject,
		Paragraphs: strings.Split(strings.ReplaceAll(m.Message, "\r\n", "\n"), "\n"),
	}

	if err := s.engine.Render(&buf, messageTemplate, v); err != nil {
		return "", fmt.Errorf("failed to render mail: %w", err)
	}

	return buf.String(), nil
}

// Send renders m and hands it to the relay.
func (s *SMTP) Send(ctx context.Context, m Message) error {
	if !s.enabled {
		return ErrDisabled
	}

	if strings.TrimSpace(m.To) == "" {
		return ErrNoRecipient
	}

	body, err := s.Render(m)
	if err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", s.from, s.fromName)
	msg.SetHeader("To", m.To)
	msg.SetHeader("Subject", m.Subject)
	msg.SetBody("text/html", body)

	if err = ctx.Err(); err != nil {
		return fmt.Errorf("mail not sent: %w", err)
	}

	if err = s.send(msg); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}

	log.Info().Str("to", m.To).Str("subject", m.Subject).Msg("Mail sent")

	return nil
}
