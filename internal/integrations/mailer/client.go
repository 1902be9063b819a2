package mailer

import (
	"context"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"
)

const defaultFrom = "noreply@beauty.local"

// sendFunc сигнатура smtp.SendMail, подменяется в тестах
type sendFunc func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error

// Client отправляет письма через SMTP
type Client struct {
	addr string
	host string
	from string
	auth smtp.Auth
	send sendFunc
	now  func() time.Time
	log  Logger
}

// NewClient создает SMTP клиент
// Если username пустой, отправка идёт без аутентификации (Mailpit, локальный relay)
func NewClient(host string, port int, username, password, from string, log Logger) *Client {
	host = strings.TrimSpace(host)
	from = strings.TrimSpace(from)
	if from == "" {
		from = defaultFrom
	}

	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}

	return &Client{
		addr: net.JoinHostPort(host, strconv.Itoa(port)),
		host: host,
		from: from,
		auth: auth,
		send: smtp.SendMail,
		now:  time.Now,
		log:  log,
	}
}

// Send отправляет письмо
// net/smtp не принимает context, поэтому отменённый контекст проверяется только до отправки
func (c *Client) Send(ctx context.Context, msg Message) error {
	if strings.TrimSpace(msg.To) == "" || strings.TrimSpace(msg.Subject) == "" {
		return fmt.Errorf("%w: recipient and subject are required", ErrInvalidMessage)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrSend, err)
	}

	raw := buildMessage(c.from, msg, c.now())
	if err := c.send(c.addr, c.auth, c.from, []string{msg.To}, raw); err != nil {
		return fmt.Errorf("%w: to=%s: %v", ErrSend, msg.To, err)
	}

	c.log.Info("Email sent to=%s subject=%q", msg.To, msg.Subject)
	return nil
}

// buildMessage собирает минимальное RFC 5322 письмо
func buildMessage(from string, msg Message, date time.Time) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	fmt.Fprintf(&b, "Date: %s\r\n", date.Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(msg.Body, "\n", "\r\n"))
	b.WriteString("\r\n")
	return []byte(b.String())
}

// NopClient не отправляет письма, а только логирует их (SMTP выключен)
type NopClient struct {
	log Logger
}

// NewNopClient создает клиент-заглушку
func NewNopClient(log Logger) *NopClient {
	return &NopClient{log: log}
}

// Send логирует письмо вместо отправки
func (c *NopClient) Send(_ context.Context, msg Message) error {
	c.log.Info("SMTP disabled, email skipped: to=%s subject=%q", msg.To, msg.Subject)
	return nil
}
