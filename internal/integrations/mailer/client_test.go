package mailer

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BeautyService/pkg/logger"
)

func TestSend(t *testing.T) {
	client := NewClient("mail.local", 1025, "", "", "salon@beauty.local", logger.NewNop())
	client.now = func() time.Time { return time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC) }

	var (
		gotAddr string
		gotTo   []string
		gotMsg  string
	)
	client.send = func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotTo, gotMsg = addr, to, string(msg)
		assert.Nil(t, auth)
		assert.Equal(t, "salon@beauty.local", from)
		return nil
	}

	err := client.Send(context.Background(), Message{To: "anna@example.com", Subject: "Order", Body: "line 1\nline 2"})
	require.NoError(t, err)

	assert.Equal(t, "mail.local:1025", gotAddr)
	assert.Equal(t, []string{"anna@example.com"}, gotTo)
	assert.True(t, strings.HasPrefix(gotMsg, "From: salon@beauty.local\r\nTo: anna@example.com\r\nSubject: Order\r\n"))
	assert.Contains(t, gotMsg, "\r\n\r\nline 1\r\nline 2\r\n")
}

func TestSend_Errors(t *testing.T) {
	client := NewClient("mail.local", 25, "user", "pass", "", logger.NewNop())
	client.send = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("connection refused")
	}

	err := client.Send(context.Background(), Message{To: "", Subject: "x"})
	assert.ErrorIs(t, err, ErrInvalidMessage)

	err = client.Send(context.Background(), Message{To: "a@b.c", Subject: "x"})
	assert.ErrorIs(t, err, ErrSend)
}

func TestBuildMessage_EncodesSubject(t *testing.T) {
	raw := string(buildMessage("a@b.c", Message{To: "d@e.f", Subject: "Заказ подтверждён"}, time.Now()))
	assert.Contains(t, raw, "Subject: =?utf-8?q?")
}
