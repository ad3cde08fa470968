package mail

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSelectsBackend(t *testing.T) {
	sender, err := New(Options{})
	require.NoError(t, err)
	assert.IsType(t, &ConsoleSender{}, sender)

	sender, err = New(Options{Backend: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &Outbox{}, sender)

	sender, err = New(Options{Backend: "SMTP", Host: "smtp.example.com", Port: 2525})
	require.NoError(t, err)
	assert.IsType(t, &SMTPSender{}, sender)

	_, err = New(Options{Backend: "smtp"})
	assert.Error(t, err)

	_, err = New(Options{Backend: "pigeon"})
	assert.Error(t, err)
}

func TestOutboxRecordsCopies(t *testing.T) {
	outbox := NewOutbox()
	to := []string{"friend@example.com"}

	require.NoError(t, outbox.Send(context.Background(), Message{From: "admin@localhost.com", To: to, Subject: "hi", Body: "body"}))
	to[0] = "changed@example.com"

	messages := outbox.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, []string{"friend@example.com"}, messages[0].To)
	assert.Equal(t, "hi", messages[0].Subject)
}

func TestSendersRespectCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	senders := []Sender{NewOutbox(), NewConsoleSender(&buf), NewSMTPSender(Options{Host: "127.0.0.1", Port: 1})}
	for _, sender := range senders {
		assert.ErrorIs(t, sender.Send(ctx, Message{To: []string{"a@example.com"}}), context.Canceled)
	}
	assert.Empty(t, buf.String())
}

func TestConsoleSenderWritesMessage(t *testing.T) {
	var buf bytes.Buffer
	sender := NewConsoleSender(&buf)

	err := sender.Send(context.Background(), Message{
		From:    "admin@localhost.com",
		To:      []string{"friend@example.com"},
		Subject: "Ann (ann@example.com) recommends you reading \"Go\"",
		Body:    "Read \"Go\" at http://example.com/",
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "[mail] ")
	assert.Contains(t, out, "To: friend@example.com")
	assert.Contains(t, out, "recommends you reading")
}
