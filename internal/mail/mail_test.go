package mail

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/activity-tracker-api/internal/logger"
)

func testMessage() PasswordReset {
	return PasswordReset{
		To:       "alice@example.com",
		Username: "alice",
		ResetURL: "http://localhost:3000/reset-password?token=abc",
		Expiry:   30 * time.Minute,
	}
}

func TestPasswordReset_Body(t *testing.T) {
	body := testMessage().Body()
	assert.Contains(t, body, "Hello alice,")
	assert.Contains(t, body, "http://localhost:3000/reset-password?token=abc")
	assert.Contains(t, body, "expire in 30 minutes")
}

func TestSMTPMailer_SendPasswordReset(t *testing.T) {
	m := NewSMTPMailer(SMTPConfig{
		Host:     "smtp.example.com",
		Port:     587,
		Username: "mailer",
		Password: "secret",
		From:     "noreply@example.com",
	})

	var (
		gotAddr string
		gotTo   []string
		gotMsg  string
		gotAuth smtp.Auth
	)
	m.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotAuth, gotTo, gotMsg = addr, a, to, string(msg)
		assert.Equal(t, "noreply@example.com", from)
		return nil
	}

	require.NoError(t, m.SendPasswordReset(context.Background(), testMessage()))
	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.NotNil(t, gotAuth)
	assert.Equal(t, []string{"alice@example.com"}, gotTo)
	assert.True(t, strings.HasPrefix(gotMsg, "From: noreply@example.com\r\n"))
	assert.Contains(t, gotMsg, "Subject: Password Reset Request - Activity Tracker\r\n")
	assert.Contains(t, gotMsg, "\r\n\r\nHello alice,\r\n")
}

func TestSMTPMailer_Failures(t *testing.T) {
	m := NewSMTPMailer(SMTPConfig{Host: "smtp.example.com", Port: 25, From: "noreply@example.com"})
	m.send = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("connection refused")
	}

	err := m.SendPasswordReset(context.Background(), testMessage())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, m.SendPasswordReset(ctx, testMessage()), context.Canceled)
}

func TestLogMailer(t *testing.T) {
	assert.NoError(t, NewLogMailer(logger.Discard()).SendPasswordReset(context.Background(), testMessage()))
}
