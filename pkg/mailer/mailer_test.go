package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return &Config{
		SMTPHost:     "localhost",
		SMTPPort:     1025,
		SMTPUsername: "user",
		SMTPPassword: "pass",
		FromEmail:    "noreply@donorflow.test",
		FromName:     "Donorflow",
	}
}

func TestSendTestInTestMode(t *testing.T) {
	m := NewTestSMTPMailer(testConfig())

	err := m.SendTest("donor@example.org", "Test: Welcome", "<p>Hi</p>", "Hi")
	require.NoError(t, err)
}

func TestSendTestRejectsInvalidRecipient(t *testing.T) {
	m := NewTestSMTPMailer(testConfig())

	err := m.SendTest("not-an-address", "Test", "<p>Hi</p>", "Hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "recipient")
}

func TestSendTestRejectsInvalidSender(t *testing.T) {
	cfg := testConfig()
	cfg.FromEmail = "broken"
	m := NewTestSMTPMailer(cfg)

	err := m.SendTest("donor@example.org", "Test", "<p>Hi</p>", "Hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "from address")
}
