package notify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWelcomeEscapesName(t *testing.T) {
	msg := Welcome("<b>Ada</b>", "ada@example.com")

	assert.Equal(t, "ada@example.com", msg.To)
	assert.Contains(t, msg.HTML, "&lt;b&gt;Ada&lt;/b&gt;")
	assert.NotContains(t, msg.HTML, "<b>Ada</b>")
}

func TestNewWithoutKeyLogsOnly(t *testing.T) {
	n := New("", "noreply@eduorb.dev")

	assert.IsType(t, &LogNotifier{}, n)
	assert.NoError(t, n.Publish(context.Background(), OnboardingComplete("ada@example.com")))
}

func TestNewWithKeyUsesResend(t *testing.T) {
	assert.IsType(t, &ResendNotifier{}, New("re_test", "noreply@eduorb.dev"))
}
