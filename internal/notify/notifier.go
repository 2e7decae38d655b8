package notify

import (
	"context"
	"fmt"
	"html"
)

// Message is an e-mail style notification addressed to one user.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Notifier delivers account notifications. Implementations must be safe to
// call from background goroutines.
type Notifier interface {
	Publish(ctx context.Context, msg Message) error
}

// Welcome builds the message sent after registration.
func Welcome(name, email string) Message {
	return Message{
		To:      email,
		Subject: "Welcome to EduOrb",
		HTML: fmt.Sprintf(`
			<div style="font-family: sans-serif; max-width: 480px; margin: 0 auto; padding: 24px;">
				<h2 style="color: #333;">Welcome to EduOrb, %s!</h2>
				<p>Your account is ready. Sign in and complete onboarding to unlock your study tools.</p>
			</div>
		`, html.EscapeString(name)),
	}
}

// OnboardingComplete builds the message sent once the profile is stored.
func OnboardingComplete(email string) Message {
	return Message{
		To:      email,
		Subject: "Your EduOrb dashboard is ready",
		HTML: `
			<div style="font-family: sans-serif; max-width: 480px; margin: 0 auto; padding: 24px;">
				<h2 style="color: #333;">You're all set</h2>
				<p>Thanks for telling us about your goals. Your personalized dashboard is waiting.</p>
			</div>
		`,
	}
}
