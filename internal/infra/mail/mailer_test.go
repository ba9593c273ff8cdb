package mail

import (
	"context"
	"strings"
	"testing"

	"staffms/pkg/logger"
)

func TestNewFallsBackToLogMailer(t *testing.T) {
	m := New("", "no-reply@example.com", logger.Discard())
	if _, ok := m.(LogMailer); !ok {
		t.Fatalf("expected LogMailer without api key, got %T", m)
	}
	if err := m.Send(context.Background(), "Ann", "ann@example.com", "hi", "body"); err != nil {
		t.Fatalf("log mailer should not fail: %v", err)
	}

	if _, ok := New("SG.key", "no-reply@example.com", logger.Discard()).(*SendGrid); !ok {
		t.Fatalf("expected SendGrid mailer with api key")
	}
}

func TestTemplatesCarryLinks(t *testing.T) {
	_, body := InvitationEmail("https://app.example.com", "Acme", "tok123")
	if !strings.Contains(body, "https://app.example.com/onboarding?token=tok123") {
		t.Fatalf("invitation link missing: %s", body)
	}
	subject, _ := PasswordResetEmail("https://app.example.com", "x")
	if subject == "" {
		t.Fatalf("empty subject")
	}
}
