package config

import "testing"

func TestGetEnvFallback(t *testing.T) {
	t.Setenv("STAFFMS_TEST_SET", "value")

	if got := getEnv("STAFFMS_TEST_SET", "fallback"); got != "value" {
		t.Fatalf("expected value, got %q", got)
	}
	if got := getEnv("STAFFMS_TEST_UNSET_KEY", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}
}

func TestGoogleEnabled(t *testing.T) {
	GOOGLE_CLIENT_ID, GOOGLE_CLIENT_SECRET, GOOGLE_REDIRECT_URL = "id", "secret", ""
	if GoogleEnabled() {
		t.Fatalf("expected disabled without redirect url")
	}
	GOOGLE_REDIRECT_URL = "http://localhost/cb"
	if !GoogleEnabled() {
		t.Fatalf("expected enabled")
	}
}
