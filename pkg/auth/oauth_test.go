package auth

import (
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

func TestNormalizeRedirect(t *testing.T) {
	cases := map[string]string{
		"urn:ietf:wg:oauth:2.0:oob":          "http://localhost:6789/oauth2callback",
		"http://localhost":                   "http://localhost:6789",
		"http://127.0.0.1:1234/cb":           "http://127.0.0.1:6789/cb",
		"http://localhost:6789/oauth":        "http://localhost:6789/oauth",
		"https://example.com/oauth2callback": "https://example.com/oauth2callback",
	}
	for in, want := range cases {
		if got := normalizeRedirect(in); got != want {
			t.Errorf("normalizeRedirect(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestTokenRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", TokenFile)
	want := &oauth2.Token{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		Expiry:       time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := saveToken(path, want); err != nil {
		t.Fatalf("saveToken failed: %v", err)
	}
	got, err := tokenFromFile(path)
	if err != nil {
		t.Fatalf("tokenFromFile failed: %v", err)
	}
	if got.AccessToken != want.AccessToken || got.RefreshToken != want.RefreshToken || !got.Expiry.Equal(want.Expiry) {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
}
