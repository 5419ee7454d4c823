package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/five82/piecebook/internal/pieces/piecestest"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestSetupWiresCatalog(t *testing.T) {
	t.Setenv("PIECEBOOK_BASE_URL", "")
	t.Setenv("PIECEBOOK_LOCALE", "")

	srv, _ := piecestest.NewServer(t, piecestest.Sample()...)
	logPath := filepath.Join(t.TempDir(), "logs", "piecebook.log")
	cfgPath := writeConfig(t, "base_url = \""+srv.URL+"\"\nlog_file = \""+logPath+"\"\nrequest_timeout = \"5s\"\n")

	session, err := Setup(Options{ConfigPath: cfgPath})
	if err != nil {
		t.Fatalf("Setup returned error: %v", err)
	}
	t.Cleanup(func() { _ = session.Close() })

	if session.Config.RequestTimeout != 5*time.Second {
		t.Fatalf("RequestTimeout = %v, want 5s", session.Config.RequestTimeout)
	}
	if session.Locale.Name() != "fr" {
		t.Fatalf("Locale = %q, want fr", session.Locale.Name())
	}

	res := session.Catalog.AllPieces(context.Background())
	if !res.OK() || len(res.Value.Pieces) != 3 {
		t.Fatalf("AllPieces = %+v, want 3 pieces", res)
	}

	if _, err := os.Stat(logPath); err != nil {
		t.Fatalf("log file not created: %v", err)
	}
}

func TestSetupLocaleOverride(t *testing.T) {
	t.Setenv("PIECEBOOK_BASE_URL", "")
	t.Setenv("PIECEBOOK_LOCALE", "")

	logPath := filepath.Join(t.TempDir(), "piecebook.log")
	cfgPath := writeConfig(t, "locale = \"fr\"\nlog_file = \""+logPath+"\"\n")

	session, err := Setup(Options{ConfigPath: cfgPath, Locale: "en"})
	if err != nil {
		t.Fatalf("Setup returned error: %v", err)
	}
	t.Cleanup(func() { _ = session.Close() })

	if session.Locale.Name() != "en" {
		t.Fatalf("Locale = %q, want en", session.Locale.Name())
	}
}

func TestSetupRejectsBadConfig(t *testing.T) {
	cfgPath := writeConfig(t, "request_timeout = \"soon\"\n")
	if _, err := Setup(Options{ConfigPath: cfgPath}); err == nil {
		t.Fatal("Setup accepted an invalid request_timeout")
	}
}

func TestSetupRejectsBadBaseURL(t *testing.T) {
	t.Setenv("PIECEBOOK_BASE_URL", "")
	logPath := filepath.Join(t.TempDir(), "piecebook.log")
	cfgPath := writeConfig(t, "base_url = \"http://\"\nlog_file = \""+logPath+"\"\n")
	if _, err := Setup(Options{ConfigPath: cfgPath}); err == nil {
		t.Fatal("Setup accepted a base URL without host")
	}
}

func TestCloseNilSession(t *testing.T) {
	var s *Session
	if err := s.Close(); err != nil {
		t.Fatalf("Close on nil session returned %v", err)
	}
}
