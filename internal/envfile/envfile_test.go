package envfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFile(t *testing.T) {
	vars, err := Load(filepath.Join(t.TempDir(), "nope.env"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(vars) != 0 {
		t.Errorf("expected empty map for missing file, got %v", vars)
	}
}

func TestSetAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".tweetkit.env")

	if err := Set(path, "TWITTER_PAT", "/tmp/token.json"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := Set(path, "TWITTER_SCREEN_NAME", "alice"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	vars, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if vars["TWITTER_PAT"] != "/tmp/token.json" {
		t.Errorf("TWITTER_PAT = %q", vars["TWITTER_PAT"])
	}
	if vars["TWITTER_SCREEN_NAME"] != "alice" {
		t.Errorf("TWITTER_SCREEN_NAME = %q", vars["TWITTER_SCREEN_NAME"])
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("file permissions = %04o, want 0600", perm)
	}
}

func TestSetReplacesExistingKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".tweetkit.env")
	content := "# tokens\nTWITTER_PAT=/old/path\nOTHER=keep\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	if err := Set(path, "TWITTER_PAT", "/new/path"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	got := string(data)
	if strings.Count(got, "TWITTER_PAT=") != 1 {
		t.Errorf("expected exactly one TWITTER_PAT line, got:\n%s", got)
	}
	if !strings.Contains(got, "TWITTER_PAT=/new/path") {
		t.Errorf("old value not replaced:\n%s", got)
	}
	if !strings.Contains(got, "# tokens") || !strings.Contains(got, "OTHER=keep") {
		t.Errorf("unrelated lines not preserved:\n%s", got)
	}
}

func TestLoadSkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".tweetkit.env")
	content := "not a pair\n\n# comment\nKEY=value\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	vars, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(vars) != 1 || vars["KEY"] != "value" {
		t.Errorf("Load = %v, want only KEY=value", vars)
	}
}
