package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	in := RemotesConfig{
		Active: "prod",
		Remotes: map[string]Remote{
			"prod":  {URL: "https://jobly.example.com", Token: "tok_abc", NATSURL: "nats://prod:4222"},
			"local": {URL: "http://localhost:8080"},
		},
	}
	if err := saveRemotesConfig(in); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := loadRemotesConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Active != "prod" {
		t.Errorf("Active = %q, want %q", got.Active, "prod")
	}
	if prod := got.Remotes["prod"]; prod != in.Remotes["prod"] {
		t.Errorf("prod remote = %+v, want %+v", prod, in.Remotes["prod"])
	}
}

func TestLoadRemotesConfig_NoFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := loadRemotesConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Active != "" || len(cfg.Remotes) != 0 || cfg.Remotes == nil {
		t.Errorf("expected empty non-nil config, got %+v", cfg)
	}
}

func TestSaveRemotesConfig_Permissions(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if err := saveRemotesConfig(RemotesConfig{Remotes: map[string]Remote{}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	path, _ := remoteConfigPath()
	check := func(p string, want os.FileMode) {
		t.Helper()
		info, err := os.Stat(p)
		if err != nil {
			t.Fatalf("stat %s: %v", p, err)
		}
		if got := info.Mode().Perm(); got != want {
			t.Errorf("%s permissions = %04o, want %04o", p, got, want)
		}
	}
	check(path, 0o600)
	check(filepath.Dir(path), 0o700)
}

func TestRemoteLifecycle(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	mustRun := func(fn func() error) {
		t.Helper()
		if err := fn(); err != nil {
			t.Fatal(err)
		}
	}
	var buf bytes.Buffer
	for _, c := range []*cobra.Command{remoteAddCmd, remoteUseCmd, remoteListCmd, remoteShowCmd, remoteRemoveCmd} {
		c.SetOut(&buf)
	}

	mustRun(func() error { return remoteAddCmd.RunE(remoteAddCmd, []string{"local", "http://localhost:8080"}) })
	mustRun(func() error { return remoteAddCmd.RunE(remoteAddCmd, []string{"b-side", "http://b:8080"}) })
	mustRun(func() error { return remoteUseCmd.RunE(remoteUseCmd, []string{"local"}) })

	cfg, _ := loadRemotesConfig()
	if cfg.Active != "local" {
		t.Fatalf("Active = %q, want %q", cfg.Active, "local")
	}

	buf.Reset()
	mustRun(func() error { return remoteListCmd.RunE(remoteListCmd, nil) })
	out := buf.String()
	if !strings.Contains(out, "* local") {
		t.Errorf("list missing active marker; got:\n%s", out)
	}
	if strings.Index(out, "b-side") > strings.Index(out, "local") {
		t.Errorf("list should be sorted by name; got:\n%s", out)
	}

	buf.Reset()
	mustRun(func() error { return remoteShowCmd.RunE(remoteShowCmd, nil) })
	out = buf.String()
	if !strings.Contains(out, "http://localhost:8080") || !strings.Contains(out, "(active)") {
		t.Errorf("show missing expected content; got:\n%s", out)
	}

	mustRun(func() error { return remoteRemoveCmd.RunE(remoteRemoveCmd, []string{"local"}) })
	cfg, _ = loadRemotesConfig()
	if _, ok := cfg.Remotes["local"]; ok {
		t.Error("remote 'local' should be gone")
	}
	if cfg.Active != "" {
		t.Errorf("Active should be cleared, got %q", cfg.Active)
	}
}

func TestRemoteTokenMasked(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if err := remoteAddCmd.Flags().Set("token", "tok_verylongsecret"); err != nil {
		t.Fatalf("set token flag: %v", err)
	}
	t.Cleanup(func() { _ = remoteAddCmd.Flags().Set("token", "") })

	var buf bytes.Buffer
	remoteAddCmd.SetOut(&buf)
	if err := remoteAddCmd.RunE(remoteAddCmd, []string{"prod", "https://jobly.example.com"}); err != nil {
		t.Fatal(err)
	}
	if err := remoteUseCmd.RunE(remoteUseCmd, []string{"prod"}); err != nil {
		t.Fatal(err)
	}

	for _, c := range []*cobra.Command{remoteListCmd, remoteShowCmd} {
		buf.Reset()
		c.SetOut(&buf)
		if err := c.RunE(c, nil); err != nil {
			t.Fatal(err)
		}
		if strings.Contains(buf.String(), "tok_verylongsecret") {
			t.Errorf("%s: full token must not appear", c.Name())
		}
		if !strings.Contains(buf.String(), "tok_very...") {
			t.Errorf("%s: expected masked token; got:\n%s", c.Name(), buf.String())
		}
	}
}

func TestRemoteErrorCases(t *testing.T) {
	tests := []struct {
		name string
		fn   func() error
	}{
		{"use unknown", func() error { return remoteUseCmd.RunE(remoteUseCmd, []string{"ghost"}) }},
		{"remove unknown", func() error { return remoteRemoveCmd.RunE(remoteRemoveCmd, []string{"ghost"}) }},
		{"show no active", func() error { return remoteShowCmd.RunE(remoteShowCmd, nil) }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("HOME", t.TempDir())
			if err := tc.fn(); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestMaskToken(t *testing.T) {
	if got := maskToken("short"); got != "short" {
		t.Errorf("maskToken(short) = %q", got)
	}
	if got := maskToken("0123456789"); got != "01234567..." {
		t.Errorf("maskToken(long) = %q", got)
	}
}
