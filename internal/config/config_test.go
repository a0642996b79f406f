package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		App:      AppConfig{Environment: "development"},
		Logger:   LoggerConfig{Level: "info"},
		Server:   ServerConfig{Port: "3000"},
		Database: DatabaseConfig{Path: "/tmp/rolodex.db", DataDir: "/tmp"},
	}
}

func TestValidate(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad environment", func(c *Config) { c.App.Environment = "prod" }},
		{"bad log level", func(c *Config) { c.Logger.Level = "verbose" }},
		{"empty port", func(c *Config) { c.Server.Port = "" }},
		{"empty db path", func(c *Config) { c.Database.Path = "" }},
		{"negative demo delay", func(c *Config) { c.Demo.Delay = -time.Second }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home dir: %v", err)
	}

	got, err := expandPath("", "/default/dir")
	if err != nil {
		t.Fatalf("expand empty: %v", err)
	}
	if got != "/default/dir" {
		t.Errorf("empty path should fall back to default, got %q", got)
	}

	got, err = expandPath("~/Rolodex", "")
	if err != nil {
		t.Fatalf("expand tilde: %v", err)
	}
	if got != filepath.Join(home, "Rolodex") {
		t.Errorf("tilde expansion: got %q", got)
	}
}

func TestPick(t *testing.T) {
	t.Setenv("ROLODEX_TEST_PICK", "from-env")

	if got := pick("from-flag", "ROLODEX_TEST_PICK", "fallback"); got != "from-flag" {
		t.Errorf("flag should win, got %q", got)
	}
	if got := pick("", "ROLODEX_TEST_PICK", "fallback"); got != "from-env" {
		t.Errorf("env should win over default, got %q", got)
	}
	if got := pick("", "ROLODEX_TEST_UNSET", "fallback"); got != "fallback" {
		t.Errorf("default should apply, got %q", got)
	}
}

func TestPickBool(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{"yes", true},
		{"false", false},
		{"0", false},
		{"nonsense", false},
	}
	for _, tt := range tests {
		if got := pickBool(tt.in, "ROLODEX_TEST_UNSET", false); got != tt.want {
			t.Errorf("pickBool(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if !pickBool("", "ROLODEX_TEST_UNSET", true) {
		t.Error("empty value should fall back to default")
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "# comment\nROLODEX_TEST_ENVFILE=hello\nROLODEX_TEST_QUOTED=\"world\"\n\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("ROLODEX_TEST_ENVFILE", "")
	t.Setenv("ROLODEX_TEST_QUOTED", "")

	if err := loadEnvFile(path); err != nil {
		t.Fatalf("loadEnvFile: %v", err)
	}
	if got := os.Getenv("ROLODEX_TEST_ENVFILE"); got != "hello" {
		t.Errorf("ROLODEX_TEST_ENVFILE = %q", got)
	}
	if got := os.Getenv("ROLODEX_TEST_QUOTED"); got != "world" {
		t.Errorf("quotes should be stripped, got %q", got)
	}
}

func TestLoadEnvFileDoesNotOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("ROLODEX_TEST_KEEP=file\n"), 0o644); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("ROLODEX_TEST_KEEP", "ambient")

	if err := loadEnvFile(path); err != nil {
		t.Fatalf("loadEnvFile: %v", err)
	}
	if got := os.Getenv("ROLODEX_TEST_KEEP"); got != "ambient" {
		t.Errorf("existing env var should win, got %q", got)
	}
}
