// cliparse/cliparse_test.go
package cliparse

import (
	"testing"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ADMIN_PASSWORD", "test-password")
	t.Setenv("SESSION_SECRET", "test-secret")
}

func TestParseFlags_EnvVars(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "ballotbox.db")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseURL != "ballotbox.db" {
		t.Errorf("expected database URL from env, got %q", cfg.DatabaseURL)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9000")

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "test.db"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_TYPE", "")
	t.Setenv("STATIC_DIR", "")

	cfg, err := ParseFlags([]string{"-d", "test.db"})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 3318 {
		t.Errorf("expected default port 3318, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("expected default database type sqlite, got %q", cfg.DatabaseType)
	}
	if cfg.StaticDir != "static" {
		t.Errorf("expected default static dir, got %q", cfg.StaticDir)
	}
}

func TestParseFlags_MissingDatabaseURL(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DATABASE_URL", "")

	if _, err := ParseFlags([]string{}); err == nil {
		t.Error("expected error when database URL is missing")
	}
}

func TestParseFlags_MissingSecrets(t *testing.T) {
	t.Setenv("DATABASE_URL", "test.db")
	t.Setenv("ADMIN_PASSWORD", "")
	t.Setenv("SESSION_SECRET", "")

	if _, err := ParseFlags([]string{}); err == nil {
		t.Error("expected error when ADMIN_PASSWORD is missing")
	}

	t.Setenv("ADMIN_PASSWORD", "pw")
	if _, err := ParseFlags([]string{}); err == nil {
		t.Error("expected error when SESSION_SECRET is missing")
	}
}

func TestParseFlags_InvalidPortEnv(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "not-a-number")
	t.Setenv("DATABASE_URL", "test.db")

	if _, err := ParseFlags([]string{}); err == nil {
		t.Error("expected error for invalid PORT")
	}

	// An explicit flag bypasses the bad env value
	if _, err := ParseFlags([]string{"-p", "8080"}); err != nil {
		t.Errorf("flag should bypass bad PORT env: %v", err)
	}
}
