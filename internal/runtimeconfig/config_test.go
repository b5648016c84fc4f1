package runtimeconfig

import (
	"errors"
	"testing"
)

func TestDefaultConfigFailsWithoutSessionSecret(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); !errors.Is(err, ErrSessionSecretRequired) {
		t.Fatalf("expected ErrSessionSecretRequired, got %v", err)
	}

	cfg.Auth.SessionSecret = "secret"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	cfg = DefaultConfig()
	cfg.HTTP.Enabled = false
	if err := cfg.Validate(); err != nil {
		t.Fatalf("secret is optional without the http api, got %v", err)
	}
}

func TestValidateRejectsBadDriver(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HTTP.Enabled = false
	cfg.Database.Driver = "mysql"

	if err := cfg.Validate(); !errors.Is(err, ErrDatabaseDriverUnknown) {
		t.Fatalf("expected ErrDatabaseDriverUnknown, got %v", err)
	}

	cfg.Database.Driver = "postgres"
	cfg.Database.DSN = ""
	if err := cfg.Validate(); !errors.Is(err, ErrDatabaseDSNRequired) {
		t.Fatalf("expected ErrDatabaseDSNRequired, got %v", err)
	}
}

func TestValidateRejectsBadContentDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HTTP.Enabled = false
	cfg.Content.Dir = "  "

	if err := cfg.Validate(); !errors.Is(err, ErrContentDirRequired) {
		t.Fatalf("expected ErrContentDirRequired, got %v", err)
	}
}

func TestValidateLoggingOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HTTP.Enabled = false

	cfg.Logging.Provider = "zap"
	if err := cfg.Validate(); !errors.Is(err, ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}

	cfg.Logging.Provider = "gologger"
	cfg.Logging.Level = "verbose"
	if err := cfg.Validate(); !errors.Is(err, ErrLoggingLevelInvalid) {
		t.Fatalf("expected ErrLoggingLevelInvalid, got %v", err)
	}

	cfg.Logging.Level = "debug"
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); !errors.Is(err, ErrLoggingFormatInvalid) {
		t.Fatalf("expected ErrLoggingFormatInvalid, got %v", err)
	}

	cfg.Logging.Format = "pretty"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}
