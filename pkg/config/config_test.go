package config

import (
	"strings"
	"testing"
)

func TestEnsureDSNUsesExplicitValue(t *testing.T) {
	cfg := DBConfig{DSN: "postgres://localhost/rfqhub"}
	if err := cfg.ensureDSN(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DSN != "postgres://localhost/rfqhub" {
		t.Fatalf("dsn overwritten: %s", cfg.DSN)
	}
}

func TestEnsureDSNAssemblesFromLegacyVars(t *testing.T) {
	cfg := DBConfig{
		LegacyHost:     "db.internal",
		LegacyPort:     5433,
		LegacyUser:     "rfq",
		LegacyPassword: "s3cret",
		LegacyName:     "rfqhub",
		LegacySSLMode:  "require",
	}
	if err := cfg.ensureDSN(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, fragment := range []string{"postgres://", "rfq:s3cret@", "db.internal:5433", "rfqhub", "sslmode=require"} {
		if !strings.Contains(cfg.DSN, fragment) {
			t.Fatalf("dsn %q missing %q", cfg.DSN, fragment)
		}
	}
}

func TestEnsureDSNReportsMissingLegacyVars(t *testing.T) {
	cfg := DBConfig{LegacyHost: "db.internal"}
	err := cfg.ensureDSN()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), EnvDBUser) || !strings.Contains(err.Error(), EnvDBName) {
		t.Fatalf("error should name missing vars: %v", err)
	}
}
