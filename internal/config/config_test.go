package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func resetGlobalConfig() {
	globalConfig = &Config{
		DatabasePath:    ".polaris",
		BindAddr:        "0.0.0.0",
		MetricsPort:     12798,
		ShutdownTimeout: DefaultShutdownTimeout,
		AllowReset:      false,
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	resetGlobalConfig()
	yamlContent := `
databasePath: "/var/lib/polaris"
bindAddr: "127.0.0.1"
adminAccount: "registry.admin"
councilAccount: "registry.council"
escrowAccount: "registry.escrow"
oracleAccount: "oracle.svc"
tokenRef: "token.ledger"
metricsPort: 8088
shutdownTimeout: "15s"
allowReset: true
`

	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "test-polaris.yaml")

	err := os.WriteFile(tmpFile, []byte(yamlContent), 0644)
	if err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	expected := &Config{
		DatabasePath:    "/var/lib/polaris",
		BindAddr:        "127.0.0.1",
		AdminAccount:    "registry.admin",
		CouncilAccount:  "registry.council",
		EscrowAccount:   "registry.escrow",
		OracleAccount:   "oracle.svc",
		TokenRef:        "token.ledger",
		MetricsPort:     8088,
		ShutdownTimeout: "15s",
		AllowReset:      true,
	}

	cfg, err := LoadConfig(tmpFile)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if !reflect.DeepEqual(cfg, expected) {
		t.Errorf("config mismatch:\n  got: %+v\n  want: %+v", cfg, expected)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	resetGlobalConfig()
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.DatabasePath != ".polaris" {
		t.Errorf("unexpected database path: %s", cfg.DatabasePath)
	}
	if cfg.MetricsPort != 12798 {
		t.Errorf("unexpected metrics port: %d", cfg.MetricsPort)
	}
	if cfg.AllowReset {
		t.Error("allowReset should default to false")
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	resetGlobalConfig()
	t.Setenv("POLARIS_ADMIN_ACCOUNT", "env.admin")
	t.Setenv("POLARIS_ALLOW_RESET", "true")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.AdminAccount != "env.admin" {
		t.Errorf("env override not applied: %s", cfg.AdminAccount)
	}
	if !cfg.AllowReset {
		t.Error("env override for allowReset not applied")
	}
}

func TestConfigContext(t *testing.T) {
	resetGlobalConfig()
	cfg := GetConfig()
	ctx := WithContext(t.Context(), cfg)
	if FromContext(ctx) != cfg {
		t.Error("config not retrievable from context")
	}
	if FromContext(t.Context()) != nil {
		t.Error("expected nil config from empty context")
	}
}
