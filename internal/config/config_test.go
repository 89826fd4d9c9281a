package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func validConfig() Config {
	cfg := Config{HTTP: HTTPConfig{Port: 8080}}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate_Defaults(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_RedisRequiresAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Driver = DriverRedis

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing redis addrs")
	}

	cfg.Database.Addrs = []string{"localhost:6379"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_MemoryIgnoresAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Driver = DriverMemory
	cfg.Database.Addrs = nil

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_UnknownDriver(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Driver = "mongo"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for unknown driver")
	}

	expected := `database.driver must be "memory" or "redis", got "mongo"`
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_AuthKeys(t *testing.T) {
	tests := []struct {
		name    string
		keys    []KeyConfig
		wantErr bool
	}{
		{"user and admin", []KeyConfig{{Key: "a", User: "u", Role: RoleUser}, {Key: "b", User: "root", Role: RoleAdmin}}, false},
		{"missing user", []KeyConfig{{Key: "a", Role: RoleUser}}, true},
		{"missing key", []KeyConfig{{User: "u", Role: RoleUser}}, true},
		{"bad role", []KeyConfig{{Key: "a", User: "u", Role: "owner"}}, true},
		{"duplicate key", []KeyConfig{{Key: "a", User: "u", Role: RoleUser}, {Key: "a", User: "v", Role: RoleUser}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.Auth.Keys = tt.keys
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_PageSizeOrdering(t *testing.T) {
	cfg := validConfig()
	cfg.Search.DefaultPageSize = 200
	cfg.Search.MaxPageSize = 100

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when default page size exceeds max")
	}
}

func TestValidate_Backup(t *testing.T) {
	cfg := validConfig()
	cfg.Backup.Enabled = true

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing bucket")
	}

	cfg.Backup.Bucket = "snapshots"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg.Backup.Schedule = "every tuesday"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid cron schedule")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{Auth: AuthConfig{Keys: []KeyConfig{{Key: "k", User: "u"}}}}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 30 {
		t.Errorf("expected WriteTimeoutSec=30, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Database.Driver != DriverMemory {
		t.Errorf("expected Driver=memory, got %q", cfg.Database.Driver)
	}
	if cfg.Auth.Keys[0].Role != RoleUser {
		t.Errorf("expected default role user, got %q", cfg.Auth.Keys[0].Role)
	}
	if cfg.Search.DefaultPageSize != 20 {
		t.Errorf("expected DefaultPageSize=20, got %d", cfg.Search.DefaultPageSize)
	}
	if cfg.Search.MaxPageSize != 10000 {
		t.Errorf("expected MaxPageSize=10000, got %d", cfg.Search.MaxPageSize)
	}
	if cfg.Search.AdvancedDefaultLimit != 100 || cfg.Search.AdvancedMaxLimit != 500 {
		t.Errorf("unexpected advanced limits: %d/%d", cfg.Search.AdvancedDefaultLimit, cfg.Search.AdvancedMaxLimit)
	}
	if cfg.Storage.KeyPrefix != "aadb:" {
		t.Errorf("expected KeyPrefix='aadb:', got %q", cfg.Storage.KeyPrefix)
	}
	if cfg.Backup.Keep != 7 {
		t.Errorf("expected Keep=7, got %d", cfg.Backup.Keep)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Database: DatabaseConfig{Driver: DriverRedis, ReadinessTimeout: 15},
		Search:   SearchConfig{DefaultPageSize: 50, MaxPageSize: 500},
		Storage:  StorageConfig{KeyPrefix: "custom:"},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("expected WriteTimeoutSec=60, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Database.Driver != DriverRedis {
		t.Errorf("expected Driver=redis, got %q", cfg.Database.Driver)
	}
	if cfg.Search.DefaultPageSize != 50 || cfg.Search.MaxPageSize != 500 {
		t.Errorf("page sizes overridden: %d/%d", cfg.Search.DefaultPageSize, cfg.Search.MaxPageSize)
	}
	if cfg.Storage.KeyPrefix != "custom:" {
		t.Errorf("expected KeyPrefix='custom:', got %q", cfg.Storage.KeyPrefix)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("AADB_TEST_PORT", "9090")
	t.Setenv("AADB_TEST_EMPTY", "")

	in := "port: ${AADB_TEST_PORT}\nprefix: ${AADB_TEST_EMPTY:-aadb:}\nkey: ${AADB_TEST_UNSET}"
	got := string(expandEnvVars([]byte(in)))
	want := "port: 9090\nprefix: aadb:\nkey: "
	if got != want {
		t.Errorf("expandEnvVars:\ngot:  %q\nwant: %q", got, want)
	}
}

func TestLoad_FromWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "config"), 0o755); err != nil {
		t.Fatal(err)
	}
	yaml := strings.Join([]string{
		"http:",
		"  port: ${AADB_TEST_LOAD_PORT:-7070}",
		"auth:",
		"  keys:",
		"    - key: k1",
		"      user: alice",
	}, "\n")
	if err := os.WriteFile(filepath.Join(dir, "config", "unittest.yaml"), []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	cfg, err := Load("unittest")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Port != 7070 {
		t.Errorf("Port = %d, want 7070", cfg.HTTP.Port)
	}
	if cfg.Auth.Keys[0].Role != RoleUser {
		t.Errorf("Role = %q, want user", cfg.Auth.Keys[0].Role)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())
	if _, err := Load("does-not-exist"); err == nil {
		t.Fatal("expected error for missing config")
	}
}
