package cmd

import (
	"flag"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("AGENCY_BACKEND", "sqlite")
	t.Setenv("AGENCY_SQLITE_PATH", "/tmp/a.db")
	t.Setenv("AGENCY_REDIS_DB", "3")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	want := Config{
		Backend:     "sqlite",
		DataDir:     ".agency",
		SQLitePath:  "/tmp/a.db",
		RedisAddr:   "localhost:6379",
		RedisDB:     3,
		RedisPrefix: "agency:",
	}
	if cfg != want {
		t.Errorf("LoadConfig() = %+v, want %+v", cfg, want)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	t.Setenv("AGENCY_REDIS_DB", "first")
	if _, err := LoadConfig(); err == nil {
		t.Errorf("LoadConfig() with a non numeric redis db succeeded")
	}
}

func TestRegisterFlags(t *testing.T) {
	cfg := Config{Backend: "dir", DataDir: ".agency"}
	f := flag.NewFlagSet("agc", flag.ContinueOnError)
	RegisterFlags(f, &cfg)
	if err := f.Parse([]string{"-backend", "memory", "-v"}); err != nil {
		t.Fatal(err)
	}
	if cfg.Backend != "memory" || !cfg.Verbose || cfg.DataDir != ".agency" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		backend string
		wantErr bool
	}{
		{"dir", false},
		{"sqlite", false},
		{"redis", false},
		{"memory", false},
		{"postgres", true},
		{"", true},
	}
	for _, tt := range tests {
		if err := (Config{Backend: tt.backend}).Validate(); (err != nil) != tt.wantErr {
			t.Errorf("Validate(%q) error = %v, wantErr %v", tt.backend, err, tt.wantErr)
		}
	}
}
