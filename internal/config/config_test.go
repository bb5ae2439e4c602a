package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gistrun.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIBaseURL != DefaultBaseURL {
		t.Errorf("APIBaseURL = %q, want %q", cfg.APIBaseURL, DefaultBaseURL)
	}
	if cfg.FetchLimit != DefaultFetchLimit {
		t.Errorf("FetchLimit = %d, want %d", cfg.FetchLimit, DefaultFetchLimit)
	}
	if cfg.RequestTimeout() != DefaultRequestTimeout {
		t.Errorf("RequestTimeout = %v, want %v", cfg.RequestTimeout(), DefaultRequestTimeout)
	}
	if cfg.ExecTimeout() != DefaultExecTimeout {
		t.Errorf("ExecTimeout = %v, want %v", cfg.ExecTimeout(), DefaultExecTimeout)
	}
	if cfg.MaxOutputBytes() != DefaultMaxOutput {
		t.Errorf("MaxOutputBytes = %d, want %d", cfg.MaxOutputBytes(), DefaultMaxOutput)
	}
	if cfg.HashFunc() != "sha256" {
		t.Errorf("HashFunc = %q, want sha256", cfg.HashFunc())
	}
}

func TestLoad_Values(t *testing.T) {
	path := writeConfig(t, `
api_base_url: https://github.example.com/api/v3
fetch_limit: 25
request_timeout: 30s
exec:
  timeout: 2m
  max_output: 4096
  hash_func: sha512
commands:
  .py: python3
  .zig: zig run
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIBaseURL != "https://github.example.com/api/v3" {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.FetchLimit != 25 {
		t.Errorf("FetchLimit = %d, want 25", cfg.FetchLimit)
	}
	if cfg.RequestTimeout() != 30*time.Second {
		t.Errorf("RequestTimeout = %v, want 30s", cfg.RequestTimeout())
	}
	if cfg.ExecTimeout() != 2*time.Minute {
		t.Errorf("ExecTimeout = %v, want 2m", cfg.ExecTimeout())
	}
	if cfg.MaxOutputBytes() != 4096 {
		t.Errorf("MaxOutputBytes = %d, want 4096", cfg.MaxOutputBytes())
	}
	if cfg.HashFunc() != "sha512" {
		t.Errorf("HashFunc = %q, want sha512", cfg.HashFunc())
	}
	if cfg.Commands[".py"] != "python3" || cfg.Commands[".zig"] != "zig run" {
		t.Errorf("Commands = %v", cfg.Commands)
	}
}

func TestLoad_ZeroTimeoutMeansUnbounded(t *testing.T) {
	path := writeConfig(t, "exec:\n  timeout: \"0\"\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ExecTimeout() != 0 {
		t.Errorf("ExecTimeout = %v, want 0 (unbounded)", cfg.ExecTimeout())
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("expected error for a missing explicit config file")
	}
}

func TestLoad_NoConfigFileAnywhere(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIBaseURL != DefaultBaseURL {
		t.Errorf("APIBaseURL = %q, want the default", cfg.APIBaseURL)
	}
}

func TestDump(t *testing.T) {
	path := writeConfig(t, "fetch_limit: 10\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	out, err := cfg.Dump()
	if err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if !strings.Contains(out, "api_base_url:") || !strings.Contains(out, "fetch_limit: 10") {
		t.Errorf("Dump missing effective values:\n%s", out)
	}
}
