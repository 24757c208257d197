package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearServerEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"MONGO_URI", "MONGO_DATABASE", "PORT", "LOG_LEVEL", "LOG_FORMAT", "EXPOSE_ERROR_DETAILS"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestServerFromEnvDefaults(t *testing.T) {
	clearServerEnv(t)

	cfg, err := ServerFromEnv()
	if err != nil {
		t.Fatalf("ServerFromEnv: %v", err)
	}
	if cfg.StoreURI != DefaultStoreURI || cfg.Database != DefaultDatabase || cfg.Port != DefaultPort {
		t.Errorf("cfg = %+v", cfg)
	}
	if !cfg.ExposeErrorDetails {
		t.Error("ExposeErrorDetails should default to true")
	}
	if cfg.Addr() != ":5000" {
		t.Errorf("Addr = %q", cfg.Addr())
	}
}

func TestServerFromEnvOverrides(t *testing.T) {
	clearServerEnv(t)
	t.Setenv("MONGO_URI", "mongodb://db:27017")
	t.Setenv("MONGO_DATABASE", "tasks")
	t.Setenv("PORT", "8080")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("EXPOSE_ERROR_DETAILS", "false")

	cfg, err := ServerFromEnv()
	if err != nil {
		t.Fatalf("ServerFromEnv: %v", err)
	}
	want := Server{
		StoreURI:           "mongodb://db:27017",
		Database:           "tasks",
		Port:               "8080",
		LogLevel:           "debug",
		LogFormat:          "text",
		ExposeErrorDetails: false,
	}
	if cfg != want {
		t.Errorf("cfg = %+v, want %+v", cfg, want)
	}
}

func TestServerFromEnvInvalid(t *testing.T) {
	tests := map[string]string{
		"PORT":                 "http",
		"EXPOSE_ERROR_DETAILS": "sometimes",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			clearServerEnv(t)
			t.Setenv(key, value)
			if _, err := ServerFromEnv(); err == nil {
				t.Fatalf("%s=%s accepted", key, value)
			}
		})
	}
}

func TestLoadClientDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("API_URL", "")
	t.Setenv("TASKKING_LOG", "")

	cfg, err := LoadClient("")
	if err != nil {
		t.Fatalf("LoadClient: %v", err)
	}
	if cfg.APIURL != DefaultAPIURL || cfg.LogFile != "" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadClientFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("API_URL", "")
	t.Setenv("TASKKING_LOG", "")

	path := filepath.Join(dir, AppName, ClientConfigFile)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	content := "api_url = \"http://tasks.internal:5000/\"\nlog_file = \"/tmp/taskking.log\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadClient("")
	if err != nil {
		t.Fatalf("LoadClient: %v", err)
	}
	if cfg.APIURL != "http://tasks.internal:5000" {
		t.Errorf("APIURL = %q", cfg.APIURL)
	}
	if cfg.LogFile != "/tmp/taskking.log" {
		t.Errorf("LogFile = %q", cfg.LogFile)
	}

	t.Setenv("API_URL", "http://override:9000")
	cfg, err = LoadClient("")
	if err != nil {
		t.Fatalf("LoadClient: %v", err)
	}
	if cfg.APIURL != "http://override:9000" {
		t.Errorf("APIURL = %q, want env override", cfg.APIURL)
	}
}

func TestLoadClientExplicitMissingFile(t *testing.T) {
	if _, err := LoadClient(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("missing explicit config file accepted")
	}
}

func TestLoadClientBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.toml")
	if err := os.WriteFile(path, []byte("api_url = "), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadClient(path); err == nil {
		t.Fatal("malformed config accepted")
	}
}
