// Package config loads the startup parameters of the server and the
// terminal client. Values are read once at startup and never change.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	AppName = "taskking"

	DefaultStoreURI = "./tasks.db" // SQLite, zero-config development store
	DefaultDatabase = "taskking"
	DefaultPort     = "5000"
	DefaultAPIURL   = "http://localhost:5000"

	ClientConfigFile = "client.toml"
)

// Server holds the backend configuration.
type Server struct {
	// StoreURI is a MongoDB connection string or a SQLite database path.
	// Production deployments point it at MongoDB; when unset it falls back
	// to the local SQLite file DefaultStoreURI so a development server runs
	// with no setup.
	StoreURI string
	// Database is the MongoDB database name; ignored for SQLite.
	Database string
	Port     string

	LogLevel  string
	LogFormat string

	// ExposeErrorDetails passes store error text through to API clients.
	ExposeErrorDetails bool
}

func (s Server) Addr() string {
	return ":" + s.Port
}

// LoadServer reads an optional .env file from the working directory and then
// the process environment.
func LoadServer() (Server, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Server{}, fmt.Errorf("load .env: %w", err)
	}
	return ServerFromEnv()
}

func ServerFromEnv() (Server, error) {
	cfg := Server{
		StoreURI:           envOr("MONGO_URI", DefaultStoreURI),
		Database:           envOr("MONGO_DATABASE", DefaultDatabase),
		Port:               envOr("PORT", DefaultPort),
		LogLevel:           envOr("LOG_LEVEL", "info"),
		LogFormat:          envOr("LOG_FORMAT", "text"),
		ExposeErrorDetails: true,
	}

	if v, ok := os.LookupEnv("EXPOSE_ERROR_DETAILS"); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return Server{}, fmt.Errorf("EXPOSE_ERROR_DETAILS: %w", err)
		}
		cfg.ExposeErrorDetails = b
	}

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return Server{}, fmt.Errorf("PORT: invalid value %q", cfg.Port)
	}
	return cfg, nil
}

// Client holds the terminal client configuration.
type Client struct {
	APIURL string `toml:"api_url"`
	// LogFile receives client logs when set; the terminal itself is owned by
	// the UI.
	LogFile string `toml:"log_file"`
}

// LoadClient resolves the client configuration. Precedence, lowest first:
// built-in defaults, the TOML file at path (DefaultClientConfigPath when path
// is empty), then API_URL / TASKKING_LOG from the environment.
func LoadClient(path string) (Client, error) {
	cfg := Client{APIURL: DefaultAPIURL}

	explicit := path != ""
	if !explicit {
		path = DefaultClientConfigPath()
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			if !errors.Is(err, fs.ErrNotExist) || explicit {
				return Client{}, fmt.Errorf("read %s: %w", path, err)
			}
		}
	}

	if v := os.Getenv("API_URL"); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv("TASKKING_LOG"); v != "" {
		cfg.LogFile = v
	}
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	return cfg, nil
}

// DefaultClientConfigPath returns $XDG_CONFIG_HOME/taskking/client.toml,
// falling back to $HOME/.config.
func DefaultClientConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName, ClientConfigFile)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", AppName, ClientConfigFile)
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
