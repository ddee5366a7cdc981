package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config es la configuración completa del servicio.
// Orden de carga: defaults -> archivo YAML -> .env -> variables de entorno.
type Config struct {
	AppID string `yaml:"app_id"`

	HTTP      HTTPConfig      `yaml:"http"`
	DocStore  DocStoreConfig  `yaml:"docstore"`
	Firestore FirestoreConfig `yaml:"firestore"`
	Diagnosis DiagnosisConfig `yaml:"diagnosis"`
	Identity  IdentityConfig  `yaml:"identity"`
	HN        HNConfig        `yaml:"hn"`
	Illness   IllnessConfig   `yaml:"illness"`
	Report    ReportConfig    `yaml:"report"`
	Blob      BlobConfig      `yaml:"blob"`
	Log       LogConfig       `yaml:"log"`
}

type HTTPConfig struct {
	Addr         string `yaml:"addr"`
	ReadTimeout  string `yaml:"read_timeout"`
	WriteTimeout string `yaml:"write_timeout"`
}

type DocStoreConfig struct {
	Driver       string `yaml:"driver"` // memory, sqlite, postgres, firestore
	DSN          string `yaml:"dsn"`
	PollInterval string `yaml:"poll_interval"`
}

type FirestoreConfig struct {
	ProjectID       string `yaml:"project_id"`
	CredentialsFile string `yaml:"credentials_file"`
}

type DiagnosisConfig struct {
	APIKey     string `yaml:"api_key"`
	Model      string `yaml:"model"`
	BaseURL    string `yaml:"base_url"`
	Timeout    string `yaml:"timeout"`
	Structured bool   `yaml:"structured"`
}

type IdentityConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

type HNConfig struct {
	MaxAttempts int `yaml:"max_attempts"`
}

type IllnessConfig struct {
	SessionTTL string `yaml:"session_ttl"`
}

type ReportConfig struct {
	FontFile string `yaml:"font_file"`
}

type BlobConfig struct {
	Driver string       `yaml:"driver"` // "", memory, s3
	S3     BlobS3Config `yaml:"s3"`
}

type BlobS3Config struct {
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint"`
	PathStyle       bool   `yaml:"path_style"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
	App    string `yaml:"app"`
}

const DefaultAppID = "default-app-id"

func DefaultConfig() *Config {
	return &Config{
		AppID: DefaultAppID,
		HTTP: HTTPConfig{
			Addr:         ":8080",
			ReadTimeout:  "5s",
			WriteTimeout: "90s",
		},
		DocStore: DocStoreConfig{
			Driver:       "memory",
			PollInterval: "1s",
		},
		Diagnosis: DiagnosisConfig{
			Model:   "gemini-2.0-flash",
			Timeout: "60s",
		},
		Identity: IdentityConfig{
			BaseURL: "https://identitytoolkit.googleapis.com",
			Timeout: "10s",
		},
		HN: HNConfig{
			MaxAttempts: 5,
		},
		Illness: IllnessConfig{
			SessionTTL: "2h",
		},
		Blob: BlobConfig{
			S3: BlobS3Config{Region: "us-east-1"},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			App:    "petcare",
		},
	}
}

// Load lee el YAML (si existe), el .env (si existe) y aplica overrides de entorno.
// path vacío = solo defaults + entorno.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		case errors.Is(err, os.ErrNotExist):
			// sin archivo: defaults
		default:
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	// .env no pisa variables ya definidas
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	setString(&c.AppID, "PETCARE_APP_ID")

	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		c.HTTP.Addr = ":" + v
	}
	setString(&c.HTTP.Addr, "PETCARE_HTTP_ADDR")

	setString(&c.DocStore.Driver, "PETCARE_DOCSTORE_DRIVER")
	setString(&c.DocStore.DSN, "DB_DSN")
	setString(&c.DocStore.DSN, "PETCARE_DOCSTORE_DSN")
	setString(&c.DocStore.PollInterval, "PETCARE_DOCSTORE_POLL_INTERVAL")

	setString(&c.Firestore.ProjectID, "FIRESTORE_PROJECT_ID")
	setString(&c.Firestore.CredentialsFile, "GOOGLE_APPLICATION_CREDENTIALS")

	setString(&c.Diagnosis.APIKey, "GEMINI_API_KEY")
	setString(&c.Diagnosis.Model, "PETCARE_DIAGNOSIS_MODEL")
	setString(&c.Diagnosis.Timeout, "PETCARE_DIAGNOSIS_TIMEOUT")
	setBool(&c.Diagnosis.Structured, "PETCARE_DIAGNOSIS_STRUCTURED")

	setString(&c.Identity.APIKey, "IDENTITY_API_KEY")
	setString(&c.Identity.BaseURL, "IDENTITY_BASE_URL")

	setInt(&c.HN.MaxAttempts, "PETCARE_HN_MAX_ATTEMPTS")
	setString(&c.Illness.SessionTTL, "PETCARE_SESSION_TTL")
	setString(&c.Report.FontFile, "PETCARE_REPORT_FONT_FILE")

	setString(&c.Blob.Driver, "PETCARE_BLOB_DRIVER")
	setString(&c.Blob.S3.Bucket, "PETCARE_BLOB_S3_BUCKET")
	setString(&c.Blob.S3.Region, "PETCARE_BLOB_S3_REGION")
	setString(&c.Blob.S3.Endpoint, "PETCARE_BLOB_S3_ENDPOINT")
	setBool(&c.Blob.S3.PathStyle, "PETCARE_BLOB_S3_PATH_STYLE")

	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Log.Format, "LOG_FORMAT")
	setString(&c.Log.App, "APP_NAME")
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.AppID) == "" {
		return errors.New("app_id is required")
	}
	if strings.Contains(c.AppID, "/") {
		return fmt.Errorf("app_id must not contain '/': %q", c.AppID)
	}

	switch c.DocStore.Driver {
	case "memory":
	case "sqlite", "postgres":
		if strings.TrimSpace(c.DocStore.DSN) == "" {
			return fmt.Errorf("docstore.dsn is required for driver %q", c.DocStore.Driver)
		}
	case "firestore":
		if strings.TrimSpace(c.Firestore.ProjectID) == "" {
			return errors.New("firestore.project_id is required for driver firestore")
		}
	default:
		return fmt.Errorf("unknown docstore.driver %q", c.DocStore.Driver)
	}

	switch c.Blob.Driver {
	case "", "memory":
	case "s3":
		if strings.TrimSpace(c.Blob.S3.Bucket) == "" {
			return errors.New("blob.s3.bucket is required for driver s3")
		}
	default:
		return fmt.Errorf("unknown blob.driver %q", c.Blob.Driver)
	}

	if c.HN.MaxAttempts < 1 {
		return errors.New("hn.max_attempts must be >= 1")
	}

	for name, v := range map[string]string{
		"http.read_timeout":      c.HTTP.ReadTimeout,
		"http.write_timeout":     c.HTTP.WriteTimeout,
		"docstore.poll_interval": c.DocStore.PollInterval,
		"diagnosis.timeout":      c.Diagnosis.Timeout,
		"identity.timeout":       c.Identity.Timeout,
		"illness.session_ttl":    c.Illness.SessionTTL,
	} {
		if v == "" {
			continue
		}
		if d, err := time.ParseDuration(v); err != nil || d <= 0 {
			return fmt.Errorf("%s: invalid duration %q", name, v)
		}
	}
	return nil
}

func (c *Config) ReadTimeout() time.Duration  { return duration(c.HTTP.ReadTimeout, 5*time.Second) }
func (c *Config) WriteTimeout() time.Duration { return duration(c.HTTP.WriteTimeout, 90*time.Second) }
func (c *Config) PollInterval() time.Duration { return duration(c.DocStore.PollInterval, time.Second) }
func (c *Config) DiagnosisTimeout() time.Duration {
	return duration(c.Diagnosis.Timeout, 60*time.Second)
}
func (c *Config) IdentityTimeout() time.Duration { return duration(c.Identity.Timeout, 10*time.Second) }
func (c *Config) SessionTTL() time.Duration      { return duration(c.Illness.SessionTTL, 2*time.Hour) }

func duration(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func setBool(dst *bool, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setInt(dst *int, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
