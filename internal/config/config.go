package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	Storage struct {
		Type       string `yaml:"type"`        // local, s3, cloudflare_r2
		BasePath   string `yaml:"base_path"`   // For local storage
		BaseURL    string `yaml:"base_url"`    // Public URL base
		Bucket     string `yaml:"bucket"`      // For S3/R2
		Region     string `yaml:"region"`      // For S3
		AccessKey  string `yaml:"access_key"`  // For S3/R2
		SecretKey  string `yaml:"secret_key"`  // For S3/R2
		Endpoint   string `yaml:"endpoint"`    // For R2 or custom S3
		UseSSL     bool   `yaml:"use_ssl"`     // For S3/R2
		PublicRead bool   `yaml:"public_read"` // Make files public
	} `yaml:"storage"`

	Upload struct {
		MaxSize         int64 `yaml:"max_size"`         // Max file size in bytes
		AdditionalSlots int   `yaml:"additional_slots"` // Optional document slots
	} `yaml:"upload"`

	Webhook struct {
		URL            string `yaml:"url"`             // Completion notification endpoint
		TimeoutSeconds int    `yaml:"timeout_seconds"` // Per-request timeout
	} `yaml:"webhook"`

	Form struct {
		// Variant selects the extra metadata fields collected alongside the
		// documents: none, employment_history or references.
		Variant string `yaml:"variant"`
	} `yaml:"form"`

	Advert struct {
		CompanyName     string   `yaml:"company_name"`
		Title           string   `yaml:"title"`
		Subtitle        string   `yaml:"subtitle"`
		Highlights      []string `yaml:"highlights"`
		Skills          []string `yaml:"skills"`
		Requirements    []string `yaml:"requirements"`
		Benefits        []string `yaml:"benefits"`
		WhatsAppNumber  string   `yaml:"whatsapp_number"`
		WhatsAppMessage string   `yaml:"whatsapp_message"`
	} `yaml:"advert"`
}

var AppConfig *Config

// LoadConfig reads config.yaml, or falls back to environment variables when
// DATABASE_URL is set (test mode).
func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	log.Println("Loading configuration from environment (test mode)")

	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))

	cfg.Storage.Type = "local"
	cfg.Storage.BasePath = "./uploads"
	cfg.Storage.BaseURL = "/api/v1/files"

	cfg.Upload.MaxSize = 10 * 1024 * 1024 // 10MB
	cfg.Upload.AdditionalSlots = 5

	cfg.Webhook.URL = os.Getenv("WEBHOOK_URL")
	cfg.Webhook.TimeoutSeconds = 10

	cfg.Form.Variant = "none"

	applyDefaults(&cfg)
	AppConfig = &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Upload.MaxSize == 0 {
		cfg.Upload.MaxSize = 10 * 1024 * 1024
	}
	if cfg.Upload.AdditionalSlots == 0 {
		cfg.Upload.AdditionalSlots = 5
	}
	if cfg.Webhook.TimeoutSeconds == 0 {
		cfg.Webhook.TimeoutSeconds = 10
	}
	if cfg.Form.Variant == "" {
		cfg.Form.Variant = "none"
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
