package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	// Server
	Port        string
	Environment string

	// Language tag used for lowercasing user input
	Language string

	Logging   LoggingConfig
	Storage   StorageConfig
	Sessions  SessionConfig
	WhatsApp  WhatsAppConfig
	Knowledge KnowledgeConfig
	Security  SecurityConfig
}

type LoggingConfig struct {
	Level  string
	Format string // "console" or "json"
}

type StorageConfig struct {
	Type     string // "memory" or "mongodb"
	URI      string
	Name     string
	Host     string
	Port     string
	Username string
	Password string

	// Connection pool settings
	MaxConnections int
	MinConnections int
	MaxIdleTime    time.Duration
}

// SessionConfig controls where in-progress follow-up flows are kept between web requests.
type SessionConfig struct {
	Type          string // "memory" or "redis"
	RedisAddress  string
	RedisPassword string
	RedisDB       int
	TTL           time.Duration
}

type WhatsAppConfig struct {
	APIURL        string
	APIVersion    string
	AccessToken   string
	PhoneNumberID string
	BusinessID    string
	VerifyToken   string
	AppSecret     string
}

// KnowledgeConfig optionally points at YAML files replacing the embedded tables.
type KnowledgeConfig struct {
	KeywordsFile  string
	ResponsesFile string
}

type SecurityConfig struct {
	AllowedOrigins []string
}

// envBindings maps config keys to the environment variables that override them.
var envBindings = map[string]string{
	"port":                     "PORT",
	"environment":              "ENVIRONMENT",
	"language":                 "CHATBOT_LANGUAGE",
	"logging.level":            "LOG_LEVEL",
	"logging.format":           "LOG_FORMAT",
	"storage.type":             "STORAGE_TYPE",
	"storage.uri":              "DATABASE_URL",
	"storage.name":             "DB_NAME",
	"storage.host":             "DB_HOST",
	"storage.port":             "DB_PORT",
	"storage.username":         "DB_USERNAME",
	"storage.password":         "DB_PASSWORD",
	"storage.max_connections":  "DB_MAX_CONNECTIONS",
	"storage.min_connections":  "DB_MIN_CONNECTIONS",
	"storage.max_idle_time":    "DB_MAX_IDLE_TIME",
	"sessions.type":            "SESSION_STORE",
	"sessions.redis_address":   "REDIS_ADDRESS",
	"sessions.redis_password":  "REDIS_PASSWORD",
	"sessions.redis_db":        "REDIS_DB",
	"sessions.ttl":             "SESSION_TTL",
	"whatsapp.api_url":         "WHATSAPP_API_URL",
	"whatsapp.api_version":     "WHATSAPP_API_VERSION",
	"whatsapp.access_token":    "WHATSAPP_ACCESS_TOKEN",
	"whatsapp.phone_number_id": "WHATSAPP_PHONE_NUMBER_ID",
	"whatsapp.business_id":     "WHATSAPP_BUSINESS_ID",
	"whatsapp.verify_token":    "WHATSAPP_VERIFY_TOKEN",
	"whatsapp.app_secret":      "WHATSAPP_APP_SECRET",
	"knowledge.keywords_file":  "KEYWORDS_FILE",
	"knowledge.responses_file": "RESPONSES_FILE",
	"security.allowed_origins": "ALLOWED_ORIGINS",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("environment", "development")
	v.SetDefault("language", "pt-BR")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("storage.type", "memory")
	v.SetDefault("storage.name", "insurance_chatbot")
	v.SetDefault("storage.host", "localhost")
	v.SetDefault("storage.port", "27017")
	v.SetDefault("storage.max_connections", 100)
	v.SetDefault("storage.min_connections", 10)
	v.SetDefault("storage.max_idle_time", "30m")

	v.SetDefault("sessions.type", "memory")
	v.SetDefault("sessions.redis_db", 0)
	v.SetDefault("sessions.ttl", "30m")

	v.SetDefault("whatsapp.api_url", "https://graph.facebook.com")
	v.SetDefault("whatsapp.api_version", "v18.0")

	v.SetDefault("security.allowed_origins", []string{"http://localhost:3000", "http://localhost:5173"})
}

// Load reads .env, an optional YAML config file and the environment, in increasing order
// of precedence. An empty configFile looks for config.yaml in the working directory and
// ./configs; a missing default file is not an error.
func Load(configFile string) (*Config, error) {
	// .env is optional; real environment variables still apply without it
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	loaded := &Config{
		Port:        v.GetString("port"),
		Environment: v.GetString("environment"),
		Language:    v.GetString("language"),

		Logging: LoggingConfig{
			Level:  strings.ToLower(v.GetString("logging.level")),
			Format: strings.ToLower(v.GetString("logging.format")),
		},

		Storage: StorageConfig{
			Type:     strings.ToLower(v.GetString("storage.type")),
			URI:      v.GetString("storage.uri"),
			Name:     v.GetString("storage.name"),
			Host:     v.GetString("storage.host"),
			Port:     v.GetString("storage.port"),
			Username: v.GetString("storage.username"),
			Password: v.GetString("storage.password"),

			MaxConnections: v.GetInt("storage.max_connections"),
			MinConnections: v.GetInt("storage.min_connections"),
			MaxIdleTime:    v.GetDuration("storage.max_idle_time"),
		},

		Sessions: SessionConfig{
			Type:          strings.ToLower(v.GetString("sessions.type")),
			RedisAddress:  v.GetString("sessions.redis_address"),
			RedisPassword: v.GetString("sessions.redis_password"),
			RedisDB:       v.GetInt("sessions.redis_db"),
			TTL:           v.GetDuration("sessions.ttl"),
		},

		WhatsApp: WhatsAppConfig{
			APIURL:        v.GetString("whatsapp.api_url"),
			APIVersion:    v.GetString("whatsapp.api_version"),
			AccessToken:   v.GetString("whatsapp.access_token"),
			PhoneNumberID: v.GetString("whatsapp.phone_number_id"),
			BusinessID:    v.GetString("whatsapp.business_id"),
			VerifyToken:   v.GetString("whatsapp.verify_token"),
			AppSecret:     v.GetString("whatsapp.app_secret"),
		},

		Knowledge: KnowledgeConfig{
			KeywordsFile:  v.GetString("knowledge.keywords_file"),
			ResponsesFile: v.GetString("knowledge.responses_file"),
		},

		Security: SecurityConfig{
			AllowedOrigins: stringSlice(v, "security.allowed_origins"),
		},
	}

	if err := validate(loaded); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return loaded, nil
}

// stringSlice accepts both YAML lists and comma-separated environment values.
func stringSlice(v *viper.Viper, key string) []string {
	if raw, ok := v.Get(key).(string); ok {
		if raw == "" {
			return nil
		}
		parts := strings.Split(raw, ",")
		out := make([]string, 0, len(parts))
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		return out
	}
	return v.GetStringSlice(key)
}

func validate(c *Config) error {
	switch c.Storage.Type {
	case "memory":
	case "mongodb":
		if c.Storage.URI == "" && (c.Storage.Host == "" || c.Storage.Port == "") {
			return fmt.Errorf("database URI or host/port must be provided")
		}
	default:
		return fmt.Errorf("unsupported storage type: %s", c.Storage.Type)
	}

	switch c.Sessions.Type {
	case "memory":
	case "redis":
		if c.Sessions.RedisAddress == "" {
			return fmt.Errorf("redis address is required for redis session store")
		}
	default:
		return fmt.Errorf("unsupported session store: %s", c.Sessions.Type)
	}

	if c.Sessions.TTL <= 0 {
		return fmt.Errorf("session TTL must be positive")
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("unsupported log format: %s", c.Logging.Format)
	}

	return nil
}

// MissingWhatsAppSettings lists the WhatsApp variables the Cloud API integration needs
// but that are unset.
func (c *Config) MissingWhatsAppSettings() []string {
	var missing []string
	if c.WhatsApp.AccessToken == "" {
		missing = append(missing, "WHATSAPP_ACCESS_TOKEN")
	}
	if c.WhatsApp.PhoneNumberID == "" {
		missing = append(missing, "WHATSAPP_PHONE_NUMBER_ID")
	}
	if c.WhatsApp.VerifyToken == "" {
		missing = append(missing, "WHATSAPP_VERIFY_TOKEN")
	}
	return missing
}

// BuildDatabaseURI constructs the database URI if not provided
func (c *Config) BuildDatabaseURI() string {
	if c.Storage.URI != "" {
		return c.Storage.URI
	}

	if c.Storage.Username != "" && c.Storage.Password != "" {
		return fmt.Sprintf("mongodb://%s:%s@%s:%s/%s",
			c.Storage.Username,
			c.Storage.Password,
			c.Storage.Host,
			c.Storage.Port,
			c.Storage.Name,
		)
	}
	return fmt.Sprintf("mongodb://%s:%s/%s",
		c.Storage.Host,
		c.Storage.Port,
		c.Storage.Name,
	)
}
