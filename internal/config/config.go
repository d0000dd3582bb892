package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	DB       DBConfig
	JWT      JWTConfig
	S3       S3Config
	WhatsApp WhatsAppConfig
	CORS     CORSConfig
	Log      LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret      string        `mapstructure:"secret"`
	TokenExpiry time.Duration `mapstructure:"token_expiry"`
	Issuer      string        `mapstructure:"issuer"`
}

// S3Config holds AWS S3 settings for invoice artifact storage. All fields are
// optional: when credentials or bucket are absent the artifact store degrades
// to ephemeral references instead of failing.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// Configured reports whether enough S3 settings are present to attempt
// durable uploads.
func (s *S3Config) Configured() bool {
	return s.Bucket != "" && s.AccessKey != "" && s.SecretKey != ""
}

// PersonalAPIConfig holds settings for the generic HTTP WhatsApp API channel.
type PersonalAPIConfig struct {
	APIKey      string `mapstructure:"api_key"`
	Sender      string `mapstructure:"sender"`
	APIEndpoint string `mapstructure:"api_endpoint"`
}

// Configured reports whether the personal channel has all required settings.
func (p *PersonalAPIConfig) Configured() bool {
	return p.APIKey != "" && p.Sender != "" && p.APIEndpoint != ""
}

// TwilioConfig holds settings for the managed Twilio WhatsApp channel.
type TwilioConfig struct {
	AccountSID string `mapstructure:"account_sid"`
	AuthToken  string `mapstructure:"auth_token"`
	From       string `mapstructure:"from"`
}

// Configured reports whether the Twilio channel has valid-looking credentials.
func (t *TwilioConfig) Configured() bool {
	return strings.HasPrefix(t.AccountSID, "AC") && t.AuthToken != ""
}

// WhatsAppConfig selects and configures the outbound messaging channel.
// Exactly one channel is active per deployment; UsePersonal is resolved once
// at startup.
type WhatsAppConfig struct {
	UsePersonal bool              `mapstructure:"use_personal"`
	Personal    PersonalAPIConfig `mapstructure:"personal"`
	Twilio      TwilioConfig      `mapstructure:"twilio"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration from environment variables with the QUICKBILL_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("QUICKBILL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":5000")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "quickbill")
	v.SetDefault("db.password", "quickbill_secret")
	v.SetDefault("db.name", "quickbill_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.token_expiry", "720h")
	v.SetDefault("jwt.issuer", "quickbill")

	// S3 defaults
	v.SetDefault("s3.region", "ap-south-1")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.access_key", "")
	v.SetDefault("s3.secret_key", "")

	// WhatsApp defaults
	v.SetDefault("whatsapp.use_personal", false)
	v.SetDefault("whatsapp.personal.api_key", "")
	v.SetDefault("whatsapp.personal.sender", "")
	v.SetDefault("whatsapp.personal.api_endpoint", "")
	v.SetDefault("whatsapp.twilio.account_sid", "")
	v.SetDefault("whatsapp.twilio.auth_token", "")
	v.SetDefault("whatsapp.twilio.from", "+14155238886")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Log defaults
	v.SetDefault("log.level", "debug")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                    "QUICKBILL_SERVER_PORT",
		"server.read_timeout":            "QUICKBILL_SERVER_READ_TIMEOUT",
		"server.write_timeout":           "QUICKBILL_SERVER_WRITE_TIMEOUT",
		"server.environment":             "QUICKBILL_SERVER_ENVIRONMENT",
		"db.host":                        "QUICKBILL_DB_HOST",
		"db.port":                        "QUICKBILL_DB_PORT",
		"db.user":                        "QUICKBILL_DB_USER",
		"db.password":                    "QUICKBILL_DB_PASSWORD",
		"db.name":                        "QUICKBILL_DB_NAME",
		"db.sslmode":                     "QUICKBILL_DB_SSLMODE",
		"db.max_open":                    "QUICKBILL_DB_MAX_OPEN",
		"db.max_idle":                    "QUICKBILL_DB_MAX_IDLE",
		"jwt.secret":                     "QUICKBILL_JWT_SECRET",
		"jwt.token_expiry":               "QUICKBILL_JWT_TOKEN_EXPIRY",
		"jwt.issuer":                     "QUICKBILL_JWT_ISSUER",
		"s3.region":                      "QUICKBILL_S3_REGION",
		"s3.bucket":                      "QUICKBILL_S3_BUCKET",
		"s3.endpoint":                    "QUICKBILL_S3_ENDPOINT",
		"s3.access_key":                  "QUICKBILL_S3_ACCESS_KEY",
		"s3.secret_key":                  "QUICKBILL_S3_SECRET_KEY",
		"whatsapp.use_personal":          "QUICKBILL_WHATSAPP_USE_PERSONAL",
		"whatsapp.personal.api_key":      "QUICKBILL_WHATSAPP_PERSONAL_API_KEY",
		"whatsapp.personal.sender":       "QUICKBILL_WHATSAPP_PERSONAL_SENDER",
		"whatsapp.personal.api_endpoint": "QUICKBILL_WHATSAPP_PERSONAL_API_ENDPOINT",
		"whatsapp.twilio.account_sid":    "QUICKBILL_WHATSAPP_TWILIO_ACCOUNT_SID",
		"whatsapp.twilio.auth_token":     "QUICKBILL_WHATSAPP_TWILIO_AUTH_TOKEN",
		"whatsapp.twilio.from":           "QUICKBILL_WHATSAPP_TWILIO_FROM",
		"cors.allowed_origins":           "QUICKBILL_CORS_ALLOWED_ORIGINS",
		"log.level":                      "QUICKBILL_LOG_LEVEL",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if QUICKBILL_SERVER_PORT
	// is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("QUICKBILL_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret:      v.GetString("jwt.secret"),
		TokenExpiry: v.GetDuration("jwt.token_expiry"),
		Issuer:      v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:    v.GetString("s3.region"),
		Bucket:    v.GetString("s3.bucket"),
		Endpoint:  v.GetString("s3.endpoint"),
		AccessKey: v.GetString("s3.access_key"),
		SecretKey: v.GetString("s3.secret_key"),
	}
	cfg.WhatsApp = WhatsAppConfig{
		UsePersonal: v.GetBool("whatsapp.use_personal"),
		Personal: PersonalAPIConfig{
			APIKey:      v.GetString("whatsapp.personal.api_key"),
			Sender:      v.GetString("whatsapp.personal.sender"),
			APIEndpoint: v.GetString("whatsapp.personal.api_endpoint"),
		},
		Twilio: TwilioConfig{
			AccountSID: v.GetString("whatsapp.twilio.account_sid"),
			AuthToken:  v.GetString("whatsapp.twilio.auth_token"),
			From:       v.GetString("whatsapp.twilio.from"),
		},
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	cfg.Log = LogConfig{Level: v.GetString("log.level")}

	return cfg, nil
}
