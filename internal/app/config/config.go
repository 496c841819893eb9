package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	ServiceHost string          `mapstructure:"service_host"`
	ServicePort int             `mapstructure:"service_port"`
	Log         LogConfig       `mapstructure:"log"`
	DB          DBConfig        `mapstructure:"db"`
	JWT         JWTConfig       `mapstructure:"jwt"`
	Redis       RedisConfig     `mapstructure:"redis"`
	MinIO       MinIOConfig     `mapstructure:"minio"`
	LLM         LLMConfig       `mapstructure:"llm"`
	RateLimit   RateLimitConfig `mapstructure:"rate_limit"`
	CORS        CORSConfig      `mapstructure:"cors"`
	Workflow    WorkflowConfig  `mapstructure:"workflow"`
	Admin       AdminConfig     `mapstructure:"admin"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type DBConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

type JWTConfig struct {
	Secret        string            `mapstructure:"secret"`
	ExpiresIn     time.Duration     `mapstructure:"expires_in"`
	Issuer        string            `mapstructure:"issuer"`
	SigningMethod jwt.SigningMethod `mapstructure:"-"`
}

type RedisConfig struct {
	Host        string        `mapstructure:"host"`
	Password    string        `mapstructure:"password"`
	Port        int           `mapstructure:"port"`
	User        string        `mapstructure:"user"`
	DialTimeout time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout time.Duration `mapstructure:"read_timeout"`
}

// Enabled reports whether a Redis server is configured.
func (r RedisConfig) Enabled() bool {
	return r.Host != ""
}

type MinIOConfig struct {
	Endpoint  string        `mapstructure:"endpoint"`
	AccessKey string        `mapstructure:"access_key"`
	SecretKey string        `mapstructure:"secret_key"`
	Bucket    string        `mapstructure:"bucket"`
	UseSSL    bool          `mapstructure:"use_ssl"`
	URLExpiry time.Duration `mapstructure:"url_expiry"`
}

func (m MinIOConfig) Enabled() bool {
	return m.Endpoint != ""
}

type LLMConfig struct {
	Provider     string        `mapstructure:"provider"`
	Model        string        `mapstructure:"model"`
	PreviewModel string        `mapstructure:"preview_model"`
	APIKey       string        `mapstructure:"api_key"`
	BaseURL      string        `mapstructure:"base_url"`
	Temperature  float64       `mapstructure:"temperature"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type WorkflowConfig struct {
	// RequirePayment makes direct generation wait for a completed payment.
	RequirePayment bool `mapstructure:"require_payment"`
}

// AdminConfig is the bootstrap administrator created on first start.
type AdminConfig struct {
	Username  string `mapstructure:"username"`
	Email     string `mapstructure:"email"`
	Password  string `mapstructure:"password"`
	FirstName string `mapstructure:"first_name"`
	LastName  string `mapstructure:"last_name"`
}

const DefaultAdminPassword = "admin123"

const (
	envConfigName   = "CONFIG_NAME"
	envConfigPath   = "CONFIG_PATH"
	envPort         = "PORT"
	envDatabaseURL  = "DATABASE_URL"
	envDBDriver     = "DB_DRIVER"
	envSecretKey    = "SECRET_KEY"
	envOpenAIKey    = "OPENAI_API_KEY"
	envOpenAIURL    = "OPENAI_BASE_URL"
	envLLMProvider  = "LLM_PROVIDER"
	envRedisHost    = "REDIS_HOST"
	envRedisPort    = "REDIS_PORT"
	envRedisUser    = "REDIS_USER"
	envRedisPass    = "REDIS_PASSWORD"
	envMinIOHost    = "MINIO_ENDPOINT"
	envMinIOAccess  = "MINIO_ACCESS_KEY"
	envMinIOSecret  = "MINIO_SECRET_KEY"
	envMinIOBucket  = "MINIO_BUCKET"
	envAdminPass    = "ADMIN_PASSWORD"
	envLogLevel     = "LOG_LEVEL"
	envRequirePaid  = "REQUIRE_PAYMENT"
	defaultDBDriver = "sqlite"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("service_host", "0.0.0.0")
	v.SetDefault("service_port", 5000)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("db.driver", defaultDBDriver)
	v.SetDefault("db.dsn", "file:contentgenius.db?_pragma=busy_timeout(5000)")

	v.SetDefault("jwt.expires_in", 24*time.Hour)
	v.SetDefault("jwt.issuer", "contentgenius")

	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.dial_timeout", 10*time.Second)
	v.SetDefault("redis.read_timeout", 10*time.Second)

	v.SetDefault("minio.bucket", "contentgenius")
	v.SetDefault("minio.url_expiry", time.Hour)

	v.SetDefault("llm.provider", "openai")
	v.SetDefault("llm.model", "gpt-4")
	v.SetDefault("llm.preview_model", "gpt-3.5-turbo")
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.timeout", 2*time.Minute)

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests", 10)
	v.SetDefault("rate_limit.window", time.Minute)

	v.SetDefault("cors.allowed_origins", []string{
		"http://localhost:5173",
		"https://contentgenius.app",
		"https://www.contentgenius.app",
	})

	v.SetDefault("workflow.require_payment", false)

	v.SetDefault("admin.username", "admin")
	v.SetDefault("admin.email", "admin@contentgenius.com")
	v.SetDefault("admin.password", DefaultAdminPassword)
	v.SetDefault("admin.first_name", "Admin")
	v.SetDefault("admin.last_name", "User")
}

func NewConfig() (*Config, error) {
	var err error

	_ = godotenv.Load()

	configName := "config"
	if os.Getenv(envConfigName) != "" {
		configName = os.Getenv(envConfigName)
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigName(configName)
	v.SetConfigType("toml")
	if path := os.Getenv(envConfigPath); path != "" {
		v.AddConfigPath(path)
	}
	v.AddConfigPath("config")
	v.AddConfigPath(".")

	err = v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		log.Warn("config file not found, using defaults and environment")
	}

	cfg := &Config{}
	err = v.Unmarshal(cfg)
	if err != nil {
		return nil, err
	}

	if err = cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.JWT.SigningMethod = jwt.SigningMethodHS256

	if err = cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log.Info("config parsed")

	return cfg, nil
}

// applyEnv lets deployment environment variables override file settings.
func (c *Config) applyEnv() error {
	if port := os.Getenv(envPort); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("port must be int value: %w", err)
		}
		c.ServicePort = p
	}

	if url := os.Getenv(envDatabaseURL); url != "" {
		c.DB.DSN = url
		if os.Getenv(envDBDriver) == "" && c.DB.Driver == defaultDBDriver {
			c.DB.Driver = "postgres"
		}
	}
	c.DB.Driver = getEnv(envDBDriver, c.DB.Driver)

	c.JWT.Secret = getEnv(envSecretKey, c.JWT.Secret)

	c.LLM.APIKey = getEnv(envOpenAIKey, c.LLM.APIKey)
	c.LLM.BaseURL = getEnv(envOpenAIURL, c.LLM.BaseURL)
	c.LLM.Provider = getEnv(envLLMProvider, c.LLM.Provider)

	c.Redis.Host = getEnv(envRedisHost, c.Redis.Host)
	if port := os.Getenv(envRedisPort); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("redis port must be int value: %w", err)
		}
		c.Redis.Port = p
	}
	c.Redis.User = getEnv(envRedisUser, c.Redis.User)
	c.Redis.Password = getEnv(envRedisPass, c.Redis.Password)

	c.MinIO.Endpoint = getEnv(envMinIOHost, c.MinIO.Endpoint)
	c.MinIO.AccessKey = getEnv(envMinIOAccess, c.MinIO.AccessKey)
	c.MinIO.SecretKey = getEnv(envMinIOSecret, c.MinIO.SecretKey)
	c.MinIO.Bucket = getEnv(envMinIOBucket, c.MinIO.Bucket)

	c.Admin.Password = getEnv(envAdminPass, c.Admin.Password)
	c.Log.Level = getEnv(envLogLevel, c.Log.Level)

	if v := os.Getenv(envRequirePaid); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s must be a boolean: %w", envRequirePaid, err)
		}
		c.Workflow.RequirePayment = b
	}
	return nil
}

func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("%s (jwt.secret) is required", envSecretKey)
	}
	if c.JWT.ExpiresIn <= 0 {
		return errors.New("jwt.expires_in must be positive")
	}
	switch c.DB.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported db.driver %q", c.DB.Driver)
	}
	if c.DB.DSN == "" {
		return errors.New("db.dsn is required")
	}
	if c.ServicePort <= 0 || c.ServicePort > 65535 {
		return fmt.Errorf("service_port %d out of range", c.ServicePort)
	}
	if c.RateLimit.Enabled && (c.RateLimit.Requests <= 0 || c.RateLimit.Window <= 0) {
		return errors.New("rate_limit.requests and rate_limit.window must be positive")
	}
	return nil
}

// Address is the listen address for the HTTP server.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.ServiceHost, c.ServicePort)
}

// SetupLogging applies the configured level and formatter to logrus.
func (l LogConfig) SetupLogging() error {
	level, err := log.ParseLevel(l.Level)
	if err != nil {
		return err
	}
	log.SetLevel(level)

	switch strings.ToLower(l.Format) {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	default:
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
