package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config contém todas as configurações da aplicação
type Config struct {
	Env          string
	Server       ServerConfig
	Database     DatabaseConfig
	JWT          JWTConfig
	Session      SessionConfig
	Gamification GamificationConfig
	Tasks        TasksConfig
	Cleanup      CleanupConfig
	RateLimit    RateLimitConfig
	Logging      LoggingConfig
	CORS         CORSConfig
	I18n         I18nConfig
}

type ServerConfig struct {
	Port            string
	Host            string
	BaseURL         string // URL base da API para construir URIs RFC 7807
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MaxConns    int
	MinConns    int
	MaxIdleTime int
	LogQueries  bool

	SlowQueryThreshold time.Duration
	ConnectRetries     int
}

type JWTConfig struct {
	Secret       string
	AccessExpiry time.Duration
	Issuer       string
}

type SessionConfig struct {
	TTL time.Duration
}

// GamificationConfig contém os valores de pontuação
type GamificationConfig struct {
	PointsPost           int
	PointsProfilePic     int
	PointsFirstBio       int
	OnboardingProfilePic int
	OnboardingBio        int
	OnboardingChallenge  int
	OnboardingBonus      int
	CatalogCacheSize     int
	CatalogCacheTTL      time.Duration
}

// TasksConfig configura o pool de tarefas assíncronas
type TasksConfig struct {
	Workers     int
	QueueSize   int
	MaxAttempts int
	Backoff     time.Duration
}

// CleanupConfig contém as agendas cron das rotinas de manutenção
type CleanupConfig struct {
	NotificationsSpec  string
	SessionsSpec       string
	ReconcileSpec      string
	NotificationMaxAge time.Duration
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

type LoggingConfig struct {
	Level  string
	Format string
}

type CORSConfig struct {
	AllowedOrigins string
}

type I18nConfig struct {
	LocalesDir      string // vazio usa os locales embutidos
	DefaultLanguage string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", "development")
	v.SetDefault("PORT", "8080")
	v.SetDefault("HOST", "0.0.0.0")
	v.SetDefault("API_BASE_URL", "http://localhost:8080")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "econsciente")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 25)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("DB_MAX_IDLE_TIME", 300)
	v.SetDefault("DB_LOG_QUERIES", false)
	v.SetDefault("DB_SLOW_QUERY_THRESHOLD", "200ms")
	v.SetDefault("DB_CONNECT_RETRIES", 5)

	v.SetDefault("JWT_ACCESS_EXPIRY", "24h")
	v.SetDefault("JWT_ISSUER", "econsciente-api")
	v.SetDefault("SESSION_TTL", "720h")

	v.SetDefault("POINTS_POST", 10)
	v.SetDefault("POINTS_PROFILE_PIC", 20)
	v.SetDefault("POINTS_FIRST_BIO", 10)
	v.SetDefault("ONBOARDING_POINTS_PROFILE_PIC", 100)
	v.SetDefault("ONBOARDING_POINTS_BIO", 50)
	v.SetDefault("ONBOARDING_POINTS_FIRST_CHALLENGE", 200)
	v.SetDefault("ONBOARDING_BONUS", 50)
	v.SetDefault("CATALOG_CACHE_SIZE", 256)
	v.SetDefault("CATALOG_CACHE_TTL", "5m")

	v.SetDefault("TASK_WORKERS", 4)
	v.SetDefault("TASK_QUEUE_SIZE", 1024)
	v.SetDefault("TASK_MAX_ATTEMPTS", 3)
	v.SetDefault("TASK_BACKOFF", "200ms")

	v.SetDefault("CLEANUP_NOTIFICATIONS_CRON", "0 3 * * *")
	v.SetDefault("CLEANUP_SESSIONS_CRON", "0 * * * *")
	v.SetDefault("RECONCILE_FOLLOWS_CRON", "30 4 * * *")
	v.SetDefault("NOTIFICATION_MAX_AGE", "720h")

	v.SetDefault("RATE_LIMIT_RPS", 5)
	v.SetDefault("RATE_LIMIT_BURST", 10)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("I18N_DEFAULT_LANGUAGE", "pt-BR")
}

// Load carrega as configurações do ambiente, com .env opcional
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	config := &Config{
		Env: v.GetString("ENV"),
		Server: ServerConfig{
			Port:            v.GetString("PORT"),
			Host:            v.GetString("HOST"),
			BaseURL:         v.GetString("API_BASE_URL"),
			ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
		},
		Database: DatabaseConfig{
			Host:        v.GetString("DB_HOST"),
			Port:        v.GetInt("DB_PORT"),
			User:        v.GetString("DB_USER"),
			Password:    v.GetString("DB_PASS"),
			DBName:      v.GetString("DB_NAME"),
			SSLMode:     v.GetString("DB_SSL_MODE"),
			MaxConns:    v.GetInt("DB_MAX_CONNS"),
			MinConns:    v.GetInt("DB_MIN_CONNS"),
			MaxIdleTime: v.GetInt("DB_MAX_IDLE_TIME"),
			LogQueries:  v.GetBool("DB_LOG_QUERIES"),

			SlowQueryThreshold: v.GetDuration("DB_SLOW_QUERY_THRESHOLD"),
			ConnectRetries:     v.GetInt("DB_CONNECT_RETRIES"),
		},
		JWT: JWTConfig{
			Secret:       v.GetString("JWT_SECRET"),
			AccessExpiry: v.GetDuration("JWT_ACCESS_EXPIRY"),
			Issuer:       v.GetString("JWT_ISSUER"),
		},
		Session: SessionConfig{
			TTL: v.GetDuration("SESSION_TTL"),
		},
		Gamification: GamificationConfig{
			PointsPost:           v.GetInt("POINTS_POST"),
			PointsProfilePic:     v.GetInt("POINTS_PROFILE_PIC"),
			PointsFirstBio:       v.GetInt("POINTS_FIRST_BIO"),
			OnboardingProfilePic: v.GetInt("ONBOARDING_POINTS_PROFILE_PIC"),
			OnboardingBio:        v.GetInt("ONBOARDING_POINTS_BIO"),
			OnboardingChallenge:  v.GetInt("ONBOARDING_POINTS_FIRST_CHALLENGE"),
			OnboardingBonus:      v.GetInt("ONBOARDING_BONUS"),
			CatalogCacheSize:     v.GetInt("CATALOG_CACHE_SIZE"),
			CatalogCacheTTL:      v.GetDuration("CATALOG_CACHE_TTL"),
		},
		Tasks: TasksConfig{
			Workers:     v.GetInt("TASK_WORKERS"),
			QueueSize:   v.GetInt("TASK_QUEUE_SIZE"),
			MaxAttempts: v.GetInt("TASK_MAX_ATTEMPTS"),
			Backoff:     v.GetDuration("TASK_BACKOFF"),
		},
		Cleanup: CleanupConfig{
			NotificationsSpec:  v.GetString("CLEANUP_NOTIFICATIONS_CRON"),
			SessionsSpec:       v.GetString("CLEANUP_SESSIONS_CRON"),
			ReconcileSpec:      v.GetString("RECONCILE_FOLLOWS_CRON"),
			NotificationMaxAge: v.GetDuration("NOTIFICATION_MAX_AGE"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:             v.GetInt("RATE_LIMIT_BURST"),
		},
		Logging: LoggingConfig{
			Level:  strings.ToLower(v.GetString("LOG_LEVEL")),
			Format: strings.ToLower(v.GetString("LOG_FORMAT")),
		},
		CORS: CORSConfig{
			AllowedOrigins: v.GetString("CORS_ALLOWED_ORIGINS"),
		},
		I18n: I18nConfig{
			LocalesDir:      v.GetString("I18N_LOCALES_DIR"),
			DefaultLanguage: v.GetString("I18N_DEFAULT_LANGUAGE"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate verifica configurações obrigatórias
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.Env == "production" && len(c.JWT.Secret) < 32 {
		return errors.New("JWT_SECRET must have at least 32 characters in production")
	}
	if c.Tasks.Workers < 1 || c.Tasks.QueueSize < 1 || c.Tasks.MaxAttempts < 1 {
		return errors.New("task pool settings must be positive")
	}
	return nil
}

// Origins retorna a lista de origens CORS
func (c CORSConfig) Origins() []string {
	parts := strings.Split(c.AllowedOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}

// DSN retorna a connection string do PostgreSQL
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}
