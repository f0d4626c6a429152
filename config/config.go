package config

import (
	"errors"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig
	DB      DBConfig
	Redis   RedisConfig
	JWT     JWTConfig
	OTP     OTPConfig
	Mail    MailConfig
	Storage StorageConfig
	Metrics MetricsConfig
}

type AppConfig struct {
	Port          string
	Env           string
	AllowedOrigin string
}

type DBConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SSLMode      string
	TimeZone     string
	MaxIdleConns int
	MaxOpenConns int
	AutoMigrate  bool
}

type RedisConfig struct {
	Host        string
	Port        string
	Password    string
	DB          int
	PoolSize    int
	DialTimeout time.Duration
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// OTPConfig bounds the emailed verification and reset codes.
type OTPConfig struct {
	Expiry      time.Duration
	MaxAttempts int
}

type MailConfig struct {
	From string
}

type StorageConfig struct {
	Driver        string // local | s3
	LocalDir      string
	PublicBaseURL string
	MaxUploadSize int64

	S3Endpoint     string
	S3Region       string
	S3Bucket       string
	S3AccessKey    string
	S3SecretKey    string
	S3UsePathStyle bool
}

type MetricsConfig struct {
	Enabled bool
}

func (c AppConfig) IsProduction() bool {
	return c.Env == "production"
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("CORS_ALLOWED_ORIGIN", "*")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_TIMEZONE", "UTC")
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_MAX_OPEN_CONNS", 100)
	v.SetDefault("DB_AUTO_MIGRATE", true)
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_POOL_SIZE", 10)
	v.SetDefault("REDIS_DIAL_TIMEOUT", "5s")
	v.SetDefault("OTP_MAX_ATTEMPTS", 5)
	v.SetDefault("MAIL_FROM", "no-reply@eventplanner.local")
	v.SetDefault("STORAGE_DRIVER", "local")
	v.SetDefault("STORAGE_LOCAL_DIR", "./uploads")
	v.SetDefault("STORAGE_PUBLIC_BASE_URL", "/uploads")
	v.SetDefault("STORAGE_MAX_UPLOAD_SIZE", 10<<20)
	v.SetDefault("S3_REGION", "us-east-1")
	v.SetDefault("METRICS_ENABLED", true)

	// Environment variables alone are enough in containers.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	accessExpiry, err := time.ParseDuration(v.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 15 * time.Minute
	}

	refreshExpiry, err := time.ParseDuration(v.GetString("JWT_REFRESH_EXPIRY"))
	if err != nil {
		refreshExpiry = 7 * 24 * time.Hour
	}

	otpExpiry, err := time.ParseDuration(v.GetString("OTP_EXPIRY"))
	if err != nil {
		otpExpiry = 10 * time.Minute
	}

	config := &Config{
		App: AppConfig{
			Port:          v.GetString("APP_PORT"),
			Env:           v.GetString("APP_ENV"),
			AllowedOrigin: v.GetString("CORS_ALLOWED_ORIGIN"),
		},
		DB: DBConfig{
			Host:         v.GetString("DB_HOST"),
			Port:         v.GetString("DB_PORT"),
			User:         v.GetString("DB_USER"),
			Password:     v.GetString("DB_PASSWORD"),
			Name:         v.GetString("DB_NAME"),
			SSLMode:      v.GetString("DB_SSLMODE"),
			TimeZone:     v.GetString("DB_TIMEZONE"),
			MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
			MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
			AutoMigrate:  v.GetBool("DB_AUTO_MIGRATE"),
		},
		Redis: RedisConfig{
			Host:        v.GetString("REDIS_HOST"),
			Port:        v.GetString("REDIS_PORT"),
			Password:    v.GetString("REDIS_PASSWORD"),
			DB:          v.GetInt("REDIS_DB"),
			PoolSize:    v.GetInt("REDIS_POOL_SIZE"),
			DialTimeout: v.GetDuration("REDIS_DIAL_TIMEOUT"),
		},
		JWT: JWTConfig{
			Secret:        v.GetString("JWT_SECRET"),
			AccessExpiry:  accessExpiry,
			RefreshExpiry: refreshExpiry,
		},
		OTP: OTPConfig{
			Expiry:      otpExpiry,
			MaxAttempts: v.GetInt("OTP_MAX_ATTEMPTS"),
		},
		Mail: MailConfig{
			From: v.GetString("MAIL_FROM"),
		},
		Storage: StorageConfig{
			Driver:         v.GetString("STORAGE_DRIVER"),
			LocalDir:       v.GetString("STORAGE_LOCAL_DIR"),
			PublicBaseURL:  v.GetString("STORAGE_PUBLIC_BASE_URL"),
			MaxUploadSize:  v.GetInt64("STORAGE_MAX_UPLOAD_SIZE"),
			S3Endpoint:     v.GetString("S3_ENDPOINT"),
			S3Region:       v.GetString("S3_REGION"),
			S3Bucket:       v.GetString("S3_BUCKET"),
			S3AccessKey:    v.GetString("S3_ACCESS_KEY"),
			S3SecretKey:    v.GetString("S3_SECRET_KEY"),
			S3UsePathStyle: v.GetBool("S3_USE_PATH_STYLE"),
		},
		Metrics: MetricsConfig{
			Enabled: v.GetBool("METRICS_ENABLED"),
		},
	}

	if config.JWT.Secret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	return config, nil
}
