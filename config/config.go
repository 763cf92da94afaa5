package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type (
	APP struct {
		Name              string
		Host              string
		Port              string
		Env               string
		JWTSecret         string
		AdminUser         string
		AdminPasswordHash string
	}
	DB struct {
		User     string
		Password string
		Name     string
		Host     string
		Port     string
	}
	MQ struct {
		User         string
		Password     string
		Vhost        string
		Host         string
		AmqpPort     string
		Exchange     string
		ExchangeType string
		QueueName    string
		RequestQueue string
	}
	Storage struct {
		Root           string
		RetentionHours int
		SweepInterval  time.Duration
		MaxFileSizeMB  int64
		DailyLimit     int
		RequestTimeout time.Duration
	}
	Engine struct {
		BinPath       string
		CookiesFile   string
		SocketTimeout time.Duration
		Retries       int
	}

	Config struct {
		App     APP
		DB      DB
		MQ      MQ
		Storage Storage
		Engine  Engine
	}
)

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func Load() Config {
	app := APP{
		Name:              getEnv("SERVICE_NAME", "mediafetchapi"),
		Host:              getEnv("SERVICE_HOST", ""),
		Port:              getEnv("SERVICE_PORT", "8080"),
		Env:               getEnv("SERVICE_ENV", ""),
		JWTSecret:         getEnv("SERVICE_JWT_SECRET", ""),
		AdminUser:         getEnv("ADMIN_USER", ""),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
	}
	db := DB{
		User:     getEnv("POSTGRES_USER", ""),
		Password: getEnv("POSTGRES_PASSWORD", ""),
		Name:     getEnv("POSTGRES_DB", ""),
		Host:     getEnv("POSTGRES_HOST", ""),
		Port:     getEnv("POSTGRES_PORT", ""),
	}
	mq := MQ{
		User:         getEnv("RABBITMQ_USER", ""),
		Password:     getEnv("RABBITMQ_PASSWORD", ""),
		Vhost:        getEnv("RABBITMQ_VHOST", ""),
		Host:         getEnv("RABBITMQ_HOST", ""),
		AmqpPort:     getEnv("RABBITMQ_AMQP_PORT", ""),
		Exchange:     getEnv("RABBITMQ_EXCHANGE", "downloads"),
		ExchangeType: getEnv("RABBITMQ_EXCHANGE_TYPE", "direct"),
		QueueName:    getEnv("RABBITMQ_QUEUE_NAME", "download-events"),
		RequestQueue: getEnv("RABBITMQ_REQUEST_QUEUE", "download-requests"),
	}
	storage := Storage{
		Root:           getEnv("STORAGE_ROOT", "."),
		RetentionHours: getEnvInt("RETENTION_HOURS", 1),
		SweepInterval:  time.Duration(getEnvInt("SWEEP_INTERVAL_MINUTES", 30)) * time.Minute,
		MaxFileSizeMB:  int64(getEnvInt("MAX_FILE_SIZE_MB", 25)),
		DailyLimit:     getEnvInt("MAX_DOWNLOADS_PER_DAY", 50),
		RequestTimeout: time.Duration(getEnvInt("REQUEST_TIMEOUT_MINUTES", 5)) * time.Minute,
	}
	engine := Engine{
		BinPath:       getEnv("YTDLP_PATH", "yt-dlp"),
		CookiesFile:   getEnv("COOKIES_FILE", ""),
		SocketTimeout: time.Duration(getEnvInt("YTDLP_SOCKET_TIMEOUT_SECONDS", 30)) * time.Second,
		Retries:       getEnvInt("YTDLP_RETRIES", 10),
	}

	return Config{
		App:     app,
		DB:      db,
		MQ:      mq,
		Storage: storage,
		Engine:  engine,
	}
}

// DownloadDir is where the engine writes files before delivery.
func (c Config) DownloadDir() string { return filepath.Join(c.Storage.Root, "downloads") }

// OutboxDir is the shared handoff directory used by the MQ request path.
func (c Config) OutboxDir() string { return filepath.Join(c.Storage.Root, "outbox") }

func (c Config) MaxFileSizeBytes() int64 { return c.Storage.MaxFileSizeMB * 1024 * 1024 }

func (c Config) RetentionWindow() time.Duration {
	return time.Duration(c.Storage.RetentionHours) * time.Hour
}

func (c Config) DBDSN() (string, error) {
	if c.DB.User == "" || c.DB.Name == "" || c.DB.Host == "" || c.DB.Port == "" {
		return "", fmt.Errorf("incomplete DB config")
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s",
		c.DB.User,
		c.DB.Password,
		c.DB.Host,
		c.DB.Port,
		c.DB.Name,
	), nil
}

func (c Config) AMQPDSN() (string, error) {
	if c.MQ.User == "" || c.MQ.Host == "" || c.MQ.AmqpPort == "" {
		return "", fmt.Errorf("invalid MQ config: user, host and amqp port are required")
	}

	return fmt.Sprintf(
		"%s://%s@%s:%s/%s",
		"amqp",
		url.UserPassword(c.MQ.User, c.MQ.Password).String(),
		c.MQ.Host,
		c.MQ.AmqpPort,
		url.PathEscape(c.MQ.Vhost),
	), nil
}
