package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPath  = ".env"
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	defaultRunAddress    = ":8080"
	defaultMigrations    = "migrations"
	defaultStorageLimit  = 100 * 1024
	defaultSyncRetries   = 3
	defaultSyncDelayMS   = 200
	defaultRemoteTimeout = 10
)

type Config struct {
	Env     string
	DB      db
	Server  server
	Logger  logger
	Local   local
	Remote  remote
	Sync    syncConfig
	Admin   admin
	Storage storage
}

type db struct {
	DatabaseURI string `env:"DATABASE_URI"`
	Migrations  string `env:"MIGRATIONS_PATH"`
}

type server struct {
	RunAddress string `env:"RUN_ADDRESS"`
	// DocumentAPIKey - ключ, которым защищен размещенный на сервере документ
	DocumentAPIKey string `env:"DOCUMENT_API_KEY"`
}

type logger struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

type local struct {
	// DataPath - каталог локального зеркала; пустой - зеркало в памяти
	DataPath string `env:"DATA_PATH"`
}

type remote struct {
	URL        string        `env:"REMOTE_URL"`
	DocumentID string        `env:"REMOTE_DOCUMENT_ID"`
	APIKey     string        `env:"REMOTE_API_KEY"`
	Timeout    time.Duration `env:"REMOTE_TIMEOUT_SECONDS"`
}

type syncConfig struct {
	MaxRetries uint64        `env:"SYNC_MAX_RETRIES"`
	RetryDelay time.Duration `env:"SYNC_RETRY_DELAY_MS"`
}

type admin struct {
	PasswordHash string `env:"ADMIN_PASSWORD_HASH"`
}

type storage struct {
	LimitBytes int `env:"STORAGE_LIMIT_BYTES"`
}

func MustLoad() *Config {
	if err := godotenv.Load(envPath); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	viper.AutomaticEnv()
	viper.SetDefault("app_env", EnvLocal)
	viper.SetDefault("run_address", defaultRunAddress)
	viper.SetDefault("migrations_path", defaultMigrations)
	viper.SetDefault("log_level", "info")
	viper.SetDefault("remote_timeout_seconds", defaultRemoteTimeout)
	viper.SetDefault("sync_max_retries", defaultSyncRetries)
	viper.SetDefault("sync_retry_delay_ms", defaultSyncDelayMS)
	viper.SetDefault("storage_limit_bytes", defaultStorageLimit)

	config := Config{
		Env: viper.GetString("app_env"),
		DB: db{
			DatabaseURI: viper.GetString("database_uri"),
			Migrations:  viper.GetString("migrations_path"),
		},
		Server: server{
			RunAddress:     viper.GetString("run_address"),
			DocumentAPIKey: viper.GetString("document_api_key"),
		},
		Logger: logger{LogLevel: viper.GetString("log_level")},
		Local:  local{DataPath: viper.GetString("data_path")},
		Remote: remote{
			URL:        viper.GetString("remote_url"),
			DocumentID: viper.GetString("remote_document_id"),
			APIKey:     viper.GetString("remote_api_key"),
			Timeout:    time.Duration(viper.GetInt("remote_timeout_seconds")) * time.Second,
		},
		Sync: syncConfig{
			MaxRetries: viper.GetUint64("sync_max_retries"),
			RetryDelay: time.Duration(viper.GetInt("sync_retry_delay_ms")) * time.Millisecond,
		},
		Admin:   admin{PasswordHash: viper.GetString("admin_password_hash")},
		Storage: storage{LimitBytes: viper.GetInt("storage_limit_bytes")},
	}

	return &config
}
