package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultEnv           = "local"
	defaultConfigDir     = ".retailsync"
	defaultRemoteTimeout = 10
	defaultSyncRetries   = 3
	defaultSyncDelayMS   = 200
	defaultStorageLimit  = 100 * 1024
)

type Config struct {
	Env      string
	Username string
	// DataPath - каталог локального зеркала
	DataPath     string
	Remote       Remote
	Sync         Sync
	StorageLimit int
}

type Remote struct {
	URL        string
	DocumentID string
	APIKey     string
	Timeout    time.Duration
}

type Sync struct {
	MaxRetries uint64
	RetryDelay time.Duration
}

// MustLoad загружает конфигурацию клиента из .env, переменных окружения
// и файла, заранее подключенного к viper
func MustLoad() *Config {
	config, err := Load()
	if err != nil {
		panic(fmt.Sprintf("Ошибка конфигурации: %v", err))
	}
	return config
}

func Load() (*Config, error) {
	// Загружаем .env файл если существует
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Printf("Ошибка загрузки .env файла: %v\n", err)
		}
	}

	viper.AutomaticEnv()

	viper.SetDefault("APP_ENV", defaultEnv)
	viper.SetDefault("REMOTE_TIMEOUT_SECONDS", defaultRemoteTimeout)
	viper.SetDefault("SYNC_MAX_RETRIES", defaultSyncRetries)
	viper.SetDefault("SYNC_RETRY_DELAY_MS", defaultSyncDelayMS)
	viper.SetDefault("STORAGE_LIMIT_BYTES", defaultStorageLimit)

	dataPath := viper.GetString("DATA_PATH")
	if dataPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			homeDir = "."
		}
		dataPath = filepath.Join(homeDir, defaultConfigDir)
	}

	config := &Config{
		Env:      viper.GetString("APP_ENV"),
		Username: viper.GetString("RETAILSYNC_USER"),
		DataPath: dataPath,
		Remote: Remote{
			URL:        viper.GetString("REMOTE_URL"),
			DocumentID: viper.GetString("REMOTE_DOCUMENT_ID"),
			APIKey:     viper.GetString("REMOTE_API_KEY"),
			Timeout:    time.Duration(viper.GetInt("REMOTE_TIMEOUT_SECONDS")) * time.Second,
		},
		Sync: Sync{
			MaxRetries: viper.GetUint64("SYNC_MAX_RETRIES"),
			RetryDelay: time.Duration(viper.GetInt("SYNC_RETRY_DELAY_MS")) * time.Millisecond,
		},
		StorageLimit: viper.GetInt("STORAGE_LIMIT_BYTES"),
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.DataPath == "" {
		return fmt.Errorf("data_path не может быть пустым")
	}
	if c.StorageLimit < 0 {
		return fmt.Errorf("storage_limit_bytes не может быть отрицательным")
	}
	return nil
}

// RemoteConfigured проверяет, заданы ли параметры удаленного документа
func (c *Config) RemoteConfigured() bool {
	return c.Remote.URL != "" && c.Remote.DocumentID != "" && c.Remote.APIKey != ""
}
