// cmd/client/cmd/root.go
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"retailsync/cmd/client/cmd/admin"
	"retailsync/cmd/client/cmd/partition"
	"retailsync/internal/app/client"
	"retailsync/internal/app/client/config"
	"retailsync/internal/utils/logger"
)

var (
	cfgFile string
	app     *client.App
)

var rootCmd = &cobra.Command{
	Use:   "retailsync",
	Short: "retailsync - офлайн-клиент общего документа магазина",
	Long: `retailsync хранит данные пользователя в локальном зеркале и синхронизирует
их с общим документом, в котором у каждого пользователя свой раздел.

Без доступа к удаленному документу команды работают с локальным зеркалом.`,
	PersistentPreRunE:  setupApp,
	PersistentPostRunE: closeApp,
	SilenceUsage:       true,
	SilenceErrors:      true,
}

func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	// Логи идут в stderr, чтобы не смешиваться с выводом команд
	log := logger.NewTo(os.Stderr, cfg.Env)

	app, err = client.New(cfg, log)
	if err != nil {
		return fmt.Errorf("ошибка инициализации приложения: %w", err)
	}

	cmd.SetContext(client.WithApp(cmd.Context(), app))

	return nil
}

func closeApp(_ *cobra.Command, _ []string) error {
	if app == nil {
		return nil
	}
	return app.Close()
}

func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Ищем конфиг в стандартных местах
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}

		viper.AddConfigPath(filepath.Join(home, ".retailsync"))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// Конфиг не найден, используем значения по умолчанию
	}

	return config.Load()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "конфигурационный файл")
	rootCmd.PersistentFlags().StringP("user", "u", "", "пользователь (по умолчанию RETAILSYNC_USER)")
	rootCmd.PersistentFlags().Bool("compact", false, "вывод JSON в одну строку")

	rootCmd.AddCommand(partition.LoadCmd)
	rootCmd.AddCommand(partition.SaveCmd)
	rootCmd.AddCommand(admin.UsageCmd)
	rootCmd.AddCommand(admin.StatusCmd)
}
