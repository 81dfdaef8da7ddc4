// cmd/client/cmd/partition/load.go
package partition

import (
	"fmt"

	"github.com/spf13/cobra"

	"retailsync/cmd/client/cmd/output"
	"retailsync/internal/app/client"
)

var LoadCmd = &cobra.Command{
	Use:   "load",
	Short: "Загрузить раздел пользователя",
	Long: `Загружает раздел пользователя из общего документа.

Если документ недоступен, раздел берется из локального зеркала;
поле source показывает, откуда пришли данные: remote, local или empty.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := client.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		user, _ := cmd.Flags().GetString("user")
		username, err := app.Username(user)
		if err != nil {
			return err
		}

		result, err := app.Load(cmd.Context(), username)
		if err != nil {
			return fmt.Errorf("ошибка загрузки: %w", err)
		}

		return output.Print(cmd, result)
	},
}
