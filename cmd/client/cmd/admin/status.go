// cmd/client/cmd/admin/status.go
package admin

import (
	"fmt"

	"github.com/spf13/cobra"

	"retailsync/cmd/client/cmd/output"
	"retailsync/internal/app/client"
)

var StatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Состояние локального зеркала и общего документа",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := client.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		status, err := app.Status(cmd.Context())
		if err != nil {
			return fmt.Errorf("ошибка получения статуса: %w", err)
		}

		return output.Print(cmd, status)
	},
}
