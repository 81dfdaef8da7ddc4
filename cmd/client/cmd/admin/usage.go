// cmd/client/cmd/admin/usage.go
package admin

import (
	"fmt"

	"github.com/spf13/cobra"

	"retailsync/cmd/client/cmd/output"
	"retailsync/internal/app/client"
	"retailsync/internal/domain/usage"
)

var UsageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Заполнение общего документа",
	Long: `Показывает размер общего документа относительно лимита хостинга
и размеры разделов пользователей, начиная с недавно обновленных.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := client.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		report, err := app.Usage(cmd.Context())
		if err != nil {
			return fmt.Errorf("ошибка получения статистики: %w", err)
		}

		if output.IsTerminal(cmd.ErrOrStderr()) {
			fmt.Fprintln(cmd.ErrOrStderr(), summary(report))
		}

		return output.Print(cmd, report)
	},
}

func summary(r *usage.Report) string {
	if !r.RemoteAvailable {
		return "Общий документ недоступен"
	}

	s := fmt.Sprintf("Использовано %d из %d байт (%.2f%%), пользователей: %d",
		r.TotalUsage.Size, r.TotalUsage.Limit, r.TotalUsage.Percentage, r.TotalUsage.Users)
	if r.TotalUsage.NearLimit {
		s += " - документ почти заполнен"
	}
	return s
}
