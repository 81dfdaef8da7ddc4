// cmd/client/cmd/partition/save.go
package partition

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"retailsync/cmd/client/cmd/output"
	"retailsync/internal/app/client"
	"retailsync/internal/domain/partition"
)

var SaveCmd = &cobra.Command{
	Use:   "save [file]",
	Short: "Сохранить раздел пользователя",
	Long: `Сохраняет раздел пользователя целиком: сначала в локальное зеркало,
затем в общий документ. Раздел читается из файла или из stdin (без аргумента или "-").

Если общий документ недоступен, данные остаются в локальном зеркале
и команда завершается успешно с предупреждением.`,
	Args: cobra.MaximumNArgs(1),
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

		in := cmd.InOrStdin()
		if len(args) == 1 && args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("ошибка открытия файла: %w", err)
			}
			defer f.Close()
			in = f
		}

		data, err := readPartition(in)
		if err != nil {
			return err
		}

		result, err := app.Save(cmd.Context(), username, data)
		if err != nil {
			return fmt.Errorf("ошибка сохранения: %w", err)
		}

		if !result.Synced {
			fmt.Fprintf(cmd.ErrOrStderr(), "⚠️  %s\n", result.Warning)
		}

		return output.Print(cmd, result)
	},
}

func readPartition(r io.Reader) (partition.UserPartition, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return partition.UserPartition{}, fmt.Errorf("ошибка чтения данных: %w", err)
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return partition.UserPartition{}, fmt.Errorf("данные должны быть JSON-объектом")
	}

	data, err := partition.DecodePartition(raw)
	if err != nil {
		return partition.UserPartition{}, fmt.Errorf("некорректный раздел: %w", err)
	}

	return data, nil
}
