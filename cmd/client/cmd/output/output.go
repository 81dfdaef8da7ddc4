package output

import (
	"encoding/json"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Print выводит v как JSON: с отступами в терминал, одной строкой в пайп или с --compact
func Print(cmd *cobra.Command, v any) error {
	out := cmd.OutOrStdout()
	compact, _ := cmd.Flags().GetBool("compact")

	enc := json.NewEncoder(out)
	if !compact && IsTerminal(out) {
		enc.SetIndent("", "  ")
	}

	return enc.Encode(v)
}

// IsTerminal проверяет, что w - терминал
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
