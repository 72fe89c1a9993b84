package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"navedit/internal/format"
)

func newSetCmd(app *App) *cobra.Command {
	var inFormat string
	cmd := &cobra.Command{
		Use:   "set <file.djvu> <outline-file>",
		Short: "Replace a document's outline with the one in outline-file",
		Long: `Replace a document's outline with the one in outline-file.

Use "-" as outline-file to read from stdin. The outline is validated before
djvused is run, so a malformed file leaves the document untouched.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, src := args[0], args[1]
			o, err := readOutlineFile(cmd, src, inFormat)
			if err != nil {
				return err
			}
			if err := app.tool().Write(cmd.Context(), file, o); err != nil {
				return err
			}
			app.log.Info("outline replaced", zap.String("file", file), zap.Int("entries", o.Count()))
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d entries to %s\n", o.Count(), file)
			return err
		},
	}
	cmd.Flags().StringVar(&inFormat, "input-format", format.Bookmarks, "Format of outline-file (bookmarks|json)")
	return cmd
}
