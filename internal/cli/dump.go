package cli

import (
	"github.com/spf13/cobra"

	"navedit/internal/format"
)

func newDumpCmd(app *App) *cobra.Command {
	var (
		outFormat string
		pretty    bool
	)
	cmd := &cobra.Command{
		Use:   "dump <file.djvu>",
		Short: "Print a document's outline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := app.readDocument(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeOut(cmd, o, outFormat, pretty)
		},
	}
	cmd.Flags().StringVar(&outFormat, "format", format.Bookmarks, "Output format (bookmarks|json|edn)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Indent json and edn output")
	return cmd
}
