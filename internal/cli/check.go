package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"navedit/internal/format"
	"navedit/internal/outline"
)

func newCheckCmd() *cobra.Command {
	var inFormat string
	cmd := &cobra.Command{
		Use:   "check <outline-file>",
		Short: "Validate an outline file without touching any document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := readOutlineFile(cmd, args[0], inFormat)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d entries, depth %d\n", args[0], o.Count(), maxDepth(o))
			return err
		},
	}
	cmd.Flags().StringVar(&inFormat, "input-format", format.Bookmarks, "Format of outline-file (bookmarks|json)")
	return cmd
}

// readOutlineFile parses an outline from path, or from stdin when path is "-".
func readOutlineFile(cmd *cobra.Command, path, inFormat string) (*outline.Outline, error) {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	o, err := format.Read(r, inFormat)
	if err != nil {
		return nil, errOutline(path, err)
	}
	return o, nil
}

// maxDepth is the number of levels in o; 0 for an empty outline.
func maxDepth(o *outline.Outline) int {
	depth := 0
	o.Walk(func(p outline.Path, _ *outline.Entry) bool {
		if d := p.Depth() + 1; d > depth {
			depth = d
		}
		return true
	})
	return depth
}
