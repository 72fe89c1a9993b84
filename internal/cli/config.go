package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"navedit/internal/config"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the config file",
	}
	cmd.AddCommand(newConfigPathCmd(app))
	cmd.AddCommand(newConfigInitCmd(app))
	return cmd
}

func (app *App) configPath() (string, error) {
	if app.ConfigPath != "" {
		return app.ConfigPath, nil
	}
	if p := config.Path(); p != "" {
		return p, nil
	}
	return "", errors.New("no config directory; set NAVEDIT_CONFIG_DIR or pass --config")
}

func newConfigPathCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where the config file is read from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.configPath()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), p)
			return err
		},
	}
}

func newConfigInitCmd(app *App) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective settings (defaults plus flags) to the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.configPath()
			if err != nil {
				return err
			}
			if _, err := os.Stat(p); err == nil && !force {
				return errConfigExists(p)
			}
			if err := config.SaveTo(app.cfg, p); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", p)
			return err
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}
