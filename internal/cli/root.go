package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"navedit/internal/config"
	"navedit/internal/djvu"
	"navedit/internal/editor"
	"navedit/internal/format"
	"navedit/internal/logging"
	"navedit/internal/outline"
	"navedit/internal/session"
	"navedit/internal/tui"
	"navedit/internal/viewport"
	"navedit/internal/watch"
)

type App struct {
	ConfigPath     string
	Djvused        string
	Editor         string
	ScratchDir     string
	Glyphs         string
	LogLevel       string
	AllowMalformed bool
	NoWatch        bool

	cfg      config.Config
	log      *zap.Logger
	closeLog func() error
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "navedit [file.djvu]",
		Short:        "Edit the outline (bookmarks) of a DjVu document",
		SilenceUsage: true,
		Args:         cobra.MaximumNArgs(1),
		Example: strings.TrimSpace(`
  # Edit the outline interactively
  navedit book.djvu

  # Print the outline as JSON
  navedit dump book.djvu --format json --pretty

  # Replace the outline from a file and validate one first
  navedit check toc.txt
  navedit set book.djvu toc.txt
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runTUI(cmd.Context(), app, args[0])
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.setup()
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		return app.teardown()
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", envOr("NAVEDIT_CONFIG", ""), "Path to config.yaml (default: XDG config dir)")
	cmd.PersistentFlags().StringVar(&app.Djvused, "djvused", envOr("NAVEDIT_DJVUSED", ""), "djvused executable")
	cmd.PersistentFlags().StringVar(&app.Editor, "editor", envOr("NAVEDIT_EDITOR", ""), "Editor command for entry edits (default: $VISUAL, $EDITOR, vi)")
	cmd.PersistentFlags().StringVar(&app.ScratchDir, "scratch-dir", envOr("NAVEDIT_SCRATCH_DIR", ""), "Directory for files handed to djvused and the editor")
	cmd.PersistentFlags().StringVar(&app.Glyphs, "glyphs", envOr("NAVEDIT_GLYPHS", ""), "Row markers (unicode|ascii)")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", envOr("NAVEDIT_LOG_LEVEL", ""), "File log level (none|normal|debug)")
	cmd.PersistentFlags().BoolVar(&app.AllowMalformed, "allow-malformed", false, "Start from an empty outline when the document's outline cannot be parsed")
	cmd.Flags().BoolVar(&app.NoWatch, "no-watch", false, "Do not watch the document for outside changes")

	cmd.AddCommand(newDumpCmd(app))
	cmd.AddCommand(newSetCmd(app))
	cmd.AddCommand(newCheckCmd())
	cmd.AddCommand(newConfigCmd(app))

	return cmd
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

// setup loads the config, lays the flags over it and opens the log.
func (app *App) setup() error {
	var (
		cfg config.Config
		err error
	)
	if app.ConfigPath != "" {
		cfg, err = config.LoadFrom(app.ConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	if app.Djvused != "" {
		cfg.Djvused = app.Djvused
	}
	if app.Editor != "" {
		cfg.Editor = app.Editor
	}
	if app.ScratchDir != "" {
		cfg.ScratchDir = app.ScratchDir
	}
	if app.Glyphs != "" {
		cfg.UI.Glyphs = app.Glyphs
	}
	if app.LogLevel != "" {
		cfg.Logging.Level = app.LogLevel
	}
	if app.NoWatch {
		cfg.Watch = false
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, closeLog, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	app.cfg, app.log, app.closeLog = cfg, log, closeLog
	return nil
}

func (app *App) teardown() error {
	if app.closeLog == nil {
		return nil
	}
	err := app.closeLog()
	app.closeLog = nil
	return err
}

func (app *App) tool() *djvu.Tool {
	return djvu.New(app.cfg.Djvused, app.cfg.ScratchDir, app.log)
}

// readDocument loads the outline of file. With --allow-malformed an outline
// that does not parse is replaced by an empty one.
func (app *App) readDocument(ctx context.Context, file string) (*outline.Outline, error) {
	o, err := app.tool().Read(ctx, file)
	if err == nil {
		return o, nil
	}
	if errors.Is(err, format.ErrMalformed) && app.AllowMalformed {
		app.log.Warn("ignoring malformed outline", zap.String("file", file), zap.Error(err))
		return outline.New(), nil
	}
	return nil, err
}

// ErrNoTerminal is returned when the editor is started without a terminal.
var ErrNoTerminal = errors.New("navedit needs a terminal; use dump or set for scripted access")

func runTUI(ctx context.Context, app *App, file string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return ErrNoTerminal
	}
	if _, err := os.Stat(file); err != nil {
		return err
	}
	o, err := app.readDocument(ctx, file)
	if err != nil {
		return err
	}

	var w *watch.Watcher
	if app.cfg.Watch {
		w, err = watch.New(file, watch.WithLogger(app.log.Named("watch")))
		if err != nil {
			app.log.Warn("watch disabled", zap.Error(err))
			w = nil
		} else {
			defer w.Close()
		}
	}

	return tui.Run(tui.Options{
		File:    file,
		Session: session.New(o),
		Store:   app.tool(),
		Editor:  editor.New(app.cfg.Editor, app.cfg.ScratchDir, app.log.Named("editor")),
		Watcher: w,
		Glyphs:  viewport.GlyphsByName(app.cfg.UI.Glyphs),
		Theme:   app.cfg.UI.Theme,
		Log:     app.log,
	})
}

func writeOut(cmd *cobra.Command, o *outline.Outline, outFormat string, pretty bool) error {
	if err := format.Write(cmd.OutOrStdout(), o, outFormat, pretty); err != nil {
		return fmt.Errorf("write %s: %w", outFormat, err)
	}
	return nil
}
