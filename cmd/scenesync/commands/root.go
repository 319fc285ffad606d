package commands

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gogpu/scenesync"
	"github.com/gogpu/scenesync/convert"
	"github.com/gogpu/scenesync/fonts"
)

// app is the state shared by subcommands.
type app struct {
	configPath string
	logLevel   string
	logFormat  string

	cfg    convert.Config
	logger *slog.Logger
}

// Execute runs the CLI with os.Args.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "scenesync",
		Short:        "Convert CAD drawings into frame-scoped JSON scenes",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML run configuration")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "text", "log format: text or json")

	root.AddCommand(convertCmd(a), figmaCmd(a), serveCmd(a))
	return root
}

// setup installs the logger and loads the configuration.
func (a *app) setup(stderr io.Writer) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(a.logLevel)); err != nil {
		return fmt.Errorf("invalid --log-level %q", a.logLevel)
	}
	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	switch strings.ToLower(a.logFormat) {
	case "text":
		h = slog.NewTextHandler(stderr, opts)
	case "json":
		h = slog.NewJSONHandler(stderr, opts)
	default:
		return fmt.Errorf("invalid --log-format %q", a.logFormat)
	}
	a.logger = slog.New(h)
	scenesync.SetLogger(a.logger)

	a.cfg = convert.DefaultConfig()
	if a.configPath != "" {
		cfg, err := convert.LoadConfig(a.configPath)
		if err != nil {
			return err
		}
		a.cfg = cfg
	}
	a.cfg.Fonts = fonts.NewRegistry()
	return nil
}
