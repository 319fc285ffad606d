package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gogpu/scenesync/convert"
	"github.com/gogpu/scenesync/internal/watch"
	"github.com/gogpu/scenesync/scene"
	"github.com/gogpu/scenesync/server"
)

// serve <snapshot>: convert, then reconvert whenever the snapshot changes,
// while serving the scene over HTTP.
func serveCmd(a *app) *cobra.Command {
	var (
		output   string
		addr     string
		interval time.Duration
		debounce time.Duration
	)
	cmd := &cobra.Command{
		Use:   "serve <snapshot>",
		Short: "Watch a snapshot and serve the converted scene",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			snapshot := args[0]
			reconvert := func(context.Context) error {
				s, report, err := convert.ConvertFile(snapshot, a.cfg)
				if err != nil {
					return err
				}
				if err := scene.WriteFile(output, s); err != nil {
					return err
				}
				a.logger.Info("scene written", "path", output, "report", report)
				return nil
			}

			// A broken first snapshot is logged; the watcher retries once
			// the file changes.
			if err := reconvert(ctx); err != nil {
				a.logger.Error("initial conversion failed", "err", err)
			}

			w := watch.New(watch.FileVersion(snapshot), watch.Options{
				Interval: interval,
				Debounce: debounce,
				Logger:   a.logger,
			})
			go w.OnChange(ctx, reconvert)

			return server.New(output, server.WithLogger(a.logger)).ListenAndServe(ctx, addr)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "scene file to write and serve")
	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "HTTP listen address")
	cmd.Flags().DurationVar(&interval, "interval", 500*time.Millisecond, "snapshot polling interval")
	cmd.Flags().DurationVar(&debounce, "debounce", 300*time.Millisecond, "quiet period before reconverting")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}
