package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/scenesync/convert"
	"github.com/gogpu/scenesync/scene"
)

// convert <snapshot>: run the pipeline once.
func convertCmd(a *app) *cobra.Command {
	var (
		output       string
		strokeWeight float64
	)
	cmd := &cobra.Command{
		Use:   "convert <snapshot>",
		Short: "Convert a document snapshot to a scene",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			if cmd.Flags().Changed("stroke-weight") {
				cfg = cfg.With(convert.WithStrokeWeight(strokeWeight))
			}

			s, report, err := convert.ConvertFile(args[0], cfg)
			if err != nil {
				return err
			}
			a.logger.Info("converted", "snapshot", args[0], "report", report)

			if output == "" {
				return scene.Encode(cmd.OutOrStdout(), s)
			}
			if err := scene.WriteFile(output, s); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "scene file to write (default stdout)")
	cmd.Flags().Float64Var(&strokeWeight, "stroke-weight", convert.DefaultStrokeWeight, "stroke weight of every curve")
	return cmd
}
