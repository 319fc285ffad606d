package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/gogpu/scenesync/figma"
	"github.com/gogpu/scenesync/scene"
)

// figma <scene.json>: print the figma-ready shapes of a scene.
func figmaCmd(_ *app) *cobra.Command {
	return &cobra.Command{
		Use:   "figma <scene.json>",
		Short: "Print the figma-ready form of a scene file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := scene.ReadFile(args[0])
			if err != nil {
				return err
			}
			return figma.Encode(cmd.OutOrStdout(), figma.Convert(s, time.Now()))
		},
	}
}
