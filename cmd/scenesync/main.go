// Command scenesync converts CAD drawing snapshots into JSON scenes and
// serves them to the Figma plugin.
package main

import (
	"os"

	"github.com/gogpu/scenesync/cmd/scenesync/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
