// Package commands defines the scenesync CLI.
//
// Commands
//
//   - convert   Convert a document snapshot to a scene file once
//   - figma     Print the figma-ready form of a scene file
//   - serve     Convert, watch the snapshot, reconvert on change, serve HTTP
//
// The root command installs the slog handler and loads the run
// configuration before any subcommand runs.
package commands
