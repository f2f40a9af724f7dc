package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the gestureslides application
var rootCmd = &cobra.Command{
	Use:   "gestureslides",
	Short: "Navigate Google Slides presentations with hand gestures",
	Long: `gestureslides is the backend of a gesture controlled presentation remote.

It loads a Google Slides presentation, keeps track of the current slide and
turns classified gestures (next, previous, jump, point) into navigation.
Gestures arrive over an HTTP API, a websocket stream or MCP tools.`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "gestureslides version %s\n" .Version}}`)

	// If no subcommand is provided, run the server by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newGenerateDocsCmd())
}
