// Package cli contains the cobra commands for schemactl, a terminal client for the schema
// designer server.
package cli

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"schema-designer-backend/internal/client"
)

const defaultServer = "http://localhost:5000"

type options struct {
	server  string
	timeout time.Duration
}

func (o *options) client() *client.Client {
	return client.New(o.server, o.timeout)
}

// NewRootCommand builds the command tree. Output goes to the command's configured writers, so
// callers can redirect it with SetOut and SetIn.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	server := os.Getenv("SCHEMA_DESIGNER_URL")
	if server == "" {
		server = defaultServer
	}

	rootCmd := &cobra.Command{
		Use:   "schemactl",
		Short: "Design database schemas by talking to the schema designer",
		Long: `schemactl talks to a running schema designer server.

Start an interactive design conversation with 'schemactl design', then inspect
or edit the saved project with 'schemactl show' and 'schemactl update'.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.server, "server", server, "schema designer server URL (env SCHEMA_DESIGNER_URL)")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 5*time.Minute, "request timeout")

	rootCmd.AddCommand(
		newDesignCommand(opts),
		newShowCommand(opts),
		newUpdateCommand(opts),
		newStatusCommand(opts),
	)
	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}
