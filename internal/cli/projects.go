package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"schema-designer-backend/internal/models"
)

func newShowCommand(opts *options) *cobra.Command {
	var schemaOnly bool

	cmd := &cobra.Command{
		Use:   "show <project-id>",
		Short: "Print a saved project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api := opts.client()
			out := cmd.OutOrStdout()

			if schemaOnly {
				body, err := api.DownloadSchema(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				_, err = out.Write(body)
				return err
			}

			p, err := api.GetProject(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(p)
		},
	}

	cmd.Flags().BoolVar(&schemaOnly, "schema", false, "print only the schema document")
	return cmd
}

func newUpdateCommand(opts *options) *cobra.Command {
	var (
		name       string
		schemaFile string
	)

	cmd := &cobra.Command{
		Use:   "update <project-id>",
		Short: "Rename a project or replace its schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch models.ProjectPatch
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if schemaFile != "" {
				data, err := os.ReadFile(schemaFile)
				if err != nil {
					return fmt.Errorf("failed to read schema file: %w", err)
				}
				schema := string(data)
				patch.Schema = &schema
			}
			if patch.Empty() {
				return errors.New("nothing to update: pass --name or --schema-file")
			}

			if err := opts.client().UpdateProject(cmd.Context(), args[0], patch); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated project %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new project name")
	cmd.Flags().StringVar(&schemaFile, "schema-file", "", "file holding the replacement schema")
	return cmd
}

func newStatusCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the server's provider and storage status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := opts.client().Status(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "status:   %s\n", st.Status)
			fmt.Fprintf(out, "provider: %s (configured: %t)\n", st.Provider, st.OpenAI)
			fmt.Fprintf(out, "backend:  %s (reachable: %t)\n", st.Backend, st.Database)
			return nil
		},
	}
}
