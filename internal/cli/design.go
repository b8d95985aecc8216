package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"schema-designer-backend/internal/designer"
	"schema-designer-backend/internal/models"
)

func newDesignCommand(opts *options) *cobra.Command {
	var (
		name       string
		schemaType string
	)

	cmd := &cobra.Command{
		Use:   "design",
		Short: "Start an interactive design conversation",
		Long: `Start a design conversation. Each line you type is sent to the assistant.
Once it produces a schema the project is saved; later schema changes update it.
Type 'exit' or send EOF to finish.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := models.ParseSchemaType(schemaType)
			if err != nil {
				return err
			}

			api := opts.client()
			session := designer.NewSession(api, api, st, name)
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "assistant> %s\n", designer.WelcomeMessage(st))

			scanner := bufio.NewScanner(cmd.InOrStdin())
			scanner.Buffer(make([]byte, 64*1024), 1024*1024)
			for {
				fmt.Fprint(out, "you> ")
				if !scanner.Scan() {
					break
				}
				text := strings.TrimSpace(scanner.Text())
				if text == "" {
					continue
				}
				if text == "exit" || text == "quit" {
					break
				}

				turn, err := session.Send(cmd.Context(), text)
				if turn == nil {
					fmt.Fprintf(out, "error> %v\n", err)
					continue
				}

				fmt.Fprintf(out, "assistant> %s\n", turn.Reply)
				switch {
				case err != nil:
					fmt.Fprintf(out, "error> %v\n", err)
				case turn.Created:
					fmt.Fprintf(out, "saved project %s\n", turn.ProjectID)
				case turn.Updated:
					fmt.Fprintf(out, "updated project %s\n", turn.ProjectID)
				case turn.EmptySchema:
					fmt.Fprintln(out, "the schema block was empty, nothing was saved")
				}
			}
			fmt.Fprintln(out)

			if err := scanner.Err(); err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}
			if id := session.ProjectID(); id != "" {
				fmt.Fprintf(out, "project: %s\n", id)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", models.DefaultProjectName, "project name used when the schema is saved")
	cmd.Flags().StringVar(&schemaType, "schema-type", string(models.SchemaTypeNoSQL), "schema flavour: SQL or NoSQL")
	return cmd
}
