package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	reportadapter "github.com/bnema/xpertdoc-portal-cli/internal/adapters/render/report"
	"github.com/bnema/xpertdoc-portal-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newTemplateCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Work with portal templates",
	}

	cmd.AddCommand(newTemplateExecuteCmd(app))

	return cmd
}

func newTemplateExecuteCmd(app *app) *cobra.Command {
	var payloadFile string
	var out string

	cmd := &cobra.Command{
		Use:   "execute",
		Short: "Execute a template and fetch the rendered document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := app.session(cmd.Context())
			if err != nil {
				return err
			}

			ref := domain.TemplateRef{
				Library: flagOrConfig(cmd, app, "library", keyTemplateLibrary),
				Group:   flagOrConfig(cmd, app, "group", keyTemplateGroup),
				Name:    flagOrConfig(cmd, app, "name", keyTemplateName),
			}

			payload := flagOrConfig(cmd, app, "payload", keyPayload)
			if payloadFile != "" {
				if cmd.Flags().Changed("payload") {
					return errors.New("--payload and --payload-file are mutually exclusive")
				}
				data, err := os.ReadFile(payloadFile)
				if err != nil {
					return fmt.Errorf("read payload file: %w", err)
				}
				payload = string(data)
			}

			workflow, err := app.workflow()
			if err != nil {
				return err
			}

			var result domain.TemplateExecutionResult
			execErr := app.withProgress(cmd, "Executing template "+ref.String()+"...", func(ctx context.Context) error {
				var err error
				result, err = workflow.ExecuteTemplate(ctx, session, ref, payload)
				return err
			})

			var remoteErr *domain.RemoteExecutionError
			if execErr != nil && !errors.As(execErr, &remoteErr) {
				return execErr
			}
			if execErr == nil {
				if err := writeDocument(out, result.Content); err != nil {
					return err
				}
			}

			rendered, err := reportadapter.RenderExecution(result)
			if err != nil {
				return fmt.Errorf("render execution: %w", err)
			}
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), rendered); err != nil {
				return err
			}

			return execErr
		},
	}

	cmd.Flags().String("library", "", "Template library name (default from workflow.template.library)")
	cmd.Flags().String("group", "", "Template group name (default from workflow.template.group)")
	cmd.Flags().String("name", "", "Template name (default from workflow.template.name)")
	cmd.Flags().String("payload", "", "Execution data sent to the template (default from workflow.payload)")
	cmd.Flags().StringVar(&payloadFile, "payload-file", "", "Read the execution data from a file")
	cmd.Flags().StringVar(&out, "out", "", "Write the rendered document to this file")

	return cmd
}

func flagOrConfig(cmd *cobra.Command, app *app, flag string, key string) string {
	if cmd.Flags().Changed(flag) {
		value, _ := cmd.Flags().GetString(flag)
		return value
	}
	return app.cfg.GetString(key)
}
