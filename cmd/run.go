package cmd

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"

	reportadapter "github.com/bnema/xpertdoc-portal-cli/internal/adapters/render/report"
	"github.com/bnema/xpertdoc-portal-cli/internal/application"
	"github.com/bnema/xpertdoc-portal-cli/internal/domain"
	"github.com/spf13/cobra"
)

const documentFileMode = 0o644

func newRunCmd(app *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the sample workflow (the default when no command is given)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWorkflow(cmd, app, out)
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Write the rendered document to this file")

	return cmd
}

func runWorkflow(cmd *cobra.Command, app *app, out string) error {
	session, err := app.session(cmd.Context())
	if err != nil {
		return err
	}

	checkIn, err := base64.StdEncoding.DecodeString(app.cfg.GetString(keyCheckInContent))
	if err != nil {
		return fmt.Errorf("decode %s: %w", keyCheckInContent, err)
	}

	workflow, err := app.workflow()
	if err != nil {
		return err
	}

	runCmd := application.RunCommand{
		Template: domain.TemplateRef{
			Library: app.cfg.GetString(keyTemplateLibrary),
			Group:   app.cfg.GetString(keyTemplateGroup),
			Name:    app.cfg.GetString(keyTemplateName),
		},
		Payload: app.cfg.GetString(keyPayload),
		File: domain.ContentFileRef{
			Library: app.cfg.GetString(keyContentLibrary),
			Folder:  app.cfg.GetString(keyContentFolder),
			Name:    app.cfg.GetString(keyContentFile),
		},
		CheckInContent: checkIn,
	}

	var report application.RunReport
	err = app.withProgress(cmd, "Running portal workflow...", func(ctx context.Context) error {
		var runErr error
		report, runErr = workflow.Run(ctx, session, runCmd)
		return runErr
	})
	if err != nil {
		return err
	}

	if err := writeDocument(out, report.Execution.Content); err != nil {
		return err
	}

	rendered, err := reportadapter.RenderRun(report)
	if err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}

func writeDocument(path string, content []byte) error {
	if path == "" {
		return nil
	}
	if err := os.WriteFile(path, content, documentFileMode); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	return nil
}
