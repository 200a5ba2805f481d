package cmd

import (
	"encoding/base64"
	"fmt"
	"os"

	reportadapter "github.com/bnema/xpertdoc-portal-cli/internal/adapters/render/report"
	"github.com/bnema/xpertdoc-portal-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newContentCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "content",
		Short: "Work with content library files",
	}

	cmd.AddCommand(
		newContentGetCmd(app),
		newContentCheckOutCmd(app),
		newContentCheckInCmd(app),
	)

	return cmd
}

func newContentGetCmd(app *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Locate a file and download its current content",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := app.session(cmd.Context())
			if err != nil {
				return err
			}
			workflow, err := app.workflow()
			if err != nil {
				return err
			}

			file, content, err := workflow.FindFile(cmd.Context(), session, contentFileRef(cmd, app))
			if err != nil {
				return err
			}
			if err := writeDocument(out, content); err != nil {
				return err
			}

			rendered, err := reportadapter.RenderFile(file, content)
			if err != nil {
				return fmt.Errorf("render file: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	addContentFileFlags(cmd)
	cmd.Flags().StringVar(&out, "out", "", "Write the file content to this path")

	return cmd
}

func newContentCheckOutCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Check a file out for the current user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := app.session(cmd.Context())
			if err != nil {
				return err
			}
			workflow, err := app.workflow()
			if err != nil {
				return err
			}

			file, _, err := workflow.FindFile(cmd.Context(), session, contentFileRef(cmd, app))
			if err != nil {
				return err
			}
			if err := workflow.CheckOut(cmd.Context(), session, file); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "checked out %s\n", file.Name)
			return err
		},
	}

	addContentFileFlags(cmd)

	return cmd
}

func newContentCheckInCmd(app *app) *cobra.Command {
	var in string

	cmd := &cobra.Command{
		Use:   "checkin",
		Short: "Upload new content for a checked-out file and check it in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			content, err := checkInContent(app, in)
			if err != nil {
				return err
			}

			session, err := app.session(cmd.Context())
			if err != nil {
				return err
			}
			workflow, err := app.workflow()
			if err != nil {
				return err
			}

			file, _, err := workflow.FindFile(cmd.Context(), session, contentFileRef(cmd, app))
			if err != nil {
				return err
			}
			if err := workflow.CheckIn(cmd.Context(), session, file, content); err != nil {
				return err
			}

			rendered, err := reportadapter.RenderCheckIn(file, len(content))
			if err != nil {
				return fmt.Errorf("render check in: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	addContentFileFlags(cmd)
	cmd.Flags().StringVar(&in, "in", "", "File holding the new content (default from workflow.checkin_content)")

	return cmd
}

func addContentFileFlags(cmd *cobra.Command) {
	cmd.Flags().String("library", "", "Content library name (default from workflow.content.library)")
	cmd.Flags().String("folder", "", "Folder name (default from workflow.content.folder)")
	cmd.Flags().String("name", "", "File name (default from workflow.content.file)")
}

func contentFileRef(cmd *cobra.Command, app *app) domain.ContentFileRef {
	return domain.ContentFileRef{
		Library: flagOrConfig(cmd, app, "library", keyContentLibrary),
		Folder:  flagOrConfig(cmd, app, "folder", keyContentFolder),
		Name:    flagOrConfig(cmd, app, "name", keyContentFile),
	}
}

func checkInContent(app *app, path string) ([]byte, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read content file: %w", err)
		}
		return data, nil
	}

	data, err := base64.StdEncoding.DecodeString(app.cfg.GetString(keyCheckInContent))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", keyCheckInContent, err)
	}
	return data, nil
}
