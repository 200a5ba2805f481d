package cmd

import (
	"fmt"

	reportadapter "github.com/bnema/xpertdoc-portal-cli/internal/adapters/render/report"
	"github.com/bnema/xpertdoc-portal-cli/internal/application"
	"github.com/bnema/xpertdoc-portal-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newProfileCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage portal connection profiles",
	}

	cmd.AddCommand(newProfileSetCmd(app), newProfileListCmd(app), newProfileRemoveCmd(app))

	return cmd
}

func newProfileSetCmd(app *app) *cobra.Command {
	var url string
	var auth string
	var username string
	var password string
	var secretKey string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Create or update a profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mode, err := domain.ParseCredentialMode(auth)
			if err != nil {
				return err
			}

			name := domain.ProfileName(app.cfg.GetString(keyProfile))
			if secretKey == "" {
				secretKey = fmt.Sprintf("profiles/%s/password", name)
			}
			if password == "" {
				password = app.cfg.GetString(keyPortalPassword)
			}

			if err := app.profiles.SetProfile(cmd.Context(), application.SetProfileCommand{
				Name:      name,
				URL:       url,
				Mode:      mode,
				Username:  username,
				SecretKey: secretKey,
				Password:  password,
			}); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "profile %q saved\n", name)
			return err
		},
	}

	cmd.Flags().StringVar(&url, "portal-url", "", "Portal base URL")
	cmd.Flags().StringVar(&auth, "auth", string(domain.CredentialModeAmbient), "Credential mode (windows|forms)")
	cmd.Flags().StringVar(&username, "username", "", "Forms user name")
	cmd.Flags().StringVar(&password, "password", "", "Forms password (or XDP_PORTAL_PASSWORD)")
	cmd.Flags().StringVar(&secretKey, "secret-key", "", "Secret-store key for the password (default profiles/<name>/password)")
	_ = cmd.MarkFlagRequired("portal-url")

	return cmd
}

func newProfileListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			profiles, err := app.profiles.ListProfiles(cmd.Context())
			if err != nil {
				return err
			}

			rendered, err := reportadapter.RenderProfiles(profiles, domain.ProfileName(app.cfg.GetString(keyProfile)))
			if err != nil {
				return fmt.Errorf("render profiles: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}
}

func newProfileRemoveCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove",
		Short: "Remove a profile and its stored password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			name := domain.ProfileName(app.cfg.GetString(keyProfile))
			if err := app.profiles.RemoveProfile(cmd.Context(), name); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "profile %q removed\n", name)
			return err
		},
	}
}
