package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	var out string

	rootCmd := &cobra.Command{
		Use:   "xdp",
		Short: "Xpertdoc Portal client: execute templates and manage content library files",
		Long: "xdp drives an Xpertdoc Portal through its OData API. Without a subcommand it runs the sample " +
			"workflow: execute the configured template, locate the configured content file, check it out " +
			"and check new content in.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.PersistentFlags().String("profile", "", "Profile to use (default \"default\")")
	rootCmd.PersistentFlags().String("url", "", "Portal base URL, overrides the profile")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log portal requests at debug level")
	rootCmd.PersistentFlags().Bool("log-json", false, "Log as JSON")
	rootCmd.Flags().StringVar(&out, "out", "", "Write the rendered document to this file")

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	for key, flag := range map[string]string{
		keyProfile:   "profile",
		keyPortalURL: "url",
		keyVerbose:   "verbose",
		keyLogJSON:   "log-json",
	} {
		_ = app.cfg.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag))
	}

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return app.configureLogger(cmd.ErrOrStderr())
	}
	rootCmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return runWorkflow(cmd, app, out)
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(app),
		newTemplateCmd(app),
		newContentCmd(app),
		newProfileCmd(app),
		newFixtureCmd(app),
	)

	return rootCmd
}
