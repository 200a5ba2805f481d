package cmd

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/bnema/xpertdoc-portal-cli/internal/adapters/odata"
	tomlrepo "github.com/bnema/xpertdoc-portal-cli/internal/adapters/repo/toml"
	chainstore "github.com/bnema/xpertdoc-portal-cli/internal/adapters/secrets/chain"
	"github.com/bnema/xpertdoc-portal-cli/internal/application"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type app struct {
	cfg        *viper.Viper
	log        *logrus.Logger
	profiles   *application.ProfileService
	httpClient *http.Client
}

func wireApp() (*app, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	cfg, err := loadConfig(homeDir)
	if err != nil {
		return nil, err
	}

	log := logrus.New()
	log.SetOutput(os.Stderr)

	repo, err := tomlrepo.NewRepository(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire profile repository: %w", err)
	}

	secretStore, err := chainstore.NewPassFirstWithFileFallback(
		filepath.Join(homeDir, configDirName, "secrets"),
		chainstore.WithLogger(log),
	)
	if err != nil {
		return nil, fmt.Errorf("wire secret store chain: %w", err)
	}

	return &app{
		cfg:        cfg,
		log:        log,
		profiles:   application.NewProfileService(repo, secretStore),
		httpClient: http.DefaultClient,
	}, nil
}

func (a *app) configureLogger(output io.Writer) error {
	level, err := logrus.ParseLevel(a.cfg.GetString(keyLogLevel))
	if err != nil {
		return fmt.Errorf("invalid %s: %w", keyLogLevel, err)
	}
	if a.cfg.GetBool(keyVerbose) {
		level = logrus.DebugLevel
	}

	a.log.SetOutput(output)
	a.log.SetLevel(level)
	if a.cfg.GetBool(keyLogJSON) {
		a.log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		a.log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}

	return nil
}

func (a *app) workflow() (*application.Workflow, error) {
	policy, err := application.ParseMatchPolicy(a.cfg.GetString(keyMatchPolicy))
	if err != nil {
		return nil, err
	}

	connector := odata.NewConnector(odata.Config{
		HTTPClient:       a.httpClient,
		RequestTimeout:   a.cfg.GetDuration(keyRequestTimeout),
		ExecutionTimeout: a.cfg.GetDuration(keyExecutionTimeout),
		PollInterval:     a.cfg.GetDuration(keyPollInterval),
		Logger:           a.log,
	})

	return application.NewWorkflow(connector,
		application.WithMatchPolicy(policy),
		application.WithLogger(a.log),
	), nil
}
