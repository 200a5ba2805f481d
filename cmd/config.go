package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	configDirName  = ".xpertdoc"
	configFileName = "config.toml"
	envPrefix      = "XDP"

	keyProfile          = "profile"
	keyPortalURL        = "portal.url"
	keyPortalAuth       = "portal.auth"
	keyPortalUsername   = "portal.username"
	keyPortalPassword   = "portal.password"
	keyRequestTimeout   = "request_timeout"
	keyExecutionTimeout = "execution_timeout"
	keyPollInterval     = "poll_interval"
	keyMatchPolicy      = "match_policy"
	keyLogLevel         = "log_level"
	keyVerbose          = "verbose"
	keyLogJSON          = "log_json"
	keyProgress         = "progress"

	keyTemplateLibrary = "workflow.template.library"
	keyTemplateGroup   = "workflow.template.group"
	keyTemplateName    = "workflow.template.name"
	keyPayload         = "workflow.payload"
	keyContentLibrary  = "workflow.content.library"
	keyContentFolder   = "workflow.content.folder"
	keyContentFile     = "workflow.content.file"
	keyCheckInContent  = "workflow.checkin_content"
)

func setDefaults(cfg *viper.Viper) {
	cfg.SetDefault(keyProfile, "default")
	cfg.SetDefault(keyPortalAuth, "windows")
	cfg.SetDefault(keyRequestTimeout, 30*time.Second)
	cfg.SetDefault(keyExecutionTimeout, 5*time.Minute)
	cfg.SetDefault(keyPollInterval, time.Second)
	cfg.SetDefault(keyMatchPolicy, "first")
	cfg.SetDefault(keyLogLevel, "warn")
	cfg.SetDefault(keyProgress, "auto")

	cfg.SetDefault(keyTemplateLibrary, "TemplateLibraryName")
	cfg.SetDefault(keyTemplateGroup, "TemplateGroupName")
	cfg.SetDefault(keyTemplateName, "TemplateName")
	cfg.SetDefault(keyPayload, "XML Payload or Any Execution Data")
	cfg.SetDefault(keyContentLibrary, "ContentLibraryName")
	cfg.SetDefault(keyContentFolder, "ParentFolderName")
	cfg.SetDefault(keyContentFile, "FileName")
	cfg.SetDefault(keyCheckInContent, "AA==")
}

// loadConfig reads ~/.xpertdoc/config.toml when present. XDP_* environment
// variables override file values, e.g. XDP_PORTAL_URL for portal.url.
func loadConfig(homeDir string) (*viper.Viper, error) {
	cfg := viper.New()
	setDefaults(cfg)

	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	configPath := os.Getenv(envPrefix + "_CONFIG")
	if configPath == "" {
		configPath = filepath.Join(homeDir, configDirName, configFileName)
	}
	cfg.SetConfigFile(configPath)
	cfg.SetConfigType("toml")

	if err := cfg.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", configPath, err)
		}
	}

	return cfg, nil
}
