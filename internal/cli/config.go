package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"stackfast/internal/blueprints/engine"
	"stackfast/internal/shared/config"
)

// DefaultConfigDir holds config.yaml when --config is not given.
const DefaultConfigDir = "~/.config/stackfast"

// Settings is the CLI configuration, read from an optional YAML file and
// STACKFAST_* environment variables.
type Settings struct {
	CatalogDir          string      `mapstructure:"catalog_dir"`
	CatalogPrefix       string      `mapstructure:"catalog_prefix"`
	ObjectStore         string      `mapstructure:"object_store"`
	AWSRegion           string      `mapstructure:"aws_region"`
	S3Bucket            string      `mapstructure:"s3_bucket"`
	S3Prefix            string      `mapstructure:"s3_prefix"`
	MaxStackSize        int         `mapstructure:"max_stack_size"`
	AcceptanceThreshold float64     `mapstructure:"acceptance_threshold"`
	LLM                 LLMSettings `mapstructure:"llm"`
}

// LLMSettings selects the provider used by --enhanced.
type LLMSettings struct {
	Provider       string `mapstructure:"provider"`
	Model          string `mapstructure:"model"`
	APIKey         string `mapstructure:"api_key"`
	BaseURL        string `mapstructure:"base_url"`
	Endpoint       string `mapstructure:"endpoint"`
	Deployment     string `mapstructure:"deployment"`
	Host           string `mapstructure:"host"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// LoadSettings reads cfgFile (or config.yaml under DefaultConfigDir) and applies
// STACKFAST_* overrides. A missing default file is not an error.
func LoadSettings(cfgFile string) (Settings, error) {
	v := viper.New()

	v.SetDefault("catalog_dir", "data")
	v.SetDefault("catalog_prefix", "catalog")
	v.SetDefault("object_store", "local")
	v.SetDefault("aws_region", "")
	v.SetDefault("s3_bucket", "")
	v.SetDefault("s3_prefix", "")
	v.SetDefault("max_stack_size", engine.DefaultMaxStackSize)
	v.SetDefault("acceptance_threshold", engine.DefaultAcceptanceThreshold)
	v.SetDefault("llm.provider", config.LLMProviderNone)
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.endpoint", "")
	v.SetDefault("llm.deployment", "")
	v.SetDefault("llm.host", "")
	v.SetDefault("llm.timeout_seconds", 60)

	v.SetEnvPrefix("STACKFAST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		v.AddConfigPath(expandPath(DefaultConfigDir))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || cfgFile != "" {
			return Settings{}, err
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, err
	}
	s.CatalogDir = expandPath(s.CatalogDir)
	return s, nil
}

// AppConfig maps the CLI settings onto the service configuration so the CLI
// builds its store and provider exactly as the API does.
func (s Settings) AppConfig() config.Config {
	return config.Config{
		Env:                 "local",
		CatalogSource:       config.CatalogSourceObject,
		CatalogPrefix:       s.CatalogPrefix,
		ObjectStoreType:     s.ObjectStore,
		LocalStoreDir:       s.CatalogDir,
		AWSRegion:           s.AWSRegion,
		S3Bucket:            s.S3Bucket,
		S3Prefix:            s.S3Prefix,
		LLMProvider:         config.NormalizeProvider(s.LLM.Provider),
		LLMModel:            s.LLM.Model,
		LLMTimeoutSeconds:   s.LLM.TimeoutSeconds,
		OpenAIAPIKey:        s.LLM.APIKey,
		OpenAIBaseURL:       s.LLM.BaseURL,
		AzureEndpoint:       s.LLM.Endpoint,
		AzureAPIKey:         s.LLM.APIKey,
		AzureDeployment:     s.LLM.Deployment,
		OllamaHost:          s.LLM.Host,
		MaxStackSize:        s.MaxStackSize,
		AcceptanceThreshold: s.AcceptanceThreshold,
	}
}

// Options returns the engine selection limits.
func (s Settings) Options() engine.Options {
	return engine.Options{MaxStackSize: s.MaxStackSize, AcceptanceThreshold: s.AcceptanceThreshold}
}
