package cmd

import (
	"errors"
	"fmt"
	"log"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/cv-parser/internal/extraction"
)

const (
	app = "cv-parser"

	defaultConcurrency = 4
)

type Config struct {
	Output          string         `mapstructure:"output"`
	Concurrency     int            `mapstructure:"concurrency"`
	MaxDocumentSize int64          `mapstructure:"max-document-size"`
	Rules           map[string]any `mapstructure:"rules"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "cv-parser extracts structured candidate profiles from résumé documents",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("max-document-size", "CV_PARSER_MAX_DOCUMENT_SIZE"); err != nil {
		log.Fatalf("binding CV_PARSER_MAX_DOCUMENT_SIZE environment variable: %v", err)
	}

	viper.SetDefault("output", "json")
	viper.SetDefault("concurrency", defaultConcurrency)

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is cv-parser.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// The default config file is optional, an explicit one is not.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config == nil {
		config = &Config{}
	}

	if config.Concurrency <= 0 {
		config.Concurrency = defaultConcurrency
	}

	return config, nil
}

// decodeRules turns the raw "rules" section into rule overrides. Unknown
// keys are rejected so a typo does not silently fall back to defaults.
func decodeRules(raw map[string]any) (extraction.RulesConfig, error) {
	var cfg extraction.RulesConfig
	if len(raw) == 0 {
		return cfg, nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      &cfg,
	})
	if err != nil {
		return cfg, err
	}

	if err := decoder.Decode(raw); err != nil {
		return cfg, fmt.Errorf("decoding rules: %w", err)
	}

	return cfg, nil
}

func newEngine(config *Config, logger *zap.Logger) (*extraction.Engine, error) {
	overrides, err := decodeRules(config.Rules)
	if err != nil {
		return nil, err
	}

	rules := extraction.DefaultRules()
	if err := rules.Merge(overrides); err != nil {
		return nil, err
	}

	return extraction.New(rules, logger)
}
