package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/meysamhadeli/jjgen/compiler"
	"github.com/meysamhadeli/jjgen/generator/models"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config represents the structure of the configuration file
type Config struct {
	Version            string          `mapstructure:"version"`
	Theme              string          `mapstructure:"theme"`
	LogLevel           string          `mapstructure:"log_level"`
	SourceDirectory    string          `mapstructure:"source_directory"`
	OutputDirectory    string          `mapstructure:"output_directory"`
	TimestampDirectory string          `mapstructure:"timestamp_directory"`
	StaleMillis        int             `mapstructure:"stale_millis"`
	CompilerCommand    []string        `mapstructure:"compiler_command"`
	Excludes           []string        `mapstructure:"excludes"`
	SourceRootsFile    string          `mapstructure:"source_roots_file"`
	Generation         *models.Options `mapstructure:"generation"`
}

// ConfigName is the configuration file looked up in the working directory,
// with a yaml, yml or json extension.
const ConfigName = "jjgen-config"

var defaultOptions = models.DefaultOptions()

// DefaultConfig values
var DefaultConfig = Config{
	Version:            "0.3.0",
	Theme:              "dracula",
	LogLevel:           "info",
	SourceDirectory:    "src/main/javacc",
	OutputDirectory:    "target/generated-sources/javacc",
	TimestampDirectory: "target/generated-sources/javacc-timestamp",
	StaleMillis:        0,
	CompilerCommand:    compiler.DefaultCommand,
	Excludes:           []string{},
	SourceRootsFile:    "",
	Generation:         &defaultOptions,
}

// cfgFile holds the path to the configuration file (set via CLI)
var cfgFile string

// LoadConfigs initializes the configuration from file, flags, and environment
// variables, and returns the final config.
func LoadConfigs(rootCmd *cobra.Command, cwd string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("JJGEN")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	bindEnv(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		v.SetConfigName(ConfigName)
		v.AddConfigPath(cwd)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	bindFlags(v, rootCmd)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	if config.Generation == nil {
		options := models.DefaultOptions()
		config.Generation = &options
	}

	return &config, nil
}

// setDefaults sets all default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("version", DefaultConfig.Version)
	v.SetDefault("theme", DefaultConfig.Theme)
	v.SetDefault("log_level", DefaultConfig.LogLevel)
	v.SetDefault("source_directory", DefaultConfig.SourceDirectory)
	v.SetDefault("output_directory", DefaultConfig.OutputDirectory)
	v.SetDefault("timestamp_directory", DefaultConfig.TimestampDirectory)
	v.SetDefault("stale_millis", DefaultConfig.StaleMillis)
	v.SetDefault("compiler_command", DefaultConfig.CompilerCommand)
	v.SetDefault("excludes", DefaultConfig.Excludes)
	v.SetDefault("source_roots_file", DefaultConfig.SourceRootsFile)

	g := DefaultConfig.Generation
	v.SetDefault("generation.lookahead", g.LookAhead)
	v.SetDefault("generation.choice_ambiguity_check", g.ChoiceAmbiguityCheck)
	v.SetDefault("generation.other_ambiguity_check", g.OtherAmbiguityCheck)
	v.SetDefault("generation.is_static", g.IsStatic)
	v.SetDefault("generation.debug_parser", g.DebugParser)
	v.SetDefault("generation.debug_lookahead", g.DebugLookAhead)
	v.SetDefault("generation.debug_token_manager", g.DebugTokenManager)
	v.SetDefault("generation.optimize_token_manager", g.OptimizeTokenManager)
	v.SetDefault("generation.error_reporting", g.ErrorReporting)
	v.SetDefault("generation.java_unicode_escape", g.JavaUnicodeEscape)
	v.SetDefault("generation.unicode_input", g.UnicodeInput)
	v.SetDefault("generation.ignore_case", g.IgnoreCase)
	v.SetDefault("generation.common_token_action", g.CommonTokenAction)
	v.SetDefault("generation.user_token_manager", g.UserTokenManager)
	v.SetDefault("generation.user_char_stream", g.UserCharStream)
	v.SetDefault("generation.build_parser", g.BuildParser)
	v.SetDefault("generation.build_token_manager", g.BuildTokenManager)
	v.SetDefault("generation.sanity_check", g.SanityCheck)
	v.SetDefault("generation.force_la_check", g.ForceLaCheck)
	v.SetDefault("generation.cache_tokens", g.CacheTokens)
	v.SetDefault("generation.keep_line_column", g.KeepLineColumn)
}

// bindEnv explicitly binds environment variables to configuration keys
func bindEnv(v *viper.Viper) {
	_ = v.BindEnv("log_level", "JJGEN_LOG_LEVEL")
	_ = v.BindEnv("source_directory", "JJGEN_SOURCE_DIRECTORY")
	_ = v.BindEnv("output_directory", "JJGEN_OUTPUT_DIRECTORY")
	_ = v.BindEnv("timestamp_directory", "JJGEN_TIMESTAMP_DIRECTORY")
	_ = v.BindEnv("stale_millis", "JJGEN_STALE_MILLIS", "LAST_MOD_GRANULARITY_MS")
	_ = v.BindEnv("source_roots_file", "JJGEN_SOURCE_ROOTS_FILE")
}

// bindFlags binds the CLI flags to configuration values.
func bindFlags(v *viper.Viper, rootCmd *cobra.Command) {
	flags := rootCmd.PersistentFlags()
	_ = v.BindPFlag("theme", flags.Lookup("theme"))
	_ = v.BindPFlag("log_level", flags.Lookup("log_level"))
	_ = v.BindPFlag("source_directory", flags.Lookup("source_directory"))
	_ = v.BindPFlag("output_directory", flags.Lookup("output_directory"))
	_ = v.BindPFlag("timestamp_directory", flags.Lookup("timestamp_directory"))
	_ = v.BindPFlag("stale_millis", flags.Lookup("stale_millis"))
	_ = v.BindPFlag("compiler_command", flags.Lookup("compiler_command"))
	_ = v.BindPFlag("excludes", flags.Lookup("excludes"))
	_ = v.BindPFlag("source_roots_file", flags.Lookup("source_roots_file"))
	_ = v.BindPFlag("generation.lookahead", flags.Lookup("lookahead"))
	_ = v.BindPFlag("generation.is_static", flags.Lookup("static"))
}

// InitFlags initializes the flags for the root command.
func InitFlags(rootCmd *cobra.Command) {
	flags := rootCmd.PersistentFlags()

	flags.StringVarP(&cfgFile, "config", "c", "", "Specifies the path to a configuration file (JSON or YAML) that contains all the settings for the application.")
	flags.String("theme", DefaultConfig.Theme, "Syntax highlighting theme for printed command lines (e.g., 'dracula', 'monokai').")
	flags.String("log_level", DefaultConfig.LogLevel, "Log level: 'debug', 'info', 'warn' or 'error'.")

	flags.String("source_directory", DefaultConfig.SourceDirectory, "Directory where the JJ file(s) are located.")
	flags.String("output_directory", DefaultConfig.OutputDirectory, "Directory where the generated Java files will be located.")
	flags.String("timestamp_directory", DefaultConfig.TimestampDirectory, "Directory that stores copies of the processed JJ files.")
	flags.Int("stale_millis", DefaultConfig.StaleMillis, "Granularity in milliseconds of the last modification date when testing whether a grammar needs regeneration.")
	flags.StringSlice("compiler_command", DefaultConfig.CompilerCommand, "Command that runs JavaCC; the generated arguments are appended (e.g., 'java,-cp,javacc.jar,javacc').")
	flags.StringSlice("excludes", DefaultConfig.Excludes, "Patterns of files or directories (ending in '/') under the source directory to skip.")
	flags.String("source_roots_file", DefaultConfig.SourceRootsFile, "YAML file in which the output directory is registered as a compile source root.")

	flags.Int("lookahead", DefaultConfig.Generation.LookAhead, "JavaCC LOOKAHEAD option.")
	flags.Bool("static", DefaultConfig.Generation.IsStatic, "JavaCC STATIC option.")

	rootCmd.Flags().BoolP("version", "v", false, "Specifies the version of the application.")
}

// GenerationConfig returns the driver input, with relative directories
// resolved against cwd.
func (c *Config) GenerationConfig(cwd string) models.Config {
	options := models.DefaultOptions()
	if c.Generation != nil {
		options = *c.Generation
	}
	return models.Config{
		SourceDirectory:    resolvePath(cwd, c.SourceDirectory),
		OutputDirectory:    resolvePath(cwd, c.OutputDirectory),
		TimestampDirectory: resolvePath(cwd, c.TimestampDirectory),
		StaleMillis:        c.StaleMillis,
		Excludes:           append([]string(nil), c.Excludes...),
		Options:            options,
	}
}

// SourceRootsPath returns the resolved manifest path, or "" when none is configured.
func (c *Config) SourceRootsPath(cwd string) string {
	if c.SourceRootsFile == "" {
		return ""
	}
	return resolvePath(cwd, c.SourceRootsFile)
}

func resolvePath(cwd string, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(cwd, path)
}
