package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/meysamhadeli/jjgen/generator/models"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "jjgen"}
	InitFlags(cmd)
	return cmd
}

func TestLoadConfigs_Defaults(t *testing.T) {
	cwd := t.TempDir()

	cfg, err := LoadConfigs(newTestCommand(), cwd)
	require.NoError(t, err)

	assert.Equal(t, "src/main/javacc", cfg.SourceDirectory)
	assert.Equal(t, "target/generated-sources/javacc", cfg.OutputDirectory)
	assert.Equal(t, "target/generated-sources/javacc-timestamp", cfg.TimestampDirectory)
	assert.Equal(t, 0, cfg.StaleMillis)
	assert.Equal(t, []string{"javacc"}, cfg.CompilerCommand)
	require.NotNil(t, cfg.Generation)
	assert.Equal(t, models.DefaultOptions(), *cfg.Generation)
}

func TestLoadConfigs_FromFile(t *testing.T) {
	cwd := t.TempDir()
	content := `source_directory: grammars
stale_millis: 1500
compiler_command: [java, -cp, lib/javacc.jar, javacc]
excludes: [drafts/]
generation:
  lookahead: 2
  is_static: false
  ignore_case: true
`
	require.NoError(t, os.WriteFile(filepath.Join(cwd, "jjgen-config.yml"), []byte(content), 0644))

	cfg, err := LoadConfigs(newTestCommand(), cwd)
	require.NoError(t, err)

	assert.Equal(t, "grammars", cfg.SourceDirectory)
	assert.Equal(t, 1500, cfg.StaleMillis)
	assert.Equal(t, []string{"java", "-cp", "lib/javacc.jar", "javacc"}, cfg.CompilerCommand)
	assert.Equal(t, []string{"drafts/"}, cfg.Excludes)
	assert.Equal(t, 2, cfg.Generation.LookAhead)
	assert.False(t, cfg.Generation.IsStatic)
	assert.True(t, cfg.Generation.IgnoreCase)
	// untouched options keep their defaults
	assert.Equal(t, 2, cfg.Generation.ChoiceAmbiguityCheck)
	assert.True(t, cfg.Generation.KeepLineColumn)
}

func TestLoadConfigs_EnvironmentAndFlags(t *testing.T) {
	cwd := t.TempDir()
	t.Setenv("JJGEN_STALE_MILLIS", "250")
	t.Setenv("JJGEN_OUTPUT_DIRECTORY", "build/gen")

	cmd := newTestCommand()
	require.NoError(t, cmd.PersistentFlags().Set("output_directory", "flag/gen"))
	require.NoError(t, cmd.PersistentFlags().Set("lookahead", "5"))

	cfg, err := LoadConfigs(cmd, cwd)
	require.NoError(t, err)

	assert.Equal(t, 250, cfg.StaleMillis)
	assert.Equal(t, "flag/gen", cfg.OutputDirectory)
	assert.Equal(t, 5, cfg.Generation.LookAhead)
}

func TestConfig_GenerationConfig(t *testing.T) {
	cwd := t.TempDir()
	options := models.DefaultOptions()
	options.CacheTokens = true

	cfg := &Config{
		SourceDirectory:    "src/main/javacc",
		OutputDirectory:    filepath.Join(cwd, "abs", "out"),
		TimestampDirectory: "target/ts",
		StaleMillis:        10,
		Excludes:           []string{"old/"},
		SourceRootsFile:    "target/roots.yml",
		Generation:         &options,
	}

	genCfg := cfg.GenerationConfig(cwd)
	assert.Equal(t, filepath.Join(cwd, "src", "main", "javacc"), genCfg.SourceDirectory)
	assert.Equal(t, filepath.Join(cwd, "abs", "out"), genCfg.OutputDirectory)
	assert.Equal(t, filepath.Join(cwd, "target", "ts"), genCfg.TimestampDirectory)
	assert.Equal(t, 10, genCfg.StaleMillis)
	assert.Equal(t, []string{"old/"}, genCfg.Excludes)
	assert.True(t, genCfg.Options.CacheTokens)
	assert.Equal(t, filepath.Join(cwd, "target", "roots.yml"), cfg.SourceRootsPath(cwd))

	cfg.SourceRootsFile = ""
	assert.Empty(t, cfg.SourceRootsPath(cwd))
}
