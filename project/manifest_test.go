package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManifest_AddCompileSourceRoot(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "build", "source-roots.yml")

	manifest, err := NewManifest(path)
	require.NoError(t, err)
	assert.Empty(t, manifest.CompileSourceRoots())

	generated := filepath.Join(dir, "target", "generated-sources", "javacc")
	require.NoError(t, manifest.AddCompileSourceRoot(generated))
	require.NoError(t, manifest.AddCompileSourceRoot(generated))
	assert.Equal(t, []string{generated}, manifest.CompileSourceRoots())

	reloaded, err := NewManifest(path)
	require.NoError(t, err)
	assert.Equal(t, []string{generated}, reloaded.CompileSourceRoots())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "compile_source_roots:")
}

func TestManifest_KeepsExistingRoots(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roots.yml")
	require.NoError(t, os.WriteFile(path, []byte("compile_source_roots:\n  - /src/main/java\n"), 0644))

	manifest, err := NewManifest(path)
	require.NoError(t, err)
	require.NoError(t, manifest.AddCompileSourceRoot("/gen/javacc"))

	assert.Equal(t, []string{"/src/main/java", "/gen/javacc"}, manifest.CompileSourceRoots())
}

func TestManifest_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roots.yml")
	require.NoError(t, os.WriteFile(path, []byte("compile_source_roots: [unterminated"), 0644))

	_, err := NewManifest(path)
	assert.Error(t, err)
}
