package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPrompt(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "persona.md")
	require.NoError(t, os.WriteFile(path, []byte("  You are writing as the founder.\n"), 0644))

	t.Run("existing file", func(t *testing.T) {
		content, err := LoadPrompt(path)
		require.NoError(t, err)
		assert.Equal(t, "You are writing as the founder.", content)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadPrompt(filepath.Join(dir, "nope.md"))
		assert.Error(t, err)
	})
}

func TestLoadPromptWithFallback(t *testing.T) {
	content := LoadPromptWithFallback("/definitely/not/here.md", "fallback prompt")
	assert.Equal(t, "fallback prompt", content)
}
