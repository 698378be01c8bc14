package preprocess

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheDir_DefaultUnderTemp(t *testing.T) {
	dir, err := CacheDir("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(os.TempDir(), DefaultCacheDirName), dir)
	assert.DirExists(t, dir)
}

func TestCacheDir_ConfiguredPathCreated(t *testing.T) {
	want := filepath.Join(t.TempDir(), "nested", "cache")
	dir, err := CacheDir(want)
	require.NoError(t, err)
	assert.Equal(t, want, dir)
	assert.DirExists(t, dir)
}

func TestUniqueName(t *testing.T) {
	a := uniqueName("receipt", ".jpg")
	b := uniqueName("receipt", ".jpg")
	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(a, "receipt_"))
	assert.True(t, strings.HasSuffix(a, ".jpg"))
}
