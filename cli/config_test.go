package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmultani945/log-parser-project/packet/prepeat"
)

func TestLoadConfigEmptyPath(t *testing.T) {
	config, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, prepeat.DefaultPolicy(), config.ToPolicy())
	assert.Equal(t, "", config.WarningsLog)
}

func TestLoadConfigOverrides(t *testing.T) {
	document := `
policy:
  drop_name_substrings: ["reserved"]
  drop_zero_offset_after_nonzero: false
warnings_log: /tmp/decode-warnings.log
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(document), 0o644))

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/decode-warnings.log", config.WarningsLog)

	policy := config.ToPolicy()
	assert.Equal(t, []string{"reserved"}, policy.DropNameSubstrings)
	assert.False(t, policy.DropZeroOffsetAfterNonzero)
	// untouched knobs keep their defaults
	assert.Equal(t, prepeat.DefaultPolicy().CountFieldNames, policy.CountFieldNames)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig("/nonexistent/config.yaml")
	assert.Error(t, err)
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\n  - ["), 0o644))
	_, err := LoadConfig(path)
	assert.Error(t, err)
}
