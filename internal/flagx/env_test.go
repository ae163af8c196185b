package flagx

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDotEnv_DoesNotOverrideEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("SHOPNET_T_A=from-file\nSHOPNET_T_B=file-b\n"), 0o600))

	t.Setenv("SHOPNET_T_A", "from-env")
	t.Cleanup(func() { _ = os.Unsetenv("SHOPNET_T_B") })

	require.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env"), path))

	assert.Equal(t, "from-env", os.Getenv("SHOPNET_T_A"))
	assert.Equal(t, "file-b", os.Getenv("SHOPNET_T_B"))
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("SHOPNET_T_STR", "value")
	t.Setenv("SHOPNET_T_BOOL", "true")
	t.Setenv("SHOPNET_T_INT", "12")
	t.Setenv("SHOPNET_T_DUR", "90s")
	t.Setenv("SHOPNET_T_BAD_INT", "twelve")

	s := "default"
	EnvString("SHOPNET_T_STR", &s)
	assert.Equal(t, "value", s)

	untouched := "keep"
	EnvString("SHOPNET_T_UNSET", &untouched)
	assert.Equal(t, "keep", untouched)

	var b bool
	EnvBool("SHOPNET_T_BOOL", &b)
	assert.True(t, b)

	n := 3
	EnvInt("SHOPNET_T_INT", &n)
	assert.Equal(t, 12, n)

	bad := 3
	EnvInt("SHOPNET_T_BAD_INT", &bad)
	assert.Equal(t, 3, bad)

	var d time.Duration
	EnvDuration("SHOPNET_T_DUR", &d)
	assert.Equal(t, 90*time.Second, d)
}
