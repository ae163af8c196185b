package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJson(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := filepath.Join(t.TempDir(), "client.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"server_url":"http://json.test","request_timeout":"7s"}`), 0o600))

	os.Args = []string{"cmd", "-c", path}

	var c Config
	c.LoadDefaults()
	parseJson(&c)

	assert.Equal(t, "http://json.test", c.ServerURL)
	assert.Equal(t, 7*time.Second, c.RequestTimeout)
	assert.Equal(t, "shopnet-session.db", c.SessionDBPath, "missing keys keep defaults")
}

func TestParseJson_NoFile(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"cmd"}

	var c Config
	c.LoadDefaults()
	require.NotPanics(t, func() { parseJson(&c) })
	assert.Equal(t, "http://localhost:5000", c.ServerURL)
}

func TestParseJson_BadFilePanics(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{`), 0o600))
	os.Args = []string{"cmd", "-config", path}

	var c Config
	assert.Panics(t, func() { parseJson(&c) })
}
