package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRootCmd_Metadata(t *testing.T) {
	require.Equal(t, "redline", rootCmd.Use)
	require.NotNil(t, rootCmd.RunE)
}

func TestSetVersion(t *testing.T) {
	SetVersion("1.2.3 (commit: abc, built: now)")
	require.Equal(t, "1.2.3 (commit: abc, built: now)", rootCmd.Version)
}

func TestInitCmd_WritesConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	prev := cfgFile
	cfgFile = path
	defer func() { cfgFile = prev }()

	var out bytes.Buffer
	initCmd.SetOut(&out)
	require.NoError(t, initCmd.RunE(initCmd, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "redline configuration")
	require.Contains(t, out.String(), path)
}
