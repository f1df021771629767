package app

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDir(t *testing.T) {
	tests := []struct {
		name string
		set  string
		want string
	}{
		{"default", "", "./etc/"},
		{"adds slash", "/srv/ajadmin", "/srv/ajadmin/"},
		{"keeps slash", "/srv/ajadmin/", "/srv/ajadmin/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Set(flagConfig, tt.set)
			t.Cleanup(func() { viper.Set(flagConfig, defaultPath) })

			assert.Equal(t, tt.want, configDir())
		})
	}
}

func TestKeygen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "jwt")

	var out bytes.Buffer

	keygenCmd.SetOut(&out)
	require.NoError(t, writeKeyPair(keygenCmd, dir, 1024))

	for _, name := range []string{privateKeyFile, publicKeyFile} {
		raw, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Contains(t, string(raw), "-----BEGIN")
	}

	assert.Contains(t, out.String(), dir)
}

func TestCommandsRegistered(t *testing.T) {
	for _, path := range [][]string{{"start"}, {"bootstrap"}, {"keygen"}, {"config", "dump"}} {
		cmd, _, err := rootCmd.Find(path)
		require.NoError(t, err)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}
}
