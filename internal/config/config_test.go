package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"emberwallet/internal/config"
)

func TestDefaults(t *testing.T) {
	cfg, err := config.Load(nil)
	require.NoError(t, err)

	require.Equal(t, config.Mainnet, cfg.ChainType)
	require.Equal(t, "127.0.0.1:3415", cfg.APIListen)
	require.Equal(t, "NOTICE", cfg.Logging.Level)
	require.Equal(t, 1, cfg.Relay.PollInterval)
	require.Equal(t, 60, cfg.Relay.PollDeadline)
	require.Equal(t, "127.0.0.1:9050", cfg.Tor.SocksAddress)
}

func TestChainTypeSelectsListenAddr(t *testing.T) {
	cfg, err := config.Load([]byte(`ChainType = "floonet"`))
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:13415", cfg.APIListen)

	_, err = config.Load([]byte(`ChainType = "testnet9"`))
	require.Error(t, err)
}

func TestInvalidLogLevel(t *testing.T) {
	_, err := config.Load([]byte("[Logging]\nLevel = \"LOUD\"\n"))
	require.Error(t, err)
}

func TestUndecodedKeysRejected(t *testing.T) {
	_, err := config.Load([]byte(`Bogus = true`))
	require.Error(t, err)
}

func TestEnsureFileWritesDefaultsOnce(t *testing.T) {
	dir := t.TempDir()

	cfg, err := config.EnsureFile(dir)
	require.NoError(t, err)
	require.Equal(t, config.Mainnet, cfg.ChainType)

	path := filepath.Join(dir, config.DefaultFileName)
	_, err = os.Stat(path)
	require.NoError(t, err)

	// Second call loads the written file instead of rewriting it.
	again, err := config.EnsureFile(dir)
	require.NoError(t, err)
	require.Equal(t, cfg.APIListen, again.APIListen)
}
